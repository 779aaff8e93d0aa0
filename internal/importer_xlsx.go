package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxColumns maps accepted header names (lowercased) to the field they fill
var xlsxColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"amount":     "amount",
	"start date": "start",
	"start":      "start",
	"startdate":  "start",
	"frequency":  "frequency",
	"enabled":    "enabled",
	"auto renew": "autorenew",
	"autorenew":  "autorenew",
}

// ImportXLSX reads subscriptions from the first sheet of an Excel workbook.
// The first row containing Name, Amount, Start Date and Frequency headers is
// the header row; ID, Enabled and Auto Renew columns are optional. Empty rows
// are skipped, invalid rows fail the import.
func ImportXLSX(path string) ([]Subscription, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	// Raw values: dates come back as Excel serial numbers, amounts unformatted
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find header row and column indices
	cols := map[string]int{}
	dataStartRow := -1
	for i, row := range rows {
		found := map[string]int{}
		for j, cell := range row {
			if field, ok := xlsxColumns[strings.ToLower(strings.TrimSpace(cell))]; ok {
				found[field] = j
			}
		}
		if hasColumns(found, "name", "amount", "start", "frequency") {
			cols = found
			dataStartRow = i + 1
			break
		}
	}
	if dataStartRow < 0 {
		return nil, fmt.Errorf("could not find required columns (Name, Amount, Start Date, Frequency)")
	}

	var subs []Subscription
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]
		cell := func(field string) string {
			j, ok := cols[field]
			if !ok || j >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[j])
		}

		if cell("name") == "" && cell("amount") == "" && cell("start") == "" {
			continue
		}

		enabled := true
		if v := cell("enabled"); v != "" {
			enabled = parseBoolCell(v)
		}

		sub, err := ValidateSubscription(SubscriptionInput{
			ID:        cell("id"),
			Name:      cell("name"),
			Amount:    normalizeDecimalComma(cell("amount")),
			StartDate: xlsxDateCell(cell("start")),
			Frequency: cell("frequency"),
			AutoRenew: parseBoolCell(cell("autorenew")),
			Enabled:   enabled,
		})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func hasColumns(found map[string]int, fields ...string) bool {
	for _, f := range fields {
		if _, ok := found[f]; !ok {
			return false
		}
	}
	return true
}

// normalizeDecimalComma turns "99,50" into "99.50" but leaves "1,299.50" alone
func normalizeDecimalComma(v string) string {
	if strings.Contains(v, ".") {
		return v
	}
	return strings.ReplaceAll(v, ",", ".")
}

// xlsxDateCell converts an Excel date serial to YYYY-MM-DD; other text is returned as is
func xlsxDateCell(v string) string {
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	return DateOf(t).String()
}

func parseBoolCell(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "x":
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

func init() {
	RegisterImporter("xlsx", ImporterFunc(ImportXLSX))
}
