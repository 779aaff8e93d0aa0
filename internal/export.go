package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet   = "Upcoming"
	icalProductID = "-//subscription-tracker//Upcoming Charges//EN"
)

// ExportProjection writes the projection to path. The format follows the
// extension: .xlsx for a workbook, .ics for an iCalendar file.
func ExportProjection(path string, p Projection, cur Currency, now time.Time) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ExportXLSX(path, p)
	case ".ics":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		if err := WriteICal(f, p, cur, now); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("unsupported export format %q (use .xlsx or .ics)", filepath.Ext(path))
	}
}

// ExportXLSX writes one row per charge (Date, Name, Frequency, Amount) plus a total row
func ExportXLSX(path string, p Projection) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14}) // m/d/yy, localized by Excel
	if err != nil {
		return fmt.Errorf("creating date style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &[]any{"Date", "Name", "Frequency", "Amount"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", "D1", boldStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	row := 2
	for _, g := range p.Groups {
		for _, o := range g.Occurrences {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			values := []any{o.Date.Time(), o.Name, string(o.Frequency), o.Amount.InexactFloat64()}
			if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}
	lastDataRow := row - 1

	totalLabel, _ := excelize.CoordinatesToCellName(3, row)
	totalCell, _ := excelize.CoordinatesToCellName(4, row)
	if err := f.SetCellValue(exportSheet, totalLabel, "Total"); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}
	if lastDataRow >= 2 {
		err = f.SetCellFormula(exportSheet, totalCell, fmt.Sprintf("SUM(D2:D%d)", lastDataRow))
	} else {
		err = f.SetCellValue(exportSheet, totalCell, 0)
	}
	if err != nil {
		return fmt.Errorf("writing total: %w", err)
	}

	if lastDataRow >= 2 {
		if err := f.SetCellStyle(exportSheet, "A2", fmt.Sprintf("A%d", lastDataRow), dateStyle); err != nil {
			return fmt.Errorf("styling dates: %w", err)
		}
	}
	if err := f.SetCellStyle(exportSheet, "D2", totalCell, amountStyle); err != nil {
		return fmt.Errorf("styling amounts: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, totalLabel, totalLabel, boldStyle); err != nil {
		return fmt.Errorf("styling total: %w", err)
	}
	if err := f.SetColWidth(exportSheet, "A", "A", 12); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(exportSheet, "B", "B", 30); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// WriteICal writes every charge in the projection as an all-day VEVENT. Events
// are emitted per charge rather than as one RRULE per subscription, because
// RRULE month arithmetic does not clamp to month end.
func WriteICal(w io.Writer, p Projection, cur Currency, now time.Time) error {
	if p.Count == 0 {
		return fmt.Errorf("no charges between %s and %s to export", p.Window.Start, p.Window.End)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, icalProductID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	for _, g := range p.Groups {
		for _, o := range g.Occurrences {
			event := ical.NewEvent()
			event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s@subscription-tracker", o.SubscriptionID, o.Date))
			event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
			event.Props.SetDate(ical.PropDateTimeStart, o.Date.Time())
			event.Props.SetDate(ical.PropDateTimeEnd, AddDays(o.Date, 1).Time())
			event.Props.SetText(ical.PropSummary, fmt.Sprintf("%s (%s)", o.Name, cur.Format(o.Amount)))
			event.Props.SetText(ical.PropDescription, fmt.Sprintf("%s charge of %s", o.Frequency, cur.Format(o.Amount)))
			event.Props.SetText(ical.PropTransparency, "TRANSPARENT")
			cal.Children = append(cal.Children, event.Component)
		}
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}
