package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Importer reads subscriptions from a file
type Importer interface {
	Import(path string) ([]Subscription, error)
}

// ImporterFunc is a function that implements Importer
type ImporterFunc func(path string) ([]Subscription, error)

func (f ImporterFunc) Import(path string) ([]Subscription, error) {
	return f(path)
}

// importers is the registry of available import formats
var importers = map[string]Importer{}

// extensionFormats maps file extensions to the format used when no prefix is given
var extensionFormats = map[string]string{
	".json": "simple-json",
	".xlsx": "xlsx",
}

// RegisterImporter registers an importer with the given format name
func RegisterImporter(name string, imp Importer) {
	importers[name] = imp
}

// GetImporter returns the importer for the given format
func GetImporter(format string) (Importer, error) {
	imp, ok := importers[format]
	if !ok {
		return nil, fmt.Errorf("unknown import format: %s (available: %v)", format, AvailableFormats())
	}
	return imp, nil
}

// AvailableFormats returns the registered format names, sorted
func AvailableFormats() []string {
	var formats []string
	for name := range importers {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// IsKnownImporter returns true if the name is a registered format
func IsKnownImporter(name string) bool {
	_, ok := importers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "simple-json:data.txt" → ("simple-json", "data.txt")
// Example: "data.json" → ("", "data.json")
// Example: "C:\path\file.xlsx" → ("", "C:\path\file.xlsx") // Windows path
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownImporter(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg // Not a known importer, treat whole thing as path
}

// ImportFile imports subscriptions from arg, which may carry a "format:" prefix.
// Without a prefix the format is picked from the file extension.
func ImportFile(arg string) ([]Subscription, error) {
	format, path := ParseFileArg(arg)
	if format == "" {
		format = extensionFormats[strings.ToLower(filepath.Ext(path))]
	}
	if format == "" {
		return nil, fmt.Errorf("cannot tell the format of %s, prefix it with one of %v", path, AvailableFormats())
	}

	imp, err := GetImporter(format)
	if err != nil {
		return nil, err
	}
	return imp.Import(path)
}
