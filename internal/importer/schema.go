package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is a bulk workbook: one sheet of packages and one of
// activities. Field names follow the spreadsheet column headers.
type ImportSchema struct {
	Packages   []PackageRow  `json:"packages" yaml:"packages"`
	Activities []ActivityRow `json:"activities" yaml:"activities"`
}

// PackageRow is one row of the Packages sheet. Dates are strings so a bad
// cell is reported as a row error instead of failing the whole decode.
type PackageRow struct {
	ID          string `json:"package_id" yaml:"package_id"`
	Name        string `json:"package_name" yaml:"package_name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    string `json:"priority" yaml:"priority"`
	StartDate   string `json:"planned_start_date" yaml:"planned_start_date"`
	EndDate     string `json:"planned_end_date" yaml:"planned_end_date"`
	Supervisor  string `json:"supervisor,omitempty" yaml:"supervisor,omitempty"`
}

// ActivityRow is one row of the Activities sheet.
type ActivityRow struct {
	ID        string `json:"activity_id" yaml:"activity_id"`
	PackageID string `json:"package_id" yaml:"package_id"`
	Tag       string `json:"equipment_tag" yaml:"equipment_tag"`
	Title     string `json:"activity_title" yaml:"activity_title"`
	Priority  string `json:"priority" yaml:"priority"`
	StartDate string `json:"planned_start_date" yaml:"planned_start_date"`
	EndDate   string `json:"planned_end_date" yaml:"planned_end_date"`
	Assignee  string `json:"assignee,omitempty" yaml:"assignee,omitempty"`
}

// Format selects the decoder for an import file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported import file %q (expected .json, .yaml or .yml)", filepath.Base(path))
	}
}

// LoadImportSchema reads and parses a bulk import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, format)
}

// ParseImportSchema decodes data in the given format. Unknown fields are
// rejected so a misspelled column does not silently drop values.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
	return &schema, nil
}
