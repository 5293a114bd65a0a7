package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02-Jan-06 15:04",
}

// excelEpoch is day zero of spreadsheet serial dates (1900 date system,
// including the 1900 leap-year quirk).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Serials outside [minSerial, maxSerial) are rejected so a bare year or
// small number is not silently read as a date in 1905.
const (
	minSerial = 20000   // 1954-10-03
	maxSerial = 2958466 // 10000-01-01
)

// ParseDate accepts the textual layouts above or a spreadsheet serial number
// such as 45520.33333. Values without a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < minSerial || serial >= maxSerial {
			return time.Time{}, fmt.Errorf("invalid date %q (spreadsheet serial out of range)", s)
		}
		days := math.Floor(serial)
		// Round to the minute; serials carry float noise.
		minutes := math.Round((serial - days) * 24 * 60)
		return excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(minutes) * time.Minute), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD[ HH:MM], RFC3339 or a spreadsheet serial)", s)
}
