package record

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var unitSuffix = regexp.MustCompile(`(?i)\s*kwh$`)

// ParseConsumption parses a kWh value.
// Handles "0.532", "0,532", "1.234,5", "1,234.5" and a trailing "kWh".
// Negative, NaN and infinite values are rejected.
func ParseConsumption(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, errors.New("empty consumption value")
	}

	cleaned = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00A0' {
			return -1
		}
		return r
	}, cleaned)
	cleaned = unitSuffix.ReplaceAllString(cleaned, "")
	if cleaned == "" {
		return 0, errors.New("no numeric value found")
	}

	// The rightmost separator is the decimal one.
	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")
	if lastComma > lastDot {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else if lastDot > lastComma {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	result, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid consumption format %q", value)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("consumption is not finite: %q", value)
	}
	if result < 0 {
		return 0, fmt.Errorf("negative consumption %q", value)
	}
	return result, nil
}

// ParseTimestamp joins a date and a time field and parses them with
// TimestampLayout in loc.
func ParseTimestamp(date, clock string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, errors.New("missing date")
	}
	if clock == "" {
		return time.Time{}, errors.New("missing time")
	}
	if loc == nil {
		loc = time.UTC
	}

	ts, err := time.ParseInLocation(TimestampLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: expected dd/mm/yyyy hh:mm", date+" "+clock)
	}
	return ts, nil
}
