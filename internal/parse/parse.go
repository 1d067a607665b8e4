// Package parse converts practitioner free text into scheduling values.
// Treatment plans are captured as typed notes ("45 min", "2 semaines") and
// both French and English unit spellings show up in real records.
package parse

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultDelayDays applies when a step carries no usable delay text.
	DefaultDelayDays = 7
	// DefaultDurationMinutes applies when a step carries no usable duration.
	DefaultDurationMinutes = 60
)

var (
	numberPattern  = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	integerPattern = regexp.MustCompile(`\d+`)
)

// DelayDays extracts the number of days to wait before a follow-up visit.
// The unit multiplies the leading number: days keep it as-is, weeks multiply
// by 7, months by 30. Unparseable input falls back to DefaultDelayDays.
func DelayDays(raw string) int {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return DefaultDelayDays
	}
	match := integerPattern.FindString(text)
	if match == "" {
		return DefaultDelayDays
	}
	n, err := strconv.Atoi(match)
	if err != nil || n <= 0 {
		return DefaultDelayDays
	}
	switch {
	case strings.Contains(text, "semaine"), strings.Contains(text, "week"):
		return n * 7
	case strings.Contains(text, "mois"), strings.Contains(text, "month"):
		return n * 30
	default:
		return n
	}
}

// DurationMinutes extracts a visit length in minutes. Hour units ("1.5h",
// "2 heures") are converted; bare numbers are taken as minutes. Unparseable
// input falls back to DefaultDurationMinutes.
func DurationMinutes(raw string) int {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return DefaultDurationMinutes
	}
	match := numberPattern.FindString(text)
	if match == "" {
		return DefaultDurationMinutes
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil || value <= 0 {
		return DefaultDurationMinutes
	}
	if strings.Contains(text, "h") && !strings.Contains(text, "min") {
		value *= 60
	}
	minutes := int(value)
	if minutes <= 0 {
		return DefaultDurationMinutes
	}
	return minutes
}
