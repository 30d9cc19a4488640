package filter

import (
	"strconv"
	"strings"
	"time"

	"fexplorer/internal/errors"
)

// sizeUnits maps unit suffixes to multipliers. Decimal units are powers
// of 1000, binary units powers of 1024.
var sizeUnits = map[string]int64{
	"":    1,
	"B":   1,
	"KB":  1_000,
	"MB":  1_000_000,
	"GB":  1_000_000_000,
	"TB":  1_000_000_000_000,
	"KIB": 1 << 10,
	"MIB": 1 << 20,
	"GIB": 1 << 30,
	"TIB": 1 << 40,
}

// ParseSize parses a human-readable size expression such as "100",
// "10KB", "2 MiB". Parsing is case-insensitive; a bare number is bytes.
func ParseSize(input string) (int64, error) {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(input), " ", ""))
	if s == "" {
		return 0, errors.Newf(errors.ParseError, "empty size expression")
	}

	split := len(s)
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			split = i
			break
		}
	}
	numStr, unit := s[:split], s[split:]

	number, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, errors.Newf(errors.ParseError, "invalid size expression %q", input)
	}

	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, errors.Newf(errors.ParseError, "unknown size unit in %q", input)
	}

	return int64(number * float64(multiplier)), nil
}

var relativeUnits = map[string]time.Duration{
	"day":    24 * time.Hour,
	"days":   24 * time.Hour,
	"week":   7 * 24 * time.Hour,
	"weeks":  7 * 24 * time.Hour,
	"month":  30 * 24 * time.Hour,
	"months": 30 * 24 * time.Hour,
	"year":   365 * 24 * time.Hour,
	"years":  365 * 24 * time.Hour,
}

// ParseDate parses a date expression: ISO-8601 date, ISO-8601 datetime
// with timezone, relative "N {unit} ago", or the keywords "yesterday"
// and "today". Relative forms resolve against the supplied now.
func ParseDate(input string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(input)

	if ts, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return ts, nil
	}
	if ts, err := time.ParseInLocation("2006-01-02", trimmed, time.Local); err == nil {
		return ts, nil
	}

	lowered := strings.ToLower(trimmed)
	switch lowered {
	case "today":
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), nil
	case "yesterday":
		year, month, day := now.AddDate(0, 0, -1).Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), nil
	}

	if ts, ok := parseRelativeDate(lowered, now); ok {
		return ts, nil
	}

	return time.Time{}, errors.Newf(errors.ParseError, "invalid date expression %q", input)
}

// parseRelativeDate handles "N {unit} ago".
func parseRelativeDate(input string, now time.Time) (time.Time, bool) {
	parts := strings.Fields(input)
	if len(parts) != 3 || parts[2] != "ago" {
		return time.Time{}, false
	}

	n, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || n < 0 {
		return time.Time{}, false
	}

	unit, ok := relativeUnits[parts[1]]
	if !ok {
		return time.Time{}, false
	}

	return now.Add(-time.Duration(n) * unit), true
}
