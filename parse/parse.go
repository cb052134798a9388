// Package parse provides total text-to-scalar conversions for raw result
// page cells. Every function accepts arbitrary text and returns a typed
// value or nil; malformed input is an expected condition, not an error.
package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	nonDigit    = regexp.MustCompile(`[^\d]`)
	nonDecimal  = regexp.MustCompile(`[^\d.]`)
	datePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})`)
	distMetres  = regexp.MustCompile(`(\d+)M`)
	distBare    = regexp.MustCompile(`(\d+)`)
	whitespace  = regexp.MustCompile(`[\x{00a0}\s]+`)
)

// placeholders are cell values the result site uses for "no data".
var placeholders = map[string]bool{
	"":    true,
	"-":   true,
	"--":  true,
	"---": true,
	"N/A": true,
}

// CleanText normalizes a raw cell: strips non-ASCII bytes, collapses
// whitespace (including &nbsp;) to single spaces and trims. Placeholder
// values collapse to the empty string.
func CleanText(raw string) string {
	text := whitespace.ReplaceAllString(raw, " ")
	var b strings.Builder
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	text = strings.TrimSpace(b.String())
	if placeholders[text] {
		return ""
	}
	return text
}

// Int extracts an integer from a cell by discarding every non-digit
// character. Returns nil if nothing remains.
func Int(raw string) *int {
	digits := nonDigit.ReplaceAllString(CleanText(raw), "")
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

// Float extracts a float from a cell by discarding every character outside
// [0-9.]. Returns nil if nothing remains or the rest is not a number.
func Float(raw string) *float64 {
	cleaned := nonDecimal.ReplaceAllString(CleanText(raw), "")
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Date locates a D/M/Y pattern (2- or 4-digit year) inside free text and
// normalizes it to DD/MM/YY. Returns nil if no date is present.
func Date(raw string) *string {
	m := datePattern.FindStringSubmatch(CleanText(raw))
	if m == nil {
		return nil
	}
	layout := "2/1/2006"
	if len(m[3]) == 2 {
		layout = "2/1/06"
	}
	t, err := time.Parse(layout, m[1]+"/"+m[2]+"/"+m[3])
	if err != nil {
		return nil
	}
	formatted := t.Format("02/01/06")
	return &formatted
}

// DateValue parses a DD/MM/YY formatted date back into a time.Time.
// Returns nil when the text is not in that form.
func DateValue(formatted string) *time.Time {
	t, err := time.Parse("02/01/06", formatted)
	if err != nil {
		return nil
	}
	return &t
}

// Distance extracts a race distance from a cell like "1400M" or "1650".
// When an "M" unit appears anywhere in the text the metres-suffixed
// integer wins, so a combined conditions cell like
// "Class 4 - 1400M - (60-40)" yields the distance, not the class number.
// Only unit-free text falls back to the first integer.
func Distance(raw string) *int {
	text := strings.ToUpper(CleanText(raw))
	if strings.Contains(text, "M") {
		m := distMetres.FindStringSubmatch(text)
		if m == nil {
			return nil
		}
		return Int(m[1])
	}
	m := distBare.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return Int(m[1])
}

// Weight extracts the leading integer from a cell that may carry a unit
// suffix, e.g. "133lb".
func Weight(raw string) *int {
	m := distBare.FindStringSubmatch(CleanText(raw))
	if m == nil {
		return nil
	}
	return Int(m[1])
}

// FinishTime converts an elapsed time cell to seconds. The grammar is
// positional, not unit-labelled: groups separated by colon or dot are read
// as M:SS.hh, SS.hh or bare seconds. Anything else is nil.
func FinishTime(raw string) *float64 {
	text := strings.ReplaceAll(CleanText(raw), ":", ".")
	if text == "" {
		return nil
	}
	parts := strings.Split(text, ".")
	for _, p := range parts {
		if p == "" || nonDigit.MatchString(p) {
			return nil
		}
	}
	var seconds float64
	switch len(parts) {
	case 3:
		mins, _ := strconv.Atoi(parts[0])
		secs, _ := strconv.Atoi(parts[1])
		hundredths, _ := strconv.Atoi(parts[2])
		seconds = float64(mins)*60 + float64(secs) + float64(hundredths)/100
	case 2:
		secs, _ := strconv.Atoi(parts[0])
		hundredths, _ := strconv.Atoi(parts[1])
		seconds = float64(secs) + float64(hundredths)/100
	case 1:
		secs, _ := strconv.Atoi(parts[0])
		seconds = float64(secs)
	default:
		return nil
	}
	return &seconds
}
