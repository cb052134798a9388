package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// WinnerMargin is the sentinel LBW value for the race winner. The winner
// has no margin behind itself, but zero would collide with dead heats, so
// the site convention of a nominal hundredth of a length is kept.
const WinnerMargin = "0.01"

// marginVocabulary maps the site's closed set of shorthand margin tokens to
// their numeric length equivalents.
var marginVocabulary = map[string]string{
	"SAME":   "0.01",
	"DH":     "0.01",
	"DHT":    "0.01",
	"NOSE":   "0.05",
	"SH":     "0.1",
	"HD":     "0.2",
	"NK":     "0.3",
	"N":      "0.3",
	"S.DIST": "50",
	"DIST":   "99",
}

var (
	simpleFraction = regexp.MustCompile(`^(\d+)/(\d+)$`)
	mixedNumber    = regexp.MustCompile(`^(\d+)-(\d+)/(\d+)$`)
	bareNumber     = regexp.MustCompile(`^\d*\.?\d+$`)
	lengthSuffix   = regexp.MustCompile(`^(\d+)L$`)
)

// Margin resolves a lengths-behind-winner cell to decimal text. Placing 1
// always yields WinnerMargin regardless of the raw text. Other placings go
// through the shorthand vocabulary, then simple fractions ("3/4"), mixed
// numbers ("1-1/2"), bare numbers and the "NL" length suffix. Anything
// unrecognized is nil.
func Margin(raw string, placing *int) *string {
	if placing != nil && *placing == 1 {
		v := WinnerMargin
		return &v
	}
	token := strings.ToUpper(CleanText(raw))
	if token == "" {
		return nil
	}
	if mapped, ok := marginVocabulary[token]; ok {
		return &mapped
	}
	if m := simpleFraction.FindStringSubmatch(token); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		denom, _ := strconv.ParseFloat(m[2], 64)
		if denom != 0 {
			v := formatLengths(num / denom)
			return &v
		}
		return nil
	}
	if m := mixedNumber.FindStringSubmatch(token); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		denom, _ := strconv.ParseFloat(m[3], 64)
		if denom != 0 {
			v := formatLengths(whole + num/denom)
			return &v
		}
		return nil
	}
	if bareNumber.MatchString(token) {
		return &token
	}
	if m := lengthSuffix.FindStringSubmatch(token); m != nil {
		return &m[1]
	}
	return nil
}

func formatLengths(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
