// Package numbering reconstructs hierarchical section numbers from the
// document's multi-level list definitions. It parses the level-format
// tables, keeps mutable per-list counters for one traversal, and formats
// counter values as decimal, roman or letter sequences.
package numbering

import "strconv"

// Format kinds recognized from level definitions. Anything else falls back
// to decimal.
const (
	FormatDecimal     = "decimal"
	FormatUpperRoman  = "upperRoman"
	FormatLowerRoman  = "lowerRoman"
	FormatUpperLetter = "upperLetter"
	FormatLowerLetter = "lowerLetter"
	FormatBullet      = "bullet"
)

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// FormatLevel renders a counter value in the given format kind.
// Letter formats are 1-indexed with 26-letter wraparound; roman uses
// standard subtractive notation. Values below 1 render as the decimal
// value to keep malformed input visible instead of panicking.
func FormatLevel(kind string, n int) string {
	if n < 1 {
		return strconv.Itoa(n)
	}
	switch normalizeFormat(kind) {
	case FormatUpperRoman:
		return roman(n)
	case FormatLowerRoman:
		return lower(roman(n))
	case FormatUpperLetter:
		return string(rune('A' + (n-1)%26))
	case FormatLowerLetter:
		return string(rune('a' + (n-1)%26))
	default:
		return strconv.Itoa(n)
	}
}

func roman(n int) string {
	out := ""
	for _, rv := range romanValues {
		for n >= rv.value {
			out += rv.symbol
			n -= rv.value
		}
	}
	return out
}

func lower(s string) string {
	b := []byte(s)
	for i := range b {
		b[i] |= 0x20
	}
	return string(b)
}

// normalizeFormat folds the format spellings seen in real documents onto
// the canonical kinds.
func normalizeFormat(kind string) string {
	switch kind {
	case FormatUpperRoman, "roman":
		return FormatUpperRoman
	case FormatLowerRoman:
		return FormatLowerRoman
	case FormatUpperLetter, "russianUpper":
		return FormatUpperLetter
	case FormatLowerLetter, "russianLower":
		return FormatLowerLetter
	default:
		return FormatDecimal
	}
}
