package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// CountryCode is prefixed onto every normalized phone number; the source data
// carries Indian numbers only.
const CountryCode = "+91"

// Uncategorized is the category assigned to products with no usable category.
const Uncategorized = "Uncategorized"

var nonDigits = regexp.MustCompile(`\D`)

var dateSeparators = strings.NewReplacer(".", "/", "-", "/")

// IsMissing reports whether a raw cell holds no usable value. Pandas-style
// exports write "nan"/"none" literals into empty cells.
func IsMissing(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none":
		return true
	}
	return false
}

// ParseDate parses a date string with any mix of ".", "-" and "/" separators.
// A leading component greater than 12 is taken as a day (DD/MM/YYYY),
// otherwise month-first is assumed; four leading digits mean YYYY/MM/DD.
// Unparseable input yields ok=false, never an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return time.Time{}, false
	}

	unified := dateSeparators.Replace(s)
	parts := strings.Split(unified, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	layout := "1/2/2006"
	if len(parts[0]) == 4 {
		layout = "2006/1/2"
	} else if first, err := strconv.Atoi(parts[0]); err == nil && first > 12 {
		layout = "2/1/2006"
	}

	t, err := time.Parse(layout, unified)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// Phone strips everything but digits and keeps the last ten, prefixed with
// the country code. Anything shorter than ten digits is absent.
func Phone(s string) (string, bool) {
	digits := nonDigits.ReplaceAllString(s, "")
	if len(digits) < 10 {
		return "", false
	}

	return CountryCode + "-" + digits[len(digits)-10:], true
}

// Category trims and title-cases a category name so that "electronics" and
// "ELECTRONICS" collapse into "Electronics".
func Category(s string) string {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return Uncategorized
	}

	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}

// ParseDecimal parses a monetary string into an exact decimal value. Missing
// or invalid input yields ok=false; the caller decides between dropping the
// row and substituting a default.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return d, true
}

// ParseInt parses an integer that may be serialized as a float ("12.0").
func ParseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return 0, false
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}

	return int(f), true
}
