package pricing

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyLabel is appended to every formatted amount.
const CurrencyLabel = "DA"

var printer = message.NewPrinter(language.English)

// ParseAmount keeps only the ASCII digits of a display price and reads them as a
// base-10 integer. Strings without digits, or whose digits overflow int64, yield 0.
//
// The parse is lossy on purpose: "2,500 DA", "2 500 DA" and "2500DA" all read as 2500,
// and a decimal part such as "12.50" reads as 1250.
func ParseAmount(display string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, display)

	if digits == "" {
		return 0
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatAmount renders n with English thousands separators and the currency label,
// e.g. 2950 -> "2,950 DA".
func FormatAmount(n int64) string {
	return printer.Sprintf("%d", n) + " " + CurrencyLabel
}

// PlainAmount renders n without separators, e.g. 450 -> "450 DA". Shipping costs are
// stored in this form.
func PlainAmount(n int64) string {
	return strconv.FormatInt(n, 10) + " " + CurrencyLabel
}

// EnsureCurrency appends the currency label to a price typed by an admin unless it
// already names the currency (Latin or Arabic spelling).
func EnsureCurrency(price string) string {
	lower := strings.ToLower(price)
	if strings.Contains(lower, "da") || strings.Contains(lower, "د.ج") {
		return price
	}
	return strings.TrimRightFunc(price, unicode.IsSpace) + " " + CurrencyLabel
}
