package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// lineItemPattern matches "<name> <quantity> <value> <price>". Matches may span line breaks
	// because whitespace includes newlines.
	lineItemPattern = regexp.MustCompile(`(.+?)[\s\p{Z}]+(\p{Nd}+)[\s\p{Z}]+([\p{Nd},.]+)[\s\p{Z}]+([\p{Nd},.]+)`)

	// thousandsPattern matches a grouping dot between two digits
	thousandsPattern = regexp.MustCompile(`(\p{Nd})\.(\p{Nd})`)
)

// LineItem is one purchased security
type LineItem struct {
	Name     string
	Quantity int
	Value    float64
	Price    float64
}

// ParseAmount converts a European formatted number ("1.234,56") to a float
func ParseAmount(s string) (float64, error) {
	cleaned := asciiDigits(thousandsPattern.ReplaceAllString(s, "${1}${2}"))
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return v, nil
}

// FilterPurchases returns the line items of a statement in order of appearance
func FilterPurchases(text string) []LineItem {
	matches := lineItemPattern.FindAllStringSubmatch(text, -1)
	items := make([]LineItem, 0, len(matches))

	for _, m := range matches {
		item, err := lineItem(m[1], m[2], m[3], m[4])
		if err != nil {
			slog.Debug("Skipping line item", "match", m[0], "error", err)
			continue
		}
		items = append(items, item)
	}

	return items
}

func lineItem(name, quantity, value, price string) (LineItem, error) {
	qty, err := strconv.Atoi(asciiDigits(quantity))
	if err != nil {
		return LineItem{}, fmt.Errorf("parsing quantity %q: %w", quantity, err)
	}

	item := LineItem{Name: strings.TrimSpace(name), Quantity: qty}

	if item.Value, err = ParseAmount(value); err != nil {
		return LineItem{}, err
	}

	if price == "" {
		item.Price = item.Value * float64(qty)
		return item, nil
	}
	if item.Price, err = ParseAmount(price); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// asciiDigits replaces decimal digits from other scripts with their ASCII form so strconv can
// parse them. Unicode decimal digits come in runs that start at zero.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII || !unicode.IsDigit(r) {
			return r
		}
		n := 0
		for unicode.IsDigit(r - rune(n) - 1) {
			n++
		}
		return '0' + rune(n%10)
	}, s)
}
