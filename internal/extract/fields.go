package extract

import (
	"regexp"
	"strings"
)

// Whitespace is [\s\p{Z}] and digits are \p{Nd} so no-break spaces and non-ASCII digits in
// PDF text layers match.
var (
	// datePattern matches "Datum:" followed by a DD.MM.YYYY date
	datePattern = regexp.MustCompile(`Datum:[\s\p{Z}]*(\p{Nd}{2}\.\p{Nd}{2}\.\p{Nd}{4})`)

	// depotPattern matches "Depot:" followed by the account digits
	depotPattern = regexp.MustCompile(`Depot:[\s\p{Z}]*(\p{Nd}+)`)

	// purchasePattern matches the execution sentence. The venue is word characters only, so
	// venues with spaces or punctuation do not match.
	purchasePattern = regexp.MustCompile(`Kauf um (\p{Nd}{2}:\p{Nd}{2} Uhr), am (\p{Nd}{2}\.\p{Nd}{2}\.\p{Nd}{4}) auf ([\p{L}\p{N}_]+).`)

	// depotLabelPattern strips a depot label so it cannot be mistaken for a postal code
	depotLabelPattern = regexp.MustCompile(`Depot:[\s\p{Z}]*\p{Nd}+[\s\p{Z}]*`)

	// zipCityPattern matches a five digit postal code followed by the city name at end of line
	zipCityPattern = regexp.MustCompile(`(\p{Nd}{5})[\s\p{Z}]+(.+)$`)
)

// PurchaseInfo is the execution time, date and venue of an order
type PurchaseInfo struct {
	Time     string
	Date     string
	Platform string
}

func lines(text string) []string {
	return strings.Split(text, "\n")
}

// ExtractDate returns the first "Datum:" date, or "" if there is none
func ExtractDate(text string) string {
	if m := datePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractDepot returns the first depot number, or "" if there is none
func ExtractDepot(text string) string {
	if m := depotPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractPurchaseInfo returns the time, date and venue of the first execution sentence.
// All fields are empty when the sentence is missing.
func ExtractPurchaseInfo(text string) PurchaseInfo {
	m := purchasePattern.FindStringSubmatch(text)
	if m == nil {
		return PurchaseInfo{}
	}
	return PurchaseInfo{Time: m[1], Date: m[2], Platform: m[3]}
}

// ExtractNameAndAddress reads the three lines after the first line that is exactly "An".
func ExtractNameAndAddress(text string) Identity {
	ls := lines(text)
	for i, line := range ls {
		if strings.TrimSpace(line) != "An" {
			continue
		}
		if len(ls) <= i+3 {
			return Identity{}
		}
		return Identity{
			Name:    strings.TrimSpace(ls[i+1]),
			Address: strings.TrimSpace(ls[i+2]),
			City:    strings.TrimSpace(ls[i+3]),
		}
	}
	return Identity{}
}

// ExtractNameAndAddressInvestbank reads the buyer block above the first line mentioning "Depot".
// When the issuer name sits three lines above, the buyer name is the line after it.
func ExtractNameAndAddressInvestbank(text string) Identity {
	ls := lines(text)
	for i, line := range ls {
		if !strings.Contains(line, "Depot") {
			continue
		}
		if i < 3 {
			return Identity{}
		}
		name := ls[i-3]
		if strings.Contains(ls[i-3], "Investbank") {
			name = ls[i-2]
		}
		return Identity{
			Name:    strings.TrimSpace(name),
			Address: strings.TrimSpace(ls[i-2]),
			City:    strings.TrimSpace(ls[i-1]),
		}
	}
	return Identity{}
}

// FilterStreetNameInvestbank keeps the part of s before "Datum:", trimmed
func FilterStreetNameInvestbank(s string) string {
	before, _, _ := strings.Cut(s, "Datum:")
	return strings.TrimSpace(before)
}

// ExtractCityAndZip returns the city and postal code from the first line ending in
// "<zip> <city>". Depot labels are removed from each line before matching.
func ExtractCityAndZip(text string) (city, zip string) {
	for _, line := range lines(text) {
		line = depotLabelPattern.ReplaceAllString(line, "")
		if m := zipCityPattern.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[2]), strings.TrimSpace(m[1])
		}
	}
	return "", ""
}
