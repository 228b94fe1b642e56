package extract

import (
	"strconv"
	"strings"
)

// currencySuffix is appended to the rendered value and price cells
const currencySuffix = "0 EURO"

// Columns is the header row of every output table
var Columns = []string{
	"Zeit",
	"Datum",
	"Platform",
	"Depot-Nr.",
	"Käufer",
	"Anschrift-Käufer",
	"Stadt",
	"Wertpapier Name",
	"Anzahl",
	"Wert",
	"Preis",
}

// Header holds the fields shared by all line items of one statement
type Header struct {
	Time     string
	Date     string
	Platform string
	Depot    string
	Buyer    Identity
}

// Statement is the extraction result for one document
type Statement struct {
	Layout Layout
	Header Header
	Items  []LineItem
}

// Row is one output table row
type Row struct {
	Header
	LineItem
}

// Parse extracts a statement from normalized text. Fields that cannot be found are left empty.
func Parse(identifier, text string, profile Profile) Statement {
	layout := SelectLayout(identifier, profile.DispatchMarker)

	info := ExtractPurchaseInfo(text)

	return Statement{
		Layout: layout,
		Header: Header{
			Time:     info.Time,
			Date:     info.Date,
			Platform: info.Platform,
			Depot:    ExtractDepot(text),
			Buyer:    layout.ExtractIdentity(text),
		},
		Items: FilterPurchases(text),
	}
}

// Rows returns one row per line item, in order
func (s Statement) Rows() []Row {
	return AssembleRows(s.Header, s.Items)
}

// AssembleRows pairs the header with each line item
func AssembleRows(header Header, items []LineItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, Row{Header: header, LineItem: item})
	}
	return rows
}

// Record renders the row as table cells in Columns order
func (r Row) Record() []string {
	return []string{
		r.Time,
		r.Date,
		r.Platform,
		r.Depot,
		r.Buyer.Name,
		r.Buyer.Address,
		r.Buyer.City,
		r.Name,
		strconv.Itoa(r.Quantity),
		FormatAmount(r.Value) + currencySuffix,
		FormatAmount(r.Price) + currencySuffix,
	}
}

// FormatAmount renders v in its shortest form, always with a fractional part ("12.5", "1234.0")
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
