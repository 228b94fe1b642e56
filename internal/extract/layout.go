package extract

import "strings"

// Layout identifies one of the known settlement page templates
type Layout int

const (
	// Standard is the broker statement addressed with an "An" salutation block
	Standard Layout = iota
	// Investbank is the statement issued by Investbank, with the buyer block above the depot line
	Investbank
)

func (l Layout) String() string {
	switch l {
	case Investbank:
		return "investbank"
	default:
		return "standard"
	}
}

// SelectLayout picks the layout for a document identifier. Identifiers containing the marker use
// the Investbank layout, everything else is Standard.
func SelectLayout(identifier, marker string) Layout {
	if marker != "" && strings.Contains(identifier, marker) {
		return Investbank
	}
	return Standard
}

// Identity is the buyer block of a statement
type Identity struct {
	Name    string
	Address string
	City    string
}

// ExtractIdentity runs the buyer extraction rules of the layout on normalized text
func (l Layout) ExtractIdentity(text string) Identity {
	if l != Investbank {
		return ExtractNameAndAddress(text)
	}

	// The city slot of the Investbank block carries the street line followed by the "Datum:"
	// label, so the address is derived from it.
	raw := ExtractNameAndAddressInvestbank(text)
	city, zip := ExtractCityAndZip(text)
	return Identity{
		Name:    raw.Name,
		Address: FilterStreetNameInvestbank(raw.City),
		City:    zip + " " + city,
	}
}
