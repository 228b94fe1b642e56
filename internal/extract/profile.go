package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile holds the literals that drive extraction for one family of issuers.
type Profile struct {
	Boilerplate    []string `yaml:"boilerplate"`
	Cutoff         string   `yaml:"cutoff"`
	DispatchMarker string   `yaml:"dispatch_marker"`
}

// defaultBoilerplate lists the issuer letterhead and footer lines found on every settlement page
var defaultBoilerplate = []string{
	" | Investallee 33 | 32938 Investopedia",
	"Finance Free Capital",
	"Goldweg 13 Seite: 1 von 1",
	"45612 Frankfurt",
	"Tel.: 03571 - 96520",
	"Fax: 0351 - 965299",
	"info@ff-capital.com",
	"www.ff-capital.com",
	"Handelsrepublik GmbH & Co. KG",
	"Silberstraße 99",
	"45612 Frankfurt",
	"Tel.: 03151 - 89320",
	"Fax: 03151 - 893299",
	"info@handelsrepublik.de",
	"www.handelsrepublik.de",
	"Seite: 1 von 1",
}

// DefaultProfile returns the built-in profile
func DefaultProfile() Profile {
	boilerplate := make([]string, len(defaultBoilerplate))
	copy(boilerplate, defaultBoilerplate)
	return Profile{
		Boilerplate:    boilerplate,
		Cutoff:         "Abrechnung",
		DispatchMarker: "Investbank",
	}
}

// LoadProfile reads a YAML profile from path. Keys missing from the file keep their defaults.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("reading profile: %w", err)
	}

	var fromFile Profile
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return profile, fmt.Errorf("parsing profile: %w", err)
	}

	if fromFile.Boilerplate != nil {
		profile.Boilerplate = fromFile.Boilerplate
	}
	if fromFile.Cutoff != "" {
		profile.Cutoff = fromFile.Cutoff
	}
	if fromFile.DispatchMarker != "" {
		profile.DispatchMarker = fromFile.DispatchMarker
	}

	return profile, nil
}
