package extract

import "strings"

// Normalize removes every occurrence of each boilerplate string and drops everything from the
// first cutoff marker onwards. Missing strings or a missing marker leave the text unchanged.
func Normalize(text string, boilerplate []string, cutoff string) string {
	for _, s := range boilerplate {
		if s == "" {
			continue
		}
		text = strings.ReplaceAll(text, s, "")
	}
	if cutoff != "" {
		if i := strings.Index(text, cutoff); i >= 0 {
			text = text[:i]
		}
	}
	return text
}
