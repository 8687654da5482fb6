// package genre normalizes free-text genre tags returned by the catalog service.
//
// Tags arrive lowercased (e.g. "uk garage", "pov: indie") and are converted to
// a display-friendly casing: title case plus a configurable set of acronym
// corrections ("Edm" -> "EDM").
package genre

import (
	"strings"
	"unicode"
)

// DefaultAcronyms returns the built-in acronym corrections applied after
// title-casing. Keys are the title-cased token, values the preferred casing.
func DefaultAcronyms() map[string]string {
	return map[string]string{
		"Edm": "EDM",
		"Dnb": "DnB",
		"Uk":  "UK",
		"Pov": "POV",
		"Mbp": "MBP",
		"Atl": "ATL",
		"Nyc": "NYC",
	}
}

// Normalizer capitalizes genre tags and corrects known acronyms.
type Normalizer struct {
	acronyms map[string]string
}

// NewNormalizer creates a Normalizer with the given acronym corrections.
// A nil or empty map falls back to [DefaultAcronyms].
func NewNormalizer(acronyms map[string]string) *Normalizer {
	if len(acronyms) == 0 {
		acronyms = DefaultAcronyms()
	}
	return &Normalizer{acronyms: acronyms}
}

// Normalize title-cases a genre tag and applies acronym corrections.
//
// Replacement is token-scoped: an acronym key only matches a full run of
// letters and digits, so an already-corrected token ("UK") can never re-match
// its title-cased key ("Uk"). The function is idempotent.
func (n *Normalizer) Normalize(genre string) string {
	return n.replaceAcronyms(titleCase(genre))
}

// NormalizeAll normalizes every tag in a slice, preserving order.
// Returns an empty (non-nil) slice for empty input so callers can range freely.
func (n *Normalizer) NormalizeAll(genres []string) []string {
	normalized := make([]string, 0, len(genres))
	for _, g := range genres {
		normalized = append(normalized, n.Normalize(g))
	}
	return normalized
}

// titleCase capitalizes the first letter of each whitespace-delimited word and
// lowercases the rest.
func titleCase(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	atWordStart := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			atWordStart = true
			out.WriteRune(r)
		case atWordStart:
			out.WriteRune(unicode.ToUpper(r))
			atWordStart = false
		default:
			out.WriteRune(unicode.ToLower(r))
		}
	}

	return out.String()
}

// replaceAcronyms rewrites each maximal run of letters and digits that exactly
// matches an acronym key.
func (n *Normalizer) replaceAcronyms(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	var token strings.Builder
	flush := func() {
		if token.Len() == 0 {
			return
		}
		word := token.String()
		if replacement, ok := n.acronyms[word]; ok {
			out.WriteString(replacement)
		} else {
			out.WriteString(word)
		}
		token.Reset()
	}

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			token.WriteRune(r)
			continue
		}
		flush()
		out.WriteRune(r)
	}
	flush()

	return out.String()
}
