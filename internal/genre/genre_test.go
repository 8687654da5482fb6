package genre

import "testing"

func TestNormalize(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain title case", input: "funk rock", want: "Funk Rock"},
		{name: "single acronym", input: "edm", want: "EDM"},
		{name: "acronym with word", input: "uk garage", want: "UK Garage"},
		{name: "acronym before punctuation", input: "pov: indie", want: "POV: Indie"},
		{name: "drum and bass", input: "dnb", want: "DnB"},
		{name: "city acronym", input: "nyc rap", want: "NYC Rap"},
		{name: "acronym not matched inside word", input: "dukes of dixieland", want: "Dukes Of Dixieland"},
		{name: "mixed case input", input: "EDM", want: "EDM"},
		{name: "empty string", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(nil)

	inputs := []string{"edm", "uk garage", "pov: indie", "funk rock", "dnb", "atl hip hop", "melodic house"}
	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeCustomAcronyms(t *testing.T) {
	n := NewNormalizer(map[string]string{"Lofi": "LoFi"})

	if got := n.Normalize("lofi beats"); got != "LoFi Beats" {
		t.Errorf("custom acronym not applied: got %q", got)
	}

	// Built-in set no longer applies when a custom map is provided.
	if got := n.Normalize("edm"); got != "Edm" {
		t.Errorf("expected built-ins replaced by custom map, got %q", got)
	}
}

func TestNormalizeAll(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.NormalizeAll([]string{"edm", "uk garage"})
	if len(got) != 2 || got[0] != "EDM" || got[1] != "UK Garage" {
		t.Errorf("NormalizeAll() = %v", got)
	}

	if empty := n.NormalizeAll(nil); empty == nil || len(empty) != 0 {
		t.Errorf("NormalizeAll(nil) should return empty non-nil slice, got %v", empty)
	}
}
