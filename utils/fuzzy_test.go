package utils

import "testing"

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"batata", "batata", 0},
		{"btata", "batata", 1},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"arroz", "feijao", 6},
	}
	for _, tc := range cases {
		if got := LevenshteinDistance(tc.a, tc.b); got != tc.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestIsFuzzyMatch(t *testing.T) {
	if !IsFuzzyMatch("btata", "batata", 2) {
		t.Error("expected btata to fuzzy-match batata")
	}
	if !IsFuzzyMatch("batata", "batata frita", 2) {
		t.Error("expected batata to fuzzy-match the prefix of batata frita")
	}
	if IsFuzzyMatch("xyz", "batata", 2) {
		t.Error("did not expect xyz to fuzzy-match batata")
	}
	// only the first len(query)+2 runes of the candidate take part
	if IsFuzzyMatch("frita", "batata frita", 2) {
		t.Error("window should not reach past the candidate prefix")
	}
}
