package utils

import (
	"strings"

	"github.com/gosimple/unidecode"
)

// NormalizeText canonicalizes free text for matching: accents are folded to
// their ASCII base letter, everything is lowercased, any character outside
// [a-z0-9 ] becomes a space and whitespace runs collapse to one space.
// "São Paulo" -> "sao paulo". Applying it twice changes nothing.
func NormalizeText(text string) string {
	text = strings.ToLower(unidecode.Unidecode(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
