package app

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeTerm turns a category slug or search query into the catalog's
// capitalization: hyphens become spaces, whitespace runs collapse to one
// space, and the first rune of every word is title-cased. The rest of each
// word is left as typed, so "iPhone-case" becomes "IPhone Case".
func NormalizeTerm(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}
		words[i] = string(unicode.ToTitle(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
