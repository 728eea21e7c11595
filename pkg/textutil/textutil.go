package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// NormalizeTitle folds a song title into a form where cosmetic differences between
// sources (full-width characters, spacing, punctuation, case) don't matter.
func NormalizeTitle(title string) string {
	title = width.Fold.String(title)
	title = norm.NFKC.String(title)
	title = strings.ToLower(title)
	title = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, title)
	return title
}
