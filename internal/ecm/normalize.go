package ecm

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLetter folds a rune to the machine's keyboard: accents are
// stripped and the result upper-cased. It fails unless exactly one letter
// A-Z remains, so 'é' becomes 'E' but 'ß' and digits are rejected.
func NormalizeLetter(r rune) (rune, error) {
	if r >= 'A' && r <= 'Z' {
		return r, nil
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), cases.Upper(language.Und))
	folded, _, err := transform.String(t, string(r))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidInput, r, err)
	}
	if utf8.RuneCountInString(folded) != 1 {
		return 0, fmt.Errorf("%w: %q is not a single letter", ErrInvalidInput, r)
	}
	out, _ := utf8.DecodeRuneInString(folded)
	if out < 'A' || out > 'Z' {
		return 0, fmt.Errorf("%w: %q is not a letter A-Z", ErrInvalidInput, r)
	}
	return out, nil
}
