package keylist

import (
	"strings"

	"github.com/ecm-dev/ecm/internal/rotor"
)

const (
	zeroLetters = "OOOOO"
	zeroDigits  = "00000"
)

// NormalizeLetters sanitizes an operator-entered cipher or control
// position the way the front panel did: upper-cased, cut or padded to five
// with O, and any non-letter replaced by O.
func NormalizeLetters(s string) string {
	return normalize(strings.ToUpper(s), 'O', func(b byte) bool { return b >= 'A' && b <= 'Z' })
}

// NormalizeDigits is NormalizeLetters for index positions, padding with 0.
func NormalizeDigits(s string) string {
	return normalize(s, '0', func(b byte) bool { return b >= '0' && b <= '9' })
}

func normalize(s string, pad byte, valid func(byte) bool) string {
	out := []byte(strings.Repeat(string(pad), rotor.Slots))
	for i := 0; i < len(s) && i < rotor.Slots; i++ {
		if valid(s[i]) {
			out[i] = s[i]
		}
	}
	return string(out)
}
