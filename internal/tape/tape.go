// Package tape applies the operator conventions around the cipher core:
// the word-space substitution, ignored keys, and the printed tape.
//
// On encipher a space is sent as Z and a real Z as X, and the cipher text
// is printed in five-letter groups. On decipher spaces in the cipher text
// are skipped and a deciphered Z prints as a space. Digits and '-' are
// ignored keys in both directions, as is any other whitespace.
package tape

import (
	"fmt"
	"unicode"

	"github.com/ecm-dev/ecm/internal/ecm"
)

// GroupSize is the letter grouping of printed cipher text.
const GroupSize = 5

// Cycler is the part of the engine a tape needs.
type Cycler interface {
	Cycle(r rune, dir ecm.Direction) (rune, error)
}

// Result is a finished tape.
type Result struct {
	Text    string `json:"text"`
	Cycled  int    `json:"cycled"`
	Ignored int    `json:"ignored"`
}

// Prepare maps an operator key to the letter sent into the machine. ok is
// false for a key the machine ignores. Letters come back unvalidated; the
// engine rejects anything it cannot cycle.
func Prepare(r rune, dir ecm.Direction) (key rune, ok bool) {
	switch {
	case r == '-' || unicode.IsDigit(r):
		return 0, false
	case r == ' ':
		if dir == ecm.Encrypt {
			return 'Z', true
		}
		return 0, false
	case unicode.IsSpace(r):
		return 0, false
	case dir == ecm.Encrypt && (r == 'Z' || r == 'z'):
		return 'X', true
	default:
		return r, true
	}
}

// Finish maps a machine output letter to what the tape prints.
func Finish(r rune, dir ecm.Direction) rune {
	if dir == ecm.Decrypt && r == 'Z' {
		return ' '
	}
	return r
}

// Tape feeds keys through a cycler one at a time and prints the output.
type Tape struct {
	cycler  Cycler
	dir     ecm.Direction
	printer *Printer
	cycled  int
	ignored int
}

// New returns a tape for one direction. Encipher tapes print in groups of
// GroupSize unless grouped is false; decipher tapes never group.
func New(c Cycler, dir ecm.Direction, grouped bool) *Tape {
	size := 0
	if grouped && dir == ecm.Encrypt {
		size = GroupSize
	}
	return &Tape{cycler: c, dir: dir, printer: NewPrinter(size)}
}

// Feed processes one key. An invalid key returns an error wrapping
// ecm.ErrInvalidInput and prints nothing.
func (t *Tape) Feed(r rune) error {
	key, ok := Prepare(r, t.dir)
	if !ok {
		t.ignored++
		return nil
	}
	out, err := t.cycler.Cycle(key, t.dir)
	if err != nil {
		return err
	}
	t.cycled++
	t.printer.Print(Finish(out, t.dir))
	return nil
}

// FeedString feeds every rune of s, stopping at the first invalid one.
func (t *Tape) FeedString(s string) error {
	for i, r := range []rune(s) {
		if err := t.Feed(r); err != nil {
			return fmt.Errorf("character %d: %w", i+1, err)
		}
	}
	return nil
}

func (t *Tape) Result() Result {
	return Result{Text: t.printer.String(), Cycled: t.cycled, Ignored: t.ignored}
}

// Encipher runs a whole message through c.
func Encipher(c Cycler, text string, grouped bool) (Result, error) {
	t := New(c, ecm.Encrypt, grouped)
	if err := t.FeedString(text); err != nil {
		return Result{}, err
	}
	return t.Result(), nil
}

// Decipher runs a whole cipher text through c.
func Decipher(c Cycler, text string) (Result, error) {
	t := New(c, ecm.Decrypt, false)
	if err := t.FeedString(text); err != nil {
		return Result{}, err
	}
	return t.Result(), nil
}
