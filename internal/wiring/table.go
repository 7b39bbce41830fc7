// Package wiring holds the fixed rotor wirings and the inter-bank coupling
// tables of the machine. Every table is validated when the package loads;
// a wiring that is not a permutation never reaches a rotor.
package wiring

import (
	"errors"
	"fmt"
)

// ErrNotPermutation reports a wiring that maps two contacts to the same
// output or leaves an output unreachable.
var ErrNotPermutation = errors.New("wiring: not a permutation")

// Table is a bijection on [0, N) together with its inverse.
type Table struct {
	forward []int
	inverse []int
}

// NewTable validates forward and derives its inverse.
func NewTable(forward []int) (Table, error) {
	n := len(forward)
	if n == 0 {
		return Table{}, fmt.Errorf("%w: empty table", ErrNotPermutation)
	}

	inverse := make([]int, n)
	seen := make([]bool, n)
	for i, out := range forward {
		if out < 0 || out >= n {
			return Table{}, fmt.Errorf("%w: contact %d maps to %d outside [0,%d)", ErrNotPermutation, i, out, n)
		}
		if seen[out] {
			return Table{}, fmt.Errorf("%w: output %d reached twice", ErrNotPermutation, out)
		}
		seen[out] = true
		inverse[out] = i
	}

	fw := make([]int, n)
	copy(fw, forward)
	return Table{forward: fw, inverse: inverse}, nil
}

// Size returns the number of contacts on each side of the table.
func (t Table) Size() int {
	return len(t.forward)
}

// Forward maps a left-side contact to its right-side contact.
func (t Table) Forward(contact int) int {
	return t.forward[contact]
}

// Inverse maps a right-side contact back to its left-side contact.
func (t Table) Inverse(contact int) int {
	return t.inverse[contact]
}

func mustTable(forward []int) Table {
	t, err := NewTable(forward)
	if err != nil {
		panic(err)
	}
	return t
}

func lettersToContacts(letters string) []int {
	out := make([]int, len(letters))
	for i := 0; i < len(letters); i++ {
		out[i] = int(letters[i] - 'A')
	}
	return out
}
