package rotor

import (
	"errors"
	"fmt"
)

// Slots is the number of rotors in every bank.
const Slots = 5

// OrderLength is the length of an order string: a selector digit and an
// orientation letter per slot, e.g. "0N1N2N3N4N".
const OrderLength = 2 * Slots

// ErrMalformedOrder reports an order string of the wrong shape.
var ErrMalformedOrder = errors.New("rotor: malformed order")

// Placement is the wiring and orientation installed in one bank slot.
type Placement struct {
	Selector int
	Reversed bool
}

// Order lists the placements of a bank from slot 0 to slot 4.
type Order [Slots]Placement

// ParseOrder reads an order string. A selector character that is not a
// digit yields an out-of-range selector, which the wiring lookup clamps.
// Orientation 'R' marks a reversed rotor; any other letter is normal.
func ParseOrder(s string) (Order, error) {
	var order Order
	if len(s) != OrderLength {
		return order, fmt.Errorf("%w: %q has %d characters, want %d", ErrMalformedOrder, s, len(s), OrderLength)
	}
	for i := 0; i < Slots; i++ {
		orientation := s[2*i+1]
		order[i] = Placement{
			Selector: int(s[2*i]) - '0',
			Reversed: orientation == 'R' || orientation == 'r',
		}
	}
	return order, nil
}

// CipherBank chains five cipher rotors.
type CipherBank struct {
	rotors [Slots]*CipherRotor
}

// NewCipherBank installs rotors in the given order.
func NewCipherBank(order Order) *CipherBank {
	b := &CipherBank{}
	for i, p := range order {
		r := NewCipherRotor(p.Selector)
		if p.Reversed {
			r.Reverse()
		}
		b.rotors[i] = r
	}
	return b
}

// Rotor returns the rotor in a slot.
func (b *CipherBank) Rotor(slot int) *CipherRotor {
	return b.rotors[slot]
}

// Encipher passes a current through slots 0 to 4.
func (b *CipherBank) Encipher(in int) int {
	c := in
	for slot := 0; slot < Slots; slot++ {
		c = b.rotors[slot].EncipherPath(c)
	}
	return c
}

// Decipher passes a current through slots 4 to 0.
func (b *CipherBank) Decipher(in int) int {
	c := in
	for slot := Slots - 1; slot >= 0; slot-- {
		c = b.rotors[slot].DecipherPath(c)
	}
	return c
}

func (b *CipherBank) Positions() [Slots]int {
	var out [Slots]int
	for i, r := range b.rotors {
		out[i] = r.Position()
	}
	return out
}

func (b *CipherBank) SetPositions(pos [Slots]int) {
	for i, r := range b.rotors {
		r.SetPosition(pos[i])
	}
}

// ControlBank chains five control rotors. Its current always flows from
// slot 4 to slot 0.
type ControlBank struct {
	rotors [Slots]*ControlRotor
}

func NewControlBank(order Order) *ControlBank {
	b := &ControlBank{}
	for i, p := range order {
		r := NewControlRotor(p.Selector)
		if p.Reversed {
			r.Reverse()
		}
		b.rotors[i] = r
	}
	return b
}

func (b *ControlBank) Rotor(slot int) *ControlRotor {
	return b.rotors[slot]
}

// Path passes a current through slots 4 to 0.
func (b *ControlBank) Path(in int) int {
	c := in
	for slot := Slots - 1; slot >= 0; slot-- {
		c = b.rotors[slot].ControlPath(c)
	}
	return c
}

func (b *ControlBank) Positions() [Slots]int {
	var out [Slots]int
	for i, r := range b.rotors {
		out[i] = r.Position()
	}
	return out
}

func (b *ControlBank) SetPositions(pos [Slots]int) {
	for i, r := range b.rotors {
		r.SetPosition(pos[i])
	}
}

// IndexBank chains five index rotors. Its current always flows from slot
// 0 to slot 4.
type IndexBank struct {
	rotors [Slots]*IndexRotor
}

func NewIndexBank(order Order) *IndexBank {
	b := &IndexBank{}
	for i, p := range order {
		r := NewIndexRotor(p.Selector)
		if p.Reversed {
			r.Reverse()
		}
		b.rotors[i] = r
	}
	return b
}

func (b *IndexBank) Rotor(slot int) *IndexRotor {
	return b.rotors[slot]
}

// Path passes a current through slots 0 to 4.
func (b *IndexBank) Path(in int) int {
	c := in
	for slot := 0; slot < Slots; slot++ {
		c = b.rotors[slot].IndexPath(c)
	}
	return c
}

func (b *IndexBank) Positions() [Slots]int {
	var out [Slots]int
	for i, r := range b.rotors {
		out[i] = r.Position()
	}
	return out
}

func (b *IndexBank) SetPositions(pos [Slots]int) {
	for i, r := range b.rotors {
		r.SetPosition(pos[i])
	}
}
