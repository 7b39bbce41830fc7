// Package rotor models the three rotor kinds of the machine and the
// five-slot banks that hold them.
//
// A rotor's position is its rotational offset from the reference contact
// (letter A or digit 0 on top). Every path function works modulo the
// rotor's contact count, so positions are always in range.
package rotor

import "github.com/ecm-dev/ecm/internal/wiring"

// Rotor is the state shared by every rotor kind.
type Rotor struct {
	table    wiring.Table
	selector int
	reversed bool
	pos      int
}

func newRotor(table wiring.Table, selector int) Rotor {
	return Rotor{table: table, selector: selector, pos: 0}
}

// Selector returns the wiring number in use, after clamping.
func (r *Rotor) Selector() int {
	return r.selector
}

// Size returns the contact count, 26 or 10.
func (r *Rotor) Size() int {
	return r.table.Size()
}

// Position returns the current offset in [0, Size()).
func (r *Rotor) Position() int {
	return r.pos
}

// SetPosition sets the offset, reduced modulo Size().
func (r *Rotor) SetPosition(pos int) {
	n := r.Size()
	r.pos = ((pos % n) + n) % n
}

// Reversed reports whether the rotor is installed upside down and backwards.
func (r *Rotor) Reversed() bool {
	return r.reversed
}

// Reverse flips the installed orientation.
func (r *Rotor) Reverse() {
	r.reversed = !r.reversed
}

// RotateCW turns the rotor one step clockwise. Rotors are labeled
// increasing clockwise, except reversed rotors which read the other way.
func (r *Rotor) RotateCW() {
	if r.reversed {
		r.SetPosition(r.pos + 1)
		return
	}
	r.SetPosition(r.pos - 1)
}

// RotateCCW turns the rotor one step counter-clockwise.
func (r *Rotor) RotateCCW() {
	if r.reversed {
		r.SetPosition(r.pos - 1)
		return
	}
	r.SetPosition(r.pos + 1)
}

// left passes a current entering on the left side; a reversed rotor
// presents its inverse wiring to that side.
func (r *Rotor) left(in int) int {
	n := r.Size()
	contact := (in + r.pos) % n
	var out int
	if r.reversed {
		out = r.table.Inverse(contact)
	} else {
		out = r.table.Forward(contact)
	}
	return (out - r.pos + n) % n
}

func (r *Rotor) right(in int) int {
	n := r.Size()
	contact := (in + r.pos) % n
	var out int
	if r.reversed {
		out = r.table.Forward(contact)
	} else {
		out = r.table.Inverse(contact)
	}
	return (out - r.pos + n) % n
}

// CipherRotor sits in the cipher bank. Encipher current flows left to
// right, decipher current right to left.
type CipherRotor struct {
	Rotor
}

// NewCipherRotor builds a cipher rotor from a large wiring selector.
func NewCipherRotor(selector int) *CipherRotor {
	sel := wiring.ClampLarge(selector)
	return &CipherRotor{Rotor: newRotor(wiring.Large(sel), sel)}
}

// EncipherPath maps an input contact through the rotor for encipherment.
func (c *CipherRotor) EncipherPath(in int) int {
	return c.left(in)
}

// DecipherPath is the exact inverse of EncipherPath for the same state.
func (c *CipherRotor) DecipherPath(in int) int {
	return c.right(in)
}

// ControlRotor sits in the control bank, always read right to left.
type ControlRotor struct {
	Rotor
}

// NewControlRotor builds a control rotor from a large wiring selector.
func NewControlRotor(selector int) *ControlRotor {
	sel := wiring.ClampLarge(selector)
	return &ControlRotor{Rotor: newRotor(wiring.Large(sel), sel)}
}

// ControlPath maps a contact through the rotor.
func (c *ControlRotor) ControlPath(in int) int {
	return c.right(in)
}

// IndexRotor sits in the index bank, always read left to right. Index
// rotors are set by hand and never stepped by the machine.
type IndexRotor struct {
	Rotor
}

// NewIndexRotor builds an index rotor from an index wiring selector.
func NewIndexRotor(selector int) *IndexRotor {
	sel := wiring.ClampIndex(selector)
	return &IndexRotor{Rotor: newRotor(wiring.Index(sel), sel)}
}

// IndexPath maps a contact through the rotor.
func (i *IndexRotor) IndexPath(in int) int {
	return i.left(in)
}
