// Package cage holds the rotor cage of the machine: the cipher, control and
// index banks and the stepping rules that tie them together.
//
// A Cage is not safe for concurrent use. Stepping depends on the exact
// order of processed characters, so a cage belongs to a single session.
package cage

import (
	"errors"
	"fmt"

	"github.com/ecm-dev/ecm/internal/rotor"
	"github.com/ecm-dev/ecm/internal/wiring"
)

var (
	// ErrInvalidInput reports a character, position string or order string
	// the machine cannot accept. No rotor moves when it is returned.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedConfiguration reports a machine type whose behavior is
	// not implemented.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
)

// ReferencePosition is the letter position (O) that zeroize sets on every
// cipher and control rotor, and the carry position of the control odometer.
const ReferencePosition = int('O' - 'A')

const (
	slowSlot   = 1
	fastSlot   = 2
	mediumSlot = 3
)

// Cage owns one bank of each kind.
type Cage struct {
	cipher   *rotor.CipherBank
	control  *rotor.ControlBank
	index    *rotor.IndexBank
	machine  Machine
	coupling wiring.Coupling
	rollover int
}

// New builds a cage from three order strings such as "0N1N2N3N4N". All
// rotors start at position 0; call Zeroize or the position setters before
// processing characters.
func New(cipherOrder, controlOrder, indexOrder string, m Machine) (*Cage, error) {
	coupling, err := m.coupling()
	if err != nil {
		return nil, err
	}

	orders := make([]rotor.Order, 0, 3)
	for _, o := range []struct{ name, value string }{
		{"cipher", cipherOrder},
		{"control", controlOrder},
		{"index", indexOrder},
	} {
		order, err := rotor.ParseOrder(o.value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s order: %w", ErrInvalidInput, o.name, err)
		}
		orders = append(orders, order)
	}

	return &Cage{
		cipher:   rotor.NewCipherBank(orders[0]),
		control:  rotor.NewControlBank(orders[1]),
		index:    rotor.NewIndexBank(orders[2]),
		machine:  m,
		coupling: coupling,
	}, nil
}

// Machine returns the machine type in use.
func (c *Cage) Machine() Machine {
	return c.machine
}

// SetMachine switches the coupling. The cage is unchanged on error.
func (c *Cage) SetMachine(m Machine) error {
	coupling, err := m.coupling()
	if err != nil {
		return err
	}
	c.machine = m
	c.coupling = coupling
	return nil
}

// CipherBank exposes the cipher bank for inspection.
func (c *Cage) CipherBank() *rotor.CipherBank { return c.cipher }

// ControlBank exposes the control bank for inspection.
func (c *Cage) ControlBank() *rotor.ControlBank { return c.control }

// IndexBank exposes the index bank for inspection.
func (c *Cage) IndexBank() *rotor.IndexBank { return c.index }

// Rollover returns the rollover counter. It counts cycles since cipher slot
// 0 or 4 last moved.
func (c *Cage) Rollover() int {
	return c.rollover
}

// Zeroize sets every cipher and control rotor to the reference position.
// The index bank is left alone.
func (c *Cage) Zeroize() {
	var ref [rotor.Slots]int
	for i := range ref {
		ref[i] = ReferencePosition
	}
	c.setCipher(ref)
	c.control.SetPositions(ref)
}

// ZeroizeStep moves every cipher and control rotor that is not at the
// reference position one step clockwise. It reports whether all of them
// are at the reference position afterwards. At most 26 calls zeroize the
// cage.
func (c *Cage) ZeroizeStep() bool {
	done := true
	for slot := 0; slot < rotor.Slots; slot++ {
		r := c.cipher.Rotor(slot)
		if r.Position() != ReferencePosition {
			r.RotateCW()
			c.noteCipherMove(slot)
		}
		done = done && r.Position() == ReferencePosition

		k := c.control.Rotor(slot)
		if k.Position() != ReferencePosition {
			k.RotateCW()
		}
		done = done && k.Position() == ReferencePosition
	}
	return done
}

// CipherPath runs one letter index through the cipher bank without
// stepping anything.
func (c *Cage) CipherPath(in int, dir Direction) (int, error) {
	if in < 0 || in >= wiring.LargeContacts {
		return 0, fmt.Errorf("%w: contact %d out of range", ErrInvalidInput, in)
	}
	switch dir {
	case Encrypt:
		return c.cipher.Encipher(in), nil
	case Decrypt:
		return c.cipher.Decipher(in), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidInput, dir)
	}
}

// ControlPath runs a contact through the control bank, slot 4 to slot 0.
func (c *Cage) ControlPath(in int) int {
	return c.control.Path(in)
}

// IndexPath runs a contact through the index bank, slot 0 to slot 4.
func (c *Cage) IndexPath(in int) int {
	return c.index.Path(in)
}

// Cycle processes one letter index: the cipher path first, then control
// stepping, then cipher stepping. Invalid input is rejected before any
// rotor moves.
func (c *Cage) Cycle(in int, dir Direction) (int, error) {
	out, err := c.CipherPath(in, dir)
	if err != nil {
		return 0, err
	}
	c.StepControlBank()
	c.StepCipherBank()
	c.rollover++
	return out, nil
}

// StepControlBank advances the control odometer by one. The fast rotor
// always moves. The medium rotor moves when the fast rotor was at the
// reference position, and the slow rotor when both were. Slots 0 and 4
// never move here.
func (c *Cage) StepControlBank() {
	fast := c.control.Rotor(fastSlot)
	if fast.Position() == ReferencePosition {
		medium := c.control.Rotor(mediumSlot)
		if medium.Position() == ReferencePosition {
			c.control.Rotor(slowSlot).RotateCW()
		}
		medium.RotateCW()
	}
	fast.RotateCW()
}

// Magnets reports which cipher slots the current control and index
// positions energize. Several taps may land on one magnet.
func (c *Cage) Magnets() [rotor.Slots]bool {
	var move [rotor.Slots]bool
	for _, tap := range c.coupling.Taps() {
		contact, ok := c.coupling.IndexContact(c.control.Path(tap))
		if !ok {
			continue
		}
		move[wiring.Magnet(c.index.Path(contact))] = true
	}
	return move
}

// StepCipherBank collects the energized magnets and then moves each
// flagged cipher rotor one step clockwise, so no rotor moves twice for one
// character. It returns the magnets that fired.
func (c *Cage) StepCipherBank() [rotor.Slots]bool {
	move := c.Magnets()
	for slot, energized := range move {
		if !energized {
			continue
		}
		c.cipher.Rotor(slot).RotateCW()
		c.noteCipherMove(slot)
	}
	return move
}

// AdvanceControlRotor moves a single control rotor one step clockwise, as
// the machine's numbered keys did in reset mode.
func (c *Cage) AdvanceControlRotor(slot int) error {
	if slot < 0 || slot >= rotor.Slots {
		return fmt.Errorf("%w: control slot %d", ErrInvalidInput, slot)
	}
	c.control.Rotor(slot).RotateCW()
	return nil
}

func (c *Cage) noteCipherMove(slot int) {
	if slot == 0 || slot == rotor.Slots-1 {
		c.rollover = 0
	}
}
