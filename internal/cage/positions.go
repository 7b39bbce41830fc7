package cage

import (
	"fmt"

	"github.com/ecm-dev/ecm/internal/rotor"
)

// Positions is a readback of all three banks.
type Positions struct {
	Cipher  string `json:"cipher" yaml:"cipher"`
	Control string `json:"control" yaml:"control"`
	Index   string `json:"index" yaml:"index"`
}

func (p Positions) String() string {
	return fmt.Sprintf("cipher %s control %s index %s", p.Cipher, p.Control, p.Index)
}

// Positions reads back all three banks.
func (c *Cage) Positions() Positions {
	return Positions{
		Cipher:  c.CipherPositions(),
		Control: c.ControlPositions(),
		Index:   c.IndexPositions(),
	}
}

// SetPositions applies all three position strings. Nothing changes unless
// all three are valid.
func (c *Cage) SetPositions(p Positions) error {
	cipher, err := parseLetters(p.Cipher)
	if err != nil {
		return fmt.Errorf("cipher positions: %w", err)
	}
	control, err := parseLetters(p.Control)
	if err != nil {
		return fmt.Errorf("control positions: %w", err)
	}
	index, err := parseDigits(p.Index)
	if err != nil {
		return fmt.Errorf("index positions: %w", err)
	}
	c.setCipher(cipher)
	c.control.SetPositions(control)
	c.index.SetPositions(index)
	return nil
}

// SetCipherPositions takes five letters A-Z, slot 0 first. The rollover
// counter resets when slot 0 or slot 4 changes.
func (c *Cage) SetCipherPositions(s string) error {
	pos, err := parseLetters(s)
	if err != nil {
		return fmt.Errorf("cipher positions: %w", err)
	}
	c.setCipher(pos)
	return nil
}

// SetControlPositions takes five letters A-Z, slot 0 first.
func (c *Cage) SetControlPositions(s string) error {
	pos, err := parseLetters(s)
	if err != nil {
		return fmt.Errorf("control positions: %w", err)
	}
	c.control.SetPositions(pos)
	return nil
}

// SetIndexPositions takes five digits 0-9, slot 0 first.
func (c *Cage) SetIndexPositions(s string) error {
	pos, err := parseDigits(s)
	if err != nil {
		return fmt.Errorf("index positions: %w", err)
	}
	c.index.SetPositions(pos)
	return nil
}

func (c *Cage) CipherPositions() string {
	return formatLetters(c.cipher.Positions())
}

func (c *Cage) ControlPositions() string {
	return formatLetters(c.control.Positions())
}

func (c *Cage) IndexPositions() string {
	pos := c.index.Positions()
	out := make([]byte, rotor.Slots)
	for i, p := range pos {
		out[i] = byte('0' + p)
	}
	return string(out)
}

func (c *Cage) setCipher(pos [rotor.Slots]int) {
	old := c.cipher.Positions()
	if old[0] != pos[0] || old[rotor.Slots-1] != pos[rotor.Slots-1] {
		c.rollover = 0
	}
	c.cipher.SetPositions(pos)
}

func parseLetters(s string) ([rotor.Slots]int, error) {
	var pos [rotor.Slots]int
	if len(s) != rotor.Slots {
		return pos, fmt.Errorf("%w: %q is not %d letters", ErrInvalidInput, s, rotor.Slots)
	}
	for i := 0; i < rotor.Slots; i++ {
		ch := s[i]
		if ch < 'A' || ch > 'Z' {
			return pos, fmt.Errorf("%w: %q has non-letter %q", ErrInvalidInput, s, ch)
		}
		pos[i] = int(ch - 'A')
	}
	return pos, nil
}

func parseDigits(s string) ([rotor.Slots]int, error) {
	var pos [rotor.Slots]int
	if len(s) != rotor.Slots {
		return pos, fmt.Errorf("%w: %q is not %d digits", ErrInvalidInput, s, rotor.Slots)
	}
	for i := 0; i < rotor.Slots; i++ {
		ch := s[i]
		if ch < '0' || ch > '9' {
			return pos, fmt.Errorf("%w: %q has non-digit %q", ErrInvalidInput, s, ch)
		}
		pos[i] = int(ch - '0')
	}
	return pos, nil
}

func formatLetters(pos [rotor.Slots]int) string {
	out := make([]byte, rotor.Slots)
	for i, p := range pos {
		out[i] = byte('A' + p)
	}
	return string(out)
}
