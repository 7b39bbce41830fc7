// Package ecm is the machine as an operator sees it: a mode switch in front
// of a rotor cage, taking and returning letters.
package ecm

import (
	"fmt"

	"github.com/ecm-dev/ecm/internal/cage"
	"github.com/ecm-dev/ecm/internal/rotor"
)

var (
	ErrInvalidInput             = cage.ErrInvalidInput
	ErrUnsupportedConfiguration = cage.ErrUnsupportedConfiguration
)

type (
	Direction = cage.Direction
	Machine   = cage.Machine
	Positions = cage.Positions
)

// ParseMachine reads a machine name such as "csp889".
var ParseMachine = cage.ParseMachine

const (
	Encrypt = cage.Encrypt
	Decrypt = cage.Decrypt

	CSP889  = cage.CSP889
	CSP2900 = cage.CSP2900
)

// Mode is the position of the machine's mode switch. Any mode may be
// selected at any time.
type Mode int

const (
	ModeOff Mode = iota
	ModePlain
	ModeReset
	ModeEncrypt
	ModeDecrypt
)

var modeNames = [...]string{"off", "plain", "reset", "encrypt", "decrypt"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode reads a mode name as printed by String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, s)
}

// Direction reports the cipher direction of an encrypt or decrypt mode.
func (m Mode) Direction() (Direction, bool) {
	switch m {
	case ModeEncrypt:
		return Encrypt, true
	case ModeDecrypt:
		return Decrypt, true
	default:
		return 0, false
	}
}

// Config selects the rotors installed in each bank and the machine type.
type Config struct {
	CipherOrder  string
	ControlOrder string
	IndexOrder   string
	Machine      Machine
}

// DefaultConfig is the rotor arrangement used when no key list says
// otherwise.
func DefaultConfig() Config {
	return Config{
		CipherOrder:  "0N1N2N3N4N",
		ControlOrder: "5N6N7N8N9N",
		IndexOrder:   "0N1N2N3N4N",
		Machine:      CSP889,
	}
}

// Engine owns one cage for the life of a session. It is not safe for
// concurrent use.
type Engine struct {
	cage  *cage.Cage
	mode  Mode
	count int
}

// New builds an engine with its own cage. The engine starts switched off
// with every rotor zeroized and the index bank at 00000.
func New(cfg Config) (*Engine, error) {
	c, err := cage.New(cfg.CipherOrder, cfg.ControlOrder, cfg.IndexOrder, cfg.Machine)
	if err != nil {
		return nil, err
	}
	c.Zeroize()
	return &Engine{cage: c, mode: ModeOff}, nil
}

func (e *Engine) Mode() Mode {
	return e.mode
}

func (e *Engine) SetMode(m Mode) {
	e.mode = m
}

func (e *Engine) Machine() Machine {
	return e.cage.Machine()
}

// SetMachine is the machine-type switch. On error the engine keeps the
// machine it had.
func (e *Engine) SetMachine(m Machine) error {
	return e.cage.SetMachine(m)
}

// Count is the key counter: every key the machine acted on since the
// counter was last cleared. Setting rotors by hand does not count.
func (e *Engine) Count() int {
	return e.count
}

// ClearCount is the counter's clear button. It works in any mode.
func (e *Engine) ClearCount() {
	e.count = 0
}

func (e *Engine) Rollover() int {
	return e.cage.Rollover()
}

func (e *Engine) Positions() Positions {
	return e.cage.Positions()
}

// SetPositions sets all three banks at once, or none on error.
func (e *Engine) SetPositions(p Positions) error {
	return e.cage.SetPositions(p)
}

func (e *Engine) SetCipherPositions(s string) error {
	return e.cage.SetCipherPositions(s)
}

func (e *Engine) SetControlPositions(s string) error {
	return e.cage.SetControlPositions(s)
}

func (e *Engine) SetIndexPositions(s string) error {
	return e.cage.SetIndexPositions(s)
}

// Zeroize sets the cipher and control banks to the reference position.
// Index positions are kept.
func (e *Engine) Zeroize() {
	e.cage.Zeroize()
}

// ZeroizeStep moves each cipher and control rotor that is off the
// reference position one step, and reports whether the cage is zeroized.
func (e *Engine) ZeroizeStep() bool {
	return e.cage.ZeroizeStep()
}

// ZeroizeKey is the blank key pressed with the zeroize switch thrown. Off
// ignores it. Plain mode counts the key without moving rotors; reset,
// encrypt and decrypt count it and take one zeroize step.
func (e *Engine) ZeroizeKey() {
	switch e.mode {
	case ModeOff:
		return
	case ModePlain:
	default:
		e.cage.ZeroizeStep()
	}
	e.count++
}

// Cycle enciphers or deciphers a single letter and steps the cage. The
// letter is normalized first; a rune that is not a letter A-Z afterwards
// fails with ErrInvalidInput and leaves every rotor where it was.
func (e *Engine) Cycle(r rune, dir Direction) (rune, error) {
	letter, err := NormalizeLetter(r)
	if err != nil {
		return 0, err
	}
	out, err := e.cage.Cycle(int(letter-'A'), dir)
	if err != nil {
		return 0, err
	}
	e.count++
	return rune('A' + out), nil
}

// Key presses a letter key in the current mode. ok is false when the mode
// prints nothing (off and reset). Plain mode echoes the key.
func (e *Engine) Key(r rune) (out rune, ok bool, err error) {
	switch e.mode {
	case ModePlain:
		e.count++
		return r, true, nil
	case ModeEncrypt, ModeDecrypt:
		dir, _ := e.mode.Direction()
		out, err = e.Cycle(r, dir)
		if err != nil {
			return 0, false, err
		}
		return out, true, nil
	default:
		return 0, false, nil
	}
}

// AdvanceControl is a numbered key in reset mode: the cipher bank steps
// once from the coupling and then the control rotor in slot moves one step.
func (e *Engine) AdvanceControl(slot int) error {
	if slot < 0 || slot >= rotor.Slots {
		return fmt.Errorf("%w: control slot %d", ErrInvalidInput, slot)
	}
	e.cage.StepCipherBank()
	if err := e.cage.AdvanceControlRotor(slot); err != nil {
		return err
	}
	e.count++
	return nil
}
