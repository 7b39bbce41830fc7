package cage

import (
	"fmt"
	"strings"

	"github.com/ecm-dev/ecm/internal/wiring"
)

// Machine selects the control-to-index coupling of a machine type.
type Machine int

const (
	CSP889 Machine = iota
	// CSP2900 carries its coupling tables but its stepping behavior is not
	// implemented; selecting it fails with ErrUnsupportedConfiguration.
	CSP2900
)

func (m Machine) String() string {
	switch m {
	case CSP889:
		return "csp889"
	case CSP2900:
		return "csp2900"
	default:
		return fmt.Sprintf("machine(%d)", int(m))
	}
}

// ParseMachine accepts "csp889" or "csp2900", case-insensitively, with or
// without the dash used on the machine plates.
func ParseMachine(s string) (Machine, error) {
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	switch name {
	case "csp889", "889":
		return CSP889, nil
	case "csp2900", "2900":
		return CSP2900, nil
	default:
		return 0, fmt.Errorf("%w: unknown machine %q", ErrUnsupportedConfiguration, s)
	}
}

// Check reports ErrUnsupportedConfiguration for a machine the cage cannot
// run.
func (m Machine) Check() error {
	_, err := m.coupling()
	return err
}

func (m Machine) coupling() (wiring.Coupling, error) {
	switch m {
	case CSP889:
		return wiring.CSP889(), nil
	case CSP2900:
		return wiring.Coupling{}, fmt.Errorf("%w: %s stepping is not implemented", ErrUnsupportedConfiguration, m)
	default:
		return wiring.Coupling{}, fmt.Errorf("%w: unknown machine %s", ErrUnsupportedConfiguration, m)
	}
}

// Direction selects which cipher-bank path a cycle runs.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}
