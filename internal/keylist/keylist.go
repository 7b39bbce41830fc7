// Package keylist reads and writes key lists: named rotor arrangements and
// start positions, kept as YAML so they can be handed out on paper.
package keylist

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ecm-dev/ecm/internal/ecm"
	"github.com/ecm-dev/ecm/internal/fileutil"
	"github.com/ecm-dev/ecm/internal/rotor"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile    = "keylist.yaml"
	CurrentVersion = "2"
	DefaultKeyName = "default"
)

var ErrUnknownKey = errors.New("unknown key")

// Rotors names the rotor order of each bank, e.g. "0N1N2N3N4N".
type Rotors struct {
	Cipher  string `yaml:"cipher" json:"cipher"`
	Control string `yaml:"control" json:"control"`
	Index   string `yaml:"index" json:"index"`
}

// Key is one entry of a key list.
type Key struct {
	Name      string        `yaml:"name" json:"name"`
	Rotors    Rotors        `yaml:"rotors" json:"rotors"`
	Positions ecm.Positions `yaml:"positions" json:"positions"`
}

// KeyList is the file format.
type KeyList struct {
	Version string `yaml:"version"`
	Machine string `yaml:"machine"`
	Default string `yaml:"default,omitempty"`
	Keys    []Key  `yaml:"keys"`

	// Version 1 lists carried a single key at the top level.
	LegacyCipherOrder  string `yaml:"cipher_order,omitempty"`
	LegacyControlOrder string `yaml:"control_order,omitempty"`
	LegacyIndexOrder   string `yaml:"index_order,omitempty"`
}

// DefaultKey is the zeroized default arrangement.
func DefaultKey() Key {
	cfg := ecm.DefaultConfig()
	return Key{
		Name: DefaultKeyName,
		Rotors: Rotors{
			Cipher:  cfg.CipherOrder,
			Control: cfg.ControlOrder,
			Index:   cfg.IndexOrder,
		},
		Positions: ecm.Positions{
			Cipher:  zeroLetters,
			Control: zeroLetters,
			Index:   zeroDigits,
		},
	}
}

// New returns a list holding only the default key.
func New() *KeyList {
	return &KeyList{
		Version: CurrentVersion,
		Machine: ecm.CSP889.String(),
		Default: DefaultKeyName,
		Keys:    []Key{DefaultKey()},
	}
}

// Load reads a key list. A missing file yields the default list.
func Load(path string) (*KeyList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, err
	}

	var k KeyList
	if err := yaml.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("parse key list %s: %w", path, err)
	}

	migrateKeyList(&k)

	return &k, nil
}

// Encode renders the list as YAML.
func (k *KeyList) Encode() ([]byte, error) {
	if k.Version == "" {
		k.Version = CurrentVersion
	}
	if k.Machine == "" {
		k.Machine = ecm.CSP889.String()
	}
	return yaml.Marshal(k)
}

// Save writes the list to path, leaving an identical file untouched.
func (k *KeyList) Save(path string) error {
	data, err := k.Encode()
	if err != nil {
		return err
	}
	_, err = fileutil.WriteIfChanged(path, data)
	return err
}

// MachineType parses the list's machine field.
func (k *KeyList) MachineType() (ecm.Machine, error) {
	if k.Machine == "" {
		return ecm.CSP889, nil
	}
	return ecm.ParseMachine(k.Machine)
}

// Lookup finds a key by name. An empty name selects the list's default.
func (k *KeyList) Lookup(name string) (Key, error) {
	if name == "" {
		name = k.Default
	}
	if name == "" && len(k.Keys) > 0 {
		return k.Keys[0], nil
	}
	for _, key := range k.Keys {
		if key.Name == name {
			return key, nil
		}
	}
	return Key{}, fmt.Errorf("%w %q", ErrUnknownKey, name)
}

// Validate checks the shape of the list: at least one key, unique names
// and a default that exists. Machine types and rotor orders can still be
// overridden per run, so they are checked by Key.Check once the run's
// settings are merged.
func (k *KeyList) Validate() error {
	if len(k.Keys) == 0 {
		return fmt.Errorf("%w: key list has no keys", ecm.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(k.Keys))
	for _, key := range k.Keys {
		if seen[key.Name] {
			return fmt.Errorf("%w: duplicate key %q", ecm.ErrInvalidInput, key.Name)
		}
		seen[key.Name] = true
	}
	if k.Default != "" && !seen[k.Default] {
		return fmt.Errorf("%w %q", ErrUnknownKey, k.Default)
	}
	return nil
}

// Check reports whether the key can run on machine m: the machine must be
// supported and every order string well formed.
func (key Key) Check(m ecm.Machine) error {
	if err := m.Check(); err != nil {
		return err
	}
	for _, o := range []struct{ name, value string }{
		{"cipher", key.Rotors.Cipher},
		{"control", key.Rotors.Control},
		{"index", key.Rotors.Index},
	} {
		if _, err := rotor.ParseOrder(o.value); err != nil {
			return fmt.Errorf("%w: %s order: %w", ecm.ErrInvalidInput, o.name, err)
		}
	}
	return nil
}

// Config returns the engine configuration of the key.
func (key Key) Config(m ecm.Machine) ecm.Config {
	return ecm.Config{
		CipherOrder:  strings.ToUpper(key.Rotors.Cipher),
		ControlOrder: strings.ToUpper(key.Rotors.Control),
		IndexOrder:   strings.ToUpper(key.Rotors.Index),
		Machine:      m,
	}
}

// StartPositions returns the key's positions after front-panel
// normalization.
func (key Key) StartPositions() ecm.Positions {
	return ecm.Positions{
		Cipher:  NormalizeLetters(key.Positions.Cipher),
		Control: NormalizeLetters(key.Positions.Control),
		Index:   NormalizeDigits(key.Positions.Index),
	}
}

func migrateKeyList(k *KeyList) {
	if k.Machine == "" {
		k.Machine = ecm.CSP889.String()
	}

	switch k.Version {
	case "", "1":
		if k.LegacyCipherOrder != "" || k.LegacyControlOrder != "" || k.LegacyIndexOrder != "" {
			key := DefaultKey()
			if k.LegacyCipherOrder != "" {
				key.Rotors.Cipher = k.LegacyCipherOrder
			}
			if k.LegacyControlOrder != "" {
				key.Rotors.Control = k.LegacyControlOrder
			}
			if k.LegacyIndexOrder != "" {
				key.Rotors.Index = k.LegacyIndexOrder
			}
			k.Keys = append([]Key{key}, k.Keys...)
			if k.Default == "" {
				k.Default = key.Name
			}
		}
		k.LegacyCipherOrder = ""
		k.LegacyControlOrder = ""
		k.LegacyIndexOrder = ""
		k.Version = CurrentVersion
	case CurrentVersion:
		// no-op
	default:
		// Newer lists are read as-is.
	}

	if len(k.Keys) == 0 {
		k.Keys = []Key{DefaultKey()}
		if k.Default == "" {
			k.Default = DefaultKeyName
		}
	}
}
