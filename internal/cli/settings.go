package cli

import (
	"fmt"
	"os"

	"github.com/ecm-dev/ecm/internal/ecm"
	"github.com/ecm-dev/ecm/internal/keylist"
	"github.com/spf13/cobra"
)

// Settings is the machine configuration of one run after flags, the key
// list and built-in defaults have been merged, in that order of priority.
type Settings struct {
	KeyListPath string         `json:"keylist"`
	KeyName     string         `json:"key"`
	Keys        []string       `json:"keys,omitempty"`
	Machine     string         `json:"machine"`
	Rotors      keylist.Rotors `json:"rotors"`
	Start       ecm.Positions  `json:"start"`

	config ecm.Config
}

func resolveSettings(cmd *cobra.Command) (Settings, error) {
	path, err := OptionalStringFlag(cmd, "keylist")
	if err != nil {
		return Settings{}, err
	}
	if path == "" {
		path = keylist.DefaultFile
	}
	if flagChanged(cmd, "keylist") {
		if _, err := os.Stat(path); err != nil {
			return Settings{}, fmt.Errorf("failed to read key list: %w", err)
		}
	}

	list, err := keylist.Load(path)
	if err != nil {
		return Settings{}, err
	}
	if err := list.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid key list %s: %w", path, err)
	}

	keyName, err := OptionalStringFlag(cmd, "key")
	if err != nil {
		return Settings{}, err
	}
	key, err := list.Lookup(keyName)
	if err != nil {
		return Settings{}, err
	}

	machine, err := list.MachineType()
	if value, flagErr := OptionalStringFlag(cmd, "machine"); flagErr != nil {
		return Settings{}, flagErr
	} else if value != "" {
		machine, err = ecm.ParseMachine(value)
	}
	if err != nil {
		return Settings{}, err
	}

	overrides := []struct {
		flag   string
		target *string
	}{
		{"cipher-order", &key.Rotors.Cipher},
		{"control-order", &key.Rotors.Control},
		{"index-order", &key.Rotors.Index},
		{"cipher-pos", &key.Positions.Cipher},
		{"control-pos", &key.Positions.Control},
		{"index-pos", &key.Positions.Index},
	}
	for _, o := range overrides {
		value, err := OptionalStringFlag(cmd, o.flag)
		if err != nil {
			return Settings{}, err
		}
		if value != "" {
			*o.target = value
		}
	}

	if err := key.Check(machine); err != nil {
		return Settings{}, fmt.Errorf("key %q: %w", key.Name, err)
	}

	names := make([]string, 0, len(list.Keys))
	for _, k := range list.Keys {
		names = append(names, k.Name)
	}

	config := key.Config(machine)
	return Settings{
		KeyListPath: path,
		KeyName:     key.Name,
		Keys:        names,
		Machine:     machine.String(),
		Rotors: keylist.Rotors{
			Cipher:  config.CipherOrder,
			Control: config.ControlOrder,
			Index:   config.IndexOrder,
		},
		Start:  key.StartPositions(),
		config: config,
	}, nil
}

// newEngine builds an engine set to the start positions.
func (s Settings) newEngine() (*ecm.Engine, error) {
	engine, err := ecm.New(s.config)
	if err != nil {
		return nil, err
	}
	if err := engine.SetPositions(s.Start); err != nil {
		return nil, err
	}
	return engine, nil
}
