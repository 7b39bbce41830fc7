package cli

import (
	"fmt"

	"github.com/ecm-dev/ecm/internal/fileutil"
	"github.com/ecm-dev/ecm/internal/keylist"
	"github.com/spf13/cobra"
)

func RunKeylistInit(cmd *cobra.Command, args []string) error {
	path := keylist.DefaultFile
	if len(args) > 0 {
		path = args[0]
	} else if value, err := OptionalStringFlag(cmd, "keylist"); err != nil {
		return err
	} else if value != "" {
		path = value
	}

	data, err := keylist.New().Encode()
	if err != nil {
		return fmt.Errorf("failed to encode key list: %w", err)
	}
	created, err := fileutil.WriteIfMissing(path, data, 0600)
	if err != nil {
		return fmt.Errorf("failed to write key list: %w", err)
	}

	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default key list to %s\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Key list already exists at %s\n", path)
	}
	return nil
}

func RunKeylistShow(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	return PrintSettings(cmd.OutOrStdout(), settings, asJSON)
}
