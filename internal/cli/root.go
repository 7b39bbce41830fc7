package cli

import (
	"fmt"

	"github.com/ecm-dev/ecm/internal/keylist"
	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ecm",
		Short: "Electric Cipher Machine rotor emulator",
		Long: `ecm emulates the rotor cage of the Electric Cipher Machine: five cipher
rotors stepped through five control rotors and five index rotors.

Rotor orders and start positions come from a key list (keylist.yaml by
default) and can be overridden per run with flags.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("keylist", keylist.DefaultFile, "Key list file")
	flags.String("key", "", "Key list entry to use (default: the list's default key)")
	flags.String("machine", "", "Machine type: csp889|csp2900")
	flags.String("cipher-order", "", "Cipher rotor order, e.g. 0N1N2N3N4N")
	flags.String("control-order", "", "Control rotor order, e.g. 5N6N7N8N9N")
	flags.String("index-order", "", "Index rotor order, e.g. 0N1N2N3N4N")
	flags.String("cipher-pos", "", "Cipher rotor start positions, five letters")
	flags.String("control-pos", "", "Control rotor start positions, five letters")
	flags.String("index-pos", "", "Index rotor start positions, five digits")
	flags.BoolP("verbose", "v", false, "Log settings and final positions to stderr")

	// Cipher Commands
	encryptCmd := &cobra.Command{
		Use:   "encrypt [text...]",
		Short: "Encipher text from arguments, --in or stdin",
		RunE:  RunEncrypt,
	}
	encryptCmd.Flags().String("in", "", "Read plain text from file")
	encryptCmd.Flags().String("out", "", "Write the tape to file instead of stdout")
	encryptCmd.Flags().Bool("no-group", false, "Print cipher text without five-letter groups")
	encryptCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	decryptCmd := &cobra.Command{
		Use:   "decrypt [text...]",
		Short: "Decipher text from arguments, --in or stdin",
		RunE:  RunDecrypt,
	}
	decryptCmd.Flags().String("in", "", "Read cipher text from file")
	decryptCmd.Flags().String("out", "", "Write the tape to file instead of stdout")
	decryptCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	// Interactive Commands
	operateCmd := &cobra.Command{
		Use:   "operate",
		Short: "Open the operator console",
		RunE:  RunOperate,
	}

	// Key List Commands
	keylistCmd := &cobra.Command{
		Use:   "keylist",
		Short: "Manage key lists",
	}

	keylistInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default key list if none exists",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunKeylistInit,
	}

	keylistShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved rotor settings",
		RunE:  RunKeylistShow,
	}
	keylistShowCmd.Flags().Bool("json", false, "Print machine-readable settings")

	keylistCmd.AddCommand(keylistInitCmd, keylistShowCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ecm %s\n", version)
		},
	}

	rootCmd.AddCommand(
		encryptCmd,
		decryptCmd,
		operateCmd,
		keylistCmd,
		versionCmd,
	)

	return rootCmd
}
