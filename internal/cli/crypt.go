package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ecm-dev/ecm/internal/ecm"
	"github.com/ecm-dev/ecm/internal/fileutil"
	"github.com/ecm-dev/ecm/internal/tape"
	"github.com/spf13/cobra"
)

func RunEncrypt(cmd *cobra.Command, args []string) error {
	return runCipher(cmd, args, ecm.Encrypt)
}

func RunDecrypt(cmd *cobra.Command, args []string) error {
	return runCipher(cmd, args, ecm.Decrypt)
}

func runCipher(cmd *cobra.Command, args []string, dir ecm.Direction) error {
	start := time.Now()

	logger, session, err := newSessionLogger(cmd)
	if err != nil {
		return err
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	logger.Debug("settings resolved",
		"direction", dir.String(),
		"keylist", settings.KeyListPath,
		"key", settings.KeyName,
		"machine", settings.Machine,
		"cipher_order", settings.Rotors.Cipher,
		"control_order", settings.Rotors.Control,
		"index_order", settings.Rotors.Index,
		"start", settings.Start.String(),
	)

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	noGroup, err := OptionalBoolFlag(cmd, "no-group", false)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	outPath, err := OptionalStringFlag(cmd, "out")
	if err != nil {
		return err
	}

	engine, err := settings.newEngine()
	if err != nil {
		return err
	}

	var result tape.Result
	if dir == ecm.Encrypt {
		result, err = tape.Encipher(engine, text, !noGroup)
	} else {
		result, err = tape.Decipher(engine, text)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", dir, err)
	}
	if result.Ignored > 0 {
		logger.Warn("ignored characters", "count", result.Ignored)
	}

	final := engine.Positions()
	logger.Debug("run complete", "final", final.String(), "cycled", result.Cycled, "rollover", engine.Rollover())

	if outPath != "" {
		if _, err := fileutil.WriteIfChanged(outPath, []byte(fileutil.EnsureTrailingNewline(result.Text))); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
	}

	summary := CipherSummary{
		Mode:       dir.String(),
		Session:    session,
		Settings:   settings,
		Final:      final,
		Text:       result.Text,
		Output:     outPath,
		Cycled:     result.Cycled,
		Ignored:    result.Ignored,
		Rollover:   engine.Rollover(),
		DurationMS: time.Since(start).Milliseconds(),
	}
	return PrintCipherSummary(cmd.OutOrStdout(), summary, asJSON)
}

// readInput takes text from --in, then from arguments, then from stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	inPath, err := OptionalStringFlag(cmd, "in")
	if err != nil {
		return "", err
	}
	if inPath != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("--in cannot be combined with text arguments")
		}
		data, err := os.ReadFile(inPath)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", inPath, err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
