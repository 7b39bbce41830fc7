package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ecm-dev/ecm/internal/ecm"
	"github.com/ecm-dev/ecm/internal/fileutil"
)

type CipherSummary struct {
	Mode       string        `json:"mode"`
	Session    string        `json:"session"`
	Settings   Settings      `json:"settings"`
	Final      ecm.Positions `json:"final"`
	Text       string        `json:"text"`
	Output     string        `json:"output,omitempty"`
	Cycled     int           `json:"cycled"`
	Ignored    int           `json:"ignored"`
	Rollover   int           `json:"rollover"`
	DurationMS int64         `json:"duration_ms"`
}

// PrintCipherSummary prints the tape, or a note where it went, or the whole
// summary as JSON.
func PrintCipherSummary(w io.Writer, summary CipherSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(w, summary)
	}
	if summary.Output != "" {
		_, err := fmt.Fprintf(w, "%s complete: %d characters written to %s\n", summary.Mode, summary.Cycled, summary.Output)
		return err
	}
	_, err := fmt.Fprintln(w, summary.Text)
	return err
}

func PrintSettings(w io.Writer, settings Settings, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(w, settings)
	}
	fmt.Fprintf(w, "key list: %s\n", settings.KeyListPath)
	fmt.Fprintf(w, "key: %s\n", settings.KeyName)
	if len(settings.Keys) > 1 {
		fmt.Fprintf(w, "keys (%d): %s\n", len(settings.Keys), strings.Join(settings.Keys, ", "))
	}
	fmt.Fprintf(w, "machine: %s\n", settings.Machine)
	fmt.Fprintf(w, "rotors: cipher %s control %s index %s\n", settings.Rotors.Cipher, settings.Rotors.Control, settings.Rotors.Index)
	_, err := fmt.Fprintf(w, "start: %s\n", settings.Start)
	return err
}
