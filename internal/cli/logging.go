package cli

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// newSessionLogger returns a stderr logger tagged with a fresh session id.
// Each invocation is one machine session.
func newSessionLogger(cmd *cobra.Command) (*slog.Logger, string, error) {
	verbose, err := OptionalBoolFlag(cmd, "verbose", false)
	if err != nil {
		return nil, "", err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	session := uuid.NewString()
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("session", session), session, nil
}
