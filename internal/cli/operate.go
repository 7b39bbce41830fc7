package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecm-dev/ecm/internal/console"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

func RunOperate(cmd *cobra.Command, args []string) error {
	logger, _, err := newSessionLogger(cmd)
	if err != nil {
		return err
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	engine, err := settings.newEngine()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	err = console.New(screen, engine).Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	logger.Debug("console closed", "final", engine.Positions().String(), "count", engine.Count())
	return err
}
