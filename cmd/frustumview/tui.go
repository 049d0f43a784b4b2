package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Faultbox/frustumview/internal/config"
	"github.com/Faultbox/frustumview/internal/logger"
	"github.com/Faultbox/frustumview/internal/tui"
)

func newTUICmd(flags *config.Flags) *cobra.Command {
	var cols, rows int

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "show the views as braille panels in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to bubbletea; log to the file only.
			cfg, err := setup(flags, nil)
			if err != nil {
				return err
			}
			defer logger.Sync()

			v, err := tui.NewViewer(cfg, cols, rows)
			if err != nil {
				return fail("failed to create viewer", err)
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			p := tea.NewProgram(tui.New(v), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fail("terminal viewer error", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&cols, "cols", tui.DefaultCols, "panel width in terminal cells")
	cmd.Flags().IntVar(&rows, "rows", tui.DefaultRows, "panel height in terminal cells")
	return cmd
}
