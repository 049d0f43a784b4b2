package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/frustumview/internal/config"
	"github.com/Faultbox/frustumview/internal/logger"
	"github.com/Faultbox/frustumview/internal/viewer"
)

func newRenderCmd(flags *config.Flags) *cobra.Command {
	var (
		outDir  string
		format  string
		montage string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "draw one frame of every view to image files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Sync()

			if outDir != "" {
				cfg.Output.Dir = outDir
			}
			if format != "" {
				cfg.Output.Format = format
			}

			v, err := viewer.New(cfg, nil)
			if err != nil {
				return fail("failed to create viewer", err)
			}
			v.RenderFrame()

			if montage != "" {
				if err := v.SaveMontage(montage); err != nil {
					return fail("render failed", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), montage)
				return nil
			}

			paths, err := v.Snapshot()
			if err != nil {
				return fail("render failed", err)
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			logger.Info("rendered", zap.Int("files", len(paths)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "image format: png or bmp")
	cmd.Flags().StringVar(&montage, "montage", "", "write only a side-by-side image to this path")
	return cmd
}
