package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/frustumview/internal/config"
	"github.com/Faultbox/frustumview/internal/engine/camera"
	"github.com/Faultbox/frustumview/internal/logger"
	"github.com/Faultbox/frustumview/internal/viewer"
	"github.com/Faultbox/frustumview/pkg/math"
)

func newCornersCmd(flags *config.Flags) *cobra.Command {
	var matrices bool

	cmd := &cobra.Command{
		Use:   "corners",
		Short: "print each camera's basis and frustum corners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Sync()

			out := cmd.OutOrStdout()
			for i, vc := range cfg.Viewports {
				cam, err := viewer.BuildCamera(vc.Camera)
				if err != nil {
					return fail("invalid camera", err)
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				printCamera(out, vc.Title, cam, matrices)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&matrices, "matrices", "m", false, "also print look-at and projection matrices")
	return cmd
}

func printCamera(out io.Writer, title string, cam *camera.Camera, matrices bool) {
	f := cam.Frustum()
	fmt.Fprintf(out, "%s (%s)\n", title, cam.Mode())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "eye\t%s\n", vec(cam.Eye().X, cam.Eye().Y, cam.Eye().Z))
	fmt.Fprintf(w, "dir\t%s\n", vec(cam.Dir().X, cam.Dir().Y, cam.Dir().Z))
	fmt.Fprintf(w, "up\t%s\n", vec(cam.Up().X, cam.Up().Y, cam.Up().Z))
	fmt.Fprintf(w, "right\t%s\n", vec(cam.Right().X, cam.Right().Y, cam.Right().Z))
	fmt.Fprintf(w, "near/far\t%g / %g\n", f.Near, f.Far)
	fmt.Fprintf(w, "fov\t%g x %g\n", f.FovX, f.FovY)
	w.Flush()

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "corner\tcamera x\ty\tz\tworld x\ty\tz\t")
	local := f.Corners()
	world := cam.FrustumWorldCorners()
	for i := range local {
		l, p := local[i], world[i]
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n", i, l.X, l.Y, l.Z, p.X, p.Y, p.Z)
	}
	w.Flush()

	if matrices {
		printMatrix(out, "look-at", cam.LookAt())
		printMatrix(out, "projection", cam.Projection())
	}
}

func printMatrix(out io.Writer, name string, m math.Mat4) {
	fmt.Fprintln(out, name)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			fmt.Fprintf(w, "%.4f\t", m.At(r, c))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func vec(x, y, z float64) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", x, y, z)
}
