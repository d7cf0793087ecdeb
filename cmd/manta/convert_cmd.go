// convert_cmd.go - `manta convert fpm`: re-encode a .fpm accumulator
// dump into a gamma-corrected JPEG, so a partial raw dump stays
// recoverable after an interrupted render.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mantaray/manta/internal/envconfig"
	"github.com/mantaray/manta/internal/output"
	"github.com/mantaray/manta/internal/vecmath"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between manta's output formats",
	}
	cmd.AddCommand(newConvertFPMCmd())
	return cmd
}

func newConvertFPMCmd() *cobra.Command {
	var quality int
	var out string

	cmd := &cobra.Command{
		Use:   "fpm <input.fpm>",
		Short: "Re-encode a raw .fpm accumulator dump into a JPEG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("convert fpm: opening %s: %w", args[0], err)
			}
			defer f.Close()

			width, height, records, err := output.ReadFPM(f)
			if err != nil {
				return fmt.Errorf("convert fpm: decoding %s: %w", args[0], err)
			}

			pixels := make([]vecmath.RGB, len(records))
			for i, r := range records {
				if r.Weight == 0 {
					continue
				}
				pixels[i] = vecmath.RGB{R: r.R / r.Weight, G: r.G / r.Weight, B: r.B / r.Weight}
			}

			if out == "" {
				out = trimExt(args[0]) + ".jpg"
			}
			if err := output.WriteJPEGFile(out, pixels, width, height, quality); err != nil {
				return fmt.Errorf("convert fpm: writing %s: %w", out, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&quality, "quality", envconfig.JPEGQuality(), "JPEG quality 1..100")
	cmd.Flags().StringVar(&out, "out", "", "output JPEG path (default: input path with .jpg extension)")
	return cmd
}

func trimExt(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
