package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/setanarut/assetforge"
	"github.com/setanarut/assetforge/utils"
)

func newRecolorCommand(ctx *commandContext) *cobra.Command {
	var (
		hex              string
		outDir           string
		tolerance        int
		contrast         float64
		reducePixelation bool
		uniform          bool
	)

	cmd := &cobra.Command{
		Use:   "recolor <image>...",
		Short: "Recolor line art while keeping its background and shading",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target, err := assetforge.ParseHex(hex)
			if err != nil {
				return err
			}
			opts := cfg.RecolorOptions()
			flags := cmd.Flags()
			if flags.Changed("tolerance") {
				if tolerance < 0 || tolerance > 255 {
					return fmt.Errorf("--tolerance must be between 0 and 255")
				}
				opts.Tolerance = uint8(tolerance)
			}
			if flags.Changed("contrast") {
				opts.Contrast = contrast
			}
			if flags.Changed("reduce-pixelation") {
				opts.ReducePixelation = reducePixelation
			}

			sources, err := readInputs(args)
			if err != nil {
				return err
			}
			var outputs [][]byte
			if uniform {
				outputs = make([][]byte, len(sources))
				for i, src := range sources {
					if outputs[i], err = assetforge.UniformRecolor(src, assetforge.ColorOf(target), opts.ReducePixelation); err != nil {
						return fmt.Errorf("%s: %w", args[i], err)
					}
				}
			} else {
				jobs := make([]assetforge.RecolorJob, len(sources))
				for i, src := range sources {
					jobs[i] = assetforge.RecolorJob{Source: src, Color: assetforge.ColorOf(target), Options: opts}
				}
				outputs, err = assetforge.RecolorAll(cmd.Context(), jobs, cfg.Server.Workers)
				if err != nil {
					return err
				}
			}

			suffix := "_" + strings.TrimPrefix(target.Hex(), "#") + ".png"
			out := cmd.OutOrStdout()
			for i, data := range outputs {
				path := outputPath(outDir, args[i], suffix)
				if err := utils.WriteFile(path, data); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&hex, "color", "", "Target color as #rrggbb or #rrggbbaa")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "Directory for the recolored images")
	cmd.Flags().IntVar(&tolerance, "tolerance", 0, "Override recolor.tolerance")
	cmd.Flags().Float64Var(&contrast, "contrast", 0, "Override recolor.contrast")
	cmd.Flags().BoolVar(&reducePixelation, "reduce-pixelation", false, "Override recolor.reduce_pixelation")
	cmd.Flags().BoolVar(&uniform, "uniform", false, "Paint every pixel, background included")
	_ = cmd.MarkFlagRequired("color")
	return cmd
}
