package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/setanarut/assetforge"
	"github.com/setanarut/assetforge/utils"
)

// Suffixes of the files written for one collectible.
const (
	suffixAnimation       = ".gif"
	suffixSilhouetteMain  = "_ms.png"
	suffixSilhouetteBlack = "_bs.png"
	suffixSilhouetteWhite = "_ws.png"
)

func newDeriveCommand(ctx *commandContext) *cobra.Command {
	var (
		index  int
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "derive <gif>...",
		Short: "Build transparent animations and silhouettes from GIFs on black",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("index") {
				index = cfg.Collectible.SilhouetteIndex
			}

			sources, err := readInputs(args)
			if err != nil {
				return err
			}
			jobs := make([]assetforge.DeriveJob, len(sources))
			for i, src := range sources {
				jobs[i] = assetforge.DeriveJob{GIF: src, SilhouetteIndex: index}
			}

			deriver := cfg.Deriver()
			deriver.Logger = logger
			results, err := deriver.DeriveAll(cmd.Context(), jobs, cfg.Server.Workers)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(results))
			for i, assets := range results {
				files := []struct {
					suffix string
					data   []byte
				}{
					{suffixAnimation, assets.TransparentGIF},
					{suffixSilhouetteMain, assets.SilhouetteMain},
					{suffixSilhouetteBlack, assets.SilhouetteBlack},
					{suffixSilhouetteWhite, assets.SilhouetteWhite},
				}
				for _, f := range files {
					if err := utils.WriteFile(outputPath(outDir, args[i], f.suffix), f.data); err != nil {
						return err
					}
				}
				rows = append(rows, []string{
					outputPath(outDir, args[i], ""),
					strconv.Itoa(assets.FrameCount),
					paletteString(assets.Palette),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(
				[]column{pathColumn, countColumn, paletteColumn},
				rows,
				fmt.Sprintf("%d collectible(s), silhouettes from frame %d", len(rows), index),
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", assetforge.DefaultSilhouetteIndex, "Frame used for the silhouettes")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "Directory for the derived files")
	return cmd
}

func paletteString(palette []assetforge.RGBAColor) string {
	hexes := make([]string, len(palette))
	for i, c := range palette {
		hexes[i] = c.Hex()
	}
	return strings.Join(hexes, " ")
}
