package main

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/setanarut/assetforge"
	"github.com/setanarut/assetforge/utils"
)

func newPaletteCommand(ctx *commandContext) *cobra.Command {
	var (
		k          int
		method     string
		swatchPath string
	)

	cmd := &cobra.Command{
		Use:   "palette <image>",
		Short: "Print the dominant colors of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("colors") {
				k = cfg.Collectible.PaletteSize
			}
			if !cmd.Flags().Changed("method") {
				method = cfg.Collectible.PaletteMethod
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			img, err := assetforge.DecodeRaster(data)
			if err != nil {
				return err
			}
			palette := assetforge.DominantPalette(img, k, utils.ParsePaletteMethod(method))
			if len(palette) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No opaque pixels found")
				return nil
			}

			rows := make([][]string, len(palette))
			swatch := make([]color.Color, len(palette))
			for i, c := range palette {
				rows[i] = []string{
					strconv.Itoa(i + 1),
					c.Hex(),
					strconv.Itoa(int(c.R)),
					strconv.Itoa(int(c.G)),
					strconv.Itoa(int(c.B)),
				}
				swatch[i] = c
			}
			channel := func(name string) column { return column{Title: name, Align: text.AlignRight} }
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(
				[]column{
					{Title: "#", Align: text.AlignRight},
					{Title: "Hex", Align: text.AlignLeft},
					channel("R"), channel("G"), channel("B"),
				},
				rows,
				fmt.Sprintf("%s, %d color(s)", method, len(rows)),
			))

			if swatchPath != "" {
				img, err := utils.PaletteSwatch(swatch, 48)
				if err != nil {
					return err
				}
				if err := utils.SaveImage(img, swatchPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", swatchPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "colors", "k", 5, "Number of colors")
	cmd.Flags().StringVar(&method, "method", "dominantcolor", "Extraction method: dominantcolor or kmeans")
	cmd.Flags().StringVar(&swatchPath, "swatch", "", "Also write a PNG swatch to this path")
	return cmd
}
