package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/setanarut/assetforge"
	"github.com/setanarut/assetforge/utils"
)

func newWatermarkCommand(ctx *commandContext) *cobra.Command {
	var (
		markPath   string
		outPath    string
		anchorName string
	)

	cmd := &cobra.Command{
		Use:   "watermark <gif>",
		Short: "Stamp the watermark on every frame of a GIF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			local := *cfg
			if strings.TrimSpace(markPath) != "" {
				local.Watermark.Path = markPath
			}
			wm, err := local.Watermarker()
			if err != nil {
				return err
			}
			wm.Logger = logger

			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var out []byte
			if anchorName == "" {
				out, err = wm.Watermark(src)
			} else {
				anchor, ok := findAnchor(anchorName)
				if !ok {
					return fmt.Errorf("unknown anchor %q (want one of %s)", anchorName, anchorNames())
				}
				out, err = wm.WatermarkWithAnchor(src, anchor)
			}
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = outputPath(".", args[0], "_wm.gif")
			}
			if err := utils.WriteFile(outPath, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&markPath, "mark", "", "Watermark image (defaults to watermark.path)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output GIF path")
	cmd.Flags().StringVar(&anchorName, "anchor", "", "Fixed anchor instead of a random one")
	return cmd
}

func findAnchor(name string) (assetforge.Anchor, bool) {
	for _, a := range assetforge.DefaultAnchors {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return assetforge.Anchor{}, false
}

func anchorNames() string {
	names := make([]string, len(assetforge.DefaultAnchors))
	for i, a := range assetforge.DefaultAnchors {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}
