package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setanarut/assetforge"
	"github.com/setanarut/assetforge/utils"
)

func newConcatAudioCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "concat-audio <output> <part>...",
		Short:       "Join encoded audio files byte by byte",
		Args:        cobra.MinimumNArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := readInputs(args[1:])
			if err != nil {
				return err
			}
			joined := assetforge.ConcatAudio(parts)
			if err := utils.WriteFile(args[0], joined); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes from %d parts)\n", args[0], len(joined), len(parts))
			return nil
		},
	}
}
