package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/tv-instance-generator/internal/service"
)

func newPresetsCmd(app *cli) *cobra.Command {
	var presetsFile string
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets, err := service.NewPresetService(presetsFile, app.logger)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCHANNELS\tWINDOW\tDESCRIPTION")
			for _, p := range presets.List() {
				fmt.Fprintf(w, "%s\t%d\t%d-%d\t%s\n", p.Name, p.Config.ChannelsCount, p.Config.OpeningTime, p.Config.ClosingTime, p.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&presetsFile, "presets-file", "./configs/presets.yaml", "presets file")
	return cmd
}
