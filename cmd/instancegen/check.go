package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/tv-instance-generator/internal/generator"
)

func newCheckCmd(app *cli) *cobra.Command {
	var timeline bool
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Verify the structural invariants of an instance file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var inst generator.Instance
			if err := decodeFile(cmd, args[0], &inst); err != nil {
				return err
			}
			violations := generator.Check(inst, generator.CheckOptions{Timeline: timeline})
			for _, v := range violations {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			app.logger.Sugar().Debugw("instance checked", "file", args[0], "channels", len(inst.Channels), "violations", len(violations))
			if len(violations) > 0 {
				return fmt.Errorf("%d violation(s) in %s", len(violations), args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&timeline, "timeline", true, "also check bounds, contiguity and genre runs (generated channels only)")
	return cmd
}
