package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/tv-instance-generator/pkg/logger"
)

// cli carries state shared by subcommands.
type cli struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	app := &cli{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:           "instancegen",
		Short:         "Generate and check TV-channel scheduling instances",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := logger.NewCLI(app.verbose)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			app.logger = l
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = app.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(newGenerateCmd(app), newCheckCmd(app), newPresetsCmd(app))
	return root
}

// decodeFile reads a YAML or JSON document into out. "-" reads stdin.
// Keys missing from the document leave out's current values alone.
func decodeFile(cmd *cobra.Command, path string, out interface{}) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := yaml.NewDecoder(r).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s is empty", path)
		}
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
