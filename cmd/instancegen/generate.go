package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/tv-instance-generator/internal/dto"
	"github.com/noah-isme/tv-instance-generator/internal/repository"
	"github.com/noah-isme/tv-instance-generator/internal/service"
	"github.com/noah-isme/tv-instance-generator/pkg/export"
)

// Upper bound for channels_count on the command line.
const cliMaxChannels = 10000

type generateOptions struct {
	scalars     dto.GenerateInstanceRequest
	configFile  string
	preset      string
	presetsFile string
	seed        int64
	format      string
	out         string
	strict      bool
}

func newGenerateCmd(app *cli) *cobra.Command {
	opts := &generateOptions{scalars: dto.DefaultGenerateInstanceRequest()}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one instance and write it to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, app, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.scalars.OpeningTime, "opening-time", opts.scalars.OpeningTime, "opening time in minutes")
	f.IntVar(&opts.scalars.ClosingTime, "closing-time", opts.scalars.ClosingTime, "closing time in minutes")
	f.IntVar(&opts.scalars.MinDuration, "min-duration", opts.scalars.MinDuration, "minimum program duration")
	f.IntVar(&opts.scalars.MaxDuration, "max-duration", opts.scalars.MaxDuration, "maximum program duration")
	f.IntVar(&opts.scalars.MinScore, "min-score", opts.scalars.MinScore, "minimum program score")
	f.IntVar(&opts.scalars.MaxScore, "max-score", opts.scalars.MaxScore, "maximum program score")
	f.IntVar(&opts.scalars.MaxConsecutiveGenre, "max-consecutive-genre", opts.scalars.MaxConsecutiveGenre, "longest allowed run of one genre")
	f.IntVar(&opts.scalars.ChannelsCount, "channels", opts.scalars.ChannelsCount, "number of channels to synthesize")
	f.IntVar(&opts.scalars.SwitchPenalty, "switch-penalty", opts.scalars.SwitchPenalty, "channel switch penalty")
	f.IntVar(&opts.scalars.TerminationPenalty, "termination-penalty", opts.scalars.TerminationPenalty, "early termination penalty")
	f.StringVarP(&opts.configFile, "config", "c", "", "YAML or JSON file with configuration overrides")
	f.StringVarP(&opts.preset, "preset", "p", "", "start from a named preset")
	f.StringVar(&opts.presetsFile, "presets-file", "./configs/presets.yaml", "presets file used by --preset")
	f.Int64Var(&opts.seed, "seed", 0, "random seed (random when unset)")
	f.StringVarP(&opts.format, "format", "f", string(export.FormatJSON), "output format: json, csv or pdf")
	f.StringVarP(&opts.out, "out", "o", "", "output file, - for stdout (default kosovo_tv_input_generated.<format>)")
	f.BoolVar(&opts.strict, "strict", true, "reject configurations that cannot produce a well-formed instance")
	return cmd
}

// scalarFlags maps flag names onto the request fields they override.
func scalarFlags(dst *dto.GenerateInstanceRequest, src dto.GenerateInstanceRequest) map[string]func() {
	return map[string]func(){
		"opening-time":          func() { dst.OpeningTime = src.OpeningTime },
		"closing-time":          func() { dst.ClosingTime = src.ClosingTime },
		"min-duration":          func() { dst.MinDuration = src.MinDuration },
		"max-duration":          func() { dst.MaxDuration = src.MaxDuration },
		"min-score":             func() { dst.MinScore = src.MinScore },
		"max-score":             func() { dst.MaxScore = src.MaxScore },
		"max-consecutive-genre": func() { dst.MaxConsecutiveGenre = src.MaxConsecutiveGenre },
		"channels":              func() { dst.ChannelsCount = src.ChannelsCount },
		"switch-penalty":        func() { dst.SwitchPenalty = src.SwitchPenalty },
		"termination-penalty":   func() { dst.TerminationPenalty = src.TerminationPenalty },
	}
}

// buildRequest layers preset, config file and explicitly set flags, in that
// order, over the defaults.
func buildRequest(cmd *cobra.Command, app *cli, opts *generateOptions) (dto.GenerateInstanceRequest, error) {
	req := dto.DefaultGenerateInstanceRequest()
	if opts.preset != "" {
		presets, err := service.NewPresetService(opts.presetsFile, app.logger)
		if err != nil {
			return req, err
		}
		preset, err := presets.Get(opts.preset)
		if err != nil {
			return req, err
		}
		req = preset.Config
	}
	if opts.configFile != "" {
		if err := decodeFile(cmd, opts.configFile, &req); err != nil {
			return req, err
		}
	}
	for name, apply := range scalarFlags(&req, opts.scalars) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	if cmd.Flags().Changed("seed") {
		seed := opts.seed
		req.Seed = &seed
	}
	return req, nil
}

func runGenerate(cmd *cobra.Command, app *cli, opts *generateOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	req, err := buildRequest(cmd, app, opts)
	if err != nil {
		return err
	}

	exporter := service.NewExportService(nil, nil, service.ExportConfig{}, app.logger)
	instances := service.NewInstanceService(repository.NewMemoryPreviewRepository(), exporter, nil, nil, app.logger, service.InstanceServiceConfig{
		Strict:      opts.strict,
		MaxChannels: cliMaxChannels,
	})

	ctx := context.Background()
	preview, err := instances.Generate(ctx, req)
	if err != nil {
		return err
	}
	file, err := instances.Export(ctx, preview.PreviewID, string(format))
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = file.Filename
	}
	if out == "-" {
		_, err = cmd.OutOrStdout().Write(file.Body)
	} else {
		err = os.WriteFile(out, file.Body, 0o644)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	app.logger.Sugar().Debugw("instance written", "out", out, "format", format, "bytes", len(file.Body))
	fmt.Fprintf(cmd.ErrOrStderr(), "seed %d: %d channels, %d programs, %d time preferences, %d priority blocks -> %s\n",
		preview.Seed,
		preview.Summary.Channels,
		preview.Summary.Programs,
		preview.Summary.TimePreferences,
		preview.Summary.PriorityBlocks,
		out,
	)
	return nil
}
