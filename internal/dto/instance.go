package dto

import (
	"time"

	"github.com/noah-isme/tv-instance-generator/internal/generator"
)

// Preview modes reported to clients.
const (
	ModePreview = "preview"
)

// GenerateInstanceRequest captures POST /instances/generate. Bounds follow
// the generator form sliders; ordering rules are enforced by the generator
// itself in strict mode.
type GenerateInstanceRequest struct {
	OpeningTime         int `json:"opening_time" yaml:"opening_time" validate:"min=0,max=1440"`
	ClosingTime         int `json:"closing_time" yaml:"closing_time" validate:"min=0,max=1440"`
	MinDuration         int `json:"min_duration" yaml:"min_duration" validate:"min=1,max=120"`
	MaxDuration         int `json:"max_duration" yaml:"max_duration" validate:"min=1,max=300"`
	MinScore            int `json:"min_score" yaml:"min_score" validate:"min=0,max=100"`
	MaxScore            int `json:"max_score" yaml:"max_score" validate:"min=0,max=200"`
	MaxConsecutiveGenre int `json:"max_consecutive_genre" yaml:"max_consecutive_genre" validate:"min=1,max=10"`
	ChannelsCount       int `json:"channels_count" yaml:"channels_count" validate:"min=0"`
	SwitchPenalty       int `json:"switch_penalty" yaml:"switch_penalty" validate:"min=0,max=20"`
	TerminationPenalty  int `json:"termination_penalty" yaml:"termination_penalty" validate:"min=0,max=20"`

	PriorityBlocks  []generator.PriorityBlock  `json:"priority_blocks,omitempty" yaml:"priority_blocks,omitempty"`
	TimePreferences []generator.TimePreference `json:"time_preferences,omitempty" yaml:"time_preferences,omitempty"`
	Channels        []generator.ChannelSpec    `json:"channels,omitempty" yaml:"channels,omitempty"`

	// Seed replays an earlier run when set.
	Seed *int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// DefaultGenerateInstanceRequest seeds request binding so absent keys keep
// the form defaults.
func DefaultGenerateInstanceRequest() GenerateInstanceRequest {
	return GenerateInstanceRequestFromConfig(generator.DefaultConfig())
}

// GenerateInstanceRequestFromConfig lifts a generator config into a request.
func GenerateInstanceRequestFromConfig(cfg generator.Config) GenerateInstanceRequest {
	return GenerateInstanceRequest{
		OpeningTime:         cfg.OpeningTime,
		ClosingTime:         cfg.ClosingTime,
		MinDuration:         cfg.MinDuration,
		MaxDuration:         cfg.MaxDuration,
		MinScore:            cfg.MinScore,
		MaxScore:            cfg.MaxScore,
		MaxConsecutiveGenre: cfg.MaxConsecutiveGenre,
		ChannelsCount:       cfg.ChannelsCount,
		SwitchPenalty:       cfg.SwitchPenalty,
		TerminationPenalty:  cfg.TerminationPenalty,
		PriorityBlocks:      cfg.PriorityBlocks,
		TimePreferences:     cfg.TimePreferences,
		Channels:            cfg.Channels,
	}
}

// ToConfig converts the request into generator input.
func (r GenerateInstanceRequest) ToConfig() generator.Config {
	return generator.Config{
		OpeningTime:         r.OpeningTime,
		ClosingTime:         r.ClosingTime,
		MinDuration:         r.MinDuration,
		MaxDuration:         r.MaxDuration,
		MinScore:            r.MinScore,
		MaxScore:            r.MaxScore,
		MaxConsecutiveGenre: r.MaxConsecutiveGenre,
		ChannelsCount:       r.ChannelsCount,
		SwitchPenalty:       r.SwitchPenalty,
		TerminationPenalty:  r.TerminationPenalty,
		PriorityBlocks:      r.PriorityBlocks,
		TimePreferences:     r.TimePreferences,
		Channels:            r.Channels,
	}
}

// InstancePreviewResponse is returned after generating or fetching a preview.
type InstancePreviewResponse struct {
	Mode        string             `json:"mode"`
	PreviewID   string             `json:"previewId"`
	Seed        int64              `json:"seed"`
	Source      string             `json:"source"`
	Preset      string             `json:"preset,omitempty"`
	Summary     generator.Summary  `json:"summary"`
	Instance    generator.Instance `json:"instance"`
	GeneratedAt time.Time          `json:"generatedAt"`
	ExpiresAt   time.Time          `json:"expiresAt"`
}

// ExportQuery selects the download encoding for GET /instances/:id/export.
type ExportQuery struct {
	Format string `form:"format" validate:"omitempty,oneof=json csv pdf"`
}
