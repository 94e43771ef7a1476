package generator

import (
	"fmt"
	"strings"

	appErrors "github.com/noah-isme/tv-instance-generator/pkg/errors"
)

// Validate rejects configurations that would produce degenerate output. The
// returned error carries the INVALID_CONFIG code.
func Validate(cfg Config) error {
	var problems []string
	if cfg.ClosingTime <= cfg.OpeningTime {
		problems = append(problems, "closing_time must be greater than opening_time")
	}
	if cfg.MinDuration < 1 {
		problems = append(problems, "min_duration must be at least 1")
	}
	if cfg.MaxDuration < cfg.MinDuration {
		problems = append(problems, "max_duration must be greater than or equal to min_duration")
	}
	if cfg.MaxScore < cfg.MinScore {
		problems = append(problems, "max_score must be greater than or equal to min_score")
	}
	if cfg.ChannelsCount < 0 {
		problems = append(problems, "channels_count must not be negative")
	}
	if cfg.MaxConsecutiveGenre < 1 {
		problems = append(problems, "max_consecutive_genre must be at least 1")
	}
	synthesizes := len(cfg.PriorityBlocks) == 0 || len(cfg.TimePreferences) == 0
	if synthesizes && cfg.ClosingTime-cfg.OpeningTime < cfg.MinDuration {
		problems = append(problems, fmt.Sprintf("broadcast window (%d) is shorter than min_duration (%d)", cfg.ClosingTime-cfg.OpeningTime, cfg.MinDuration))
	}
	if len(cfg.PriorityBlocks) == 0 && cfg.ChannelsCount < 1 {
		problems = append(problems, "channels_count must be at least 1 to synthesize priority blocks")
	}
	if len(problems) == 0 {
		return nil
	}
	return appErrors.Clone(appErrors.ErrInvalidConfig, strings.Join(problems, "; "))
}
