// Package generator fabricates TV channel scheduling instances: channels with
// back-to-back programs, priority blocks and time-of-day genre preferences.
// User supplied collections are passed through (channels are relabelled),
// everything else is synthesized from a Source.
package generator

import "fmt"

// Generate builds an instance from cfg. It never mutates cfg. Degenerate
// configurations yield degenerate output rather than an error; call Validate
// first when that matters.
func Generate(cfg Config, src Source) Instance {
	if src == nil {
		src = NewSource()
	}
	blocks := ResolvePriorityBlocks(cfg, src)
	prefs := ResolveTimePreferences(cfg, src)
	channels := ResolveChannels(cfg, src)

	inst := Instance{
		OpeningTime:         cfg.OpeningTime,
		ClosingTime:         cfg.ClosingTime,
		MinDuration:         cfg.MinDuration,
		MaxConsecutiveGenre: cfg.MaxConsecutiveGenre,
		ChannelsCount:       cfg.ChannelsCount,
		SwitchPenalty:       cfg.SwitchPenalty,
		TerminationPenalty:  cfg.TerminationPenalty,
		Channels:            channels,
	}
	if len(blocks) > 0 {
		inst.PriorityBlocks = blocks
	}
	if len(prefs) > 0 {
		inst.TimePreferences = prefs
	}
	return inst
}

// ResolvePriorityBlocks copies the configured blocks or synthesizes 1-3.
func ResolvePriorityBlocks(cfg Config, src Source) []PriorityBlock {
	if len(cfg.PriorityBlocks) > 0 {
		out := make([]PriorityBlock, 0, len(cfg.PriorityBlocks))
		for _, b := range cfg.PriorityBlocks {
			allowed := make([]int, len(b.AllowedChannels))
			copy(allowed, b.AllowedChannels)
			out = append(out, PriorityBlock{Start: b.Start, End: b.End, AllowedChannels: allowed})
		}
		return out
	}

	count := src.Between(minSynthesizedItems, maxSynthesizedItems)
	out := make([]PriorityBlock, 0, count)
	for i := 0; i < count; i++ {
		start, end := synthesizeWindow(cfg, src)
		n := src.Between(minAllowedChannels, maxAllowedChannels)
		allowed := make([]int, 0, n)
		for j := 0; j < n; j++ {
			allowed = append(allowed, src.Between(0, cfg.ChannelsCount-1))
		}
		out = append(out, PriorityBlock{Start: start, End: end, AllowedChannels: allowed})
	}
	return out
}

// ResolveTimePreferences copies the configured preferences or synthesizes 1-3.
func ResolveTimePreferences(cfg Config, src Source) []TimePreference {
	if len(cfg.TimePreferences) > 0 {
		out := make([]TimePreference, len(cfg.TimePreferences))
		copy(out, cfg.TimePreferences)
		return out
	}

	count := src.Between(minSynthesizedItems, maxSynthesizedItems)
	out := make([]TimePreference, 0, count)
	for i := 0; i < count; i++ {
		start, end := synthesizeWindow(cfg, src)
		out = append(out, TimePreference{
			Start:          start,
			End:            end,
			PreferredGenre: pickGenre(src),
			Bonus:          src.Between(minPreferenceBonus, maxPreferenceBonus),
		})
	}
	return out
}

// ResolveChannels relabels the configured channels or auto-generates
// ChannelsCount channels.
func ResolveChannels(cfg Config, src Source) []Channel {
	if len(cfg.Channels) > 0 {
		return relabelChannels(cfg.Channels)
	}

	count := cfg.ChannelsCount
	if count < 0 {
		count = 0
	}
	out := make([]Channel, 0, count)
	for id := 0; id < count; id++ {
		name := channelName(id)
		out = append(out, Channel{
			ChannelID:   id,
			ChannelName: name,
			Programs:    fillChannel(cfg, src, name),
		})
	}
	return out
}

func relabelChannels(specs []ChannelSpec) []Channel {
	out := make([]Channel, 0, len(specs))
	for idx, spec := range specs {
		name := spec.ChannelName
		if name == "" {
			name = channelName(idx)
		}
		programs := make([]Program, 0, len(spec.Programs))
		for pIdx, p := range spec.Programs {
			genre := p.Genre
			if genre == "" {
				genre = defaultProgramGenre
			}
			programs = append(programs, Program{
				ProgramID: programID(name, pIdx),
				Start:     intOr(p.Start, defaultProgramStart),
				End:       intOr(p.End, defaultProgramEnd),
				Genre:     genre,
				Score:     intOr(p.Score, defaultProgramScore),
			})
		}
		out = append(out, Channel{ChannelID: idx, ChannelName: name, Programs: programs})
	}
	return out
}

// fillChannel walks forward from the opening time laying programs end to end
// until the remaining window cannot hold a minimum-length program.
func fillChannel(cfg Config, src Source, name string) []Program {
	programs := make([]Program, 0)
	minLen := cfg.MinDuration
	if minLen < 1 {
		minLen = 1
	}

	current := cfg.OpeningTime
	lastGenre := ""
	run := 0
	for current < cfg.ClosingTime {
		remaining := cfg.ClosingTime - current
		if remaining < minLen {
			break
		}
		duration := src.Between(minLen, min(cfg.MaxDuration, remaining))
		end := current + duration

		genre := pickGenre(src)
		switch {
		case genre == lastGenre && run >= cfg.MaxConsecutiveGenre:
			genre = pickGenreExcept(src, lastGenre)
			lastGenre = genre
			run = 1
		case genre == lastGenre:
			run++
		default:
			lastGenre = genre
			run = 1
		}

		programs = append(programs, Program{
			ProgramID: programID(name, len(programs)),
			Start:     current,
			End:       end,
			Genre:     genre,
			Score:     src.Between(cfg.MinScore, cfg.MaxScore),
		})
		current = end
	}
	return programs
}

func synthesizeWindow(cfg Config, src Source) (int, int) {
	start := src.Between(cfg.OpeningTime, cfg.ClosingTime-cfg.MinDuration)
	end := src.Between(start+cfg.MinDuration, cfg.ClosingTime)
	return start, end
}

func channelName(idx int) string {
	return fmt.Sprintf("%s%d", defaultChannelPrefix, idx)
}

func programID(channel string, idx int) string {
	return fmt.Sprintf("%s_%d", channel, idx+1)
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
