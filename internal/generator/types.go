package generator

// Config holds the generation parameters. MinScore, MaxScore and MaxDuration
// only steer generation and never reach the emitted Instance.
type Config struct {
	OpeningTime         int `json:"opening_time" yaml:"opening_time"`
	ClosingTime         int `json:"closing_time" yaml:"closing_time"`
	MinDuration         int `json:"min_duration" yaml:"min_duration"`
	MaxDuration         int `json:"max_duration" yaml:"max_duration"`
	MinScore            int `json:"min_score" yaml:"min_score"`
	MaxScore            int `json:"max_score" yaml:"max_score"`
	MaxConsecutiveGenre int `json:"max_consecutive_genre" yaml:"max_consecutive_genre"`
	ChannelsCount       int `json:"channels_count" yaml:"channels_count"`
	SwitchPenalty       int `json:"switch_penalty" yaml:"switch_penalty"`
	TerminationPenalty  int `json:"termination_penalty" yaml:"termination_penalty"`

	PriorityBlocks  []PriorityBlock  `json:"priority_blocks,omitempty" yaml:"priority_blocks,omitempty"`
	TimePreferences []TimePreference `json:"time_preferences,omitempty" yaml:"time_preferences,omitempty"`
	Channels        []ChannelSpec    `json:"channels,omitempty" yaml:"channels,omitempty"`
}

// ChannelSpec is a user-authored channel. ChannelID is accepted for
// compatibility with previously generated output but always re-derived.
type ChannelSpec struct {
	ChannelID   *int          `json:"channel_id,omitempty" yaml:"channel_id,omitempty"`
	ChannelName string        `json:"channel_name,omitempty" yaml:"channel_name,omitempty"`
	Programs    []ProgramSpec `json:"programs,omitempty" yaml:"programs,omitempty"`
}

// ProgramSpec is a user-authored program. Nil fields fall back to defaults.
type ProgramSpec struct {
	ProgramID string `json:"program_id,omitempty" yaml:"program_id,omitempty"`
	Start     *int   `json:"start,omitempty" yaml:"start,omitempty"`
	End       *int   `json:"end,omitempty" yaml:"end,omitempty"`
	Genre     string `json:"genre,omitempty" yaml:"genre,omitempty"`
	Score     *int   `json:"score,omitempty" yaml:"score,omitempty"`
}

// PriorityBlock restricts which channels count as priority inside a window.
type PriorityBlock struct {
	Start           int   `json:"start" yaml:"start"`
	End             int   `json:"end" yaml:"end"`
	AllowedChannels []int `json:"allowed_channels" yaml:"allowed_channels"`
}

// TimePreference grants a bonus to a genre inside a window.
type TimePreference struct {
	Start          int    `json:"start" yaml:"start"`
	End            int    `json:"end" yaml:"end"`
	PreferredGenre string `json:"preferred_genre" yaml:"preferred_genre"`
	Bonus          int    `json:"bonus" yaml:"bonus"`
}

// Program is one scheduling unit on a channel.
type Program struct {
	ProgramID string `json:"program_id" yaml:"program_id"`
	Start     int    `json:"start" yaml:"start"`
	End       int    `json:"end" yaml:"end"`
	Genre     string `json:"genre" yaml:"genre"`
	Score     int    `json:"score" yaml:"score"`
}

// Channel is an ordered list of programs.
type Channel struct {
	ChannelID   int       `json:"channel_id" yaml:"channel_id"`
	ChannelName string    `json:"channel_name" yaml:"channel_name"`
	Programs    []Program `json:"programs" yaml:"programs"`
}

// Instance is the generated problem description handed to an optimizer.
// Field order matches the emitted JSON key order.
type Instance struct {
	OpeningTime         int              `json:"opening_time" yaml:"opening_time"`
	ClosingTime         int              `json:"closing_time" yaml:"closing_time"`
	MinDuration         int              `json:"min_duration" yaml:"min_duration"`
	MaxConsecutiveGenre int              `json:"max_consecutive_genre" yaml:"max_consecutive_genre"`
	ChannelsCount       int              `json:"channels_count" yaml:"channels_count"`
	SwitchPenalty       int              `json:"switch_penalty" yaml:"switch_penalty"`
	TerminationPenalty  int              `json:"termination_penalty" yaml:"termination_penalty"`
	PriorityBlocks      []PriorityBlock  `json:"priority_blocks,omitempty" yaml:"priority_blocks,omitempty"`
	TimePreferences     []TimePreference `json:"time_preferences,omitempty" yaml:"time_preferences,omitempty"`
	Channels            []Channel        `json:"channels" yaml:"channels"`
}

// Summary mirrors the counts shown next to a generated preview.
type Summary struct {
	Channels        int `json:"channels"`
	Programs        int `json:"programs"`
	TimePreferences int `json:"timePreferences"`
	PriorityBlocks  int `json:"priorityBlocks"`
}

// Summarize counts the collections of an instance.
func Summarize(inst Instance) Summary {
	programs := 0
	for _, ch := range inst.Channels {
		programs += len(ch.Programs)
	}
	return Summary{
		Channels:        len(inst.Channels),
		Programs:        programs,
		TimePreferences: len(inst.TimePreferences),
		PriorityBlocks:  len(inst.PriorityBlocks),
	}
}

// AsChannelSpecs converts generated channels back into override specs so an
// instance can be fed into another generation run.
func AsChannelSpecs(channels []Channel) []ChannelSpec {
	specs := make([]ChannelSpec, 0, len(channels))
	for _, ch := range channels {
		id := ch.ChannelID
		programs := make([]ProgramSpec, 0, len(ch.Programs))
		for _, p := range ch.Programs {
			start, end, score := p.Start, p.End, p.Score
			programs = append(programs, ProgramSpec{
				ProgramID: p.ProgramID,
				Start:     &start,
				End:       &end,
				Genre:     p.Genre,
				Score:     &score,
			})
		}
		specs = append(specs, ChannelSpec{ChannelID: &id, ChannelName: ch.ChannelName, Programs: programs})
	}
	return specs
}
