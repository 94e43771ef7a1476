package generator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestGenerateTwoBackToBackPrograms(t *testing.T) {
	cfg := Config{
		OpeningTime:         0,
		ClosingTime:         60,
		MinDuration:         30,
		MaxDuration:         30,
		MinScore:            10,
		MaxScore:            10,
		MaxConsecutiveGenre: 5,
		ChannelsCount:       1,
	}

	inst := Generate(cfg, NewSeededSource(7))

	require.Len(t, inst.Channels, 1)
	programs := inst.Channels[0].Programs
	require.Len(t, programs, 2)
	assert.Equal(t, 0, programs[0].Start)
	assert.Equal(t, 30, programs[0].End)
	assert.Equal(t, 30, programs[1].Start)
	assert.Equal(t, 60, programs[1].End)
	for _, p := range programs {
		assert.Equal(t, 10, p.Score)
	}
	assert.Equal(t, "Channel_0_1", programs[0].ProgramID)
	assert.Equal(t, "Channel_0_2", programs[1].ProgramID)
}

func TestGenerateHoldsInvariantsAcrossSeeds(t *testing.T) {
	configs := []Config{
		DefaultConfig(),
		{OpeningTime: 360, ClosingTime: 1440, MinDuration: 15, MaxDuration: 45, MinScore: 0, MaxScore: 200, MaxConsecutiveGenre: 1, ChannelsCount: 5},
		{OpeningTime: 0, ClosingTime: 100, MinDuration: 7, MaxDuration: 300, MinScore: 50, MaxScore: 60, MaxConsecutiveGenre: 3, ChannelsCount: 3},
	}
	for _, cfg := range configs {
		for seed := int64(1); seed <= 100; seed++ {
			inst := Generate(cfg, NewSeededSource(seed))
			require.Len(t, inst.Channels, cfg.ChannelsCount)
			violations := Check(inst, CheckOptions{Timeline: true})
			require.Empty(t, violations, "seed %d produced %v", seed, violations)

			for _, ch := range inst.Channels {
				for _, p := range ch.Programs {
					assert.GreaterOrEqual(t, p.End-p.Start, cfg.MinDuration)
					assert.LessOrEqual(t, p.End-p.Start, cfg.MaxDuration)
					assert.GreaterOrEqual(t, p.Score, cfg.MinScore)
					assert.LessOrEqual(t, p.Score, cfg.MaxScore)
				}
				if len(ch.Programs) > 0 {
					last := ch.Programs[len(ch.Programs)-1]
					assert.Less(t, cfg.ClosingTime-last.End, cfg.MinDuration, "trailing gap must be shorter than min_duration")
				}
			}
		}
	}
}

func TestGenerateForcedGenreStartsNewRun(t *testing.T) {
	cfg := Config{
		OpeningTime:         0,
		ClosingTime:         30,
		MinDuration:         10,
		MaxDuration:         10,
		MinScore:            5,
		MaxScore:            5,
		MaxConsecutiveGenre: 1,
		ChannelsCount:       1,
		PriorityBlocks:      []PriorityBlock{{Start: 0, End: 10, AllowedChannels: []int{0}}},
		TimePreferences:     []TimePreference{{Start: 0, End: 10, PreferredGenre: "news", Bonus: 10}},
	}
	src := NewSequenceSource(
		10, 0, 5,    // news
		10, 0, 0, 5, // news again, forced to sports
		10, 1, 0, 5, // sports again, forced to news
	)

	inst := Generate(cfg, src)

	require.Len(t, inst.Channels[0].Programs, 3)
	got := []string{}
	for _, p := range inst.Channels[0].Programs {
		got = append(got, p.Genre)
	}
	assert.Equal(t, []string{"news", "sports", "news"}, got)
	assert.Zero(t, src.Remaining())
	assert.Empty(t, Check(inst, CheckOptions{Timeline: true}))
}

func TestResolvePriorityBlocksPassThrough(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PriorityBlocks = []PriorityBlock{{Start: 60, End: 120, AllowedChannels: []int{3, 3, 9}}}

	blocks := ResolvePriorityBlocks(cfg, NewSequenceSource())

	require.Len(t, blocks, 1)
	assert.Equal(t, cfg.PriorityBlocks[0], blocks[0])
	blocks[0].AllowedChannels[0] = 42
	assert.Equal(t, 3, cfg.PriorityBlocks[0].AllowedChannels[0], "output must not alias the config")
}

func TestResolvePriorityBlocksSynthesized(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(1); seed <= 200; seed++ {
		blocks := ResolvePriorityBlocks(cfg, NewSeededSource(seed))
		require.GreaterOrEqual(t, len(blocks), 1)
		require.LessOrEqual(t, len(blocks), 3)
		for _, b := range blocks {
			assert.GreaterOrEqual(t, b.Start, cfg.OpeningTime)
			assert.LessOrEqual(t, b.Start, cfg.ClosingTime-cfg.MinDuration)
			assert.GreaterOrEqual(t, b.End, b.Start+cfg.MinDuration)
			assert.LessOrEqual(t, b.End, cfg.ClosingTime)
			require.GreaterOrEqual(t, len(b.AllowedChannels), 1)
			require.LessOrEqual(t, len(b.AllowedChannels), 4)
			for _, ch := range b.AllowedChannels {
				assert.GreaterOrEqual(t, ch, 0)
				assert.Less(t, ch, cfg.ChannelsCount)
			}
		}
	}
}

func TestResolveTimePreferencesSynthesized(t *testing.T) {
	cfg := DefaultConfig()
	src := NewSequenceSource(2, 100, 400, 2, 25, 0, 0, 9, 50)

	prefs := ResolveTimePreferences(cfg, src)

	require.Len(t, prefs, 2)
	assert.Equal(t, TimePreference{Start: 100, End: 400, PreferredGenre: "music", Bonus: 25}, prefs[0])
	assert.Equal(t, TimePreference{Start: 0, End: 30, PreferredGenre: "entertainment", Bonus: 50}, prefs[1])
}

func TestResolveTimePreferencesPassThrough(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimePreferences = []TimePreference{{Start: 1, End: 2, PreferredGenre: "custom", Bonus: 999}}

	prefs := ResolveTimePreferences(cfg, NewSequenceSource())

	assert.Equal(t, cfg.TimePreferences, prefs)
}

func TestResolveChannelsRelabelsOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Channels = []ChannelSpec{
		{ChannelID: intPtr(7), ChannelName: "RTK2", Programs: []ProgramSpec{
			{ProgramID: "bogus", Start: intPtr(0), End: intPtr(45), Genre: "sports", Score: intPtr(80)},
			{},
		}},
		{ChannelID: intPtr(3)},
	}

	channels := ResolveChannels(cfg, NewSequenceSource())

	require.Len(t, channels, 2)
	assert.Equal(t, 0, channels[0].ChannelID)
	assert.Equal(t, "RTK2", channels[0].ChannelName)
	assert.Equal(t, Program{ProgramID: "RTK2_1", Start: 0, End: 45, Genre: "sports", Score: 80}, channels[0].Programs[0])
	assert.Equal(t, Program{ProgramID: "RTK2_2", Start: 0, End: 30, Genre: "news", Score: 50}, channels[0].Programs[1])

	assert.Equal(t, 1, channels[1].ChannelID)
	assert.Equal(t, "Channel_1", channels[1].ChannelName)
	assert.NotNil(t, channels[1].Programs)
	assert.Empty(t, channels[1].Programs)
}

func TestResolveChannelsKeepsExplicitZeroValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Channels = []ChannelSpec{{ChannelName: "KTV", Programs: []ProgramSpec{{Start: intPtr(0), End: intPtr(0), Score: intPtr(0)}}}}

	channels := ResolveChannels(cfg, NewSequenceSource())

	assert.Equal(t, Program{ProgramID: "KTV_1", Start: 0, End: 0, Genre: "news", Score: 0}, channels[0].Programs[0])
}

func TestGenerateRoundTripKeepsIdentifiers(t *testing.T) {
	first := Generate(DefaultConfig(), NewSeededSource(99))

	cfg := DefaultConfig()
	cfg.Channels = AsChannelSpecs(first.Channels)
	second := Generate(cfg, NewSeededSource(100))

	assert.Equal(t, first.Channels, second.Channels)
	assert.Empty(t, Check(second, CheckOptions{}))
}

func TestGenerateDoesNotMutateConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Channels = []ChannelSpec{{ChannelID: intPtr(5), Programs: []ProgramSpec{{ProgramID: "x"}}}}
	before, err := json.Marshal(cfg)
	require.NoError(t, err)

	_ = Generate(cfg, NewSeededSource(1))

	after, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestInstanceJSONShape(t *testing.T) {
	inst := Generate(DefaultConfig(), NewSeededSource(3))
	raw, err := json.Marshal(inst)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	for _, k := range []string{"opening_time", "closing_time", "min_duration", "max_consecutive_genre", "channels_count", "switch_penalty", "termination_penalty", "priority_blocks", "time_preferences", "channels"} {
		assert.Contains(t, keys, k)
	}
	for _, k := range []string{"min_score", "max_score", "max_duration"} {
		assert.NotContains(t, keys, k)
	}

	empty, err := json.Marshal(Instance{Channels: []Channel{}})
	require.NoError(t, err)
	var emptyKeys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(empty, &emptyKeys))
	assert.NotContains(t, emptyKeys, "priority_blocks")
	assert.NotContains(t, emptyKeys, "time_preferences")
	assert.Equal(t, "[]", string(emptyKeys["channels"]))
}

func TestGenerateDegenerateConfigDoesNotPanic(t *testing.T) {
	cfg := Config{OpeningTime: 100, ClosingTime: 50, MinDuration: 0, MaxDuration: -5, MinScore: 10, MaxScore: 0, ChannelsCount: 2}

	var inst Instance
	require.NotPanics(t, func() { inst = Generate(cfg, NewSeededSource(1)) })
	require.Len(t, inst.Channels, 2)
	for _, ch := range inst.Channels {
		assert.Empty(t, ch.Programs)
	}
}

func TestSummarize(t *testing.T) {
	inst := Instance{
		PriorityBlocks:  []PriorityBlock{{}, {}},
		TimePreferences: []TimePreference{{}},
		Channels:        []Channel{{Programs: []Program{{}, {}}}, {Programs: []Program{{}}}},
	}

	assert.Equal(t, Summary{Channels: 2, Programs: 3, TimePreferences: 1, PriorityBlocks: 2}, Summarize(inst))
}
