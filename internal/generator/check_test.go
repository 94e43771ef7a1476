package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rulesOf(violations []Violation) []string {
	rules := make([]string, 0, len(violations))
	for _, v := range violations {
		rules = append(rules, v.Rule)
	}
	return rules
}

func TestCheckDetectsIdentifierDrift(t *testing.T) {
	inst := Instance{
		OpeningTime:         0,
		ClosingTime:         60,
		MaxConsecutiveGenre: 2,
		Channels: []Channel{
			{ChannelID: 1, ChannelName: "A", Programs: []Program{{ProgramID: "A_2", Start: 0, End: 30, Genre: "news"}}},
		},
	}

	violations := Check(inst, CheckOptions{})

	assert.ElementsMatch(t, []string{RuleChannelID, RuleProgramID}, rulesOf(violations))
}

func TestCheckTimelineRules(t *testing.T) {
	inst := Instance{
		OpeningTime:         0,
		ClosingTime:         100,
		MaxConsecutiveGenre: 1,
		Channels: []Channel{{
			ChannelID:   0,
			ChannelName: "Channel_0",
			Programs: []Program{
				{ProgramID: "Channel_0_1", Start: 10, End: 40, Genre: "news"},
				{ProgramID: "Channel_0_2", Start: 40, End: 40, Genre: "news"},
				{ProgramID: "Channel_0_3", Start: 50, End: 120, Genre: "opera"},
			},
		}},
	}

	violations := Check(inst, CheckOptions{Timeline: true})

	require.NotEmpty(t, violations)
	assert.ElementsMatch(t, []string{RuleContiguity, RuleDuration, RuleGenreRun, RuleContiguity, RuleBounds, RuleGenre}, rulesOf(violations))
	assert.Contains(t, violations[0].String(), "channel 0")
}

func TestCheckIgnoresTimelineWhenDisabled(t *testing.T) {
	inst := Instance{Channels: []Channel{{ChannelName: "X", Programs: []Program{{ProgramID: "X_1", Start: 90, End: 10, Genre: "??"}}}}}

	assert.Empty(t, Check(inst, CheckOptions{}))
}
