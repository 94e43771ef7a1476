package generator

import "fmt"

// Rule names reported by Check.
const (
	RuleChannelID  = "channel_id"
	RuleProgramID  = "program_id"
	RuleDuration   = "duration"
	RuleBounds     = "bounds"
	RuleContiguity = "contiguity"
	RuleGenreRun   = "genre_run"
	RuleGenre      = "genre"
)

// Violation describes one broken invariant.
type Violation struct {
	Rule      string `json:"rule"`
	ChannelID int    `json:"channelId"`
	ProgramID string `json:"programId,omitempty"`
	Message   string `json:"message"`
}

func (v Violation) String() string {
	if v.ProgramID != "" {
		return fmt.Sprintf("[%s] channel %d program %s: %s", v.Rule, v.ChannelID, v.ProgramID, v.Message)
	}
	return fmt.Sprintf("[%s] channel %d: %s", v.Rule, v.ChannelID, v.Message)
}

// CheckOptions selects which invariant families Check verifies.
type CheckOptions struct {
	// Timeline enables the checks that only hold for auto-generated
	// channels: bounds, contiguity, genre runs and vocabulary.
	Timeline bool
}

// Check verifies the structural invariants of an instance. Identifier rules
// always apply; timeline rules apply when opts.Timeline is set.
func Check(inst Instance, opts CheckOptions) []Violation {
	var out []Violation
	for idx, ch := range inst.Channels {
		if ch.ChannelID != idx {
			out = append(out, Violation{Rule: RuleChannelID, ChannelID: ch.ChannelID, Message: fmt.Sprintf("expected channel_id %d", idx)})
		}
		for pIdx, p := range ch.Programs {
			if want := programID(ch.ChannelName, pIdx); p.ProgramID != want {
				out = append(out, Violation{Rule: RuleProgramID, ChannelID: ch.ChannelID, ProgramID: p.ProgramID, Message: fmt.Sprintf("expected %s", want)})
			}
		}
		if opts.Timeline {
			out = append(out, checkTimeline(inst, ch)...)
		}
	}
	return out
}

func checkTimeline(inst Instance, ch Channel) []Violation {
	var out []Violation
	lastGenre := ""
	run := 0
	for i, p := range ch.Programs {
		if p.Start >= p.End {
			out = append(out, Violation{Rule: RuleDuration, ChannelID: ch.ChannelID, ProgramID: p.ProgramID, Message: fmt.Sprintf("start %d is not before end %d", p.Start, p.End)})
		}
		if p.Start < inst.OpeningTime || p.End > inst.ClosingTime {
			out = append(out, Violation{Rule: RuleBounds, ChannelID: ch.ChannelID, ProgramID: p.ProgramID, Message: fmt.Sprintf("[%d,%d] outside [%d,%d]", p.Start, p.End, inst.OpeningTime, inst.ClosingTime)})
		}
		if i == 0 && p.Start != inst.OpeningTime {
			out = append(out, Violation{Rule: RuleContiguity, ChannelID: ch.ChannelID, ProgramID: p.ProgramID, Message: fmt.Sprintf("first program starts at %d, not at opening time %d", p.Start, inst.OpeningTime)})
		}
		if i > 0 && ch.Programs[i-1].End != p.Start {
			out = append(out, Violation{Rule: RuleContiguity, ChannelID: ch.ChannelID, ProgramID: p.ProgramID, Message: fmt.Sprintf("starts at %d but previous program ends at %d", p.Start, ch.Programs[i-1].End)})
		}
		if !IsGenre(p.Genre) {
			out = append(out, Violation{Rule: RuleGenre, ChannelID: ch.ChannelID, ProgramID: p.ProgramID, Message: fmt.Sprintf("unknown genre %q", p.Genre)})
		}
		if p.Genre == lastGenre {
			run++
		} else {
			lastGenre = p.Genre
			run = 1
		}
		if run > inst.MaxConsecutiveGenre {
			out = append(out, Violation{Rule: RuleGenreRun, ChannelID: ch.ChannelID, ProgramID: p.ProgramID, Message: fmt.Sprintf("%d consecutive %q programs exceed %d", run, p.Genre, inst.MaxConsecutiveGenre)})
		}
	}
	return out
}
