package generator

var genres = []string{
	"news",
	"sports",
	"music",
	"movie",
	"movies",
	"kids",
	"documentary",
	"drama",
	"talk",
	"entertainment",
}

const (
	defaultChannelPrefix = "Channel_"
	defaultProgramStart  = 0
	defaultProgramEnd    = 30
	defaultProgramGenre  = "news"
	defaultProgramScore  = 50

	minSynthesizedItems = 1
	maxSynthesizedItems = 3
	minAllowedChannels  = 1
	maxAllowedChannels  = 4
	minPreferenceBonus  = 10
	maxPreferenceBonus  = 50
)

// Genres returns a copy of the genre vocabulary.
func Genres() []string {
	out := make([]string, len(genres))
	copy(out, genres)
	return out
}

// IsGenre reports whether name belongs to the vocabulary.
func IsGenre(name string) bool {
	for _, g := range genres {
		if g == name {
			return true
		}
	}
	return false
}

// DefaultConfig returns the form defaults of the instance builder.
func DefaultConfig() Config {
	return Config{
		OpeningTime:         0,
		ClosingTime:         630,
		MinDuration:         30,
		MaxDuration:         120,
		MinScore:            10,
		MaxScore:            100,
		MaxConsecutiveGenre: 2,
		ChannelsCount:       24,
		SwitchPenalty:       5,
		TerminationPenalty:  10,
	}
}

func pickGenre(src Source) string {
	return genres[src.Between(0, len(genres)-1)]
}

func pickGenreExcept(src Source, exclude string) string {
	others := make([]string, 0, len(genres))
	for _, g := range genres {
		if g != exclude {
			others = append(others, g)
		}
	}
	return others[src.Between(0, len(others)-1)]
}
