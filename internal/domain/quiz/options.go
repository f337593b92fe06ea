package quiz

import (
	"math/rand"
	"time"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

// NewRand returns a generator seeded from the current time.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// BuildOptions returns the reading and all wrong readings of station in random order.
// The permutation is an unbiased Fisher-Yates shuffle.
func BuildOptions(rng *rand.Rand, station entities.Station) []string {
	options := make([]string, 0, 1+len(station.WrongReadings))
	options = append(options, station.Reading)
	options = append(options, station.WrongReadings...)

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}

// CorrectIndex returns the position of reading in options, or -1.
func CorrectIndex(options []string, reading string) int {
	for i, opt := range options {
		if opt == reading {
			return i
		}
	}
	return -1
}
