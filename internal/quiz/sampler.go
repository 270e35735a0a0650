package quiz

import (
	"math/rand"

	"github.com/example/wordquiz/pkg/models"
)

// SampleRound picks the questions of a new round. Terms whose english key is
// in used are skipped; when nothing is left the used set starts over. The
// returned set is the one the caller must keep: it is used itself, or a
// fresh empty set after a reset. Keys are only added when a question is
// answered, never here.
func SampleRound(bank []models.TermPair, used map[string]struct{}, mode Mode, perRound int, rng *rand.Rand) (RoundPlan, map[string]struct{}) {
	remaining := make([]int, 0, len(bank))
	for i, term := range bank {
		if _, ok := used[term.English]; !ok {
			remaining = append(remaining, i)
		}
	}

	if len(remaining) == 0 {
		used = make(map[string]struct{})
		for i := range bank {
			remaining = append(remaining, i)
		}
	}
	if used == nil {
		used = make(map[string]struct{})
	}

	// A full shuffle followed by a prefix is a uniform draw without replacement.
	rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})
	if len(remaining) > perRound {
		remaining = remaining[:perRound]
	}

	plan := RoundPlan{
		Indices:  remaining,
		SubModes: make([]models.SubMode, len(remaining)),
	}
	fixed, single := mode.SubMode()
	for i := range plan.SubModes {
		if single {
			plan.SubModes[i] = fixed
		} else {
			plan.SubModes[i] = models.SubModes[rng.Intn(len(models.SubModes))]
		}
	}

	return plan, used
}
