package quiz

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/example/wordquiz/pkg/models"
)

// PlaceholderOption stands in for the distractor when the bank has no other value
const PlaceholderOption = "???"

func optionKey(qIndex int, sub models.SubMode) string {
	return strconv.Itoa(qIndex) + ":" + string(sub)
}

// OptionsFor returns the two display options of a multiple choice question,
// one correct and one distractor, in a fixed shuffled order. The first call
// for a (qIndex, sub) pair stores the result in cache; later calls return the
// stored order. Typed questions have no options.
func OptionsFor(bank []models.TermPair, qIndex int, sub models.SubMode, cache map[string][]string, rng *rand.Rand) []string {
	if !sub.IsMultipleChoice() {
		return nil
	}

	key := optionKey(qIndex, sub)
	if opts, ok := cache[key]; ok {
		return append([]string(nil), opts...)
	}

	item := bank[qIndex]
	var (
		correct string
		pool    []string
	)
	switch sub {
	case models.EngToChiMC:
		correct = item.Chinese
		for _, it := range bank {
			if it.Chinese != correct {
				pool = append(pool, it.Chinese)
			}
		}
	case models.ChiToEngMC:
		correct = item.English
		for _, it := range bank {
			if !strings.EqualFold(it.English, correct) {
				pool = append(pool, it.English)
			}
		}
	}

	distractor := PlaceholderOption
	if len(pool) > 0 {
		distractor = pool[rng.Intn(len(pool))]
	}

	opts := []string{correct, distractor}
	rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})

	cache[key] = opts
	return append([]string(nil), opts...)
}
