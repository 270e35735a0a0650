package quiz

import (
	"fmt"
	"strings"

	"github.com/example/wordquiz/pkg/models"
)

// Question is the renderable view of the current question of a round
type Question struct {
	Round         int
	Position      int // 0-based
	Total         int
	Index         int // term bank index
	SubMode       models.SubMode
	Term          models.TermPair
	Prompt        string // term shown to the learner
	Text          string // full question sentence
	CorrectAnswer string
	Hint          string
	Options       []string // multiple choice only
}

// Number returns the 1-based position within the round
func (q Question) Number() int {
	return q.Position + 1
}

// Percent returns round progress including the current question
func (q Question) Percent() int {
	if q.Total == 0 {
		return 0
	}
	return q.Number() * 100 / q.Total
}

// buildPrompt derives the prompt, question text, expected answer and hint
// of a term under a sub-mode.
func buildPrompt(term models.TermPair, sub models.SubMode) (prompt, text, correct, hint string) {
	switch sub {
	case models.EngToChiMC:
		prompt = term.English
		text = fmt.Sprintf("「%s」對應的正確中文是？", prompt)
		correct = term.Chinese
	case models.ChiToEngMC:
		prompt = term.Chinese
		text = fmt.Sprintf("「%s」的正確英文是？", prompt)
		correct = term.English
	default:
		prompt = term.Chinese
		hint = Hint(term.English)
		text = fmt.Sprintf("「%s」的正確英文是？ %s", prompt, hint)
		correct = term.English
	}
	return prompt, text, correct, hint
}

// Hint reveals the first and last character of the answer, or the whole
// answer when it is shorter than two characters.
func Hint(answer string) string {
	r := []rune(answer)
	if len(r) >= 2 {
		return fmt.Sprintf("(提示: %c ... %c)", r[0], r[len(r)-1])
	}
	return fmt.Sprintf("(提示: %s)", answer)
}

// DescribeOptions expands each displayed option to "english / chinese" when
// it can be found in the bank. Unknown values, such as the placeholder, are
// returned as they are.
func DescribeOptions(bank []models.TermPair, opts []string) []string {
	out := make([]string, 0, len(opts))
	for _, opt := range opts {
		clean := strings.TrimSpace(opt)
		described := clean
		for _, it := range bank {
			if strings.EqualFold(it.English, clean) || it.Chinese == clean {
				described = it.English + " / " + it.Chinese
				break
			}
		}
		out = append(out, described)
	}
	return out
}
