package quiz

import (
	"fmt"
	"strings"

	"github.com/example/wordquiz/pkg/models"
)

// Grade trims the student's answer and compares it with the expected one,
// ignoring case. Scripts without case compare exactly.
func Grade(correct, raw string) (string, bool) {
	answer := strings.TrimSpace(raw)
	return answer, strings.EqualFold(answer, strings.TrimSpace(correct))
}

// feedbackFor builds the message shown under a submitted question. A wrong
// answer always discloses both language forms.
func feedbackFor(term models.TermPair, sub models.SubMode, correct bool) Feedback {
	if correct {
		return Feedback{Correct: true, Message: "✅ 回答正確"}
	}

	var msg string
	switch sub {
	case models.EngToChiMC:
		msg = fmt.Sprintf("❌ Incorrect. 正確中文：%s（English: %s）", term.Chinese, term.English)
	default:
		msg = fmt.Sprintf("❌ Incorrect. 正確英文：%s（中文：%s）", term.English, term.Chinese)
	}
	return Feedback{Correct: false, Message: msg}
}
