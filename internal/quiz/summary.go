package quiz

import (
	"fmt"

	"github.com/example/wordquiz/pkg/models"
)

// Summary is the aggregate score of a quiz run. It is always recomputed
// from the answer records.
type Summary struct {
	TotalAnswered int
	TotalCorrect  int
	Accuracy      float64 // percent, 0 when nothing was answered
}

// Summarize computes the score over every record
func Summarize(records []models.AnswerRecord) Summary {
	s := Summary{TotalAnswered: len(records)}
	for _, rec := range records {
		if rec.IsCorrect {
			s.TotalCorrect++
		}
	}
	if s.TotalAnswered > 0 {
		s.Accuracy = float64(s.TotalCorrect) / float64(s.TotalAnswered) * 100
	}
	return s
}

// AccuracyText formats the accuracy with one decimal
func (s Summary) AccuracyText() string {
	return fmt.Sprintf("%.1f%%", s.Accuracy)
}

// WrongAnswers filters the wrong records, keeping answer order
func WrongAnswers(records []models.AnswerRecord) []models.AnswerRecord {
	var wrong []models.AnswerRecord
	for _, rec := range records {
		if !rec.IsCorrect {
			wrong = append(wrong, rec)
		}
	}
	return wrong
}
