package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/wordquiz/pkg/models"
)

func TestSummarize(t *testing.T) {
	records := []models.AnswerRecord{
		{Round: 1, Prompt: "cat", IsCorrect: true},
		{Round: 1, Prompt: "dog", IsCorrect: false},
		{Round: 2, Prompt: "bird", IsCorrect: true},
	}

	s := Summarize(records)
	assert.Equal(t, 3, s.TotalAnswered)
	assert.Equal(t, 2, s.TotalCorrect)
	assert.InDelta(t, 66.666, s.Accuracy, 0.01)
	assert.Equal(t, "66.7%", s.AccuracyText())

	wrong := WrongAnswers(records)
	assert.Len(t, wrong, 1)
	assert.Equal(t, "dog", wrong[0].Prompt)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalAnswered)
	assert.Zero(t, s.Accuracy)
	assert.Equal(t, "0.0%", s.AccuracyText())
	assert.Empty(t, WrongAnswers(nil))
}
