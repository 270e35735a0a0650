package quiz

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/wordquiz/pkg/models"
)

var animals = []models.TermPair{
	{English: "cat", Chinese: "貓"},
	{English: "dog", Chinese: "狗"},
	{English: "bird", Chinese: "鳥"},
}

func bankOf(n int) []models.TermPair {
	bank := make([]models.TermPair, n)
	for i := range bank {
		bank[i] = models.TermPair{
			English: fmt.Sprintf("word%03d", i),
			Chinese: fmt.Sprintf("詞%03d", i),
		}
	}
	return bank
}

func newTestEngine(t *testing.T, bank []models.TermPair, rules Rules) *Engine {
	t.Helper()

	e, err := NewEngine(bank, rules, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	e.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return e
}

func mustApply(t *testing.T, e *Engine, st *SessionState, a Action) *SessionState {
	t.Helper()

	next, err := e.Apply(st, a)
	require.NoError(t, err, "action %s", a.Kind)
	return next
}

// answerCurrent answers the open question right or wrong, then advances.
func answerCurrent(t *testing.T, e *Engine, st *SessionState, right bool) *SessionState {
	t.Helper()

	q, ok := e.CurrentQuestion(st)
	require.True(t, ok, "no open question in phase %s", st.Phase())

	if q.SubMode.IsMultipleChoice() {
		pick := q.CorrectAnswer
		if !right {
			for _, opt := range q.Options {
				if opt != q.CorrectAnswer {
					pick = opt
				}
			}
		}
		st = mustApply(t, e, st, ChooseOption(q.Index, pick))
	} else {
		text := q.CorrectAnswer
		if !right {
			text = "not-" + text
		}
		st = mustApply(t, e, st, TypeAnswer(q.Index, text))
	}

	st = mustApply(t, e, st, Submit())
	return mustApply(t, e, st, Advance())
}

func answerRound(t *testing.T, e *Engine, st *SessionState, right bool) *SessionState {
	t.Helper()

	for st.Phase() == PhaseInRound {
		st = answerCurrent(t, e, st, right)
	}
	return st
}
