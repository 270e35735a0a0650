package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordquiz/pkg/models"
)

func TestNewEngine(t *testing.T) {
	_, err := NewEngine(nil, DefaultRules(), nil)
	assert.ErrorIs(t, err, ErrEmptyBank)

	_, err = NewEngine(animals, Rules{QuestionsPerRound: 0, MaxRounds: 3}, nil)
	assert.ErrorIs(t, err, ErrInvalidRules)

	e, err := NewEngine(animals, DefaultRules(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), e.Rules())
	assert.Len(t, e.Bank(), 3)
}

func TestEngine_PerfectRound(t *testing.T) {
	e := newTestEngine(t, animals, DefaultRules())

	st := NewSessionState()
	assert.Equal(t, PhaseModeSelect, st.Phase())

	st = mustApply(t, e, st, SelectMode(ModeEngToChi))
	require.Equal(t, PhaseInRound, st.Phase())
	assert.Equal(t, 1, st.Round)
	require.Equal(t, 3, st.Plan.Len())

	for i := 0; i < 3; i++ {
		q, ok := e.CurrentQuestion(st)
		require.True(t, ok)
		assert.Equal(t, models.EngToChiMC, q.SubMode)
		assert.Equal(t, i, q.Position)
		require.Len(t, q.Options, 2)

		st = mustApply(t, e, st, ChooseOption(q.Index, q.Term.Chinese))
		assert.Equal(t, Submit(), PrimaryAction(st))

		st = mustApply(t, e, st, Submit())
		assert.True(t, st.Submitted)
		require.NotNil(t, st.Feedback)
		assert.True(t, st.Feedback.Correct)
		assert.Equal(t, Advance(), PrimaryAction(st))

		st = mustApply(t, e, st, Advance())
	}

	assert.Equal(t, PhaseAskContinue, st.Phase())
	score, total := st.RoundResult()
	assert.Equal(t, 3, score)
	assert.Equal(t, 3, total)

	s := st.Summary()
	assert.Equal(t, 3, s.TotalAnswered)
	assert.Equal(t, 3, s.TotalCorrect)
	assert.Equal(t, "100.0%", s.AccuracyText())

	for _, rec := range st.Records {
		assert.Equal(t, 1, rec.Round)
		assert.Len(t, rec.Options, 2)
		assert.False(t, rec.AnsweredAt.IsZero())
	}
}

func TestEngine_TypedAnswerIsTrimmedAndCaseInsensitive(t *testing.T) {
	bank := []models.TermPair{{English: "Elephant", Chinese: "大象"}}
	e := newTestEngine(t, bank, DefaultRules())

	st := mustApply(t, e, nil, SelectMode(ModeChiToEngInput))
	q, ok := e.CurrentQuestion(st)
	require.True(t, ok)
	assert.Nil(t, q.Options)
	assert.Equal(t, "(提示: E ... t)", q.Hint)

	st = mustApply(t, e, st, TypeAnswer(q.Index, " elephant "))
	st = mustApply(t, e, st, Submit())

	require.Len(t, st.Records, 1)
	rec := st.Records[0]
	assert.True(t, rec.IsCorrect)
	assert.Equal(t, "elephant", rec.StudentAnswer)
	assert.Equal(t, "Elephant", rec.CorrectAnswer)
	assert.Equal(t, "大象", rec.Prompt)
	assert.Nil(t, rec.Options)
	assert.Equal(t, "elephant", st.AnswerCache)
}

func TestEngine_EmptyTypedAnswerIsWrong(t *testing.T) {
	bank := []models.TermPair{{English: "Elephant", Chinese: "大象"}}
	e := newTestEngine(t, bank, DefaultRules())

	st := mustApply(t, e, nil, SelectMode(ModeChiToEngInput))
	st = mustApply(t, e, st, Submit())

	require.Len(t, st.Records, 1)
	assert.False(t, st.Records[0].IsCorrect)
	assert.Contains(t, st.Feedback.Message, "Elephant")
	assert.Contains(t, st.Feedback.Message, "大象")
}

func TestEngine_SubmitWithoutSelection(t *testing.T) {
	e := newTestEngine(t, animals, DefaultRules())
	st := mustApply(t, e, nil, SelectMode(ModeChiToEng))

	next, err := e.Apply(st, Submit())

	assert.ErrorIs(t, err, ErrNoAnswerSelected)
	assert.Same(t, st, next)
	assert.False(t, st.Submitted)
	assert.Empty(t, st.Records)
	assert.Empty(t, st.UsedKeys)
}

func TestEngine_ApplyDoesNotMutateInput(t *testing.T) {
	e := newTestEngine(t, animals, DefaultRules())
	st := mustApply(t, e, nil, SelectMode(ModeEngToChi))
	before := st.Clone()

	q, _ := e.CurrentQuestion(st)
	next := mustApply(t, e, st, ChooseOption(q.Index, q.CorrectAnswer))
	next = mustApply(t, e, next, Submit())

	assert.Equal(t, before, st)
	assert.NotEqual(t, before, next)
}

func TestEngine_ThreeRoundsThenDone(t *testing.T) {
	e := newTestEngine(t, animals, Rules{QuestionsPerRound: 2, MaxRounds: 3})
	st := mustApply(t, e, nil, SelectMode(ModeEngToChi))
	firstRun := st.SessionID

	// Round 1 draws two of the three terms.
	require.Equal(t, 2, st.Plan.Len())
	st = answerRound(t, e, st, true)
	require.Equal(t, PhaseAskContinue, st.Phase())
	assert.Len(t, st.UsedKeys, 2)

	// Round 2 only has the remaining term left.
	st = mustApply(t, e, st, ContinueRound())
	assert.Equal(t, 2, st.Round)
	require.Equal(t, 1, st.Plan.Len())
	st = answerRound(t, e, st, false)
	require.Equal(t, PhaseAskContinue, st.Phase())
	assert.Len(t, st.UsedKeys, 3)

	// Round 3 starts a new cycle over the whole bank.
	st = mustApply(t, e, st, ContinueRound())
	assert.Equal(t, 3, st.Round)
	require.Equal(t, 2, st.Plan.Len())
	st = answerRound(t, e, st, true)

	assert.Equal(t, PhaseDone, st.Phase())
	assert.Equal(t, 0, st.Round)
	assert.False(t, st.AskContinue)
	assert.False(t, st.ShowWrongReview)
	assert.Len(t, st.UsedKeys, 2)
	assert.Equal(t, firstRun, st.SessionID)

	require.Len(t, st.Records, 5)
	assert.Equal(t, []int{1, 1, 2, 3, 3}, []int{
		st.Records[0].Round, st.Records[1].Round, st.Records[2].Round,
		st.Records[3].Round, st.Records[4].Round,
	})

	s := st.Summary()
	assert.Equal(t, 4, s.TotalCorrect)
	assert.Equal(t, "80.0%", s.AccuracyText())
	assert.Len(t, st.WrongAnswers(), 1)
	assert.Equal(t, 2, st.WrongAnswers()[0].Round)
}

func TestEngine_StopAndReview(t *testing.T) {
	e := newTestEngine(t, bankOf(6), Rules{QuestionsPerRound: 2, MaxRounds: 3})
	st := mustApply(t, e, nil, SelectMode(ModeChiToEng))

	st = answerCurrent(t, e, st, false)
	st = answerCurrent(t, e, st, true)
	require.Equal(t, PhaseAskContinue, st.Phase())

	st = mustApply(t, e, st, StopAndReview())
	assert.Equal(t, PhaseDone, st.Phase())
	assert.Equal(t, 0, st.Round)
	assert.True(t, st.ShowWrongReview)
	require.Len(t, st.WrongAnswers(), 1)
	assert.Equal(t, 1, st.WrongAnswers()[0].Round)

	st = mustApply(t, e, st, ToggleWrongReview())
	assert.False(t, st.ShowWrongReview)
	st = mustApply(t, e, st, ToggleWrongReview())
	assert.True(t, st.ShowWrongReview)
}

func TestEngine_RestartSameMode(t *testing.T) {
	e := newTestEngine(t, animals, Rules{QuestionsPerRound: 3, MaxRounds: 1})
	st := mustApply(t, e, nil, UpdateLearner(models.Learner{Name: " Amy ", Class: "701", Seat: "5"}))
	st = mustApply(t, e, st, SelectMode(ModeMixed))
	firstRun := st.SessionID

	st = answerRound(t, e, st, true)
	require.Equal(t, PhaseDone, st.Phase())

	st = mustApply(t, e, st, RestartSameMode())
	assert.Equal(t, PhaseInRound, st.Phase())
	assert.Equal(t, ModeMixed, st.Mode)
	assert.Equal(t, 1, st.Round)
	assert.Empty(t, st.Records)
	assert.Empty(t, st.UsedKeys)
	assert.NotEqual(t, firstRun, st.SessionID)
	assert.Equal(t, "Amy", st.Learner.Name)
}

func TestEngine_ChooseDifferentMode(t *testing.T) {
	e := newTestEngine(t, animals, DefaultRules())
	st := mustApply(t, e, nil, SelectMode(ModeEngToChi))
	st = answerCurrent(t, e, st, true)

	st = mustApply(t, e, st, ChooseDifferentMode())
	assert.Equal(t, PhaseModeSelect, st.Phase())
	assert.Empty(t, st.Mode)
	assert.Empty(t, st.Records)

	st = mustApply(t, e, st, SelectMode(ModeChiToEngInput))
	q, ok := e.CurrentQuestion(st)
	require.True(t, ok)
	assert.Equal(t, models.ChiToEngInput, q.SubMode)
}

func TestEngine_MixedModeRun(t *testing.T) {
	e := newTestEngine(t, bankOf(30), DefaultRules())
	st := mustApply(t, e, nil, SelectMode(ModeMixed))

	for st.Phase() != PhaseDone {
		if st.Phase() == PhaseAskContinue {
			st = mustApply(t, e, st, ContinueRound())
			continue
		}
		st = answerCurrent(t, e, st, true)
	}

	s := st.Summary()
	assert.Equal(t, 30, s.TotalAnswered)
	assert.Equal(t, 30, s.TotalCorrect)
	for _, rec := range st.Records {
		assert.True(t, rec.SubMode.Valid())
		assert.Equal(t, rec.SubMode.IsMultipleChoice(), rec.Options != nil)
	}
}

func TestEngine_RejectedActions(t *testing.T) {
	e := newTestEngine(t, animals, DefaultRules())
	fresh := NewSessionState()
	inRound := mustApply(t, e, fresh, SelectMode(ModeEngToChi))
	q, _ := e.CurrentQuestion(inRound)
	other := (q.Index + 1) % len(animals)

	selected := mustApply(t, e, inRound, ChooseOption(q.Index, q.CorrectAnswer))
	submitted := mustApply(t, e, selected, Submit())

	tests := []struct {
		name   string
		state  *SessionState
		action Action
		want   error
	}{
		{"submit before mode", fresh, Submit(), ErrInvalidAction},
		{"continue before mode", fresh, ContinueRound(), ErrInvalidAction},
		{"change mode before mode", fresh, ChooseDifferentMode(), ErrInvalidAction},
		{"unknown mode", fresh, SelectMode("bogus"), ErrUnknownMode},
		{"select mode twice", inRound, SelectMode(ModeChiToEng), ErrInvalidAction},
		{"advance before submit", inRound, Advance(), ErrNotSubmitted},
		{"restart mid round", inRound, RestartSameMode(), ErrInvalidAction},
		{"stop mid round", inRound, StopAndReview(), ErrInvalidAction},
		{"toggle review mid round", inRound, ToggleWrongReview(), ErrInvalidAction},
		{"stale question", inRound, ChooseOption(other, q.CorrectAnswer), ErrStaleQuestion},
		{"unknown option", inRound, ChooseOption(q.Index, "不存在"), ErrUnknownOption},
		{"typing on multiple choice", inRound, TypeAnswer(q.Index, "x"), ErrInvalidAction},
		{"submit twice", submitted, Submit(), ErrAlreadySubmitted},
		{"choose after submit", submitted, ChooseOption(q.Index, q.CorrectAnswer), ErrAlreadySubmitted},
		{"unknown kind", inRound, Action{Kind: 99}, ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.state.Clone()
			next, err := e.Apply(tt.state, tt.action)

			assert.ErrorIs(t, err, tt.want)
			assert.Same(t, tt.state, next)
			assert.Equal(t, before, tt.state)
		})
	}
}

func TestEngine_OptionsStayFixedAcrossActions(t *testing.T) {
	e := newTestEngine(t, bankOf(10), DefaultRules())
	st := mustApply(t, e, nil, SelectMode(ModeChiToEng))

	q1, _ := e.CurrentQuestion(st)
	st = mustApply(t, e, st, ChooseOption(q1.Index, q1.Options[0]))
	q2, _ := e.CurrentQuestion(st)
	st = mustApply(t, e, st, Submit())

	assert.Equal(t, q1.Options, q2.Options)
	assert.Equal(t, q1.Options, st.Records[0].Options)
}
