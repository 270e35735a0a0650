package quiz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/example/wordquiz/pkg/models"
)

// Rules bounds the size of a quiz run
type Rules struct {
	QuestionsPerRound int
	MaxRounds         int
}

// DefaultRules returns ten questions per round and at most three rounds
func DefaultRules() Rules {
	return Rules{
		QuestionsPerRound: 10,
		MaxRounds:         3,
	}
}

// Engine applies learner actions to session states. It holds the read-only
// term bank shared by every session, so one engine serves all of them as long
// as callers do not use it from several goroutines at once.
type Engine struct {
	bank  []models.TermPair
	rules Rules
	rng   *rand.Rand
	now   func() time.Time
}

// NewEngine creates an engine over a non-empty term bank. A nil rng is
// replaced by a time-seeded one.
func NewEngine(bank []models.TermPair, rules Rules, rng *rand.Rand) (*Engine, error) {
	if len(bank) == 0 {
		return nil, ErrEmptyBank
	}
	if rules.QuestionsPerRound <= 0 || rules.MaxRounds <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidRules, rules)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Engine{
		bank:  bank,
		rules: rules,
		rng:   rng,
		now:   time.Now,
	}, nil
}

// Bank returns the term bank
func (e *Engine) Bank() []models.TermPair {
	return e.bank
}

// Rules returns the round limits
func (e *Engine) Rules() Rules {
	return e.rules
}

// Apply runs one action against st and returns the resulting state. st is
// never modified: on error it is returned unchanged together with the error,
// so a rejected action cannot corrupt the session. A nil st is treated as a
// fresh session.
func (e *Engine) Apply(st *SessionState, a Action) (*SessionState, error) {
	if st == nil {
		st = NewSessionState()
	}

	next := st.Clone()
	if err := e.apply(next, a); err != nil {
		return st, fmt.Errorf("%s: %w", a.Kind, err)
	}
	e.prepare(next)
	return next, nil
}

func (e *Engine) apply(st *SessionState, a Action) error {
	phase := st.Phase()

	switch a.Kind {
	case ActionSelectMode:
		if phase != PhaseModeSelect {
			return ErrInvalidAction
		}
		if _, err := ParseMode(string(a.Mode)); err != nil {
			return err
		}
		st.Mode = a.Mode
		st.ModeLocked = true
		st.resetRun()
		e.startRound(st)

	case ActionChooseOption:
		q, err := e.openQuestion(st, a.QIndex)
		if err != nil {
			return err
		}
		if !q.SubMode.IsMultipleChoice() {
			return ErrInvalidAction
		}
		for _, opt := range q.Options {
			if opt == a.Value {
				st.Selected = opt
				return nil
			}
		}
		return ErrUnknownOption

	case ActionTypeAnswer:
		q, err := e.openQuestion(st, a.QIndex)
		if err != nil {
			return err
		}
		if q.SubMode.IsMultipleChoice() {
			return ErrInvalidAction
		}
		st.AnswerCache = a.Value

	case ActionSubmit:
		if phase != PhaseInRound {
			return ErrInvalidAction
		}
		if st.Submitted {
			return ErrAlreadySubmitted
		}
		return e.submit(st)

	case ActionAdvance:
		if phase != PhaseInRound {
			return ErrInvalidAction
		}
		if !st.Submitted {
			return ErrNotSubmitted
		}
		e.advance(st)

	case ActionContinueRound:
		if phase != PhaseAskContinue {
			return ErrInvalidAction
		}
		st.Round++
		st.AskContinue = false
		e.startRound(st)

	case ActionStopAndReview:
		if phase != PhaseAskContinue {
			return ErrInvalidAction
		}
		st.AskContinue = false
		st.QuizDone = true
		st.Round = 0
		st.ShowWrongReview = true

	case ActionRestartSameMode:
		if phase != PhaseDone {
			return ErrInvalidAction
		}
		st.resetRun()
		e.startRound(st)

	case ActionChooseDifferentMode:
		if phase == PhaseModeSelect {
			return ErrInvalidAction
		}
		st.ModeLocked = false
		st.Mode = ""
		st.resetRun()

	case ActionToggleWrongReview:
		if phase != PhaseDone {
			return ErrInvalidAction
		}
		st.ShowWrongReview = !st.ShowWrongReview

	case ActionUpdateLearner:
		st.Learner = models.Learner{
			Name:  strings.TrimSpace(a.Learner.Name),
			Class: strings.TrimSpace(a.Learner.Class),
			Seat:  strings.TrimSpace(a.Learner.Seat),
		}

	default:
		return fmt.Errorf("%w: unknown action kind %d", ErrInvalidAction, a.Kind)
	}

	return nil
}

// CurrentQuestion returns the open question of a session in PhaseInRound.
// Options of a multiple choice question are memoized into st on first use.
func (e *Engine) CurrentQuestion(st *SessionState) (Question, bool) {
	if st.Phase() != PhaseInRound {
		return Question{}, false
	}
	st.ensureMaps()

	qIndex := st.Plan.Indices[st.Position]
	sub := st.Plan.SubModes[st.Position]
	term := e.bank[qIndex]
	prompt, text, correct, hint := buildPrompt(term, sub)

	return Question{
		Round:         st.Round,
		Position:      st.Position,
		Total:         st.Plan.Len(),
		Index:         qIndex,
		SubMode:       sub,
		Term:          term,
		Prompt:        prompt,
		Text:          text,
		CorrectAnswer: correct,
		Hint:          hint,
		Options:       OptionsFor(e.bank, qIndex, sub, st.OptionCache, e.rng),
	}, true
}

// openQuestion returns the current question when it still accepts an answer
// and is the one the action refers to.
func (e *Engine) openQuestion(st *SessionState, qIndex int) (Question, error) {
	q, ok := e.CurrentQuestion(st)
	if !ok {
		return Question{}, ErrInvalidAction
	}
	if st.Submitted {
		return Question{}, ErrAlreadySubmitted
	}
	if q.Index != qIndex {
		return Question{}, ErrStaleQuestion
	}
	return q, nil
}

// startRound draws a new round plan and clears the per-round fields
func (e *Engine) startRound(st *SessionState) {
	st.Plan, st.UsedKeys = SampleRound(e.bank, st.UsedKeys, st.Mode, e.rules.QuestionsPerRound, e.rng)
	st.Position = 0
	st.RoundScore = 0
	st.Submitted = false
	st.Selected = ""
	st.AnswerCache = ""
	st.Feedback = nil
	st.OptionCache = make(map[string][]string)
	st.AskContinue = false
}

// submit grades the current question and appends its record
func (e *Engine) submit(st *SessionState) error {
	q, _ := e.CurrentQuestion(st)

	var raw string
	if q.SubMode.IsMultipleChoice() {
		if st.Selected == "" {
			return ErrNoAnswerSelected
		}
		raw = st.Selected
	} else {
		raw = st.AnswerCache
	}

	answer, correct := Grade(q.CorrectAnswer, raw)
	if !q.SubMode.IsMultipleChoice() {
		st.AnswerCache = answer
	}

	st.UsedKeys[q.Term.English] = struct{}{}
	st.Records = append(st.Records, models.AnswerRecord{
		Round:         st.Round,
		Prompt:        q.Prompt,
		StudentAnswer: answer,
		CorrectAnswer: q.CorrectAnswer,
		IsCorrect:     correct,
		Options:       q.Options,
		SubMode:       q.SubMode,
		AnsweredAt:    e.now(),
	})
	if correct {
		st.RoundScore++
	}

	fb := feedbackFor(q.Term, q.SubMode, correct)
	st.Feedback = &fb
	st.Submitted = true
	return nil
}

// advance moves past a submitted question and closes the round after the last one
func (e *Engine) advance(st *SessionState) {
	st.Position++
	st.Submitted = false
	st.Selected = ""
	st.AnswerCache = ""
	st.Feedback = nil

	if st.Position < st.Plan.Len() {
		return
	}
	if st.Round < e.rules.MaxRounds {
		st.AskContinue = true
		return
	}
	st.QuizDone = true
	st.Round = 0
}

// prepare memoizes the options of the open question so that the state a
// host persists already carries the order it is about to display.
func (e *Engine) prepare(st *SessionState) {
	e.CurrentQuestion(st)
}
