package quiz

import (
	"github.com/google/uuid"
	"github.com/mohae/deepcopy"

	"github.com/example/wordquiz/pkg/models"
)

// Phase is the position of a session in the quiz lifecycle
type Phase int

const (
	PhaseModeSelect Phase = iota
	PhaseInRound
	PhaseAskContinue
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseModeSelect:
		return "mode_select"
	case PhaseInRound:
		return "in_round"
	case PhaseAskContinue:
		return "ask_continue"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// RoundPlan is the fixed question list of one round. Indices point into the
// term bank; SubModes runs parallel to Indices.
type RoundPlan struct {
	Indices  []int            `json:"indices"`
	SubModes []models.SubMode `json:"submodes"`
}

// Len returns the number of questions in the round
func (p RoundPlan) Len() int {
	return len(p.Indices)
}

// Feedback is shown under a question once it has been submitted
type Feedback struct {
	Correct bool   `json:"correct"`
	Message string `json:"message"`
}

// SessionState is everything a host persists between two interactions of
// one learner. Transitions never mutate a state in place; see Engine.Apply.
type SessionState struct {
	SessionID string         `json:"session_id"` // regenerated for every quiz run
	Learner   models.Learner `json:"learner"`

	ModeLocked bool `json:"mode_locked"`
	Mode       Mode `json:"mode,omitempty"`

	Round      int       `json:"round"` // 1-based, 0 once the quiz has ended
	Plan       RoundPlan `json:"plan"`
	Position   int       `json:"position"` // 0-based index into Plan
	RoundScore int       `json:"round_score"`

	Submitted   bool      `json:"submitted"`
	Selected    string    `json:"selected,omitempty"`     // pending multiple choice answer
	AnswerCache string    `json:"answer_cache,omitempty"` // pending or submitted typed answer
	Feedback    *Feedback `json:"feedback,omitempty"`

	OptionCache map[string][]string   `json:"option_cache"`
	UsedKeys    map[string]struct{}   `json:"used_keys"`
	Records     []models.AnswerRecord `json:"records"`

	AskContinue     bool `json:"ask_continue"`
	QuizDone        bool `json:"quiz_done"`
	ShowWrongReview bool `json:"show_wrong_review"`
}

// NewSessionState returns a session waiting for a mode to be chosen
func NewSessionState() *SessionState {
	st := &SessionState{}
	st.resetRun()
	return st
}

// Phase derives the lifecycle phase from the session flags
func (st *SessionState) Phase() Phase {
	switch {
	case !st.ModeLocked:
		return PhaseModeSelect
	case st.QuizDone:
		return PhaseDone
	case st.AskContinue:
		return PhaseAskContinue
	case st.Round > 0 && st.Position < st.Plan.Len():
		return PhaseInRound
	default:
		return PhaseDone
	}
}

// Clone returns a deep copy that shares nothing with st
func (st *SessionState) Clone() *SessionState {
	cp := deepcopy.Copy(st).(*SessionState)
	cp.ensureMaps()
	return cp
}

// Summary aggregates every answer of the current quiz run
func (st *SessionState) Summary() Summary {
	return Summarize(st.Records)
}

// WrongAnswers returns the wrong records of the current quiz run in answer order
func (st *SessionState) WrongAnswers() []models.AnswerRecord {
	return WrongAnswers(st.Records)
}

// RoundResult reports the score of the round in progress or just finished
func (st *SessionState) RoundResult() (score, total int) {
	return st.RoundScore, st.Plan.Len()
}

// resetRun clears everything that belongs to one quiz run. Mode and learner
// fields are left alone.
func (st *SessionState) resetRun() {
	st.SessionID = uuid.NewString()
	st.Round = 1
	st.Plan = RoundPlan{}
	st.Position = 0
	st.RoundScore = 0
	st.Submitted = false
	st.Selected = ""
	st.AnswerCache = ""
	st.Feedback = nil
	st.OptionCache = make(map[string][]string)
	st.UsedKeys = make(map[string]struct{})
	st.Records = nil
	st.AskContinue = false
	st.QuizDone = false
	st.ShowWrongReview = false
}

func (st *SessionState) ensureMaps() {
	if st.OptionCache == nil {
		st.OptionCache = make(map[string][]string)
	}
	if st.UsedKeys == nil {
		st.UsedKeys = make(map[string]struct{})
	}
}
