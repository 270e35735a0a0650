package quiz

import "github.com/example/wordquiz/pkg/models"

// ActionKind identifies a learner action
type ActionKind int

const (
	ActionSelectMode ActionKind = iota + 1
	ActionChooseOption
	ActionTypeAnswer
	ActionSubmit
	ActionAdvance
	ActionContinueRound
	ActionStopAndReview
	ActionRestartSameMode
	ActionChooseDifferentMode
	ActionToggleWrongReview
	ActionUpdateLearner
)

var actionNames = map[ActionKind]string{
	ActionSelectMode:          "select_mode",
	ActionChooseOption:        "choose_option",
	ActionTypeAnswer:          "type_answer",
	ActionSubmit:              "submit",
	ActionAdvance:             "advance",
	ActionContinueRound:       "continue_round",
	ActionStopAndReview:       "stop_and_review",
	ActionRestartSameMode:     "restart_same_mode",
	ActionChooseDifferentMode: "choose_different_mode",
	ActionToggleWrongReview:   "toggle_wrong_review",
	ActionUpdateLearner:       "update_learner",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return "unknown_action"
}

// Action is one learner interaction. Only the fields relevant to Kind are read.
type Action struct {
	Kind    ActionKind
	Mode    Mode
	QIndex  int // term bank index of the question the action refers to
	Value   string
	Learner models.Learner
}

func SelectMode(m Mode) Action { return Action{Kind: ActionSelectMode, Mode: m} }

func ChooseOption(qIndex int, value string) Action {
	return Action{Kind: ActionChooseOption, QIndex: qIndex, Value: value}
}

func TypeAnswer(qIndex int, text string) Action {
	return Action{Kind: ActionTypeAnswer, QIndex: qIndex, Value: text}
}

func Submit() Action              { return Action{Kind: ActionSubmit} }
func Advance() Action             { return Action{Kind: ActionAdvance} }
func ContinueRound() Action       { return Action{Kind: ActionContinueRound} }
func StopAndReview() Action       { return Action{Kind: ActionStopAndReview} }
func RestartSameMode() Action     { return Action{Kind: ActionRestartSameMode} }
func ChooseDifferentMode() Action { return Action{Kind: ActionChooseDifferentMode} }
func ToggleWrongReview() Action   { return Action{Kind: ActionToggleWrongReview} }

func UpdateLearner(l models.Learner) Action {
	return Action{Kind: ActionUpdateLearner, Learner: l}
}

// PrimaryAction resolves the single action button of a question: Submit
// before grading, Advance afterwards.
func PrimaryAction(st *SessionState) Action {
	if st.Submitted {
		return Advance()
	}
	return Submit()
}

// PrimaryLabel is the caption of the action button
func PrimaryLabel(st *SessionState) string {
	if st.Submitted {
		return "下一題"
	}
	return "送出答案"
}
