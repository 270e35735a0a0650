package quiz

import "errors"

var (
	// ErrEmptyBank is returned when an engine is built without terms
	ErrEmptyBank = errors.New("term bank is empty")
	// ErrInvalidRules is returned for non-positive round limits
	ErrInvalidRules = errors.New("invalid quiz rules")
	// ErrUnknownMode is returned for a mode code outside Modes
	ErrUnknownMode = errors.New("unknown quiz mode")

	// ErrInvalidAction is returned when an action does not apply to the current phase
	ErrInvalidAction = errors.New("action not allowed in current phase")
	// ErrNoAnswerSelected is returned when a multiple choice question is submitted without a choice
	ErrNoAnswerSelected = errors.New("no answer selected")
	// ErrAlreadySubmitted is returned when the current question was already graded
	ErrAlreadySubmitted = errors.New("question already submitted")
	// ErrNotSubmitted is returned when advancing past an unanswered question
	ErrNotSubmitted = errors.New("question not submitted yet")
	// ErrStaleQuestion is returned when an action targets a question that is no longer current
	ErrStaleQuestion = errors.New("action targets a question that is not current")
	// ErrUnknownOption is returned when the chosen value is not one of the displayed options
	ErrUnknownOption = errors.New("option is not displayed for this question")
)
