package models

import "time"

// SubMode is the direction and interaction style of a single question
type SubMode string

const (
	// EngToChiMC shows the english term and asks to pick the chinese one
	EngToChiMC SubMode = "eng_to_chi_mc"
	// ChiToEngMC shows the chinese term and asks to pick the english one
	ChiToEngMC SubMode = "chi_to_eng_mc"
	// ChiToEngInput shows the chinese term and asks to type the english one
	ChiToEngInput SubMode = "chi_to_eng_input"
)

// SubModes lists every sub-mode in display order
var SubModes = []SubMode{EngToChiMC, ChiToEngMC, ChiToEngInput}

// IsMultipleChoice reports whether the sub-mode is answered by picking an option
func (m SubMode) IsMultipleChoice() bool {
	return m == EngToChiMC || m == ChiToEngMC
}

// Valid reports whether m is one of the known sub-modes
func (m SubMode) Valid() bool {
	switch m {
	case EngToChiMC, ChiToEngMC, ChiToEngInput:
		return true
	}
	return false
}

// AnswerRecord is the immutable log entry written when a question is submitted
type AnswerRecord struct {
	Round         int       `json:"round"`
	Prompt        string    `json:"prompt"`         // Term shown to the learner
	StudentAnswer string    `json:"student_answer"` // Trimmed answer as submitted
	CorrectAnswer string    `json:"correct_answer"`
	IsCorrect     bool      `json:"is_correct"`
	Options       []string  `json:"options,omitempty"` // Displayed options, multiple choice only
	SubMode       SubMode   `json:"submode"`
	AnsweredAt    time.Time `json:"answered_at"`
}
