package quiz

import (
	"fmt"

	"github.com/example/wordquiz/pkg/models"
)

// Mode is the practice mode a learner locks in before the first round
type Mode string

const (
	// ModeEngToChi asks every question as english -> chinese multiple choice
	ModeEngToChi Mode = Mode(models.EngToChiMC)
	// ModeChiToEng asks every question as chinese -> english multiple choice
	ModeChiToEng Mode = Mode(models.ChiToEngMC)
	// ModeChiToEngInput asks every question as chinese -> typed english
	ModeChiToEngInput Mode = Mode(models.ChiToEngInput)
	// ModeMixed draws one of the three sub-modes per question
	ModeMixed Mode = "mixed"
)

// Modes lists the selectable modes in menu order
var Modes = []Mode{ModeEngToChi, ModeChiToEng, ModeChiToEngInput, ModeMixed}

var modeLabels = map[Mode]string{
	ModeEngToChi:      "模式一：English ➜ 中文",
	ModeChiToEng:      "模式二：中文 ➜ English",
	ModeChiToEngInput: "模式三：中文 ➜ English（手寫，提示首尾）",
	ModeMixed:         "模式四：混合 (1~3)",
}

// ParseMode validates a mode code
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := modeLabels[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Label returns the menu text of the mode
func (m Mode) Label() string {
	if label, ok := modeLabels[m]; ok {
		return label
	}
	return string(m)
}

// SubMode returns the single sub-mode implied by m. Mixed has none.
func (m Mode) SubMode() (models.SubMode, bool) {
	if m == ModeMixed {
		return "", false
	}
	sub := models.SubMode(m)
	return sub, sub.Valid()
}
