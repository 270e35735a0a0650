package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/wordquiz/internal/quiz"
)

// Button keys. Option and mode keys carry a payload after the prefix.
const (
	KeyNext     = "next"
	KeyContinue = "continue"
	KeyStop     = "stop"
	KeyRestart  = "restart"
	KeyModes    = "modes"
	KeyReview   = "review"

	modePrefix   = "mode:"
	optionPrefix = "opt:"
)

// ErrUnknownKey is returned by Resolve for keys no button produces
var ErrUnknownKey = errors.New("unknown button key")

// ModeKey is the key of a mode menu button
func ModeKey(m quiz.Mode) string {
	return modePrefix + string(m)
}

// OptionKey is the key of an option button. pos is the position of the
// option on screen; qIndex pins the button to its question.
func OptionKey(qIndex, pos int) string {
	return fmt.Sprintf("%s%d:%d", optionPrefix, qIndex, pos)
}

// Resolve turns a button key into the engine action it stands for. Keys of
// outdated buttons still resolve; the engine rejects them.
func Resolve(key string, st *quiz.SessionState, e *quiz.Engine) (quiz.Action, error) {
	switch key {
	case KeyNext:
		return quiz.PrimaryAction(st), nil
	case KeyContinue:
		return quiz.ContinueRound(), nil
	case KeyStop:
		return quiz.StopAndReview(), nil
	case KeyRestart:
		return quiz.RestartSameMode(), nil
	case KeyModes:
		return quiz.ChooseDifferentMode(), nil
	case KeyReview:
		return quiz.ToggleWrongReview(), nil
	}

	if mode, ok := strings.CutPrefix(key, modePrefix); ok {
		return quiz.SelectMode(quiz.Mode(mode)), nil
	}

	if payload, ok := strings.CutPrefix(key, optionPrefix); ok {
		idxStr, posStr, found := strings.Cut(payload, ":")
		if !found {
			return quiz.Action{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
		qIndex, err := strconv.Atoi(idxStr)
		if err != nil {
			return quiz.Action{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
		pos, err := strconv.Atoi(posStr)
		if err != nil {
			return quiz.Action{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}

		var value string
		if q, ok := e.CurrentQuestion(st); ok && q.Index == qIndex && pos >= 0 && pos < len(q.Options) {
			value = q.Options[pos]
		}
		return quiz.ChooseOption(qIndex, value), nil
	}

	return quiz.Action{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Warning is the message shown when an action is rejected
func Warning(err error) string {
	switch {
	case errors.Is(err, quiz.ErrNoAnswerSelected):
		return "⚠️ 請先選擇一個答案"
	case errors.Is(err, quiz.ErrAlreadySubmitted):
		return "⚠️ 這題已經送出，請按「下一題」"
	case errors.Is(err, quiz.ErrStaleQuestion):
		return "⚠️ 這個按鈕屬於之前的題目"
	case errors.Is(err, quiz.ErrUnknownOption):
		return "⚠️ 沒有這個選項"
	case errors.Is(err, quiz.ErrUnknownMode):
		return "⚠️ 沒有這個模式"
	case errors.Is(err, ErrUnknownKey):
		return "⚠️ 無法辨識的操作"
	default:
		return "⚠️ 目前無法執行這個操作"
	}
}
