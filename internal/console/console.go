package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/wordquiz/internal/quiz"
	"github.com/example/wordquiz/internal/view"
)

const separator = "────────────────────────"

// Run plays one local quiz session over a line based terminal. It returns
// when the learner quits, the input ends, or ctx is cancelled.
func Run(ctx context.Context, engine *quiz.Engine, in io.Reader, out io.Writer) error {
	st := quiz.NewSessionState()
	show(out, st, engine)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "q") {
			fmt.Fprintln(out, "再見！")
			return nil
		}

		next, err := step(line, st, engine)
		if err != nil {
			fmt.Fprintln(out, view.Warning(err))
			continue
		}
		st = next
		show(out, st, engine)
	}
	return scanner.Err()
}

// step applies what one input line means in the current phase
func step(line string, st *quiz.SessionState, e *quiz.Engine) (*quiz.SessionState, error) {
	actions, err := interpret(line, st, e)
	if err != nil {
		return st, err
	}

	next := st
	for _, a := range actions {
		if next, err = e.Apply(next, a); err != nil {
			return st, err
		}
	}
	return next, nil
}

func interpret(line string, st *quiz.SessionState, e *quiz.Engine) ([]quiz.Action, error) {
	key := strings.ToLower(line)

	switch st.Phase() {
	case quiz.PhaseModeSelect:
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(quiz.Modes) {
			return nil, fmt.Errorf("%w: %q", view.ErrUnknownKey, line)
		}
		return resolve(view.ModeKey(quiz.Modes[n-1]), st, e)

	case quiz.PhaseInRound:
		q, _ := e.CurrentQuestion(st)
		typing := !q.SubMode.IsMultipleChoice() && !st.Submitted

		switch {
		case line == "":
			return resolve(view.KeyNext, st, e)
		case typing:
			return []quiz.Action{quiz.TypeAnswer(q.Index, line), quiz.Submit()}, nil
		case key == "m":
			return resolve(view.KeyModes, st, e)
		}
		if n, err := strconv.Atoi(line); err == nil {
			return resolve(view.OptionKey(q.Index, n-1), st, e)
		}

	case quiz.PhaseAskContinue:
		switch key {
		case "y":
			return resolve(view.KeyContinue, st, e)
		case "n":
			return resolve(view.KeyStop, st, e)
		case "m":
			return resolve(view.KeyModes, st, e)
		}

	case quiz.PhaseDone:
		switch key {
		case "r":
			return resolve(view.KeyRestart, st, e)
		case "m":
			return resolve(view.KeyModes, st, e)
		case "w":
			return resolve(view.KeyReview, st, e)
		}
	}

	return nil, fmt.Errorf("%w: %q", view.ErrUnknownKey, line)
}

func resolve(key string, st *quiz.SessionState, e *quiz.Engine) ([]quiz.Action, error) {
	a, err := view.Resolve(key, st, e)
	if err != nil {
		return nil, err
	}
	return []quiz.Action{a}, nil
}

func show(out io.Writer, st *quiz.SessionState, e *quiz.Engine) {
	fmt.Fprintln(out, separator)
	fmt.Fprintln(out, view.Render(st, e).Text)
	fmt.Fprintln(out)
	fmt.Fprintln(out, legend(st, e))
}

// legend lists the keys that mean something on the current screen
func legend(st *quiz.SessionState, e *quiz.Engine) string {
	var b strings.Builder

	switch st.Phase() {
	case quiz.PhaseModeSelect:
		for i, m := range quiz.Modes {
			fmt.Fprintf(&b, "%d) %s\n", i+1, m.Label())
		}
		fmt.Fprintf(&b, "輸入 1-%d 選擇模式，q 離開", len(quiz.Modes))

	case quiz.PhaseInRound:
		q, _ := e.CurrentQuestion(st)
		switch {
		case st.Submitted:
			b.WriteString("Enter 下一題，m 換模式，q 離開")
		case q.SubMode.IsMultipleChoice():
			for i, opt := range q.Options {
				mark := " "
				if opt == st.Selected {
					mark = "*"
				}
				fmt.Fprintf(&b, "%s%d) %s\n", mark, i+1, opt)
			}
			b.WriteString("輸入數字選擇答案，Enter 送出，m 換模式，q 離開")
		default:
			b.WriteString("輸入英文答案後按 Enter，q 離開")
		}

	case quiz.PhaseAskContinue:
		b.WriteString("y 繼續下一輪，n 結束並檢討，m 換模式，q 離開")

	case quiz.PhaseDone:
		b.WriteString("r 同模式再玩一次，m 換模式，w 顯示/隱藏錯題，q 離開")
	}

	return b.String()
}
