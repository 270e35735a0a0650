package view

import (
	"fmt"
	"strings"

	"github.com/example/wordquiz/internal/quiz"
	"github.com/example/wordquiz/pkg/models"
)

// Button is one selectable control. Key is what a host sends back to Resolve.
type Button struct {
	Label string
	Key   string
}

// View is the screen of a session: a text block and rows of buttons
type View struct {
	Text    string
	Buttons [][]Button
}

// Render describes what a learner sees for st. It reads the options that
// Engine.Apply already cached, so rendering a stored state changes nothing.
func Render(st *quiz.SessionState, e *quiz.Engine) View {
	var v View
	switch st.Phase() {
	case quiz.PhaseModeSelect:
		v = renderModeSelect()
	case quiz.PhaseInRound:
		v = renderQuestion(st, e)
	case quiz.PhaseAskContinue:
		v = renderAskContinue(st, e)
	default:
		v = renderDone(st)
	}

	if line := LearnerLine(st.Learner); line != "" {
		v.Text = line + "\n\n" + v.Text
	}
	return v
}

// LearnerLine formats the optional identity fields
func LearnerLine(l models.Learner) string {
	if l.IsEmpty() {
		return ""
	}

	var parts []string
	if l.Name != "" {
		parts = append(parts, l.Name)
	}
	if l.Class != "" {
		parts = append(parts, "班級 "+l.Class)
	}
	if l.Seat != "" {
		parts = append(parts, "座號 "+l.Seat)
	}
	return "👤 " + strings.Join(parts, "｜")
}

func renderModeSelect() View {
	rows := make([][]Button, 0, len(quiz.Modes))
	for _, m := range quiz.Modes {
		rows = append(rows, []Button{{Label: m.Label(), Key: ModeKey(m)}})
	}
	return View{
		Text:    "📚 英文單字練習\n\n請選擇練習模式：",
		Buttons: rows,
	}
}

func renderQuestion(st *quiz.SessionState, e *quiz.Engine) View {
	q, _ := e.CurrentQuestion(st)
	multipleChoice := q.SubMode.IsMultipleChoice()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n第 %d 輪｜第 %d/%d 題（%d%%）\n\n", st.Mode.Label(), q.Round, q.Number(), q.Total, q.Percent())
	b.WriteString(q.Text)

	var rows [][]Button
	switch {
	case st.Submitted:
		answer := st.AnswerCache
		if multipleChoice {
			answer = st.Selected
		}
		if answer == "" {
			answer = "（未作答）"
		}
		fmt.Fprintf(&b, "\n\n你的答案：%s", answer)
		if st.Feedback != nil {
			b.WriteString("\n" + st.Feedback.Message)
		}
		if multipleChoice {
			b.WriteString("\n\n選項：")
			for _, line := range quiz.DescribeOptions(e.Bank(), q.Options) {
				b.WriteString("\n• " + line)
			}
		}
	case multipleChoice:
		for i, opt := range q.Options {
			label := opt
			if opt == st.Selected {
				label = "🔘 " + opt
			}
			rows = append(rows, []Button{{Label: label, Key: OptionKey(q.Index, i)}})
		}
	default:
		b.WriteString("\n\n✏️ 請直接輸入英文答案")
	}

	rows = append(rows,
		[]Button{{Label: quiz.PrimaryLabel(st), Key: KeyNext}},
		[]Button{{Label: "🔀 換模式", Key: KeyModes}},
	)
	return View{Text: b.String(), Buttons: rows}
}

func renderAskContinue(st *quiz.SessionState, e *quiz.Engine) View {
	score, total := st.RoundResult()
	summary := st.Summary()

	text := fmt.Sprintf("第 %d 輪結束：答對 %d / %d 題\n目前累計正確率 %s\n\n要繼續下一輪嗎？（共 %d 輪）",
		st.Round, score, total, summary.AccuracyText(), e.Rules().MaxRounds)

	return View{
		Text: text,
		Buttons: [][]Button{
			{{Label: "▶️ 繼續下一輪", Key: KeyContinue}, {Label: "⏹ 結束並檢討", Key: KeyStop}},
			{{Label: "🔀 換模式", Key: KeyModes}},
		},
	}
}

func renderDone(st *quiz.SessionState) View {
	var b strings.Builder
	b.WriteString("🏁 測驗結束\n")
	b.WriteString(SummaryText(st))

	reviewLabel := "📋 顯示錯題"
	if st.ShowWrongReview {
		reviewLabel = "📋 隱藏錯題"
		b.WriteString("\n\n" + WrongReviewText(st))
	}

	return View{
		Text: b.String(),
		Buttons: [][]Button{
			{{Label: "🔁 同模式再玩一次", Key: KeyRestart}},
			{{Label: "🔀 換模式", Key: KeyModes}},
			{{Label: reviewLabel, Key: KeyReview}},
		},
	}
}

// SummaryText reports the totals of the current quiz run
func SummaryText(st *quiz.SessionState) string {
	s := st.Summary()
	return fmt.Sprintf("作答 %d 題，答對 %d 題，正確率 %s", s.TotalAnswered, s.TotalCorrect, s.AccuracyText())
}

// WrongReviewText lists every wrong answer of the run in answer order
func WrongReviewText(st *quiz.SessionState) string {
	wrong := st.WrongAnswers()
	if len(wrong) == 0 {
		return "🎉 沒有錯題！"
	}

	var b strings.Builder
	b.WriteString("📋 錯題回顧：")
	for i, rec := range wrong {
		answer := rec.StudentAnswer
		if answer == "" {
			answer = "（未作答）"
		}
		fmt.Fprintf(&b, "\n%d. [第%d輪] %s → 你的答案：%s，正確答案：%s", i+1, rec.Round, rec.Prompt, answer, rec.CorrectAnswer)
	}
	return b.String()
}
