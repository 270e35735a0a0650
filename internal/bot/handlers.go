package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/wordquiz/internal/quiz"
	"github.com/example/wordquiz/internal/view"
)

const helpText = `📚 英文單字練習

/start - 開始新的練習
/mode - 重新選擇練習模式
/name 名字 - 設定姓名
/class 班級 - 設定班級
/seat 座號 - 設定座號
/summary - 查看目前成績
/reset - 清除進度與個人資料

選擇題請按按鈕作答；手寫題直接輸入英文即可。`

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	st, err := b.loadSession(ctx, chatID)
	if err != nil {
		b.logger.Error("failed to load session", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendText(chatID, "⚠️ 暫時無法讀取進度，請稍後再試")
		return
	}

	switch message.Command() {
	case "start":
		// A new session keeps only the identity fields.
		if st, err = b.dispatch(ctx, chatID, quiz.NewSessionState(), quiz.UpdateLearner(st.Learner)); err != nil {
			b.sendText(chatID, view.Warning(err))
			return
		}
		b.sendText(chatID, helpText)
		b.sendView(chatID, view.Render(st, b.engine))

	case "mode":
		if st.Phase() != quiz.PhaseModeSelect {
			if st, err = b.dispatch(ctx, chatID, st, quiz.ChooseDifferentMode()); err != nil {
				b.sendText(chatID, view.Warning(err))
				return
			}
		}
		b.sendView(chatID, view.Render(st, b.engine))

	case "name", "class", "seat":
		b.handleLearnerCommand(ctx, st, message)

	case "summary":
		b.sendText(chatID, view.SummaryText(st))

	case "reset":
		if err := b.store.Delete(ctx, chatID); err != nil {
			b.logger.Error("failed to delete session", zap.Int64("chat_id", chatID), zap.Error(err))
			b.sendText(chatID, "⚠️ 暫時無法清除進度，請稍後再試")
			return
		}
		b.sendText(chatID, "已清除進度")
		b.sendView(chatID, view.Render(quiz.NewSessionState(), b.engine))

	default:
		b.sendText(chatID, helpText)
	}
}

// handleLearnerCommand updates one identity field from the command arguments
func (b *Bot) handleLearnerCommand(ctx context.Context, st *quiz.SessionState, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	value := strings.TrimSpace(message.CommandArguments())

	learner := st.Learner
	switch message.Command() {
	case "name":
		learner.Name = value
	case "class":
		learner.Class = value
	case "seat":
		learner.Seat = value
	}

	st, err := b.dispatch(ctx, chatID, st, quiz.UpdateLearner(learner))
	if err != nil {
		b.sendText(chatID, view.Warning(err))
		return
	}

	if line := view.LearnerLine(st.Learner); line != "" {
		b.sendText(chatID, "已更新："+line)
	} else {
		b.sendText(chatID, "已清除個人資料")
	}
}

// handleText treats free text as the answer to an open typed question
func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	st, err := b.loadSession(ctx, chatID)
	if err != nil {
		b.logger.Error("failed to load session", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendText(chatID, "⚠️ 暫時無法讀取進度，請稍後再試")
		return
	}

	q, ok := b.engine.CurrentQuestion(st)
	if !ok || q.SubMode.IsMultipleChoice() || st.Submitted {
		b.sendText(chatID, "請使用下方按鈕作答，或輸入 /start 開始新的練習")
		return
	}

	st, err = b.dispatch(ctx, chatID, st, quiz.TypeAnswer(q.Index, message.Text), quiz.Submit())
	if err != nil {
		b.sendText(chatID, view.Warning(err))
		return
	}
	b.sendView(chatID, view.Render(st, b.engine))
}

// handleCallback applies the action behind an inline button
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	notice := ""
	defer func() {
		if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, notice)); err != nil {
			b.logger.Warn("failed to answer callback", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}()

	st, err := b.loadSession(ctx, chatID)
	if err != nil {
		b.logger.Error("failed to load session", zap.Int64("chat_id", chatID), zap.Error(err))
		notice = "⚠️ 暫時無法讀取進度，請稍後再試"
		return
	}

	action, err := view.Resolve(callback.Data, st, b.engine)
	if err != nil {
		notice = view.Warning(err)
		return
	}

	st, err = b.dispatch(ctx, chatID, st, action)
	if err != nil {
		notice = view.Warning(err)
		return
	}
	b.editView(chatID, callback.Message.MessageID, view.Render(st, b.engine))
}
