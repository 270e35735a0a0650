package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/quiz"
	"github.com/example/wordquiz/internal/view"
)

// SessionStore persists one quiz session per chat
type SessionStore interface {
	Get(ctx context.Context, chatID int64) (*quiz.SessionState, error)
	Save(ctx context.Context, chatID int64, st *quiz.SessionState) error
	Delete(ctx context.Context, chatID int64) error
}

// Sender is the part of the Telegram API the bot talks to
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

var botCommands = []tgbotapi.BotCommand{
	{Command: "start", Description: "開始新的練習"},
	{Command: "mode", Description: "重新選擇練習模式"},
	{Command: "name", Description: "設定姓名"},
	{Command: "class", Description: "設定班級"},
	{Command: "seat", Description: "設定座號"},
	{Command: "summary", Description: "查看目前成績"},
	{Command: "reset", Description: "清除進度與個人資料"},
}

// Bot represents the Telegram bot application
type Bot struct {
	client *tgbotapi.BotAPI
	api    Sender
	engine *quiz.Engine
	store  SessionStore
	logger *zap.Logger
}

// New creates a bot connected to the Telegram API
func New(token string, engine *quiz.Engine, store SessionStore, logger *zap.Logger) (*Bot, error) {
	client, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %v", err)
	}

	b := newBot(client, engine, store, logger)
	b.client = client
	logger.Info("authorized on telegram", zap.String("account", client.Self.UserName))

	if _, err := client.Request(tgbotapi.NewSetMyCommands(botCommands...)); err != nil {
		logger.Warn("failed to set bot commands", zap.Error(err))
	}
	return b, nil
}

func newBot(api Sender, engine *quiz.Engine, store SessionStore, logger *zap.Logger) *Bot {
	return &Bot{
		api:    api,
		engine: engine,
		store:  store,
		logger: logger,
	}
}

// Start receives updates until ctx is cancelled. Updates are handled one at
// a time, so two updates of the same chat never race on its session.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.client.GetUpdatesChan(updateConfig)
	for {
		select {
		case <-ctx.Done():
			b.client.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.handleText(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

// loadSession returns the stored session of a chat or a fresh one
func (b *Bot) loadSession(ctx context.Context, chatID int64) (*quiz.SessionState, error) {
	st, err := b.store.Get(ctx, chatID)
	if errors.Is(err, database.ErrSessionNotFound) {
		return quiz.NewSessionState(), nil
	}
	return st, err
}

// dispatch applies actions to the chat's session and stores the result. When
// any action is rejected nothing is stored and the error is returned.
func (b *Bot) dispatch(ctx context.Context, chatID int64, st *quiz.SessionState, actions ...quiz.Action) (*quiz.SessionState, error) {
	next := st
	for _, a := range actions {
		var err error
		next, err = b.engine.Apply(next, a)
		if err != nil {
			b.logger.Debug("action rejected",
				zap.Int64("chat_id", chatID),
				zap.Stringer("action", a.Kind),
				zap.Stringer("phase", st.Phase()),
				zap.Error(err),
			)
			return st, err
		}
	}

	if err := b.store.Save(ctx, chatID, next); err != nil {
		b.logger.Error("failed to save session", zap.Int64("chat_id", chatID), zap.Error(err))
		return st, err
	}
	return next, nil
}

// sendView sends the screen of a session as a new message
func (b *Bot) sendView(chatID int64, v view.View) {
	msg := tgbotapi.NewMessage(chatID, v.Text)
	if len(v.Buttons) > 0 {
		msg.ReplyMarkup = createKeyboard(v.Buttons)
	}
	b.send(chatID, msg)
}

// editView replaces the message a button was pressed on
func (b *Bot) editView(chatID int64, messageID int, v view.View) {
	if len(v.Buttons) == 0 {
		b.send(chatID, tgbotapi.NewEditMessageText(chatID, messageID, v.Text))
		return
	}
	b.send(chatID, tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, v.Text, createKeyboard(v.Buttons)))
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(chatID, tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(chatID int64, c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// createKeyboard creates an inline keyboard from view buttons
func createKeyboard(buttons [][]view.Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		keyboardRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Key))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}
