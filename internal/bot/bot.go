package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot drives the Telegram long-poll loop. Updates are handled sequentially:
// each event is processed to completion, including any outbound model call,
// before the next is taken from the channel.
type Bot struct {
	api         *tgbotapi.BotAPI
	router      *Router
	logger      *slog.Logger
	pollTimeout int
}

// New connects to the Telegram Bot API.
func New(token string, router *Router, pollTimeout int, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("bot: connect: %w", err)
	}
	if pollTimeout <= 0 {
		pollTimeout = 30
	}
	logger.Info("bot: authorized", slog.String("username", api.Self.UserName))
	return &Bot{api: api, router: router, logger: logger, pollTimeout: pollTimeout}, nil
}

// Run receives updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot: stopped")
			return nil
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
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		rp := b.router.HandleCommand(ctx, update.Message.From.ID, update.Message.Command())
		b.send(update.Message.Chat.ID, rp)
	case update.Message != nil && update.Message.Text != "":
		rp := b.router.HandleMessage(ctx, update.Message.From.ID, update.Message.Text)
		b.send(update.Message.Chat.ID, rp)
	}
}

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	rp := b.router.HandleCallback(ctx, q.From.ID, q.Data)

	// Always acknowledge the button press.
	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		b.logger.Warn("bot: answer callback failed", slog.String("error", err.Error()))
	}

	if rp.Text == "" || q.Message == nil {
		return
	}

	if rp.Edit {
		chatID := q.Message.Chat.ID
		messageID := q.Message.MessageID
		if rp.Markup != nil {
			msg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, rp.Text, *rp.Markup)
			if _, err := b.api.Send(msg); err != nil {
				b.logger.Warn("bot: edit failed", slog.String("error", err.Error()))
			}
			return
		}
		msg := tgbotapi.NewEditMessageText(chatID, messageID, rp.Text)
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Warn("bot: edit failed", slog.String("error", err.Error()))
		}
		return
	}

	b.send(q.Message.Chat.ID, rp)
}

func (b *Bot) send(chatID int64, rp Reply) {
	if rp.Text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, rp.Text)
	if rp.Markup != nil {
		msg.ReplyMarkup = *rp.Markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("bot: send failed", slog.String("error", err.Error()))
	}
}
