package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Notifier defines the interface for a Telegram notifier.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

// sender is the subset of tgbotapi.BotAPI used by client.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// client is an implementation of Notifier.
type client struct {
	bot     sender
	chatID  int64
	limiter *rate.Limiter
}

// NewClient creates a new Telegram notifier client that sends at most
// perMinute messages per minute.
func NewClient(botToken string, chatID int64, perMinute int) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return newClient(bot, chatID, perMinute), nil
}

func newClient(bot sender, chatID int64, perMinute int) *client {
	if perMinute <= 0 {
		perMinute = 20
	}
	return &client{
		bot:     bot,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

// SendMessage sends a message to the configured Telegram chat.
func (c *client) SendMessage(ctx context.Context, text string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := c.bot.Send(msg)
	return err
}

type noop struct{}

// NewNoop returns a Notifier that drops every message.
func NewNoop() Notifier { return noop{} }

func (noop) SendMessage(context.Context, string) error { return nil }
