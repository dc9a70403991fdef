package telegram

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func TestClientSendMessage(t *testing.T) {
	bot := &fakeBot{}
	c := newClient(bot, 42, 600)

	require.NoError(t, c.SendMessage(context.Background(), "hello"))
	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(42), bot.sent[0].ChatID)
	assert.Equal(t, "hello", bot.sent[0].Text)
	assert.Equal(t, tgbotapi.ModeMarkdown, bot.sent[0].ParseMode)
}

func TestClientRespectsContext(t *testing.T) {
	bot := &fakeBot{}
	c := newClient(bot, 1, 1)
	require.NoError(t, c.SendMessage(context.Background(), "first"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.SendMessage(ctx, "second"))
	assert.Len(t, bot.sent, 1)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, NewNoop().SendMessage(context.Background(), "x"))
}

func TestFormatTradeClosed(t *testing.T) {
	bal := decimal.RequireFromString("10125.5")
	msg := FormatTradeClosed(TradeClosed{
		Workspace:  "stocks",
		Instrument: "AAPL",
		Direction:  "long",
		PnL:        decimal.RequireFromString("125.5"),
		Balance:    &bal,
		ClosedAt:   time.Date(2024, 3, 1, 15, 4, 0, 0, time.UTC),
	})

	assert.Contains(t, msg, "🟢 *[stocks] AAPL long closed*")
	assert.Contains(t, msg, "P&L: 125.50")
	assert.Contains(t, msg, "Balance: 10125.50")
}

func TestFormatDigestSplitsMessages(t *testing.T) {
	assert.Equal(t, []string{"No journal activity to report."}, FormatDigest(time.Now(), nil))

	var digests []WorkspaceDigest
	for i := 0; i < 60; i++ {
		digests = append(digests, WorkspaceDigest{Title: fmt.Sprintf("Workspace %02d", i)})
	}
	msgs := FormatDigest(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), digests)

	require.Greater(t, len(msgs), 1)
	assert.True(t, strings.HasPrefix(msgs[0], "📒 *Trade Journal Digest 2024-03-01*"))
	assert.True(t, strings.HasPrefix(msgs[1], "---*Trade Journal Digest Part 2*---"))
	total := 0
	for _, m := range msgs {
		assert.LessOrEqual(t, len(m), maxLen)
		total += strings.Count(m, "- - - - -") / 2
	}
	assert.Equal(t, 60, total)
}
