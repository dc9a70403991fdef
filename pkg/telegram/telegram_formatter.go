package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-trade-journal/pkg/utils"

	"github.com/shopspring/decimal"
)

const maxLen = 4090

// TradeClosed describes a closed trade for notification.
type TradeClosed struct {
	Workspace  string
	Instrument string
	Direction  string
	PnL        decimal.Decimal
	Balance    *decimal.Decimal
	ClosedAt   time.Time
}

// WorkspaceDigest summarises one workspace for the daily digest.
type WorkspaceDigest struct {
	Title        string
	OpenTrades   int
	ClosedToday  int
	PnLToday     decimal.Decimal
	Balance      decimal.Decimal
	WinRate      decimal.Decimal
	ClosedTrades int
}

// FormatTradeClosed formats a closed trade into a Markdown string for Telegram.
func FormatTradeClosed(t TradeClosed) string {
	emoji := "⚪"
	switch t.PnL.Sign() {
	case 1:
		emoji = "🟢"
	case -1:
		emoji = "🔴"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s *[%s] %s %s closed*\n", emoji, t.Workspace, t.Instrument, t.Direction))
	b.WriteString(fmt.Sprintf("💰 P&L: %s\n", t.PnL.StringFixed(2)))
	if t.Balance != nil {
		b.WriteString(fmt.Sprintf("🏦 Balance: %s\n", t.Balance.StringFixed(2)))
	}
	b.WriteString(utils.PrettyDate(t.ClosedAt))
	b.WriteString("\n")
	return b.String()
}

// FormatDigest formats workspace digests into one or more Markdown messages,
// each no longer than the Telegram message limit.
func FormatDigest(date time.Time, digests []WorkspaceDigest) []string {
	if len(digests) == 0 {
		return []string{"No journal activity to report."}
	}

	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("📒 *Trade Journal Digest %s* 📒\n\n", date.Format("2006-01-02")))
			return
		}
		current.WriteString(fmt.Sprintf("---*Trade Journal Digest Part %d*---\n\n", part))
	}
	startNewPart()

	for _, d := range digests {
		var entry strings.Builder
		entry.WriteString(fmt.Sprintf("📈 *- - - - - %s - - - - -*\n", d.Title))
		entry.WriteString(fmt.Sprintf("🔓 Open trades: %d\n", d.OpenTrades))
		entry.WriteString(fmt.Sprintf("✅ Closed today: %d (P&L %s)\n", d.ClosedToday, d.PnLToday.StringFixed(2)))
		entry.WriteString(fmt.Sprintf("🎯 Win rate: %s%% over %d trades\n", d.WinRate.StringFixed(1), d.ClosedTrades))
		entry.WriteString(fmt.Sprintf("🏦 Balance: %s\n\n", d.Balance.StringFixed(2)))

		s := entry.String()
		if current.Len()+len(s) > maxLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(s)
	}

	return append(messages, current.String())
}
