package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"

	"github.com/set-night/gatekeeper/internal/config"
)

// Notifier posts verification notices to an operator log chat. A nil
// notifier or an unset chat ID turns every call into a no-op.
type Notifier struct {
	bot    *bot.Bot
	chatID int64
}

func NewNotifier(b *bot.Bot, chatID int64) *Notifier {
	return &Notifier{bot: b, chatID: chatID}
}

func (n *Notifier) Notify(text string) {
	if n == nil || n.chatID == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.NoticeTimeout)
	defer cancel()

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		slog.Error("failed to send log-chat notice", "error", err)
	}
}

func (n *Notifier) NotifyError(err error, context string) {
	n.Notify(fmt.Sprintf("❌ Error\n\nContext: %s\nError: %s\nTime: %s",
		context, err.Error(), time.Now().Format("2006-01-02 15:04:05")))
}
