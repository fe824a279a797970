package handler

import (
	"github.com/go-telegram/bot"

	"github.com/set-night/gatekeeper/internal/domain"
)

// Register registers all command and callback handlers on the bot instance.
// New-member updates carry no text and are routed through the default
// handler in main.
func (h *Handler) Register(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleHelp)

	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, domain.CallbackPrefix, bot.MatchTypePrefix, h.HandleAnswer)
}
