package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.reply(ctx, update, "Hi! I guard this group: every new member must pass an image captcha before they can stay.")
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.reply(ctx, update, "I send each new member a picture with a short code and four buttons. "+
		"Picking the wrong code, or not answering in time, gets the member removed. Removed members may rejoin and try again.")
}

func (h *Handler) reply(ctx context.Context, update *models.Update, text string) {
	if update.Message == nil {
		return
	}
	if err := h.transport.Announce(ctx, update.Message.Chat.ID, text); err != nil {
		slog.Error("send command reply", "error", err, "chat_id", update.Message.Chat.ID)
	}
}
