package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/gatekeeper/internal/domain"
)

// HandleAnswer resolves an answer selection against the store. Resolution
// is terminal: whatever the outcome, the challenge is gone afterwards.
func (h *Handler) HandleAnswer(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil {
		return
	}

	payload, err := domain.ParseCallbackPayload(cb.Data)
	if err != nil {
		slog.Warn("bad callback payload", "data", cb.Data, "error", err)
		h.ack(ctx, cb.ID, "")
		return
	}

	// Anyone in the chat can tap the buttons; only the challenged member's
	// taps count.
	if cb.From.ID != payload.UserID {
		h.ack(ctx, cb.ID, "❌ This captcha is not for you")
		return
	}

	var messageID int
	if cb.Message.Message != nil {
		messageID = cb.Message.Message.ID
	}

	outcome, challenge := h.store.Resolve(payload.UserID, payload.Option)
	switch outcome {
	case domain.OutcomeNotFound:
		h.ack(ctx, cb.ID, "⚠️ This captcha has expired or no longer exists")

	case domain.OutcomeCorrect:
		h.ack(ctx, cb.ID, "✅ Verified, welcome!")
		h.editCaption(ctx, payload.ChatID, messageID, "✅ Verified, welcome aboard!")
		slog.Info("member verified", "chat_id", payload.ChatID, "user_id", payload.UserID, "challenge", challenge.ID)
		h.notifier.Notify(fmt.Sprintf("✅ user %d verified in chat %d", payload.UserID, payload.ChatID))

	case domain.OutcomeIncorrect:
		h.ack(ctx, cb.ID, "❌ Wrong code, you will be removed")
		slog.Info("member failed captcha", "chat_id", payload.ChatID, "user_id", payload.UserID, "challenge", challenge.ID)
		if err := h.transport.RemoveMember(ctx, payload.ChatID, payload.UserID); err != nil {
			slog.Error("remove member after failed captcha", "error", err, "chat_id", payload.ChatID, "user_id", payload.UserID)
			h.notifier.NotifyError(err, "failed-captcha removal")
			return
		}
		h.editCaption(ctx, payload.ChatID, messageID, "❌ Verification failed, member removed.")
		h.notifier.Notify(fmt.Sprintf("❌ user %d failed the captcha in chat %d and was removed", payload.UserID, payload.ChatID))
	}
}

func (h *Handler) ack(ctx context.Context, callbackID, text string) {
	if err := h.transport.AckCallback(ctx, callbackID, text); err != nil {
		slog.Error("answer callback", "error", err)
	}
}

func (h *Handler) editCaption(ctx context.Context, chatID int64, messageID int, caption string) {
	if messageID == 0 {
		return
	}
	if err := h.transport.EditCaption(ctx, chatID, messageID, caption); err != nil {
		slog.Error("edit challenge caption", "error", err, "chat_id", chatID, "message_id", messageID)
	}
}
