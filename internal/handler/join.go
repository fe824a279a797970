package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/gatekeeper/internal/config"
	"github.com/set-night/gatekeeper/internal/domain"
	"github.com/set-night/gatekeeper/internal/telegram"
)

// HandleNewMembers challenges every member of a new_chat_members update.
func (h *Handler) HandleNewMembers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || len(update.Message.NewChatMembers) == 0 {
		return
	}

	chatID := update.Message.Chat.ID
	for _, member := range update.Message.NewChatMembers {
		h.challengeMember(ctx, chatID, member)
	}
}

func (h *Handler) challengeMember(ctx context.Context, chatID int64, member models.User) {
	if h.isSelf(member) {
		slog.Info("ignoring own join", "chat_id", chatID)
		return
	}

	name := displayName(member)

	c, err := h.generator.Generate()
	if err != nil {
		// Almost always an environment problem (font, encoder); the member
		// stays unchallenged rather than being punished for it.
		slog.Error("generate captcha", "error", err, "chat_id", chatID, "user_id", member.ID)
		h.notifier.NotifyError(err, "captcha generation")
		return
	}

	err = h.store.Register(member.ID, chatID, c.Answer, h.cfg.ChallengeTTL,
		func(userID, chatID int64) {
			h.expireMember(userID, chatID, name)
		})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateChallenge) {
			// Left and rejoined before resolving: the original challenge stands.
			slog.Warn("member already challenged", "chat_id", chatID, "user_id", member.ID)
			return
		}
		slog.Error("register challenge", "error", err, "chat_id", chatID, "user_id", member.ID)
		return
	}

	kb := telegram.OptionsKeyboard(c.Options, config.KeyboardColumns, func(opt string) string {
		return domain.CallbackPayload{UserID: member.ID, Option: opt, ChatID: chatID}.Encode()
	})
	caption := fmt.Sprintf("👋 Welcome @%s! Tap the code shown in the picture within %s or you will be removed.",
		name, h.cfg.ChallengeTTL)

	if _, err := h.transport.SendCaptcha(ctx, chatID, c.Image, caption, kb); err != nil {
		slog.Error("send captcha", "error", err, "chat_id", chatID, "user_id", member.ID)
		h.notifier.NotifyError(err, "captcha delivery")
		// The member never saw the challenge; drop it so the timer cannot
		// kick them for a question they could not answer.
		h.store.Cancel(member.ID)
	}
}

// expireMember runs when a challenge times out unresolved: remove the member
// so they can rejoin later, then announce the timeout. The record is already
// cleared, so a late answer just sees "expired".
func (h *Handler) expireMember(userID, chatID int64, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), config.NoticeTimeout)
	defer cancel()

	if err := h.transport.RemoveMember(ctx, chatID, userID); err != nil {
		slog.Error("remove timed-out member", "error", err, "chat_id", chatID, "user_id", userID)
		h.notifier.NotifyError(err, "timeout removal")
		return
	}

	if err := h.transport.Announce(ctx, chatID, fmt.Sprintf("❌ @%s did not verify in time and was removed.", name)); err != nil {
		slog.Error("announce timeout", "error", err, "chat_id", chatID)
	}
	h.notifier.Notify(fmt.Sprintf("⏰ user %d timed out in chat %d and was removed", userID, chatID))
}
