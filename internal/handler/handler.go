// Package handler wires Telegram updates to the join-gate logic: new
// members get challenged, answer selections get resolved.
package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/set-night/gatekeeper/internal/captcha"
	"github.com/set-night/gatekeeper/internal/config"
	"github.com/set-night/gatekeeper/internal/telegram"
	"github.com/set-night/gatekeeper/internal/verification"
)

// Transport is the slice of the chat API the controllers call. The
// production implementation is telegram.Client.
type Transport interface {
	SendCaptcha(ctx context.Context, chatID int64, image []byte, caption string, kb *models.InlineKeyboardMarkup) (int, error)
	EditCaption(ctx context.Context, chatID int64, messageID int, caption string) error
	Announce(ctx context.Context, chatID int64, text string) error
	AckCallback(ctx context.Context, callbackID, text string) error
	RemoveMember(ctx context.Context, chatID, userID int64) error
}

// Generator produces one captcha per challenged member.
type Generator interface {
	Generate() (*captcha.Captcha, error)
}

// Handler holds all dependencies of the join-gate and response controllers.
type Handler struct {
	cfg       *config.Config
	transport Transport
	generator Generator
	store     *verification.Store
	notifier  *telegram.Notifier
	botID     int64
	botName   string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg       *config.Config
	Transport Transport
	Generator Generator
	Store     *verification.Store
	Notifier  *telegram.Notifier
	BotID     int64
	BotName   string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:       deps.Cfg,
		transport: deps.Transport,
		generator: deps.Generator,
		store:     deps.Store,
		notifier:  deps.Notifier,
		botID:     deps.BotID,
		botName:   deps.BotName,
	}
}

// isSelf reports whether a joined member is the bot itself, so the gate
// never challenges its own join.
func (h *Handler) isSelf(member models.User) bool {
	return member.ID == h.botID || strings.EqualFold(member.Username, h.botName)
}

// displayName picks the handle used when addressing a member in chat.
func displayName(member models.User) string {
	if member.Username != "" {
		return member.Username
	}
	return member.FirstName
}
