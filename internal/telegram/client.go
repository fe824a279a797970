// Package telegram implements the transport surface the gate controllers
// call, on top of the Bot API.
package telegram

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Client wraps a bot instance behind the handler-facing transport methods.
type Client struct {
	bot *bot.Bot
}

func NewClient(b *bot.Bot) *Client {
	return &Client{bot: b}
}

// SendCaptcha publishes the challenge image with its caption and option
// keyboard, returning the message ID for later caption edits.
func (c *Client) SendCaptcha(ctx context.Context, chatID int64, image []byte, caption string, kb *models.InlineKeyboardMarkup) (int, error) {
	msg, err := c.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "captcha.png", Data: bytes.NewReader(image)},
		Caption:     caption,
		ReplyMarkup: kb,
	})
	if err != nil {
		return 0, fmt.Errorf("send captcha photo: %w", err)
	}
	return msg.ID, nil
}

// EditCaption replaces the caption of a previously sent challenge message.
func (c *Client) EditCaption(ctx context.Context, chatID int64, messageID int, caption string) error {
	_, err := c.bot.EditMessageCaption(ctx, &bot.EditMessageCaptionParams{
		ChatID:    chatID,
		MessageID: messageID,
		Caption:   caption,
	})
	if err != nil {
		return fmt.Errorf("edit caption: %w", err)
	}
	return nil
}

// Announce sends a plain text message to a chat.
func (c *Client) Announce(ctx context.Context, chatID int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// AckCallback answers a callback query with a short notice shown to the
// tapping user only.
func (c *Client) AckCallback(ctx context.Context, callbackID, text string) error {
	_, err := c.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	if err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

// RemoveMember kicks a user and immediately lifts the ban, so a removed
// member may rejoin later and face a fresh challenge.
func (c *Client) RemoveMember(ctx context.Context, chatID, userID int64) error {
	if _, err := c.bot.BanChatMember(ctx, &bot.BanChatMemberParams{
		ChatID: chatID,
		UserID: userID,
	}); err != nil {
		return fmt.Errorf("ban member %d: %w", userID, err)
	}
	if _, err := c.bot.UnbanChatMember(ctx, &bot.UnbanChatMemberParams{
		ChatID: chatID,
		UserID: userID,
	}); err != nil {
		return fmt.Errorf("unban member %d: %w", userID, err)
	}
	return nil
}
