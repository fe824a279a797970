package config

import "time"

const (
	// Captcha canvas
	CaptchaWidth    = 150
	CaptchaHeight   = 50
	CaptchaFontSize = 30.0

	// Answer shape
	AnswerLength = 4
	OptionCount  = 4

	// Visually ambiguous characters (0/O, 1/I) are excluded.
	AnswerAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// Inline keyboard layout for answer options
	KeyboardColumns = 2

	// Bot API request timeout
	APICallTimeout = 60 * time.Second

	// Timeout for transport calls made outside an update handler
	// (expiry removals, log-chat notices)
	NoticeTimeout = 10 * time.Second
)
