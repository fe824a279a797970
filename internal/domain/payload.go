package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CallbackPrefix marks callback data belonging to a verification button.
const CallbackPrefix = "v|"

// CallbackPayload identifies which user, option and chat an inline answer
// button refers to. It travels inside Telegram callback data (64 bytes max),
// so the wire form is a compact delimited string; everything else works with
// the parsed struct.
type CallbackPayload struct {
	UserID int64
	Option string
	ChatID int64
}

func (p CallbackPayload) Encode() string {
	return fmt.Sprintf("%s%d|%s|%d", CallbackPrefix, p.UserID, p.Option, p.ChatID)
}

// ParseCallbackPayload validates and decodes callback data. Anything that is
// not a well-formed verification payload returns ErrBadPayload.
func ParseCallbackPayload(data string) (CallbackPayload, error) {
	rest, ok := strings.CutPrefix(data, CallbackPrefix)
	if !ok {
		return CallbackPayload{}, fmt.Errorf("%w: missing prefix", ErrBadPayload)
	}
	parts := strings.Split(rest, "|")
	if len(parts) != 3 {
		return CallbackPayload{}, fmt.Errorf("%w: want 3 fields, got %d", ErrBadPayload, len(parts))
	}
	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return CallbackPayload{}, fmt.Errorf("%w: user id: %v", ErrBadPayload, err)
	}
	if parts[1] == "" {
		return CallbackPayload{}, fmt.Errorf("%w: empty option", ErrBadPayload)
	}
	chatID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return CallbackPayload{}, fmt.Errorf("%w: chat id: %v", ErrBadPayload, err)
	}
	return CallbackPayload{UserID: userID, Option: parts[1], ChatID: chatID}, nil
}
