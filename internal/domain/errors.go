package domain

import "errors"

var (
	ErrDuplicateChallenge = errors.New("challenge already pending for user")
	ErrRender             = errors.New("captcha render failed")
	ErrBadPayload         = errors.New("malformed callback payload")
)
