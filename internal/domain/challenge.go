package domain

import "time"

// Outcome is the terminal result of submitting an answer to a challenge.
type Outcome int

const (
	// OutcomeNotFound means no challenge exists for the user; it either
	// expired already or was never issued. Not a security failure, just a
	// stale interaction.
	OutcomeNotFound Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	default:
		return "not_found"
	}
}

// Challenge is one outstanding captcha tied to a user and a chat. At most
// one challenge may exist per user at any instant.
type Challenge struct {
	ID        string
	UserID    int64
	ChatID    int64
	Answer    string
	ExpiresAt time.Time
}
