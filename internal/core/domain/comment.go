package domain

import "time"

// Comment is a single message on the shared board. Username is a weak
// reference to its author; comments survive their author.
type Comment struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageAllowed reports whether a comment message passes the board's
// Latin-1 content policy: every rune must fit in a single byte range
// (code point <= U+00FF). Anything wider is rejected with 422.
func MessageAllowed(message string) bool {
	for _, r := range message {
		if r > 0xFF {
			return false
		}
	}
	return true
}
