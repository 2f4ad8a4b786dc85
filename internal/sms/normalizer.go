// Package sms turns raw inbound bank notification text into structured
// transaction candidates without any external service involvement.
package sms

import (
	"errors"
	"strings"
	"time"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// ErrNotProcessable marks input that is not worth auditing: an empty or
// whitespace-only body. Callers drop the message without logging.
var ErrNotProcessable = errors.New("message not processable")

// Normalize trims the sender and body of an inbound message. It never
// panics on malformed input; garbage yields ErrNotProcessable.
func Normalize(sender, body string, receivedAt time.Time) (model.RawMessage, error) {
	trimmedBody := strings.TrimSpace(body)
	if trimmedBody == "" {
		return model.RawMessage{}, ErrNotProcessable
	}

	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	return model.RawMessage{
		Sender:     strings.TrimSpace(sender),
		Body:       trimmedBody,
		ReceivedAt: receivedAt,
	}, nil
}
