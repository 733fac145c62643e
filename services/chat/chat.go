// Package chat holds the booking chat log. A Log is a value: every method that
// changes it returns a new Log and leaves the receiver untouched.
package chat

import (
	"errors"
	"strings"
	"time"

	"vijayfix/models"
)

var ErrEmptyMessage = errors.New("message text is empty")

// Log is the ordered chat history of the current booking session.
type Log []models.ChatMessage

// NewMessage builds a human-authored message. Blank text is rejected.
func NewMessage(id string, sender models.Sender, text string, at time.Time) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}
	return models.ChatMessage{ID: id, Text: text, Sender: sender, Timestamp: at}, nil
}

// SystemMessage builds a controller-generated notice.
func SystemMessage(id, text string, at time.Time) models.ChatMessage {
	return models.ChatMessage{ID: id, Text: text, Sender: models.SenderSystem, Timestamp: at}
}

// Append returns a copy of l with msg at the end.
func (l Log) Append(msg models.ChatMessage) Log {
	out := make(Log, len(l), len(l)+1)
	copy(out, l)
	return append(out, msg)
}

// Messages returns a copy of the log.
func (l Log) Messages() []models.ChatMessage {
	return append([]models.ChatMessage{}, l...)
}

// UnreadCount counts unread messages written by the other participant.
func (l Log) UnreadCount(viewer models.Sender) int {
	n := 0
	for _, m := range l {
		if isPeer(m, viewer) && !m.Read {
			n++
		}
	}
	return n
}

// MarkRead flags every unread peer message as read for viewer and reports how
// many changed.
func (l Log) MarkRead(viewer models.Sender) (Log, int) {
	out := make(Log, len(l))
	copy(out, l)
	n := 0
	for i := range out {
		if isPeer(out[i], viewer) && !out[i].Read {
			out[i].Read = true
			n++
		}
	}
	return out, n
}

func isPeer(m models.ChatMessage, viewer models.Sender) bool {
	return m.Sender != viewer && m.Sender != models.SenderSystem
}
