package client

import (
	"time"

	"tanya-chat/internal/models"
)

// MaxHistory caps the persisted chat history; the oldest entries are evicted
// first once the cap is reached.
const MaxHistory = 50

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HistoryStore keeps the bounded, append-only chat history and mirrors every
// change into the persistent store under the chatHistory key.
type HistoryStore struct {
	store    *Store
	messages []models.ChatMessage
}

// NewHistoryStore loads the persisted history. An over-long persisted list
// (written by an older client) is truncated to the newest MaxHistory entries.
func NewHistoryStore(store *Store) (*HistoryStore, error) {
	h := &HistoryStore{store: store}
	if _, err := store.Get(KeyChatHistory, &h.messages); err != nil {
		return nil, err
	}
	if len(h.messages) > MaxHistory {
		h.messages = h.messages[len(h.messages)-MaxHistory:]
	}
	return h, nil
}

// Append records a message, evicting the oldest entry when the cap is
// exceeded, and persists the result.
func (h *HistoryStore) Append(content, role string) error {
	h.messages = append(h.messages, models.ChatMessage{
		Content:   content,
		Role:      role,
		Timestamp: time.Now().Format("15:04:05"),
	})
	if len(h.messages) > MaxHistory {
		h.messages = h.messages[len(h.messages)-MaxHistory:]
	}
	return h.store.Set(KeyChatHistory, h.messages)
}

// Messages returns the history in chronological order. The returned slice is
// a copy; history entries are never edited in place.
func (h *HistoryStore) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *HistoryStore) Len() int { return len(h.messages) }

// Clear drops the history from memory and from the persistent store.
func (h *HistoryStore) Clear() error {
	h.messages = nil
	return h.store.Delete(KeyChatHistory)
}
