package agents

import (
	"sync"

	"github.com/firebase/genkit/go/ai"
)

// History keeps the most recent conversation turns
type History struct {
	mu       sync.Mutex
	maxTurns int
	turns    []turn
}

type turn struct {
	user  string
	model string
}

// NewHistory returns a history holding at most maxTurns turns. A value of
// zero or less keeps nothing.
func NewHistory(maxTurns int) *History {
	return &History{maxTurns: maxTurns}
}

// Append records a completed turn, dropping the oldest beyond the limit.
func (h *History) Append(user, model string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.maxTurns <= 0 {
		return
	}
	h.turns = append(h.turns, turn{user: user, model: model})
	if over := len(h.turns) - h.maxTurns; over > 0 {
		h.turns = append([]turn(nil), h.turns[over:]...)
	}
}

// Messages returns the retained turns as alternating user and model messages.
func (h *History) Messages() []*ai.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	msgs := make([]*ai.Message, 0, 2*len(h.turns))
	for _, t := range h.turns {
		msgs = append(msgs, ai.NewUserTextMessage(t.user), ai.NewModelTextMessage(t.model))
	}
	return msgs
}

// Len returns the number of retained turns
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Reset forgets every turn
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}
