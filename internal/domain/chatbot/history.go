package chatbot

import (
	"time"

	"github.com/samber/lo"

	"github.com/matiasleandrokruk/folio/internal/infra/llm"
)

// DefaultHistoryLimit is how many entries (not exchanges) the history retains.
const DefaultHistoryLimit = 20

// Exchange is one side of a chat turn as kept in memory. Never persisted.
type Exchange struct {
	llm.Message
	Timestamp time.Time `json:"timestamp"`
}

// history is a bounded, oldest-first log. Callers hold Service.mu.
type history struct {
	entries []Exchange
	limit   int
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &history{limit: limit}
}

func (h *history) append(entries ...Exchange) {
	h.entries = append(h.entries, entries...)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]Exchange(nil), h.entries[over:]...)
	}
}

func (h *history) snapshot() []Exchange {
	return append([]Exchange(nil), h.entries...)
}

func (h *history) messages() []llm.Message {
	return lo.Map(h.entries, func(e Exchange, _ int) llm.Message { return e.Message })
}

func (h *history) reset() {
	h.entries = nil
}
