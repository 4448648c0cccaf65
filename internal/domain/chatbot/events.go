package chatbot

import (
	"time"

	"github.com/matiasleandrokruk/folio/internal/infra/llm"
)

// TopicExchange is the event bus topic ExchangeEvents are published on.
const TopicExchange = "chat.exchange"

// ReplySource tells where a reply came from.
type ReplySource string

const (
	SourceLive     ReplySource = "live"
	SourceCache    ReplySource = "cache"
	SourceFallback ReplySource = "fallback"
)

// ExchangeEvent describes one answered message. It carries sizes and timing
// only; message and reply text stay in memory.
type ExchangeEvent struct {
	Provider      llm.Provider
	Model         string
	Source        ReplySource
	Reason        string // why a fallback was used; empty otherwise
	MessageChars  int
	ResponseChars int
	Latency       time.Duration
	At            time.Time
}

// Publisher is the slice of the event bus the orchestrator needs.
type Publisher interface {
	Publish(topic string, payload any)
}
