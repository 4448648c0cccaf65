package audit

import (
	"encoding/json"
	"time"
)

// ActorType represents who performed an audited action
type ActorType string

const (
	ActorTypeVisitor ActorType = "visitor"
	ActorTypeAdmin   ActorType = "admin"
	ActorTypeSystem  ActorType = "system"
)

// Outcome represents the result of an audited action
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeDegraded Outcome = "degraded" // answered from the canned fallback
	OutcomeDenied   Outcome = "denied"
	OutcomeError    Outcome = "error"
)

// Actions written by folio.
const (
	ActionChatExchange = "chat.exchange"
	ActionAdminLogin   = "admin.login"
	ActionAdminRequest = "admin.request"
)

// AuditEvent is a single append-only audit log entry.
type AuditEvent struct {
	ID        string          `json:"id"`
	ActorType ActorType       `json:"actor_type"`
	ActorID   string          `json:"actor_id,omitempty"`
	Action    string          `json:"action"`
	Outcome   Outcome         `json:"outcome"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
