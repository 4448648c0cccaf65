// Package audit keeps an append-only trail of chat exchanges and admin
// actions in SQLite. Only metadata is stored; message text never is.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/matiasleandrokruk/folio/internal/domain/chatbot"
	"github.com/matiasleandrokruk/folio/internal/infra/eventbus"
	"github.com/matiasleandrokruk/folio/internal/infra/logger"
	"github.com/matiasleandrokruk/folio/pkg/uuid"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Fixed-width UTC timestamps so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// AuditService provides audit logging capabilities.
// All operations are append-only; no updates or deletes are supported.
//
//nolint:revive // name kept for callers across packages
type AuditService struct {
	db *sql.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{db: db}
}

// Log appends event. Empty ID and CreatedAt are filled in.
func (s *AuditService) Log(ctx context.Context, event *AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewV7().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	details := event.Details
	if len(details) == 0 {
		details = json.RawMessage("{}")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_event (id, actor_type, actor_id, action, outcome, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, event.ID, string(event.ActorType), event.ActorID, event.Action, string(event.Outcome),
		string(details), event.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("audit: insert %s: %w", event.Action, err)
	}
	return nil
}

// LogWithDetails is a helper for the common case with a details map.
func (s *AuditService) LogWithDetails(
	ctx context.Context,
	actorType ActorType,
	actorID string,
	action string,
	details map[string]any,
	outcome Outcome,
) error {
	var raw json.RawMessage
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("audit: encode details: %w", err)
		}
		raw = b
	}
	return s.Log(ctx, &AuditEvent{
		ActorType: actorType,
		ActorID:   actorID,
		Action:    action,
		Details:   raw,
		Outcome:   outcome,
	})
}

// GetByID retrieves a single audit event by ID. Unknown IDs return sql.ErrNoRows.
func (s *AuditService) GetByID(ctx context.Context, id string) (*AuditEvent, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, actor_type, actor_id, action, outcome, details, created_at
		FROM audit_event
		WHERE id = ?
	`, id)
	return scanEvent(row)
}

// Recent returns the newest events first. An empty action lists every action.
func (s *AuditService) Recent(ctx context.Context, action string, limit int) ([]*AuditEvent, error) {
	limit = clampLimit(limit)

	query := `
		SELECT id, actor_type, actor_id, action, outcome, details, created_at
		FROM audit_event`
	args := []any{}
	if action != "" {
		query += ` WHERE action = ?`
		args = append(args, action)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: list: %w", err)
	}
	defer rows.Close()

	events := make([]*AuditEvent, 0, limit)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Start subscribes to chat exchange events and appends one row per event.
// Runs in the calling goroutine; launch with: go svc.Start(ctx, bus)
// Returns when ctx is cancelled or the bus is closed.
func (s *AuditService) Start(ctx context.Context, bus eventbus.EventBus) {
	ch := bus.Subscribe(chatbot.TopicExchange)
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			payload, ok := evt.Payload.(chatbot.ExchangeEvent)
			if !ok {
				continue
			}
			// Best-effort: log error but keep running
			if err := s.LogExchange(ctx, payload); err != nil {
				slog.Warn("audit: exchange not recorded", logger.Err(err))
			}
		}
	}
}

// LogExchange records one chat exchange.
func (s *AuditService) LogExchange(ctx context.Context, ev chatbot.ExchangeEvent) error {
	outcome := OutcomeSuccess
	if ev.Source == chatbot.SourceFallback {
		outcome = OutcomeDegraded
	}
	details := map[string]any{
		"provider":       string(ev.Provider),
		"model":          ev.Model,
		"source":         string(ev.Source),
		"message_chars":  ev.MessageChars,
		"response_chars": ev.ResponseChars,
		"latency_ms":     ev.Latency.Milliseconds(),
	}
	if ev.Reason != "" {
		details["reason"] = ev.Reason
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("audit: encode details: %w", err)
	}
	return s.Log(ctx, &AuditEvent{
		ActorType: ActorTypeVisitor,
		Action:    ActionChatExchange,
		Outcome:   outcome,
		Details:   raw,
		CreatedAt: ev.At,
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*AuditEvent, error) {
	var (
		e                  AuditEvent
		actorType, outcome string
		details, createdAt string
	)
	if err := row.Scan(&e.ID, &actorType, &e.ActorID, &e.Action, &outcome, &details, &createdAt); err != nil {
		return nil, fmt.Errorf("audit: scan: %w", err)
	}
	e.ActorType = ActorType(actorType)
	e.Outcome = Outcome(outcome)
	e.Details = json.RawMessage(details)
	created, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("audit: created_at %q: %w", createdAt, err)
	}
	e.CreatedAt = created
	return &e, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
