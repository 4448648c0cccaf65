// Operator endpoints under /api/v1/admin. All routes sit behind AuthMiddleware
// and AuditMiddleware.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/matiasleandrokruk/folio/internal/domain/audit"
	"github.com/matiasleandrokruk/folio/internal/domain/chatbot"
	"github.com/matiasleandrokruk/folio/internal/infra/llm"
	"github.com/matiasleandrokruk/folio/internal/infra/logger"
)

// AdminChat is the slice of chatbot.Service the operator endpoints drive.
type AdminChat interface {
	History() []chatbot.Exchange
	CacheLen() int
	Reset()
	Initialize(ctx context.Context, cfg llm.ProviderConfig) error
}

// ProfileInvalidator drops a memoized profile so the next load re-reads it.
type ProfileInvalidator interface {
	Invalidate()
}

// EventLister reads recent audit events.
type EventLister interface {
	Recent(ctx context.Context, action string, limit int) ([]*audit.AuditEvent, error)
}

// AdminHandler serves the operator API.
type AdminHandler struct {
	chat     AdminChat
	profile  ProfileInvalidator
	events   EventLister
	resolver ProviderResolver
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(chat AdminChat, profile ProfileInvalidator, events EventLister, resolver ProviderResolver) *AdminHandler {
	return &AdminHandler{chat: chat, profile: profile, events: events, resolver: resolver}
}

// HistoryEntry is one conversation entry as exposed over HTTP.
type HistoryEntry struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// HistoryResponse is the response body for GET /api/v1/admin/history.
type HistoryResponse struct {
	Entries   []HistoryEntry `json:"entries"`
	CacheSize int            `json:"cacheSize"`
}

// EventResponse is one audit event as exposed over HTTP.
type EventResponse struct {
	ID        string         `json:"id"`
	ActorType string         `json:"actorType"`
	ActorID   string         `json:"actorId"`
	Action    string         `json:"action"`
	Outcome   string         `json:"outcome"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt string         `json:"createdAt"`
}

// History handles GET /api/v1/admin/history.
func (h *AdminHandler) History(w http.ResponseWriter, _ *http.Request) {
	entries := lo.Map(h.chat.History(), func(e chatbot.Exchange, _ int) HistoryEntry {
		return HistoryEntry{
			Role:      e.Role,
			Content:   e.Content,
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		}
	})
	writeJSON(w, http.StatusOK, HistoryResponse{Entries: entries, CacheSize: h.chat.CacheLen()})
}

// ClearCache handles DELETE /api/v1/admin/cache. It clears the response cache
// and the conversation history.
func (h *AdminHandler) ClearCache(w http.ResponseWriter, _ *http.Request) {
	h.chat.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// Reload handles POST /api/v1/admin/reload.
//
// Response codes:
//   - 200 OK: profile re-read and orchestrator re-initialized
//   - 500 Internal Server Error: the profile could not be loaded
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.profile.Invalidate()
	if err := h.chat.Initialize(r.Context(), h.resolver.Resolve()); err != nil {
		slog.Error("profile reload failed", logger.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to reload profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

// Events handles GET /api/v1/admin/events?action=&limit=.
func (h *AdminHandler) Events(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)
	events, err := h.events.Recent(r.Context(), r.URL.Query().Get("action"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": lo.Map(events, func(e *audit.AuditEvent, _ int) EventResponse { return toEventResponse(e) }),
		"meta": map[string]int{"total": len(events), "limit": limit},
	})
}

func toEventResponse(e *audit.AuditEvent) EventResponse {
	resp := EventResponse{
		ID:        e.ID,
		ActorType: string(e.ActorType),
		ActorID:   e.ActorID,
		Action:    e.Action,
		Outcome:   string(e.Outcome),
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if len(e.Details) > 0 {
		_ = json.Unmarshal(e.Details, &resp.Details)
	}
	return resp
}
