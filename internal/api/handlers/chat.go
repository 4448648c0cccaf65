// HTTP boundary for the chatbot: POST /api/chat answers a message, GET /api/chat
// reports liveness and the active provider.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/russross/blackfriday"

	"github.com/matiasleandrokruk/folio/internal/domain/fallback"
	"github.com/matiasleandrokruk/folio/internal/infra/llm"
	"github.com/matiasleandrokruk/folio/internal/infra/logger"
)

// DefaultChatTimeout bounds how long a chat request waits for the orchestrator.
const DefaultChatTimeout = 30 * time.Second

// Error labels returned alongside a fallback reply.
const (
	errBackendNotConfigured = "Backend configuration not available"
	errServiceUnavailable   = "Service temporarily unavailable"
	errTimedOut             = "Request timed out"
)

const (
	formatHTML = "html"
	// replies longer than this without closing punctuation get an ellipsis
	ellipsisThreshold = 50
)

// ChatOrchestrator is the slice of chatbot.Service the boundary uses.
type ChatOrchestrator interface {
	EnsureReady(ctx context.Context, cfg llm.ProviderConfig) error
	GenerateResponse(ctx context.Context, message string) (string, error)
}

// ProviderResolver is the slice of llm.Resolver the handlers use.
type ProviderResolver interface {
	Resolve() llm.ProviderConfig
	IsConfigured() bool
	Info() llm.ProviderInfo
}

// ChatHandler serves the public chat endpoint.
type ChatHandler struct {
	chat     ChatOrchestrator
	resolver ProviderResolver
	timeout  time.Duration
	fallback fallback.Table
	logger   *slog.Logger
}

// NewChatHandler creates a ChatHandler. A non-positive timeout uses DefaultChatTimeout.
func NewChatHandler(chat ChatOrchestrator, resolver ProviderResolver, timeout time.Duration) *ChatHandler {
	if timeout <= 0 {
		timeout = DefaultChatTimeout
	}
	return &ChatHandler{
		chat:     chat,
		resolver: resolver,
		timeout:  timeout,
		fallback: fallback.Static(),
		logger:   slog.Default(),
	}
}

// ChatRequest is the request body for POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
	Format  string `json:"format,omitempty"` // "html" adds a rendered copy of the reply
}

// ChatResponse is the response body for POST /api/chat. Error is set only
// when Response is a fallback.
type ChatResponse struct {
	Response string `json:"response"`
	HTML     string `json:"html,omitempty"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ChatStatusResponse is the response body for GET /api/chat.
type ChatStatusResponse struct {
	Message string `json:"message"`
	llm.ProviderInfo
	Timestamp string `json:"timestamp"`
}

type chatResult struct {
	text string
	err  error
}

// Chat handles POST /api/chat.
//
// Response codes:
//   - 200 OK: a reply, live or fallback; backend failures never surface as errors
//   - 400 Bad Request: message missing or blank
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	if !h.resolver.IsConfigured() {
		h.writeFallback(w, req, errBackendNotConfigured)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cfg := h.resolver.Resolve()
	done := make(chan chatResult, 1)
	go func() {
		if err := h.chat.EnsureReady(ctx, cfg); err != nil {
			done <- chatResult{err: err}
			return
		}
		text, err := h.chat.GenerateResponse(ctx, req.Message)
		done <- chatResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		h.logger.Warn("chat request abandoned", "timeout", h.timeout.String(), logger.Err(ctx.Err()))
		h.writeFallback(w, req, errTimedOut)
	case res := <-done:
		if res.err != nil {
			label := errServiceUnavailable
			if errors.Is(res.err, context.DeadlineExceeded) {
				label = errTimedOut
			}
			h.logger.Error("chat request failed", logger.Err(res.err))
			h.writeFallback(w, req, label)
			return
		}
		h.writeReply(w, req, ChatResponse{
			Response: shapeReply(res.text),
			Provider: string(cfg.Provider),
			Model:    cfg.Model,
		})
	}
}

// Status handles GET /api/chat.
func (h *ChatHandler) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ChatStatusResponse{
		Message:      "Chatbot API is running",
		ProviderInfo: h.resolver.Info(),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *ChatHandler) writeFallback(w http.ResponseWriter, req ChatRequest, label string) {
	h.writeReply(w, req, ChatResponse{
		Response: h.fallback.Respond(req.Message),
		Error:    label,
	})
}

func (h *ChatHandler) writeReply(w http.ResponseWriter, req ChatRequest, resp ChatResponse) {
	if strings.EqualFold(req.Format, formatHTML) {
		resp.HTML = string(blackfriday.MarkdownCommon([]byte(resp.Response)))
	}
	writeJSON(w, http.StatusOK, resp)
}

// shapeReply trims the reply and marks long replies that stop mid-sentence.
func shapeReply(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > ellipsisThreshold && !strings.ContainsAny(text[len(text)-1:], ".!?:") {
		text += "..."
	}
	return text
}
