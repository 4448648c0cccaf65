// Route registration and go-chi router setup: public chat routes, the MCP
// endpoint, and the JWT-protected admin API.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matiasleandrokruk/folio/internal/api/handlers"
	apmiddleware "github.com/matiasleandrokruk/folio/internal/api/middleware"
	domainaudit "github.com/matiasleandrokruk/folio/internal/domain/audit"
	domainauth "github.com/matiasleandrokruk/folio/internal/domain/auth"
	"github.com/matiasleandrokruk/folio/internal/domain/chatbot"
	"github.com/matiasleandrokruk/folio/internal/domain/profile"
	"github.com/matiasleandrokruk/folio/internal/infra/llm"
	"github.com/matiasleandrokruk/folio/internal/mcpserver"
	pkgauth "github.com/matiasleandrokruk/folio/pkg/auth"
)

// Deps are the long-lived services the router dispatches to. Auth and
// Tokens are optional: without both the admin API is not mounted.
type Deps struct {
	Chat        *chatbot.Service
	Profiles    *profile.CachedSource
	Resolver    *llm.Resolver
	Audit       *domainaudit.AuditService
	Auth        domainauth.AuthService
	Tokens      *pkgauth.TokenIssuer
	ChatTimeout time.Duration
	Version     string
}

// AdminEnabled reports whether the admin API and login are mounted.
func (d Deps) AdminEnabled() bool {
	return d.Auth != nil && d.Tokens != nil
}

// NewRouter creates and configures a new chi router with all routes.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// ===== PUBLIC ROUTES (no auth required) =====

	// Health check, used by load balancers and health probes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	chatHandler := handlers.NewChatHandler(d.Chat, d.Resolver, d.ChatTimeout)
	configHandler := handlers.NewConfigHandler(d.Resolver)
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)            // POST /api/chat
		r.Get("/chat", chatHandler.Status)           // GET /api/chat
		r.Get("/config", configHandler.Config)       // GET /api/config
		r.Get("/providers", configHandler.Providers) // GET /api/providers
	})

	r.Handle("/mcp", mcpserver.Handler(mcpserver.New(mcpserver.Deps{
		Chat:     d.Chat,
		Profiles: d.Profiles,
		Resolver: d.Resolver,
		Timeout:  d.ChatTimeout,
		Version:  d.Version,
	})))

	if !d.AdminEnabled() {
		return r
	}

	// ===== ADMIN ROUTES =====

	authHandler := handlers.NewAuthHandler(d.Auth)
	r.Post("/auth/login", authHandler.Login) // POST /auth/login

	// All /api/v1/admin/* routes require a valid Bearer JWT token.
	adminHandler := handlers.NewAdminHandler(d.Chat, d.Profiles, d.Audit, d.Resolver)
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(apmiddleware.AuthMiddleware(d.Tokens))
		r.Use(apmiddleware.AuditMiddleware(d.Audit))

		r.Get("/history", adminHandler.History)     // GET /api/v1/admin/history
		r.Delete("/cache", adminHandler.ClearCache) // DELETE /api/v1/admin/cache
		r.Post("/reload", adminHandler.Reload)      // POST /api/v1/admin/reload
		r.Get("/events", adminHandler.Events)       // GET /api/v1/admin/events
	})

	return r
}
