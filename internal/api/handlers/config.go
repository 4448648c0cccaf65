package handlers

import (
	"net/http"

	"github.com/matiasleandrokruk/folio/internal/infra/llm"
)

// ConfigHandler exposes the resolved backend without secrets.
type ConfigHandler struct {
	resolver ProviderResolver
}

// NewConfigHandler creates a ConfigHandler.
func NewConfigHandler(resolver ProviderResolver) *ConfigHandler {
	return &ConfigHandler{resolver: resolver}
}

// Config handles GET /api/config → {provider, model, configured}.
func (h *ConfigHandler) Config(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.resolver.Info())
}

// Providers handles GET /api/providers → the supported provider catalog.
func (h *ConfigHandler) Providers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"providers": llm.Catalog()})
}
