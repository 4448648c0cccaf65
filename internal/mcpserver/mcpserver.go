// Package mcpserver exposes the portfolio assistant as MCP tools over
// streamable HTTP.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/folio/internal/domain/fallback"
	"github.com/matiasleandrokruk/folio/internal/domain/profile"
	"github.com/matiasleandrokruk/folio/internal/infra/llm"
	"github.com/matiasleandrokruk/folio/internal/infra/logger"
)

// Tool names.
const (
	ToolAsk     = "ask"
	ToolProfile = "profile"
)

const defaultTimeout = 30 * time.Second

var errMessageRequired = errors.New("message is required")

// Orchestrator answers chat messages.
type Orchestrator interface {
	EnsureReady(ctx context.Context, cfg llm.ProviderConfig) error
	GenerateResponse(ctx context.Context, message string) (string, error)
}

// Resolver reports the active provider.
type Resolver interface {
	Resolve() llm.ProviderConfig
	IsConfigured() bool
	Info() llm.ProviderInfo
}

// Deps are the services the tools call into.
type Deps struct {
	Chat     Orchestrator
	Profiles profile.Source
	Resolver Resolver
	Timeout  time.Duration
	Version  string
}

// AskInput is the argument of the ask tool.
type AskInput struct {
	Message string `json:"message" jsonschema:"question for the portfolio owner"`
}

// AskOutput is the structured result of the ask tool.
type AskOutput struct {
	Response string `json:"response"`
	Fallback bool   `json:"fallback"`
}

// ProfileInput is the (empty) argument of the profile tool.
type ProfileInput struct{}

// ProfileOutput is the identity summary returned by the profile tool.
type ProfileOutput struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

type tools struct {
	deps     Deps
	fallback fallback.Table
}

// New builds an MCP server with the ask and profile tools registered.
func New(deps Deps) *mcp.Server {
	if deps.Timeout <= 0 {
		deps.Timeout = defaultTimeout
	}
	t := &tools{deps: deps, fallback: fallback.Static()}

	server := mcp.NewServer(&mcp.Implementation{Name: "folio", Version: deps.Version}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolAsk,
		Description: "Ask the portfolio owner a question about their experience, skills, education or background.",
	}, t.ask)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolProfile,
		Description: "Return the portfolio owner's name, title and location, and the active language model.",
	}, t.profile)
	return server
}

// Handler serves server over streamable HTTP.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}

// ask never fails for a non-empty message: backend problems yield a fallback paragraph.
func (t *tools) ask(ctx context.Context, _ *mcp.CallToolRequest, in AskInput) (*mcp.CallToolResult, AskOutput, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, AskOutput{}, errMessageRequired
	}

	out := t.answer(ctx, message)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: out.Response}},
	}, out, nil
}

func (t *tools) answer(ctx context.Context, message string) AskOutput {
	if !t.deps.Resolver.IsConfigured() {
		return AskOutput{Response: t.fallback.Respond(message), Fallback: true}
	}

	ctx, cancel := context.WithTimeout(ctx, t.deps.Timeout)
	defer cancel()

	if err := t.deps.Chat.EnsureReady(ctx, t.deps.Resolver.Resolve()); err != nil {
		slog.Warn("mcp ask: orchestrator unavailable", logger.Err(err))
		return AskOutput{Response: t.fallback.Respond(message), Fallback: true}
	}
	reply, err := t.deps.Chat.GenerateResponse(ctx, message)
	if err != nil {
		slog.Warn("mcp ask: generate failed", logger.Err(err))
		return AskOutput{Response: t.fallback.Respond(message), Fallback: true}
	}
	return AskOutput{Response: reply}
}

func (t *tools) profile(ctx context.Context, _ *mcp.CallToolRequest, _ ProfileInput) (*mcp.CallToolResult, ProfileOutput, error) {
	bundle, err := t.deps.Profiles.Load(ctx)
	if err != nil {
		return nil, ProfileOutput{}, fmt.Errorf("load profile: %w", err)
	}
	info := t.deps.Resolver.Info()
	pi := bundle.Profile.PersonalInfo
	out := ProfileOutput{
		Name:     pi.Name,
		Title:    pi.Title,
		Location: pi.Location,
		Provider: string(info.Provider),
		Model:    info.Model,
	}

	text := fmt.Sprintf("%s, %s", out.Name, out.Title)
	if out.Location != "" {
		text += " (" + out.Location + ")"
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, out, nil
}
