// Package chatbot is the response orchestrator: it owns the active provider
// client, the system prompt, the response cache and the conversation history,
// and guarantees a usable reply for every message once Ready.
package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/matiasleandrokruk/folio/internal/domain/fallback"
	"github.com/matiasleandrokruk/folio/internal/domain/profile"
	"github.com/matiasleandrokruk/folio/internal/domain/prompt"
	"github.com/matiasleandrokruk/folio/internal/infra/llm"
	"github.com/matiasleandrokruk/folio/internal/infra/logger"
)

// ErrNotInitialized is returned by GenerateResponse before a successful Initialize.
var ErrNotInitialized = errors.New("chatbot: service not initialized")

// MinReplyChars is the shortest provider reply accepted as-is.
const MinReplyChars = 10

// State is the orchestrator lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// ProviderFactory builds a provider client from a resolved configuration.
type ProviderFactory func(llm.ProviderConfig) (llm.LLMProvider, error)

// Options configures a Service. Zero values select defaults.
type Options struct {
	CacheSize    int
	HistoryLimit int
	NewProvider  ProviderFactory
	Events       Publisher
	Logger       *slog.Logger
}

// Service is the response orchestrator. One instance per server process.
type Service struct {
	source      profile.Source
	newProvider ProviderFactory
	events      Publisher
	logger      *slog.Logger
	cache       *responseCache

	initMu sync.Mutex // serializes Initialize

	mu         sync.Mutex
	state      State
	cfg        llm.ProviderConfig
	provider   llm.LLMProvider
	basePrompt string
	fallbacks  fallback.Table
	history    *history
}

// NewService creates an uninitialized Service reading profile data from src.
func NewService(src profile.Source, opts Options) (*Service, error) {
	cache, err := newResponseCache(opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("chatbot: response cache: %w", err)
	}
	s := &Service{
		source:      src,
		newProvider: opts.NewProvider,
		events:      opts.Events,
		logger:      opts.Logger,
		cache:       cache,
		history:     newHistory(opts.HistoryLimit),
	}
	if s.newProvider == nil {
		s.newProvider = func(cfg llm.ProviderConfig) (llm.LLMProvider, error) {
			return llm.NewProvider(cfg)
		}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Initialize loads the profile, builds the system prompt and constructs the
// provider client. On failure the service is left Uninitialized. Calling it
// again on a Ready service re-initializes it and clears the response cache.
func (s *Service) Initialize(ctx context.Context, cfg llm.ProviderConfig) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	return s.initialize(ctx, cfg)
}

// EnsureReady initializes the service unless it is already Ready.
func (s *Service) EnsureReady(ctx context.Context, cfg llm.ProviderConfig) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.IsReady() {
		return nil
	}
	return s.initialize(ctx, cfg)
}

func (s *Service) initialize(ctx context.Context, cfg llm.ProviderConfig) error {
	s.setState(StateInitializing)

	bundle, err := s.source.Load(ctx)
	if err != nil {
		s.fail()
		return fmt.Errorf("chatbot: load profile: %w", err)
	}
	provider, err := s.newProvider(cfg)
	if err != nil {
		s.fail()
		return fmt.Errorf("chatbot: provider: %w", err)
	}

	base := prompt.Format(bundle.Profile, bundle.Summary, bundle.External)
	table := fallback.ForProfile(bundle.Profile)

	s.mu.Lock()
	s.cfg = cfg
	s.provider = provider
	s.basePrompt = base
	s.fallbacks = table
	s.state = StateReady
	s.mu.Unlock()
	s.cache.purge()

	s.logger.Info("chatbot initialized",
		"provider", string(cfg.Provider),
		"model", cfg.Model,
		"prompt_chars", len(base),
	)
	return nil
}

func (s *Service) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Service) fail() {
	s.mu.Lock()
	s.state = StateUninitialized
	s.provider = nil
	s.mu.Unlock()
}

// IsReady reports whether GenerateResponse may be called.
func (s *Service) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateReady && s.provider != nil
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// GenerateResponse answers message. Provider failures and replies shorter than
// MinReplyChars are replaced by the profile fallback paragraph, so the only
// errors are ErrNotInitialized and ctx cancellation. A cancelled call records
// no history.
func (s *Service) GenerateResponse(ctx context.Context, message string) (string, error) {
	start := time.Now()

	s.mu.Lock()
	if s.state != StateReady || s.provider == nil {
		s.mu.Unlock()
		return "", ErrNotInitialized
	}
	cfg, provider, base, table := s.cfg, s.provider, s.basePrompt, s.fallbacks
	window := s.history.messages()
	s.mu.Unlock()

	key := cacheKey(message)
	if text, ok := s.cache.get(key); ok {
		s.record(message, text)
		s.publish(cfg, SourceCache, "", message, text, start)
		return text, nil
	}

	reply, err := provider.GenerateResponse(ctx, prompt.WithConversation(base, window), message)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	source, reason := SourceLive, ""
	switch {
	case err != nil:
		source, reason = SourceFallback, "provider_error"
		s.logger.Warn("provider call failed, using fallback", "provider", string(cfg.Provider), logger.Err(err))
	case utf8.RuneCountInString(strings.TrimSpace(reply)) < MinReplyChars:
		source, reason = SourceFallback, "short_reply"
		s.logger.Warn("provider reply too short, using fallback", "provider", string(cfg.Provider), "chars", len(reply))
	}

	if source == SourceFallback {
		reply = table.Respond(message)
	} else {
		reply = NormalizeBullets(strings.TrimSpace(reply))
		if cacheable(message) {
			s.cache.put(key, reply)
		}
	}

	s.record(message, reply)
	s.publish(cfg, source, reason, message, reply, start)
	return reply, nil
}

func (s *Service) record(message, reply string) {
	now := time.Now().UTC()
	s.mu.Lock()
	s.history.append(
		Exchange{Message: llm.Message{Role: llm.RoleUser, Content: message}, Timestamp: now},
		Exchange{Message: llm.Message{Role: llm.RoleAssistant, Content: reply}, Timestamp: now},
	)
	s.mu.Unlock()
}

func (s *Service) publish(cfg llm.ProviderConfig, src ReplySource, reason, message, reply string, start time.Time) {
	if s.events == nil {
		return
	}
	s.events.Publish(TopicExchange, ExchangeEvent{
		Provider:      cfg.Provider,
		Model:         cfg.Model,
		Source:        src,
		Reason:        reason,
		MessageChars:  utf8.RuneCountInString(message),
		ResponseChars: utf8.RuneCountInString(reply),
		Latency:       time.Since(start),
		At:            time.Now().UTC(),
	})
}

// History returns a copy of the retained conversation, oldest first.
func (s *Service) History() []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.snapshot()
}

// CacheLen reports how many replies are cached.
func (s *Service) CacheLen() int {
	return s.cache.len()
}

// Reset clears the response cache and the conversation history.
func (s *Service) Reset() {
	s.cache.purge()
	s.mu.Lock()
	s.history.reset()
	s.mu.Unlock()
}

var bulletMarker = regexp.MustCompile(`(?m)^([ \t]*)[-*+•▪●◦][ \t]+`)

// NormalizeBullets rewrites list markers (-, *, +, and unicode bullets) at the
// start of a line to a single "•".
func NormalizeBullets(text string) string {
	return bulletMarker.ReplaceAllString(text, "${1}• ")
}
