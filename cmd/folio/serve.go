package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/matiasleandrokruk/folio/internal/api"
	domainaudit "github.com/matiasleandrokruk/folio/internal/domain/audit"
	domainauth "github.com/matiasleandrokruk/folio/internal/domain/auth"
	"github.com/matiasleandrokruk/folio/internal/domain/chatbot"
	"github.com/matiasleandrokruk/folio/internal/domain/profile"
	"github.com/matiasleandrokruk/folio/internal/infra/config"
	"github.com/matiasleandrokruk/folio/internal/infra/eventbus"
	"github.com/matiasleandrokruk/folio/internal/infra/llm"
	"github.com/matiasleandrokruk/folio/internal/infra/logger"
	"github.com/matiasleandrokruk/folio/internal/infra/sqlite"
	"github.com/matiasleandrokruk/folio/internal/server"
	"github.com/matiasleandrokruk/folio/internal/version"
	pkgauth "github.com/matiasleandrokruk/folio/pkg/auth"
)

func runServe(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	port := fs.Int("port", 0, "Listen port (overrides HTTP_PORT)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(out, "usage: folio serve [--port n]") //nolint:errcheck
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", logger.Err(err))
		return 1
	}
	if *port > 0 {
		cfg.HTTPPort = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", net.JoinHostPort(cfg.HTTPHost, fmt.Sprint(cfg.HTTPPort)))
	if err != nil {
		slog.Error("listen", logger.Err(err))
		return 1
	}
	if err := serve(ctx, cfg, ln); err != nil {
		slog.Error("server stopped", logger.Err(err))
		return 1
	}
	return 0
}

// serve wires every component and blocks until ctx is cancelled.
func serve(ctx context.Context, cfg config.Config, ln net.Listener) error {
	db, err := sqlite.NewDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := sqlite.MigrateUp(db); err != nil {
		db.Close()
		return fmt.Errorf("apply migrations: %w", err)
	}

	bus := eventbus.New()
	defer bus.Close()

	auditSvc := domainaudit.NewAuditService(db)
	go auditSvc.Start(ctx, bus)

	resolver := llm.NewResolver(llmEnv(cfg.LLM), slog.Default())
	profiles := profile.NewCachedSource(profileSource(cfg, db))

	chat, err := chatbot.NewService(profiles, chatbot.Options{
		CacheSize: cfg.ResponseCacheSize,
		Events:    bus,
		Logger:    slog.Default(),
	})
	if err != nil {
		db.Close()
		return err
	}
	// Warm up; requests retry through EnsureReady on failure.
	if resolver.IsConfigured() {
		if err := chat.Initialize(ctx, resolver.Resolve()); err != nil {
			slog.Warn("chatbot initialization deferred", logger.Err(err))
		}
	} else {
		slog.Warn("llm provider not configured, serving fallback replies", "provider", string(resolver.Resolve().Provider))
	}

	deps := api.Deps{
		Chat:        chat,
		Profiles:    profiles,
		Resolver:    resolver,
		Audit:       auditSvc,
		ChatTimeout: cfg.ChatTimeout,
		Version:     version.Version,
	}
	if cfg.AdminEnabled() {
		issuer, err := pkgauth.NewIssuer(cfg.JWTSecret, cfg.JWTExpiry)
		if err != nil {
			db.Close()
			return fmt.Errorf("admin tokens: %w", err)
		}
		deps.Tokens = issuer
		deps.Auth = domainauth.NewAuthServiceWithAudit(cfg.AdminPasswordHash, issuer, auditSvc)
	} else {
		slog.Info("admin API disabled; set ADMIN_PASSWORD_HASH and JWT_SECRET to enable")
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Host, srvCfg.Port = cfg.HTTPHost, cfg.HTTPPort
	if minWrite := cfg.ChatTimeout + srvCfg.ReadTimeout; srvCfg.WriteTimeout < minWrite {
		srvCfg.WriteTimeout = minWrite
	}
	srv := server.NewServer(api.NewRouter(deps), db, srvCfg)
	if err := srv.Run(ctx, ln); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// llmEnv keeps the llm package independent of config.
func llmEnv(c config.LLM) llm.Env {
	return llm.Env{
		OpenAIAPIKey:  c.OpenAIAPIKey,
		OpenAIModel:   c.OpenAIModel,
		GroqAPIKey:    c.GroqAPIKey,
		GroqModel:     c.GroqModel,
		OllamaBaseURL: c.OllamaBaseURL,
		OllamaModel:   c.OllamaModel,
	}
}

func profileSource(cfg config.Config, db *sql.DB) profile.Source {
	if cfg.ProfileSource == config.ProfileSourceSQLite {
		return profile.NewSQLStore(db, profile.DefaultSlug)
	}
	return profile.NewFileSource(cfg.ProfilePath, cfg.SummaryPath, cfg.ExternalProfilePath)
}
