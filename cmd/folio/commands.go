package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/matiasleandrokruk/folio/internal/domain/profile"
	"github.com/matiasleandrokruk/folio/internal/infra/config"
	"github.com/matiasleandrokruk/folio/internal/infra/logger"
	"github.com/matiasleandrokruk/folio/internal/infra/sqlite"
	pkgauth "github.com/matiasleandrokruk/folio/pkg/auth"
)

// runMigrate applies pending migrations to DATABASE_PATH and lists the applied set.
func runMigrate(_ []string, out io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", logger.Err(err))
		return 1
	}

	db, err := sqlite.NewDB(cfg.DatabasePath)
	if err != nil {
		slog.Error("open database", "path", cfg.DatabasePath, logger.Err(err))
		return 1
	}
	defer db.Close()

	if err := sqlite.MigrateUp(db); err != nil {
		slog.Error("apply migrations", logger.Err(err))
		return 1
	}
	applied, err := sqlite.AppliedMigrations(db)
	if err != nil {
		slog.Error("list migrations", logger.Err(err))
		return 1
	}
	for _, id := range applied {
		fmt.Fprintln(out, id) //nolint:errcheck
	}
	return 0
}

// runImportProfile loads a profile document (plus optional text files) and
// stores it in DATABASE_PATH under --slug.
func runImportProfile(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("import-profile", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	summary := fs.String("summary", "", "Additional summary text file")
	external := fs.String("external", "", "External profile text file")
	slug := fs.String("slug", profile.DefaultSlug, "Document slug")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		fmt.Fprintln(out, "usage: folio import-profile [--summary path] [--external path] [--slug name] <path>") //nolint:errcheck
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", logger.Err(err))
		return 1
	}

	ctx := context.Background()
	bundle, err := profile.NewFileSource(fs.Arg(0), *summary, *external).Load(ctx)
	if err != nil {
		slog.Error("load profile", "path", fs.Arg(0), logger.Err(err))
		return 1
	}

	db, err := sqlite.NewDB(cfg.DatabasePath)
	if err != nil {
		slog.Error("open database", "path", cfg.DatabasePath, logger.Err(err))
		return 1
	}
	defer db.Close()
	if err := sqlite.MigrateUp(db); err != nil {
		slog.Error("apply migrations", logger.Err(err))
		return 1
	}

	if err := profile.NewSQLStore(db, *slug).Save(ctx, bundle); err != nil {
		slog.Error("save profile", logger.Err(err))
		return 1
	}
	fmt.Fprintf(out, "imported %s as %q into %s\n", //nolint:errcheck
		bundle.Profile.PersonalInfo.Name, *slug, cfg.DatabasePath)
	return 0
}

// runHashPassword prints the bcrypt hash of its single argument.
func runHashPassword(args []string, out io.Writer) int {
	if len(args) != 1 || args[0] == "" {
		fmt.Fprintln(out, "usage: folio hash-password <password>") //nolint:errcheck
		return 2
	}
	hash, err := pkgauth.HashPassword(args[0])
	if err != nil {
		slog.Error("hash password", logger.Err(err))
		return 1
	}
	fmt.Fprintln(out, hash) //nolint:errcheck
	return 0
}
