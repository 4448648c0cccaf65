package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrProfileNotFound is returned when the configured store holds no document.
var ErrProfileNotFound = errors.New("profile: document not found")

// Source loads a profile Bundle from durable storage.
type Source interface {
	Load(ctx context.Context) (*Bundle, error)
}

// FileSource reads the profile document (YAML or JSON) plus two optional text files.
type FileSource struct {
	ProfilePath  string
	SummaryPath  string
	ExternalPath string
}

// NewFileSource creates a FileSource. Empty optional paths are skipped.
func NewFileSource(profilePath, summaryPath, externalPath string) *FileSource {
	return &FileSource{ProfilePath: profilePath, SummaryPath: summaryPath, ExternalPath: externalPath}
}

// Load parses and validates the document. Missing optional text files yield
// empty strings; a missing document is ErrProfileNotFound.
func (s *FileSource) Load(_ context.Context) (*Bundle, error) {
	raw, err := os.ReadFile(s.ProfilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, s.ProfilePath)
		}
		return nil, fmt.Errorf("profile: read %s: %w", s.ProfilePath, err)
	}

	p, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("profile: %s: %w", s.ProfilePath, err)
	}

	summary, err := readOptional(s.SummaryPath)
	if err != nil {
		return nil, err
	}
	external, err := readOptional(s.ExternalPath)
	if err != nil {
		return nil, err
	}

	return &Bundle{Profile: *p, Summary: summary, External: external}, nil
}

// Parse decodes a YAML (or JSON, a YAML subset) document and validates it.
func Parse(raw []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("optional profile text not found", "path", path)
			return "", nil
		}
		return "", fmt.Errorf("profile: read %s: %w", path, err)
	}
	return string(b), nil
}

// CachedSource loads from an underlying Source once and serves the bundle from
// memory afterwards. Failed loads are not cached.
type CachedSource struct {
	src Source

	mu     sync.Mutex
	bundle *Bundle
}

// NewCachedSource wraps src.
func NewCachedSource(src Source) *CachedSource {
	return &CachedSource{src: src}
}

// Load returns the cached bundle, loading it on first use.
func (c *CachedSource) Load(ctx context.Context) (*Bundle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bundle != nil {
		return c.bundle, nil
	}
	b, err := c.src.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.bundle = b
	return b, nil
}

// Invalidate drops the cached bundle so the next Load reads storage again.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	c.bundle = nil
	c.mu.Unlock()
}
