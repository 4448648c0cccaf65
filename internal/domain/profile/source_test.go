package profile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matiasleandrokruk/folio/internal/domain/profile"
)

func TestFileSource_Load(t *testing.T) {
	t.Parallel()

	src := profile.NewFileSource("testdata/portfolio.yaml", "testdata/summary.txt", "")
	b, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Profile.PersonalInfo.Name != "Ada Example" {
		t.Errorf("Name = %q; want Ada Example", b.Profile.PersonalInfo.Name)
	}
	if len(b.Profile.Experience) != 2 {
		t.Errorf("len(Experience) = %d; want 2", len(b.Profile.Experience))
	}
	if b.Profile.Education[0].Years != "2012 - 2017" {
		t.Errorf("Education[0].Years = %q", b.Profile.Education[0].Years)
	}
	if !strings.Contains(b.Summary, "payment systems") {
		t.Errorf("Summary = %q; want file contents", b.Summary)
	}
	if b.External != "" {
		t.Errorf("External = %q; want empty", b.External)
	}
}

func TestFileSource_MissingOptionalFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := profile.NewFileSource("testdata/portfolio.yaml",
		filepath.Join(dir, "nope.txt"), filepath.Join(dir, "linkedin.txt"))
	b, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v; want nil for missing optional files", err)
	}
	if b.Summary != "" || b.External != "" {
		t.Errorf("Summary/External = %q/%q; want empty", b.Summary, b.External)
	}
}

func TestFileSource_MissingDocument(t *testing.T) {
	t.Parallel()

	src := profile.NewFileSource(filepath.Join(t.TempDir(), "missing.yaml"), "", "")
	_, err := src.Load(context.Background())
	if !errors.Is(err, profile.ErrProfileNotFound) {
		t.Fatalf("Load() error = %v; want ErrProfileNotFound", err)
	}
}

func TestFileSource_AcceptsJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "portfolio.json")
	doc := `{"personal_info":{"name":"Bo","title":"Engineer"},
		"experience":[{"company":"Initech","role":"Dev"}]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	b, err := profile.NewFileSource(path, "", "").Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Profile.Experience[0].Company != "Initech" {
		t.Errorf("Company = %q; want Initech", b.Profile.Experience[0].Company)
	}
}

func TestParse_InvalidDocument(t *testing.T) {
	t.Parallel()

	if _, err := profile.Parse([]byte("personal_info: [")); err == nil {
		t.Fatal("Parse() error = nil; want decode error")
	}
	if _, err := profile.Parse([]byte("skills:\n  technical: [Go]\n")); err == nil {
		t.Fatal("Parse() error = nil; want validation error")
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	p := &profile.Profile{
		Experience: []profile.Experience{{Company: "Acme"}},
		Education:  []profile.Education{{Degree: "BSc"}},
	}
	err := profile.Validate(p)
	if err == nil {
		t.Fatal("Validate() error = nil; want error")
	}
	for _, want := range []string{
		"personal_info.name",
		"personal_info.title",
		"experience[0]",
		"education[0]",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q missing %q", err, want)
		}
	}
}

type countingSource struct {
	calls int
	err   error
}

func (c *countingSource) Load(context.Context) (*profile.Bundle, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &profile.Bundle{Summary: "s"}, nil
}

func TestCachedSource_LoadsOnce(t *testing.T) {
	t.Parallel()

	inner := &countingSource{}
	c := profile.NewCachedSource(inner)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.Load(ctx); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner.calls = %d; want 1", inner.calls)
	}

	c.Invalidate()
	if _, err := c.Load(ctx); err != nil {
		t.Fatalf("Load() after Invalidate error = %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner.calls = %d; want 2 after Invalidate", inner.calls)
	}
}

func TestCachedSource_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	inner := &countingSource{err: errors.New("disk on fire")}
	c := profile.NewCachedSource(inner)

	if _, err := c.Load(context.Background()); err == nil {
		t.Fatal("Load() error = nil; want error")
	}
	inner.err = nil
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v; want recovery after failure", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner.calls = %d; want 2", inner.calls)
	}
}
