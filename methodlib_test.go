package methodlib_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-methodlib"
	"github.com/goliatone/go-methodlib/internal/catalog"
	"github.com/goliatone/go-methodlib/internal/logging/console"
)

func TestModuleServesSeededLibrary(t *testing.T) {
	ctx := context.Background()
	module, err := methodlib.New(methodlib.DefaultConfig(),
		methodlib.WithLoggerProvider(console.NewProvider(console.Options{Writer: io.Discard})),
	)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	if err := module.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	server := httptest.NewServer(module.HTTPHandler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/api/methods?q=testing")
	if err != nil {
		t.Fatalf("get listing: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var listing struct {
		Methods []methodlib.Summary `json:"methods"`
		Total   int                 `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listing.Total == 0 || len(listing.Methods) == 0 || len(listing.Methods) >= listing.Total {
		t.Fatalf("expected a narrowed listing, got %d of %d", len(listing.Methods), listing.Total)
	}

	filter := module.NewFilter()
	filter.Toggle(catalog.Phase, "Alpha")
	summaries, err := module.Library().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, s := range filter.Apply(summaries) {
		if s.Phase != "Alpha" {
			t.Fatalf("unexpected phase %q", s.Phase)
		}
	}
}

func TestMigrationsAreEmbedded(t *testing.T) {
	fsys := methodlib.GetMigrationsFS()
	for _, dialect := range []string{"sqlite", "postgres"} {
		if _, err := fsys.ReadFile("data/sql/migrations/" + dialect + "/0001_methods.up.sql"); err != nil {
			t.Fatalf("expected %s migration: %v", dialect, err)
		}
	}
}
