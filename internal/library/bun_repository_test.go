package library_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-methodlib/internal/library"
	"github.com/goliatone/go-methodlib/method"
	"github.com/goliatone/go-methodlib/pkg/testsupport"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) *bun.DB {
	return testsupport.NewBunSQLite(t, (*library.MethodRecord)(nil))
}

func TestBunRepositoryPutGetList(t *testing.T) {
	repo := library.NewBunRepository(newTestDB(t))
	ctx := context.Background()

	code := "SELECT 1"
	m := draft("m1", "Card sorting")
	m.Code = &code
	m.Tags = []string{"Digital design"}
	m.Video = &method.Asset{ID: "v", Name: "intro.mp4", URL: "blob:v", Kind: method.KindVideo}
	m.Status = method.StatusDraft
	m.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.UpdatedAt = m.CreatedAt

	if _, err := repo.Put(ctx, m); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := repo.Get(ctx, "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Card sorting" || got.Code == nil || *got.Code != code || got.Video == nil {
		t.Fatalf("unexpected method: %+v", got)
	}

	m.Name = "Card sorting (open)"
	m.Status = method.StatusPublished
	if _, err := repo.Put(ctx, m); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = repo.Get(ctx, "m1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Name != "Card sorting (open)" || !got.Published() {
		t.Fatalf("expected update applied, got %+v", got)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected single record, got %d", len(list))
	}
}

func TestBunRepositoryGetMissing(t *testing.T) {
	repo := library.NewBunRepository(newTestDB(t))
	if _, err := repo.Get(context.Background(), "nope"); !library.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBunRepositoryListBySectorThroughService(t *testing.T) {
	svc := library.NewService(library.NewBunRepository(newTestDB(t)))
	ctx := context.Background()

	private := draft("p", "Private")
	private.Sector = "Private sector"
	if _, err := svc.Save(ctx, draft("a", "Public")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.Save(ctx, private); err != nil {
		t.Fatalf("save: %v", err)
	}

	framework, err := svc.BySector(ctx, "private")
	if err != nil {
		t.Fatalf("by sector: %v", err)
	}
	if len(framework.Methods) != 1 || framework.Methods[0].ID != "p" {
		t.Fatalf("unexpected framework: %+v", framework)
	}
}
