package markdown_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-methodlib/internal/identity"
	"github.com/goliatone/go-methodlib/internal/library"
	"github.com/goliatone/go-methodlib/internal/markdown"
)

func importFS() fstest.MapFS {
	return fstest.MapFS{
		"design-sprint.md": {Data: []byte(designSprint)},
		"draft.md":         {Data: []byte("---\nname: Draft method\ndraft: true\n---\nStill writing.\n\n## One\nFirst.\n")},
		"broken.md":        {Data: []byte("---\nname: Broken\n---\nNo steps here.\n")},
	}
}

func TestImporterStoresValidDocuments(t *testing.T) {
	ctx := context.Background()
	svc := library.NewService(library.NewMemoryRepository())
	importer := markdown.NewImporter(svc, nil)

	result, err := importer.ImportDirectory(ctx, importFS(), ".", markdown.ImportOptions{Publish: true})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.Created) != 2 || len(result.Skipped) != 1 || result.Skipped[0].Path != "broken.md" {
		t.Fatalf("unexpected result %+v", result)
	}
	sprint, err := svc.Get(ctx, identity.SeedMethodID("design-sprint"))
	if err != nil || !sprint.Published() {
		t.Fatalf("expected published sprint, got %+v err=%v", sprint, err)
	}
	draft, _ := svc.Get(ctx, identity.SeedMethodID("draft"))
	if draft.Published() {
		t.Fatal("expected draft document to stay unpublished")
	}

	again, err := importer.ImportDirectory(ctx, importFS(), ".", markdown.ImportOptions{Publish: true})
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if len(again.Unchanged) != 2 || len(again.Created) != 0 || len(again.Updated) != 0 {
		t.Fatalf("expected unchanged re-import, got %+v", again)
	}
}

func TestImporterDryRunWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc := library.NewService(library.NewMemoryRepository())
	result, err := markdown.NewImporter(svc, nil).ImportDirectory(ctx, importFS(), ".", markdown.ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("expected planned creations, got %+v", result)
	}
	if list, _ := svc.List(ctx); len(list) != 0 {
		t.Fatalf("expected no stored methods, got %d", len(list))
	}
}
