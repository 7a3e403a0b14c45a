package librarycmd_test

import (
	"context"
	"testing"

	librarycmd "github.com/goliatone/go-methodlib/internal/commands/library"
	"github.com/goliatone/go-methodlib/internal/library"
)

func TestSeedHandlerPublishesSamples(t *testing.T) {
	ctx := context.Background()
	svc := library.NewService(library.NewMemoryRepository())
	if err := librarycmd.NewSeedHandler(svc, nil).Execute(ctx, librarycmd.SeedLibraryCommand{}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	list, _ := svc.List(ctx)
	if len(list) != len(library.SampleMethods()) {
		t.Fatalf("expected %d methods, got %d", len(library.SampleMethods()), len(list))
	}
}
