package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/goliatone/go-methodlib/cmd/markdown/internal/bootstrap"
	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/internal/markdown"
)

type stubImporter struct {
	calls int
	opts  markdown.ImportOptions
}

func (s *stubImporter) ImportDirectory(_ context.Context, _ fs.FS, _ string, opts markdown.ImportOptions) (markdown.ImportResult, error) {
	s.calls++
	s.opts = opts
	return markdown.ImportResult{Created: []string{"m1"}}, nil
}

func TestRunImportUsesCommandHandler(t *testing.T) {
	originalBuilder, originalOutput := moduleBuilder, output
	defer func() { moduleBuilder, output = originalBuilder, originalOutput }()

	importer := &stubImporter{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Importer: importer,
			Logger:   logging.NoOp(),
		}, nil
	}
	var buf bytes.Buffer
	output = &buf

	if err := runImport([]string{"-dir", t.TempDir(), "-publish", "-dry-run"}); err != nil {
		t.Fatalf("runImport returned error: %v", err)
	}
	if importer.calls != 1 {
		t.Fatalf("expected import to be called once, got %d", importer.calls)
	}
	if !importer.opts.Publish || !importer.opts.DryRun {
		t.Fatalf("expected publish and dry-run flags forwarded, got %+v", importer.opts)
	}

	var result markdown.ImportResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(result.Created) != 1 || result.Created[0] != "m1" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestBuildModuleImportsIntoMemoryStore(t *testing.T) {
	module, err := bootstrap.BuildModule(bootstrap.Options{})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	defer module.Close()

	list, err := module.Module.Library().List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected an empty store, got %d methods", len(list))
	}
}
