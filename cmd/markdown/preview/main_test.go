package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-methodlib/cmd/markdown/internal/bootstrap"
	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

type wrapParser struct{}

func (wrapParser) Parse(src []byte) ([]byte, error) {
	return []byte("<p>" + strings.TrimSpace(string(src)) + "</p>"), nil
}

func (p wrapParser) ParseWithOptions(src []byte, _ interfaces.ParseOptions) ([]byte, error) {
	return p.Parse(src)
}

func TestRunPreviewRendersApproachSteps(t *testing.T) {
	originalBuilder, originalOutput := moduleBuilder, output
	defer func() { moduleBuilder, output = originalBuilder, originalOutput }()

	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{Parser: wrapParser{}, Logger: logging.NoOp()}, nil
	}
	var buf bytes.Buffer
	output = &buf

	path := filepath.Join(t.TempDir(), "design-sprint.md")
	source := "---\nname: Design Sprint\n---\nFive days.\n\n## Map\nAgree on the goal.\n\n## Sketch\nEveryone sketches alone.\n"
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if err := runPreview([]string{"-file", path}); err != nil {
		t.Fatalf("runPreview returned error: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		"Slug: design-sprint",
		"Description:\n<p>Five days.</p>",
		"Step 1: Map\n<p>Agree on the goal.</p>",
		"Step 2: Sketch\n<p>Everyone sketches alone.</p>",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestRunPreviewRequiresFile(t *testing.T) {
	if err := runPreview(nil); err == nil {
		t.Fatal("expected missing file error")
	}
}
