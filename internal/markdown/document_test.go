package markdown_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-methodlib/internal/identity"
	"github.com/goliatone/go-methodlib/internal/markdown"
	"github.com/goliatone/go-methodlib/pkg/testsupport"
)

const designSprint = `---
name: Design Sprint
code: DS-01
sector: Public sector
community: Service Design
phase: Discovery
tags: [Prototyping, Prototyping, Research]
related: [user-interviews]
experts:
  - name: Ada
    role: Facilitator
downloads:
  - name: Sprint kit
    url: https://example.org/kit.pdf
video:
  url: https://example.org/intro.mp4
---
Five days from problem to tested prototype.

## Map

Agree on the long-term goal.

` + "```md\n## not a step\n```" + `

## Sketch
Everyone sketches solutions alone.

Decide
------
Vote on the strongest sketch.
`

func TestParseMethodSplitsSteps(t *testing.T) {
	doc, err := markdown.ParseMethod("design-sprint", []byte(designSprint))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m := doc.Method
	if m.ID != identity.SeedMethodID("design-sprint") || m.Name != "Design Sprint" {
		t.Fatalf("unexpected identity %q %q", m.ID, m.Name)
	}
	if m.Description != "Five days from problem to tested prototype." {
		t.Fatalf("unexpected description %q", m.Description)
	}
	if len(m.Approach) != 3 {
		t.Fatalf("expected 3 steps, got %+v", m.Approach)
	}
	if m.Approach[0].Title != "Map" || m.Approach[0].Body != "Agree on the long-term goal.\n\n```md\n## not a step\n```" {
		t.Fatalf("unexpected first step %+v", m.Approach[0])
	}
	if m.Approach[1].Title != "Sketch" || m.Approach[1].Body != "Everyone sketches solutions alone." {
		t.Fatalf("unexpected second step %+v", m.Approach[1])
	}
	if m.Approach[2].Title != "Decide" || m.Approach[2].Body != "Vote on the strongest sketch." {
		t.Fatalf("unexpected setext step %+v", m.Approach[2])
	}
	if m.Code == nil || *m.Code != "DS-01" || len(m.Tags) != 2 {
		t.Fatalf("unexpected metadata %+v", m)
	}
	if len(m.Related) != 1 || m.Related[0] != identity.SeedMethodID("user-interviews") {
		t.Fatalf("unexpected related %v", m.Related)
	}
	if len(m.Experts) != 1 || m.Experts[0].Role != "Facilitator" {
		t.Fatalf("unexpected experts %+v", m.Experts)
	}
	if len(m.Downloads) != 1 || m.Downloads[0].Name != "Sprint kit" {
		t.Fatalf("unexpected downloads %+v", m.Downloads)
	}
	if m.Video == nil || m.Video.Name != "intro" || m.Video.Kind != "video" {
		t.Fatalf("unexpected video %+v", m.Video)
	}
}

func TestParseMethodRequiresName(t *testing.T) {
	if _, err := markdown.ParseMethod("x", []byte("---\nsector: Public\n---\nbody")); !errors.Is(err, markdown.ErrMissingName) {
		t.Fatalf("expected missing name, got %v", err)
	}
	doc, err := markdown.ParseMethod("x", []byte("---\ntitle: Only a title\n---\nJust prose."))
	if err != nil || doc.Method.Name != "Only a title" || len(doc.Method.Approach) != 0 {
		t.Fatalf("unexpected doc %+v err=%v", doc, err)
	}
}

func TestLoadDirectoryOrdersByPath(t *testing.T) {
	fsys := fstest.MapFS{
		"methods/b.md":        {Data: []byte("---\nname: B\n---\n")},
		"methods/nested/a.md": {Data: []byte("---\nname: A\n---\n")},
		"methods/readme.txt":  {Data: []byte("ignored")},
	}
	docs, err := markdown.LoadDirectory(context.Background(), fsys, "methods")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(docs) != 2 || docs[0].Path != "methods/b.md" || docs[1].Slug != "a" {
		t.Fatalf("unexpected docs %+v", docs)
	}
	if len(docs[0].Checksum) != 32 {
		t.Fatalf("expected sha256 checksum")
	}
}

type documentGolden struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Phase       string   `json:"phase"`
	Tags        []string `json:"tags"`
	Steps       []string `json:"steps"`
	Experts     []string `json:"experts"`
}

func TestParseMethodMatchesGolden(t *testing.T) {
	source := testsupport.MustLoadFixture(t, "testdata/user-interviews.md")
	var want documentGolden
	if err := testsupport.LoadGolden("testdata/user-interviews.golden.json", &want); err != nil {
		t.Fatalf("load golden: %v", err)
	}

	doc, err := markdown.ParseMethod(markdown.SlugFromPath("testdata/user-interviews.md"), source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := documentGolden{
		Name:        doc.Method.Name,
		Description: doc.Method.Description,
		Phase:       doc.Method.Phase,
		Tags:        doc.Method.Tags,
	}
	for _, step := range doc.Method.Approach {
		got.Steps = append(got.Steps, step.Title)
	}
	for _, expert := range doc.Method.Experts {
		got.Experts = append(got.Experts, expert.Name)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("document mismatch\nwant %+v\ngot  %+v", want, got)
	}
	if doc.Slug != "user-interviews" || doc.Method.ID != identity.SeedMethodID("user-interviews") {
		t.Fatalf("unexpected identity %q %q", doc.Slug, doc.Method.ID)
	}
}
