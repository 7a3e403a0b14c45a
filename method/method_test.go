package method_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-methodlib/method"
)

func TestCloneDoesNotShareCollections(t *testing.T) {
	code := "DS-01"
	published := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	original := method.Empty()
	original.Code = &code
	original.Tags = []string{"Research"}
	original.Approach = []method.Step{{ID: "s1", Title: "Map", Resources: []method.Asset{{ID: "a1", Name: "kit.pdf"}}}}
	original.Video = &method.Asset{ID: "v", Kind: method.KindVideo}
	original.PublishedAt = &published

	clone := original.Clone()
	clone.Tags[0] = "Changed"
	clone.Approach[0].Resources[0].Name = "other.pdf"
	clone.Video.Name = "renamed"
	*clone.Code = "XX"

	if original.Tags[0] != "Research" || original.Approach[0].Resources[0].Name != "kit.pdf" {
		t.Fatalf("clone shares collections with original: %+v", original)
	}
	if original.Video.Name != "" || *original.Code != "DS-01" {
		t.Fatalf("clone shares pointers with original: %+v", original)
	}
}

func TestStepApplyOnlyTouchesSetFields(t *testing.T) {
	step := method.Step{ID: "s1", Title: "Map", Body: "Agree on the goal.", Resources: []method.Asset{}}
	title := "Sketch"

	got := step.Apply(method.StepPatch{Title: &title})
	if got.Title != "Sketch" || got.Body != "Agree on the goal." || got.ID != "s1" {
		t.Fatalf("unexpected patched step %+v", got)
	}
	if step.Title != "Map" {
		t.Fatal("expected receiver to stay unchanged")
	}
	if !(method.StepPatch{}).Empty() || (method.StepPatch{Title: &title}).Empty() {
		t.Fatal("unexpected Empty result")
	}
}

func TestExpertApplyClearsWithEmptyString(t *testing.T) {
	expert := method.Expert{ID: "e1", Name: "Ada", Role: "Facilitator", AvatarURL: "https://example.com/a.png"}
	blank := ""
	got := expert.Apply(method.ExpertPatch{AvatarURL: &blank})
	if got.AvatarURL != "" || got.Name != "Ada" || got.Role != "Facilitator" {
		t.Fatalf("unexpected patched expert %+v", got)
	}
}

func TestOrderedSetHelpers(t *testing.T) {
	tags := method.UniqueStrings([]string{" Lean ", "Agile", "Lean", ""})
	if !reflect.DeepEqual(tags, []string{"Lean", "Agile"}) {
		t.Fatalf("unexpected unique tags %v", tags)
	}
	tags = method.AddUnique(tags, "Agile")
	tags = method.AddUnique(tags, "Kanban")
	if !reflect.DeepEqual(tags, []string{"Lean", "Agile", "Kanban"}) {
		t.Fatalf("unexpected tags after add %v", tags)
	}
}

func TestSummarizeAndIndexes(t *testing.T) {
	m := method.Empty()
	m.ID = "m-1"
	m.Name = "Card sorting"
	m.Capabilities = []string{"Research"}
	m.Approach = []method.Step{{ID: "a"}, {ID: "b"}}
	m.Experts = []method.Expert{{ID: "e"}}

	summary := m.Summarize()
	if summary.ID != "m-1" || summary.Name != "Card sorting" || len(summary.Capabilities) != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if m.StepIndex("b") != 1 || m.StepIndex("z") != -1 || m.ExpertIndex("e") != 0 {
		t.Fatal("unexpected index lookups")
	}
	if !method.KindAudio.Valid() || method.AssetKind("image").Valid() {
		t.Fatal("unexpected asset kind validity")
	}
}

func TestSectorSlug(t *testing.T) {
	if got := method.SectorSlug("Public sector"); got != "public" {
		t.Fatalf("expected public, got %q", got)
	}
	if !method.IsValidSlug("public") {
		t.Fatal("expected public to be a valid slug")
	}
}
