package validation_test

import (
	"reflect"
	"testing"

	"github.com/goliatone/go-methodlib/internal/validation"
	"github.com/goliatone/go-methodlib/method"
)

func TestValidateEmptyDraftReportsRequiredFieldsInOrder(t *testing.T) {
	got := validation.Validate(method.Empty())
	want := []string{
		"Method name is required",
		"Description is required",
		"At least one approach step is required",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected messages: %v", got)
	}
}

func TestValidateReportsStepErrorsWithOneBasedIndex(t *testing.T) {
	m := method.Empty()
	m.Name = "X"
	m.Description = "Y"
	m.Approach = []method.Step{
		{ID: "s1", Title: "Plan", Body: "Write the plan"},
		{ID: "s2", Title: "  ", Body: ""},
	}

	got := validation.Validate(m)
	want := []string{"Step 2 title is required", "Step 2 body is required"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected messages: %v", got)
	}
}

func TestValidateWhitespaceOnlyNameIsRequired(t *testing.T) {
	m := method.Empty()
	m.Name = "   "
	m.Description = "d"
	m.Approach = []method.Step{{ID: "s1", Title: "t", Body: "b"}}

	got := validation.Validate(m)
	if len(got) != 1 || got[0] != "Method name is required" {
		t.Fatalf("expected only name error, got %v", got)
	}
}

func TestValidatePassesCompleteMethod(t *testing.T) {
	m := method.Empty()
	m.Name = "User Interviews"
	m.Description = "Talk to users"
	m.Approach = []method.Step{{ID: "s1", Title: "Recruit", Body: "Find participants"}}
	m.Experts = []method.Expert{{ID: "e1"}}

	if got := validation.Validate(m); len(got) != 0 {
		t.Fatalf("expected no messages, got %v", got)
	}
}

func TestExpertRulesAreOptIn(t *testing.T) {
	m := method.Empty()
	m.Name = "n"
	m.Description = "d"
	m.Approach = []method.Step{{ID: "s1", Title: "", Body: "b"}}
	m.Experts = []method.Expert{{ID: "e1", Name: "Ada"}}

	got := validation.Validate(m, validation.WithExpertRules(true))
	want := []string{"Step 1 title is required", "Expert 1 role is required"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected messages: %v", got)
	}

	if got := validation.Validate(m, validation.WithExpertRules(false)); len(got) != 1 {
		t.Fatalf("expected expert rules disabled, got %v", got)
	}
}

func TestCheckExposesCodesAndFields(t *testing.T) {
	m := method.Empty()
	m.Approach = []method.Step{{ID: "s1"}}

	issues := validation.Check(m)
	if len(issues) != 4 {
		t.Fatalf("expected 4 issues, got %+v", issues)
	}
	if issues[0].Code != "methods.name_required" || issues[0].Field != "name" {
		t.Fatalf("unexpected first issue: %+v", issues[0])
	}
	if issues[2].Code != "methods.step_title_required" || issues[2].Field != "approach[0].title" {
		t.Fatalf("unexpected step issue: %+v", issues[2])
	}
	if issues[3].Message != "Step 1 body is required" {
		t.Fatalf("unexpected message: %q", issues[3].Message)
	}
}
