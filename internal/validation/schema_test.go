package validation_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/goliatone/go-methodlib/internal/validation"
	"github.com/goliatone/go-methodlib/method"
)

func TestValidateSnapshotAcceptsEncodedMethod(t *testing.T) {
	code := "print()"
	m := method.Empty()
	m.Name = "Card sorting"
	m.Code = &code
	m.Video = &method.Asset{ID: "v1", Name: "clip.mp4", URL: "blob:v1", Kind: method.KindVideo}
	m.Approach = []method.Step{{ID: "s1", Title: "Prepare", Resources: []method.Asset{}}}
	m.Tags = []string{"research"}

	payload, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := validation.ValidateSnapshot(payload); err != nil {
		t.Fatalf("expected snapshot to validate, got %v", err)
	}
}

func TestValidateSnapshotRejectsMalformedJSON(t *testing.T) {
	err := validation.ValidateSnapshot([]byte("{not json"))
	if !errors.Is(err, validation.ErrSnapshotMalformed) {
		t.Fatalf("expected malformed error, got %v", err)
	}
}

func TestValidateSnapshotReportsSchemaIssues(t *testing.T) {
	payload := []byte(`{"name":"x","description":"y","approach":"not-a-list"}`)
	err := validation.ValidateSnapshot(payload)
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected schema validation error, got %v", err)
	}
	issues := validation.Issues(err)
	if len(issues) == 0 {
		t.Fatalf("expected issues")
	}
}

func TestValidateSnapshotRejectsUnknownAssetKind(t *testing.T) {
	payload := []byte(`{"name":"x","description":"y","approach":[],"downloads":[{"id":"a","name":"a","url":"u","type":"image"}]}`)
	if err := validation.ValidateSnapshot(payload); err == nil {
		t.Fatalf("expected unknown asset kind to fail")
	}
}
