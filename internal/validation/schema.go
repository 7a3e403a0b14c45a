package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSnapshotMalformed = errors.New("validation: snapshot is not valid json")
	ErrSchemaValidation  = errors.New("validation: snapshot schema validation failed")
)

// ValidationIssue captures a single schema failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces schema issues with their instance locations.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts schema issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

func assetSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"id", "name", "url", "type"},
		"properties": map[string]any{
			"id":   map[string]any{"type": "string"},
			"name": map[string]any{"type": "string"},
			"url":  map[string]any{"type": "string"},
			"type": map[string]any{"enum": []any{"document", "video", "audio"}},
		},
	}
}

func stringList() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

// SnapshotSchema describes a serialized method draft.
func SnapshotSchema() map[string]any {
	nullableAsset := map[string]any{"oneOf": []any{map[string]any{"type": "null"}, assetSchema()}}
	return map[string]any{
		"$schema":  "https://json-schema.org/draft/2020-12/schema",
		"type":     "object",
		"required": []any{"name", "description", "approach"},
		"properties": map[string]any{
			"id":          map[string]any{"type": "string"},
			"name":        map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"approach": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"id", "title", "body"},
					"properties": map[string]any{
						"id":    map[string]any{"type": "string"},
						"title": map[string]any{"type": "string"},
						"body":  map[string]any{"type": "string"},
						"resources": map[string]any{
							"oneOf": []any{
								map[string]any{"type": "null"},
								map[string]any{"type": "array", "items": assetSchema()},
							},
						},
					},
				},
			},
			"downloads": map[string]any{
				"oneOf": []any{
					map[string]any{"type": "null"},
					map[string]any{"type": "array", "items": assetSchema()},
				},
			},
			"video":        nullableAsset,
			"audio":        nullableAsset,
			"code":         map[string]any{"type": []any{"string", "null"}},
			"tags":         map[string]any{"type": []any{"array", "null"}, "items": map[string]any{"type": "string"}},
			"related":      map[string]any{"type": []any{"array", "null"}, "items": map[string]any{"type": "string"}},
			"capabilities": stringList(),
			"sector":       map[string]any{"type": "string"},
			"community":    map[string]any{"type": "string"},
			"phase":        map[string]any{"type": "string"},
			"experts": map[string]any{
				"type": []any{"array", "null"},
				"items": map[string]any{
					"type":     "object",
					"required": []any{"id", "name", "role"},
					"properties": map[string]any{
						"id":        map[string]any{"type": "string"},
						"name":      map[string]any{"type": "string"},
						"role":      map[string]any{"type": "string"},
						"avatarUrl": map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

var (
	snapshotOnce   sync.Once
	snapshotSchema *jsonschema.Schema
	snapshotErr    error
)

// ValidateSnapshot checks a stored draft payload before it is decoded.
func ValidateSnapshot(payload []byte) error {
	var doc any
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotMalformed, err)
	}

	snapshotOnce.Do(func() {
		snapshotSchema, snapshotErr = compileSchema(SnapshotSchema())
	})
	if snapshotErr != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, snapshotErr)
	}
	if err := snapshotSchema.Validate(doc); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("snapshot.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("snapshot.json")
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
