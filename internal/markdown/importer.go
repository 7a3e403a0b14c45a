package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"reflect"
	"time"

	"github.com/goliatone/go-methodlib/internal/library"
	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/internal/validation"
	"github.com/goliatone/go-methodlib/method"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

// Store is the method store imports write to.
type Store interface {
	Get(ctx context.Context, id string) (*method.Method, error)
	Save(ctx context.Context, m method.Method) (*method.Method, error)
	Publish(ctx context.Context, m method.Method) (*method.Method, error)
}

// ImportOptions controls an import run. Documents marked draft are saved
// without publishing even when Publish is set.
type ImportOptions struct {
	Publish bool
	DryRun  bool
	Rules   []validation.RuleOption
}

// SkippedDocument is a file that failed the method rule set.
type SkippedDocument struct {
	Path   string   `json:"path"`
	Errors []string `json:"errors"`
}

// ImportResult lists method ids by outcome.
type ImportResult struct {
	Created   []string          `json:"created"`
	Updated   []string          `json:"updated"`
	Unchanged []string          `json:"unchanged"`
	Skipped   []SkippedDocument `json:"skipped"`
}

type Importer struct {
	store  Store
	logger interfaces.Logger
}

func NewImporter(store Store, logger interfaces.Logger) *Importer {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{store: store, logger: logger}
}

// ImportDirectory loads root from fsys and imports every document found.
func (i *Importer) ImportDirectory(ctx context.Context, fsys fs.FS, root string, opts ImportOptions) (ImportResult, error) {
	docs, err := LoadDirectory(ctx, fsys, root)
	if err != nil {
		return ImportResult{}, err
	}
	return i.Import(ctx, docs, opts)
}

// Import stores each valid document. Invalid documents are reported in
// Skipped and do not stop the run.
func (i *Importer) Import(ctx context.Context, docs []*Document, opts ImportOptions) (ImportResult, error) {
	result := ImportResult{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		logger := logging.WithMarkdownContext(i.logger, doc.Path, "import")

		if errs := validation.Validate(doc.Method, opts.Rules...); len(errs) > 0 {
			logger.Warn("markdown.import_skipped", "errors", len(errs))
			result.Skipped = append(result.Skipped, SkippedDocument{Path: doc.Path, Errors: errs})
			continue
		}

		existing, err := i.store.Get(ctx, doc.Method.ID)
		switch {
		case err == nil && sameContent(*existing, doc.Method):
			result.Unchanged = append(result.Unchanged, doc.Method.ID)
			continue
		case err == nil:
			result.Updated = append(result.Updated, doc.Method.ID)
		case library.IsNotFound(err):
			result.Created = append(result.Created, doc.Method.ID)
		default:
			return result, fmt.Errorf("markdown: lookup %s: %w", doc.Method.ID, err)
		}

		if opts.DryRun {
			continue
		}
		if opts.Publish && !doc.Draft {
			_, err = i.store.Publish(ctx, doc.Method)
		} else {
			_, err = i.store.Save(ctx, doc.Method)
		}
		if err != nil {
			return result, fmt.Errorf("markdown: store %s: %w", doc.Path, err)
		}
		logger.Info("markdown.method_imported", "method_id", doc.Method.ID)
	}
	return result, nil
}

// sameContent compares authored fields, ignoring store-managed metadata.
func sameContent(stored, incoming method.Method) bool {
	strip := func(m method.Method) method.Method {
		m = m.Clone().Normalize()
		m.Status = ""
		m.CreatedAt, m.UpdatedAt = time.Time{}, time.Time{}
		m.PublishedAt = nil
		if len(m.Capabilities) == 0 {
			m.Capabilities = nil
		}
		return m
	}
	return reflect.DeepEqual(strip(stored), strip(incoming))
}
