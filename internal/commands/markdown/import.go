package markdowncmd

import (
	"context"
	"io/fs"
	"os"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-methodlib/internal/commands"
	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/internal/markdown"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

const importMethodsMessageType = "methods.markdown.import"

// Importer is the part of markdown.Importer the command drives.
type Importer interface {
	ImportDirectory(ctx context.Context, fsys fs.FS, root string, opts markdown.ImportOptions) (markdown.ImportResult, error)
}

// ImportMethodsCommand imports every method file under Directory.
type ImportMethodsCommand struct {
	Directory string `json:"directory"`
	Publish   bool   `json:"publish,omitempty"`
	DryRun    bool   `json:"dry_run,omitempty"`
}

func (ImportMethodsCommand) Type() string { return importMethodsMessageType }

func (cmd ImportMethodsCommand) Validate() error {
	return ozzo.ValidateStruct(&cmd,
		ozzo.Field(&cmd.Directory, ozzo.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return ozzo.NewError("methods.markdown.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// ResultFunc receives the outcome of each import run.
type ResultFunc func(markdown.ImportResult)

func NewImportHandler(importer Importer, logger interfaces.Logger, onResult ResultFunc, opts ...commands.HandlerOption[ImportMethodsCommand]) *commands.Handler[ImportMethodsCommand] {
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg ImportMethodsCommand) error {
		dir := strings.TrimSpace(msg.Directory)
		result, err := importer.ImportDirectory(ctx, os.DirFS(dir), ".", markdown.ImportOptions{
			Publish: msg.Publish,
			DryRun:  msg.DryRun,
		})
		if err != nil {
			return err
		}
		logging.WithMarkdownContext(logger, dir, "import").Info("markdown.import_completed",
			"created", len(result.Created),
			"updated", len(result.Updated),
			"unchanged", len(result.Unchanged),
			"skipped", len(result.Skipped),
			"dry_run", msg.DryRun,
		)
		if onResult != nil {
			onResult(result)
		}
		return nil
	}
	base := []commands.HandlerOption[ImportMethodsCommand]{
		commands.WithLogger[ImportMethodsCommand](logger),
		commands.WithOperation[ImportMethodsCommand]("markdown.import"),
	}
	return commands.NewHandler(exec, append(base, opts...)...)
}
