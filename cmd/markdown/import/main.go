package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-methodlib/cmd/markdown/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-methodlib/internal/commands/markdown"
	"github.com/goliatone/go-methodlib/internal/markdown"
)

var (
	moduleBuilder           = bootstrap.BuildModule
	output        io.Writer = os.Stdout
)

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("markdown import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("markdown-import", flag.ExitOnError)
	directory := fs.String("dir", "methods", "Directory of method markdown files")
	publish := fs.Bool("publish", false, "Publish imported methods instead of saving drafts")
	dryRun := fs.Bool("dry-run", false, "Report the outcome without storing methods")
	storage := fs.String("storage", "memory", "Method store: memory or bun")
	dialect := fs.String("dialect", "sqlite", "SQL dialect for the bun store: sqlite or postgres")
	dsn := fs.String("dsn", "", "Database DSN for the bun store")
	expertRules := fs.Bool("expert-rules", false, "Require expert names and roles")
	logLevel := fs.String("log-level", "info", "Log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		Storage:     *storage,
		Dialect:     *dialect,
		DSN:         *dsn,
		LogLevel:    *logLevel,
		ExpertRules: *expertRules,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()
	if module.Importer == nil {
		return fmt.Errorf("markdown importer not configured")
	}

	var result markdown.ImportResult
	handler := markdowncmd.NewImportHandler(module.Importer, module.Logger, func(r markdown.ImportResult) {
		result = r
	})
	cmd := markdowncmd.ImportMethodsCommand{
		Directory: *directory,
		Publish:   *publish,
		DryRun:    *dryRun,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
