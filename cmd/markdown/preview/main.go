package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/goliatone/go-methodlib/cmd/markdown/internal/bootstrap"
	"github.com/goliatone/go-methodlib/internal/markdown"
	"github.com/goliatone/go-methodlib/internal/validation"
)

var (
	moduleBuilder           = bootstrap.BuildModule
	output        io.Writer = os.Stdout
)

func main() {
	if err := runPreview(os.Args[1:]); err != nil {
		log.Fatalf("markdown preview: %v", err)
	}
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("markdown-preview", flag.ExitOnError)
	filePath := fs.String("file", "", "Method markdown file to preview")
	renderHTML := fs.Bool("render-html", true, "Render the description and step bodies into HTML")
	expertRules := fs.Bool("expert-rules", false, "Require expert names and roles")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *filePath == "" {
		return fmt.Errorf("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{LogLevel: "warn", ExpertRules: *expertRules})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	dir, name := filepath.Split(*filePath)
	if dir == "" {
		dir = "."
	}
	doc, err := markdown.LoadFile(os.DirFS(dir), name)
	if err != nil {
		return fmt.Errorf("load markdown document: %w", err)
	}

	fmt.Fprintf(output, "Path: %s\nSlug: %s\nID: %s\nDraft: %t\nChecksum: %x\n\n", *filePath, doc.Slug, doc.Method.ID, doc.Draft, doc.Checksum)

	if errs := validation.Validate(doc.Method, validation.WithExpertRules(*expertRules)); len(errs) > 0 {
		fmt.Fprintln(output, "Validation:")
		for _, msg := range errs {
			fmt.Fprintf(output, "  - %s\n", msg)
		}
		fmt.Fprintln(output)
	}

	if !*renderHTML {
		payload, err := json.MarshalIndent(doc.Method, "", "  ")
		if err != nil {
			return fmt.Errorf("encode method: %w", err)
		}
		fmt.Fprintf(output, "Method:\n%s\n", payload)
		return nil
	}
	if module.Parser == nil {
		return fmt.Errorf("markdown parser not configured")
	}

	description, err := module.Parser.Parse([]byte(doc.Method.Description))
	if err != nil {
		return fmt.Errorf("render description: %w", err)
	}
	fmt.Fprintf(output, "Description:\n%s\n", description)
	for i, step := range doc.Method.Approach {
		body, err := module.Parser.Parse([]byte(step.Body))
		if err != nil {
			return fmt.Errorf("render step %d: %w", i+1, err)
		}
		fmt.Fprintf(output, "Step %d: %s\n%s\n", i+1, step.Title, body)
	}
	return nil
}
