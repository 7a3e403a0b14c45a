package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

// GoldmarkParser renders method descriptions and step bodies. It holds no
// per-call state and is safe for concurrent use.
type GoldmarkParser struct {
	defaults interfaces.ParseOptions
}

func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{defaults: defaults}
}

func (p *GoldmarkParser) Parse(source []byte) ([]byte, error) {
	return p.ParseWithOptions(source, p.defaults)
}

func (p *GoldmarkParser) ParseWithOptions(source []byte, opts interfaces.ParseOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine(opts).Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown: render: %w", err)
	}
	return buf.Bytes(), nil
}

// engine builds a goldmark instance for opts. Raw HTML is escaped unless both
// SafeMode and Sanitize are off.
func engine(opts interfaces.ParseOptions) goldmark.Markdown {
	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if !opts.SafeMode && !opts.Sanitize {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	goldmarkOpts := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	}
	if exts := extensions(opts.Extensions); len(exts) > 0 {
		goldmarkOpts = append(goldmarkOpts, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(goldmarkOpts...)
}

var knownExtensions = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// extensions maps configured names to goldmark extenders. Unknown names are
// skipped; an empty list selects GFM with linkify and task lists.
func extensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.Linkify, extension.TaskList}
	}
	out := make([]goldmark.Extender, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		ext, ok := knownExtensions[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ext)
	}
	return out
}
