package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-methodlib/internal/identity"
	"github.com/goliatone/go-methodlib/method"
)

var ErrMissingName = errors.New("markdown: document has no name or title")

type linkMatter struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type expertMatter struct {
	Name   string `yaml:"name"`
	Role   string `yaml:"role"`
	Avatar string `yaml:"avatar"`
}

// methodMatter is the frontmatter header of a method file. Related entries
// are slugs of other method files.
type methodMatter struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	Title        string         `yaml:"title"`
	Code         string         `yaml:"code"`
	Sector       string         `yaml:"sector"`
	Community    string         `yaml:"community"`
	Phase        string         `yaml:"phase"`
	Capabilities []string       `yaml:"capabilities"`
	Tags         []string       `yaml:"tags"`
	Related      []string       `yaml:"related"`
	Experts      []expertMatter `yaml:"experts"`
	Downloads    []linkMatter   `yaml:"downloads"`
	Video        *linkMatter    `yaml:"video"`
	Audio        *linkMatter    `yaml:"audio"`
	Draft        bool           `yaml:"draft"`
}

// Document is one parsed method file.
type Document struct {
	Path     string
	Slug     string
	Method   method.Method
	Draft    bool
	Checksum []byte
}

// SlugFromPath returns the file name without directory or extension.
func SlugFromPath(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// ParseMethod builds a method from a Markdown file. The text before the first
// level-two heading is the description; every level-two heading opens a step
// whose body runs to the next one.
func ParseMethod(slug string, source []byte) (*Document, error) {
	var meta methodMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("markdown: parse frontmatter: %w", err)
	}

	name := strings.TrimSpace(meta.Name)
	if name == "" {
		name = strings.TrimSpace(meta.Title)
	}
	if name == "" {
		return nil, ErrMissingName
	}

	id := strings.TrimSpace(meta.ID)
	if id == "" {
		id = identity.SeedMethodID(slug)
	}

	m := method.Empty()
	m.ID = id
	m.Name = name
	m.Sector = meta.Sector
	m.Community = meta.Community
	m.Phase = meta.Phase
	m.Capabilities = method.UniqueStrings(meta.Capabilities)
	m.Tags = method.UniqueStrings(meta.Tags)
	if code := strings.TrimSpace(meta.Code); code != "" {
		m.Code = &code
	}
	for _, related := range method.UniqueStrings(meta.Related) {
		m.Related = append(m.Related, identity.SeedMethodID(related))
	}

	description, steps := splitSections(body)
	m.Description = description
	for i, section := range steps {
		m.Approach = append(m.Approach, method.Step{
			ID:        identity.ChildID(id, "step", i+1),
			Title:     section.title,
			Body:      section.body,
			Resources: []method.Asset{},
		})
	}
	for i, expert := range meta.Experts {
		m.Experts = append(m.Experts, method.Expert{
			ID:        identity.ChildID(id, "expert", i+1),
			Name:      expert.Name,
			Role:      expert.Role,
			AvatarURL: expert.Avatar,
		})
	}
	for i, link := range meta.Downloads {
		m.Downloads = append(m.Downloads, link.asset(identity.ChildID(id, "download", i+1), method.KindDocument))
	}
	if meta.Video != nil {
		asset := meta.Video.asset(identity.ChildID(id, "video", 1), method.KindVideo)
		m.Video = &asset
	}
	if meta.Audio != nil {
		asset := meta.Audio.asset(identity.ChildID(id, "audio", 1), method.KindAudio)
		m.Audio = &asset
	}

	return &Document{Slug: slug, Method: m, Draft: meta.Draft}, nil
}

func (l linkMatter) asset(id string, kind method.AssetKind) method.Asset {
	name := strings.TrimSpace(l.Name)
	if name == "" {
		name = SlugFromPath(l.URL)
	}
	return method.Asset{ID: id, Name: name, URL: strings.TrimSpace(l.URL), Kind: kind}
}

type section struct {
	title string
	body  string
}

// splitSections walks the goldmark block tree so headings inside code fences
// or lists are not mistaken for steps.
func splitSections(body []byte) (string, []section) {
	doc := goldmark.New().Parser().Parse(text.NewReader(body))

	type marker struct {
		title      string
		start, end int
	}
	var markers []marker
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Level != 2 || heading.Lines().Len() == 0 {
			continue
		}
		lines := heading.Lines()
		first, last := lines.At(0), lines.At(lines.Len()-1)
		var title strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if i > 0 {
				title.WriteByte(' ')
			}
			title.Write(bytes.TrimSpace(seg.Value(body)))
		}
		markers = append(markers, marker{
			title: strings.TrimSpace(title.String()),
			start: bytes.LastIndexByte(body[:first.Start], '\n') + 1,
			end:   headingEnd(body, last.Stop),
		})
	}

	if len(markers) == 0 {
		return strings.TrimSpace(string(body)), nil
	}
	description := strings.TrimSpace(string(body[:markers[0].start]))
	sections := make([]section, 0, len(markers))
	for i, mk := range markers {
		stop := len(body)
		if i+1 < len(markers) {
			stop = markers[i+1].start
		}
		sections = append(sections, section{
			title: mk.title,
			body:  strings.TrimSpace(string(body[mk.end:stop])),
		})
	}
	return description, sections
}

// headingEnd returns the offset after the heading line, skipping a setext
// underline when one follows.
func headingEnd(body []byte, stop int) int {
	end := lineEnd(body, max(stop-1, 0))
	next := lineEnd(body, end)
	underline := bytes.TrimSpace(body[end:next])
	if len(underline) > 0 && len(bytes.Trim(underline, "-")) == 0 {
		return next
	}
	return end
}

func lineEnd(body []byte, from int) int {
	if from >= len(body) {
		return len(body)
	}
	if i := bytes.IndexByte(body[from:], '\n'); i >= 0 {
		return from + i + 1
	}
	return len(body)
}
