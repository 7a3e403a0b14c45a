package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-methodlib/method"
)

// Framework is the listing for one delivery framework page.
type Framework struct {
	Slug    string           `json:"slug"`
	Title   string           `json:"title"`
	Methods []method.Summary `json:"methods"`
}

// FrameworkTitle returns the heading for a framework slug.
func FrameworkTitle(slug string) string {
	if slug == "public" {
		return "Public Sector"
	}
	return "Private Sector"
}

// BySector lists methods whose sector slug matches, e.g. "public" for
// "Public sector".
func (s *service) BySector(ctx context.Context, sectorSlug string) (*Framework, error) {
	slug := method.SectorSlug(sectorSlug)
	methods, err := s.listBySector(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &Framework{
		Slug:    slug,
		Title:   FrameworkTitle(slug),
		Methods: summarize(methods),
	}, nil
}

// TOCEntry is one anchor in the detail page outline.
type TOCEntry struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Children []TOCEntry `json:"children,omitempty"`
}

// RenderedStep pairs a step with its rendered body.
type RenderedStep struct {
	method.Step
	BodyHTML string `json:"bodyHtml,omitempty"`
}

// Detail is the read model for a method page.
type Detail struct {
	Method          method.Method    `json:"method"`
	DescriptionHTML string           `json:"descriptionHtml,omitempty"`
	Steps           []RenderedStep   `json:"steps"`
	Outline         []TOCEntry       `json:"outline"`
	Related         []method.Summary `json:"related"`
}

func (s *service) Detail(ctx context.Context, id string) (*Detail, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := s.Resolve(ctx, m.Related)
	if err != nil {
		return nil, err
	}

	detail := &Detail{
		Method:  *m,
		Steps:   make([]RenderedStep, 0, len(m.Approach)),
		Outline: Outline(*m),
		Related: related,
	}
	detail.DescriptionHTML = s.render(m.Description)
	for _, step := range m.Approach {
		detail.Steps = append(detail.Steps, RenderedStep{Step: step, BodyHTML: s.render(step.Body)})
	}
	return detail, nil
}

func (s *service) render(source string) string {
	if s.markdown == nil || strings.TrimSpace(source) == "" {
		return ""
	}
	html, err := s.markdown.Parse([]byte(source))
	if err != nil {
		s.logger.Warn("library.render_failed", "error", err)
		return ""
	}
	return string(html)
}

// Outline builds the detail table of contents. Approach has one child per
// step anchored on the step id; experts appear only when listed.
func Outline(m method.Method) []TOCEntry {
	approach := TOCEntry{ID: "approach", Title: "Approach"}
	for i, step := range m.Approach {
		title := strings.TrimSpace(step.Title)
		if title == "" {
			title = fmt.Sprintf("Step %d", i+1)
		}
		anchor := step.ID
		if anchor == "" {
			anchor = fmt.Sprintf("step-%d", i+1)
		}
		approach.Children = append(approach.Children, TOCEntry{ID: anchor, Title: title})
	}

	out := []TOCEntry{{ID: "overview", Title: "Overview"}, approach}
	if len(m.Experts) > 0 {
		out = append(out, TOCEntry{ID: "experts", Title: "Experts"})
	}
	return out
}

// TagSuggestion is one entry of the tag picker. Create marks the entry that
// adds the typed query as a new tag.
type TagSuggestion struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Create bool   `json:"create,omitempty"`
}

// SuggestTags filters the known tag vocabulary by a case-insensitive
// substring. A non-empty query that is not itself listed gets a create entry.
func (s *service) SuggestTags(ctx context.Context, query string) ([]TagSuggestion, error) {
	methods, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	vocabulary := append([]string{}, s.knownTags...)
	for _, m := range methods {
		vocabulary = append(vocabulary, m.Tags...)
	}
	vocabulary = method.UniqueStrings(vocabulary)

	query = strings.TrimSpace(query)
	needle := strings.ToLower(query)
	out := []TagSuggestion{}
	exact := false
	for _, tag := range vocabulary {
		if needle != "" && !strings.Contains(strings.ToLower(tag), needle) {
			continue
		}
		if tag == query {
			exact = true
		}
		out = append(out, TagSuggestion{Value: tag, Label: tag})
	}
	if query != "" && !exact {
		out = append(out, TagSuggestion{Value: query, Label: fmt.Sprintf("Create %q", query), Create: true})
	}
	return out, nil
}

// SuggestRelated lists methods whose name contains the query, skipping the
// method being edited.
func (s *service) SuggestRelated(ctx context.Context, query string, excludeID string) ([]method.Summary, error) {
	methods, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	out := []method.Summary{}
	for _, m := range methods {
		if excludeID != "" && m.ID == excludeID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(m.Name), needle) {
			continue
		}
		out = append(out, m.Summarize())
	}
	return out, nil
}
