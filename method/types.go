package method

import (
	"slices"
	"strings"
	"time"
)

// AssetKind governs how an asset renders and which slot it may occupy.
type AssetKind string

const (
	KindDocument AssetKind = "document"
	KindVideo    AssetKind = "video"
	KindAudio    AssetKind = "audio"
)

// Valid reports whether the kind is one of the known asset kinds.
func (k AssetKind) Valid() bool {
	switch k {
	case KindDocument, KindVideo, KindAudio:
		return true
	default:
		return false
	}
}

// Status tracks whether a stored method is visible outside the editor.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Method is one methodology document, the library's unit of content.
type Method struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Approach    []Step   `json:"approach"`
	Downloads   []Asset  `json:"downloads"`
	Video       *Asset   `json:"video,omitempty"`
	Audio       *Asset   `json:"audio,omitempty"`
	Code        *string  `json:"code,omitempty"`
	Tags        []string `json:"tags"`
	Related     []string `json:"related"`
	Experts     []Expert `json:"experts"`

	Sector       string   `json:"sector,omitempty"`
	Community    string   `json:"community,omitempty"`
	Phase        string   `json:"phase,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`

	Status      Status     `json:"status,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitzero"`
	UpdatedAt   time.Time  `json:"updatedAt,omitzero"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Step is one ordered stage of a method's approach.
type Step struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	Resources []Asset `json:"resources"`
}

// Asset is an attached file or external link.
type Asset struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	URL  string    `json:"url"`
	Kind AssetKind `json:"type"`
}

// Expert is a point of contact for a method.
type Expert struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Summary is the projection used by listings and filters.
type Summary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Sector       string   `json:"sector,omitempty"`
	Community    string   `json:"community,omitempty"`
	Phase        string   `json:"phase,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
	Status       Status   `json:"status,omitempty"`
}

// Empty returns the draft a creation-mode editor starts from.
func Empty() Method {
	return Method{
		Approach:  []Step{},
		Downloads: []Asset{},
		Tags:      []string{},
		Related:   []string{},
		Experts:   []Expert{},
	}
}

// Summarize projects the method into a listing summary.
func (m Method) Summarize() Summary {
	return Summary{
		ID:           m.ID,
		Name:         m.Name,
		Sector:       m.Sector,
		Community:    m.Community,
		Phase:        m.Phase,
		Capabilities: cloneStrings(m.Capabilities),
		Status:       m.Status,
	}
}

// Published reports whether the method has been made publicly visible.
func (m Method) Published() bool {
	return m.Status == StatusPublished
}

// StepIndex returns the position of the step with the given id, or -1.
func (m Method) StepIndex(id string) int {
	for i, step := range m.Approach {
		if step.ID == id {
			return i
		}
	}
	return -1
}

// ExpertIndex returns the position of the expert with the given id, or -1.
func (m Method) ExpertIndex(id string) int {
	for i, expert := range m.Experts {
		if expert.ID == id {
			return i
		}
	}
	return -1
}

// UniqueStrings trims values and drops blanks and duplicates, keeping the first
// occurrence order.
func UniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// AddUnique appends value when it is not already present.
func AddUnique(values []string, value string) []string {
	if slices.Contains(values, value) {
		return values
	}
	return append(values, value)
}
