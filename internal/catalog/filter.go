package catalog

import (
	"slices"
	"strings"

	"github.com/goliatone/go-methodlib/method"
)

// Mode decides how checkbox selections affect Apply.
type Mode int

const (
	// ModeConjunctive narrows by every dimension with a selection. Values
	// within a dimension are alternatives.
	ModeConjunctive Mode = iota
	// ModeSearchOnly tracks selections but filters by the search term alone.
	ModeSearchOnly
)

// ParseMode maps a config value to a Mode. Unknown values use
// ModeConjunctive.
func ParseMode(value string) Mode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "search-only", "search_only", "searchonly":
		return ModeSearchOnly
	default:
		return ModeConjunctive
	}
}

func (m Mode) String() string {
	if m == ModeSearchOnly {
		return "search-only"
	}
	return "conjunctive"
}

// Selection holds the chosen values per dimension in toggle order.
type Selection map[Dimension][]string

// Values returns the selected values of one dimension.
func (s Selection) Values(d Dimension) []string {
	return append([]string(nil), s[d]...)
}

// Filter is the listing page query state.
type Filter struct {
	SearchTerm string
	Selected   Selection
	Mode       Mode
}

// NewFilter returns a cleared filter.
func NewFilter(mode Mode) *Filter {
	f := &Filter{Mode: mode}
	f.ClearAll()
	return f
}

// Toggle adds the value when absent and removes it when present.
func (f *Filter) Toggle(d Dimension, value string) {
	if f.Selected == nil {
		f.Selected = Selection{}
	}
	current := f.Selected[d]
	if i := slices.Index(current, value); i >= 0 {
		f.Selected[d] = slices.Delete(slices.Clone(current), i, i+1)
		return
	}
	f.Selected[d] = append(slices.Clone(current), value)
}

// IsSelected reports whether a value is currently chosen.
func (f *Filter) IsSelected(d Dimension, value string) bool {
	return slices.Contains(f.Selected[d], value)
}

// ClearAll resets the search term and every dimension.
func (f *Filter) ClearAll() {
	f.SearchTerm = ""
	f.Selected = Selection{}
	for _, d := range Dimensions {
		f.Selected[d] = []string{}
	}
}

// Active reports whether the filter narrows anything.
func (f *Filter) Active() bool {
	if strings.TrimSpace(f.SearchTerm) != "" {
		return true
	}
	for _, values := range f.Selected {
		if len(values) > 0 {
			return true
		}
	}
	return false
}

// Apply returns the summaries that pass the filter, in input order.
func (f *Filter) Apply(summaries []method.Summary) []method.Summary {
	out := make([]method.Summary, 0, len(summaries))
	for _, summary := range summaries {
		if f.Matches(summary) {
			out = append(out, summary)
		}
	}
	return out
}

// Matches reports whether a single summary passes the filter.
func (f *Filter) Matches(summary method.Summary) bool {
	if !matchesSearch(summary, f.SearchTerm) {
		return false
	}
	if f.Mode == ModeSearchOnly {
		return true
	}
	for _, d := range Dimensions {
		selected := f.Selected[d]
		if len(selected) == 0 {
			continue
		}
		if !slices.ContainsFunc(valuesOf(summary, d), func(v string) bool {
			return slices.Contains(selected, v)
		}) {
			return false
		}
	}
	return true
}

func matchesSearch(summary method.Summary, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, field := range []string{summary.Name, summary.Community, summary.Sector} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func valuesOf(summary method.Summary, d Dimension) []string {
	switch d {
	case Capability:
		return summary.Capabilities
	case Community:
		return []string{summary.Community}
	case DeliveryFramework:
		return []string{summary.Sector}
	case Phase:
		return []string{summary.Phase}
	default:
		return nil
	}
}

// Counts returns, per dimension and option, how many summaries carry that
// value. Only the search term is applied before counting.
func Counts(summaries []method.Summary, term string) map[Dimension]map[string]int {
	out := make(map[Dimension]map[string]int, len(Dimensions))
	for _, d := range Dimensions {
		out[d] = map[string]int{}
	}
	for _, summary := range summaries {
		if !matchesSearch(summary, term) {
			continue
		}
		for _, d := range Dimensions {
			for _, v := range method.UniqueStrings(valuesOf(summary, d)) {
				out[d][v]++
			}
		}
	}
	return out
}
