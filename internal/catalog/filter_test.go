package catalog_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-methodlib/internal/catalog"
	"github.com/goliatone/go-methodlib/method"
)

var sample = []method.Summary{
	{ID: "1", Name: "Agile Development", Sector: "Public sector", Community: "Product and Strategy", Phase: "Alpha", Capabilities: []string{"Architecture, Engineering & DevOps"}},
	{ID: "2", Name: "User Research", Sector: "Private sector", Community: "Digital Design", Phase: "Discovery", Capabilities: []string{"Digital Strategy & Experience"}},
	{ID: "3", Name: "User Interviews", Sector: "Public sector", Community: "Digital Design", Phase: "Discovery", Capabilities: []string{"Digital Strategy & Experience"}},
	{ID: "4", Name: "User Desk Research", Sector: "Public sector", Community: "Data Science", Phase: "Discovery", Capabilities: []string{"Digital Strategy & Experience"}},
}

func ids(summaries []method.Summary) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplySearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	f := catalog.NewFilter(catalog.ModeConjunctive)

	f.SearchTerm = "user"
	if got := ids(f.Apply(sample)); !equal(got, []string{"2", "3", "4"}) {
		t.Fatalf("name search: %v", got)
	}

	f.SearchTerm = "DIGITAL design"
	if got := ids(f.Apply(sample)); !equal(got, []string{"2", "3"}) {
		t.Fatalf("community search: %v", got)
	}

	f.SearchTerm = "private"
	if got := ids(f.Apply(sample)); !equal(got, []string{"2"}) {
		t.Fatalf("sector search: %v", got)
	}

	f.SearchTerm = ""
	if got := ids(f.Apply(sample)); len(got) != len(sample) {
		t.Fatalf("empty term should match all, got %v", got)
	}
}

func TestToggleTwiceRestoresSelection(t *testing.T) {
	f := catalog.NewFilter(catalog.ModeConjunctive)
	f.Toggle(catalog.Phase, "Alpha")
	before := f.Selected.Values(catalog.Phase)

	f.Toggle(catalog.Phase, "Live")
	f.Toggle(catalog.Phase, "Live")

	if !equal(f.Selected.Values(catalog.Phase), before) {
		t.Fatalf("expected %v, got %v", before, f.Selected.Values(catalog.Phase))
	}
	if !f.IsSelected(catalog.Phase, "Alpha") || f.IsSelected(catalog.Phase, "Live") {
		t.Fatal("unexpected selection state")
	}
}

func TestClearAllResetsEverything(t *testing.T) {
	f := catalog.NewFilter(catalog.ModeConjunctive)
	f.SearchTerm = "user"
	f.Toggle(catalog.Community, "Digital Design")
	f.Toggle(catalog.DeliveryFramework, "Public sector")
	if !f.Active() {
		t.Fatal("expected active filter")
	}

	f.ClearAll()
	if f.Active() || f.SearchTerm != "" {
		t.Fatal("expected inactive filter after clear")
	}
	for _, d := range catalog.Dimensions {
		if values := f.Selected.Values(d); len(values) != 0 {
			t.Fatalf("dimension %s not cleared: %v", d, values)
		}
	}
	if got := f.Apply(sample); len(got) != len(sample) {
		t.Fatalf("expected unfiltered listing, got %d", len(got))
	}
}

func TestConjunctiveModeAndAcrossOrWithin(t *testing.T) {
	f := catalog.NewFilter(catalog.ModeConjunctive)
	f.Toggle(catalog.Community, "Digital Design")
	f.Toggle(catalog.Community, "Data Science")
	if got := ids(f.Apply(sample)); !equal(got, []string{"2", "3", "4"}) {
		t.Fatalf("OR within dimension: %v", got)
	}

	f.Toggle(catalog.DeliveryFramework, "Public sector")
	if got := ids(f.Apply(sample)); !equal(got, []string{"3", "4"}) {
		t.Fatalf("AND across dimensions: %v", got)
	}

	f.Toggle(catalog.Capability, "Architecture, Engineering & DevOps")
	if got := f.Apply(sample); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
}

func TestSearchOnlyModeIgnoresSelections(t *testing.T) {
	f := catalog.NewFilter(catalog.ModeSearchOnly)
	f.Toggle(catalog.Phase, "Live")
	f.SearchTerm = "research"
	if got := ids(f.Apply(sample)); !equal(got, []string{"2", "4"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestParseDimensionAndMode(t *testing.T) {
	d, err := catalog.ParseDimension("deliveryframework")
	if err != nil || d != catalog.DeliveryFramework {
		t.Fatalf("expected delivery framework, got %v %v", d, err)
	}
	if _, err := catalog.ParseDimension("colour"); !errors.Is(err, catalog.ErrUnknownDimension) {
		t.Fatalf("expected unknown dimension error, got %v", err)
	}
	if catalog.ParseMode("search-only") != catalog.ModeSearchOnly || catalog.ParseMode("") != catalog.ModeConjunctive {
		t.Fatal("unexpected mode parsing")
	}
}

func TestOptionsAndCounts(t *testing.T) {
	if got := catalog.Options(catalog.Community); len(got) != 20 {
		t.Fatalf("expected 20 community options, got %d", len(got))
	}
	phases := catalog.Options(catalog.Phase)
	phases[0] = "mutated"
	if catalog.Options(catalog.Phase)[0] != "Set-up" {
		t.Fatal("expected options to be copied")
	}

	counts := catalog.Counts(sample, "")
	if counts[catalog.Phase]["Discovery"] != 3 || counts[catalog.DeliveryFramework]["Public sector"] != 3 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	counts = catalog.Counts(sample, "interviews")
	if counts[catalog.Community]["Digital Design"] != 1 {
		t.Fatalf("unexpected narrowed counts: %v", counts)
	}
}
