package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-methodlib/internal/catalog"
	"github.com/goliatone/go-methodlib/method"
)

type listingResponse struct {
	Methods []method.Summary          `json:"methods"`
	Total   int                       `json:"total"`
	Active  bool                      `json:"active"`
	Mode    string                    `json:"mode"`
	Counts  map[string]map[string]int `json:"counts"`
}

type filterOption struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

func (api *API) registerLibraryRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+joinPath(base, "methods"), api.handleMethodList)
	mux.HandleFunc("GET "+joinPath(base, "methods/{id}"), api.handleMethodDetail)
	mux.HandleFunc("GET "+joinPath(base, "frameworks/{sector}"), api.handleFramework)
	mux.HandleFunc("GET "+joinPath(base, "filters"), api.handleFilters)
	mux.HandleFunc("GET "+joinPath(base, "suggestions/tags"), api.handleTagSuggestions)
	mux.HandleFunc("GET "+joinPath(base, "suggestions/related"), api.handleRelatedSuggestions)
}

// filterFromQuery builds the listing filter. q is the search term; every
// other key names a dimension and may repeat.
func (api *API) filterFromQuery(query url.Values) (*catalog.Filter, error) {
	filter := catalog.NewFilter(api.mode)
	filter.SearchTerm = query.Get("q")
	for key, values := range query {
		if key == "q" {
			continue
		}
		dimension, err := catalog.ParseDimension(key)
		if err != nil {
			return nil, err
		}
		for _, value := range method.UniqueStrings(values) {
			if value = strings.TrimSpace(value); value != "" && !filter.IsSelected(dimension, value) {
				filter.Toggle(dimension, value)
			}
		}
	}
	return filter, nil
}

func (api *API) handleMethodList(w http.ResponseWriter, r *http.Request) {
	if api.library == nil {
		writeUnavailable(w)
		return
	}
	filter, err := api.filterFromQuery(r.URL.Query())
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	summaries, err := api.library.List(r.Context())
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	matched := filter.Apply(summaries)
	counts := make(map[string]map[string]int, len(catalog.Dimensions))
	for d, values := range catalog.Counts(summaries, filter.SearchTerm) {
		counts[d.String()] = values
	}
	writeJSON(w, http.StatusOK, listingResponse{
		Methods: matched,
		Total:   len(summaries),
		Active:  filter.Active(),
		Mode:    filter.Mode.String(),
		Counts:  counts,
	})
}

func (api *API) handleMethodDetail(w http.ResponseWriter, r *http.Request) {
	if api.library == nil {
		writeUnavailable(w)
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeBadRequest(w, "method id required")
		return
	}
	detail, err := api.library.Detail(r.Context(), id)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (api *API) handleFramework(w http.ResponseWriter, r *http.Request) {
	if api.library == nil {
		writeUnavailable(w)
		return
	}
	sector := strings.TrimSpace(r.PathValue("sector"))
	if !method.IsValidSlug(sector) {
		writeBadRequest(w, "sector must be a slug")
		return
	}
	framework, err := api.library.BySector(r.Context(), sector)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, framework)
}

func (api *API) handleFilters(w http.ResponseWriter, _ *http.Request) {
	out := make([]filterOption, 0, len(catalog.Dimensions))
	for _, d := range catalog.Dimensions {
		out = append(out, filterOption{Key: d.String(), Label: d.Label(), Options: catalog.Options(d)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *API) handleTagSuggestions(w http.ResponseWriter, r *http.Request) {
	if api.library == nil {
		writeUnavailable(w)
		return
	}
	suggestions, err := api.library.SuggestTags(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (api *API) handleRelatedSuggestions(w http.ResponseWriter, r *http.Request) {
	if api.library == nil {
		writeUnavailable(w)
		return
	}
	query := r.URL.Query()
	suggestions, err := api.library.SuggestRelated(r.Context(), query.Get("q"), query.Get("exclude"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}
