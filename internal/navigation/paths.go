package navigation

import (
	"fmt"
	"net/url"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const DefaultGroup = "methods"

// Route names registered in the default group.
const (
	RouteLibrary    = "library"
	RouteMethod     = "method"
	RouteNewMethod  = "method_new"
	RouteEditMethod = "method_edit"
	RouteFramework  = "framework"
)

// DefaultRouteConfig returns the page routes of the method library. baseURL
// may be empty for host-relative paths.
func DefaultRouteConfig(baseURL string) *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    DefaultGroup,
			BaseURL: strings.TrimRight(baseURL, "/"),
			Paths: map[string]string{
				RouteLibrary:    "/",
				RouteMethod:     "/methods/:id",
				RouteNewMethod:  "/methods/new",
				RouteEditMethod: "/methods/:id/edit",
				RouteFramework:  "/frameworks/:sector",
			},
		}},
	}
}

// Paths builds page URLs from a go-urlkit route manager.
type Paths struct {
	group *urlkit.Group
}

// New resolves group in the route manager built from cfg. A nil cfg uses
// DefaultRouteConfig with host-relative paths.
func New(cfg *urlkit.Config, group string) (paths *Paths, err error) {
	if cfg == nil {
		cfg = DefaultRouteConfig("")
	}
	group = strings.TrimSpace(group)
	if group == "" {
		group = DefaultGroup
	}
	defer func() {
		// urlkit panics on unknown groups
		if rec := recover(); rec != nil {
			paths, err = nil, fmt.Errorf("navigation: route group %q: %v", group, rec)
		}
	}()
	resolved := urlkit.NewRouteManager(cfg).Group(group)
	if resolved == nil {
		return nil, fmt.Errorf("navigation: route group %q not found", group)
	}
	return &Paths{group: resolved}, nil
}

func (p *Paths) build(route string, params map[string]string) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = "", fmt.Errorf("navigation: route %q: %v", route, rec)
		}
	}()
	builder := p.group.Builder(route)
	for key, value := range params {
		builder.WithParam(key, value)
	}
	return builder.Build()
}

func (p *Paths) Library() (string, error) {
	return p.build(RouteLibrary, nil)
}

func (p *Paths) Method(id string) (string, error) {
	return p.build(RouteMethod, map[string]string{"id": id})
}

func (p *Paths) NewMethod() (string, error) {
	return p.build(RouteNewMethod, nil)
}

func (p *Paths) EditMethod(id string) (string, error) {
	return p.build(RouteEditMethod, map[string]string{"id": id})
}

func (p *Paths) Framework(sectorSlug string) (string, error) {
	return p.build(RouteFramework, map[string]string{"sector": sectorSlug})
}

// MethodPath is Method without the error, for editor.Options.MethodPath.
// Build failures fall back to /methods/{id}.
func (p *Paths) MethodPath(id string) string {
	if path, err := p.Method(id); err == nil && path != "" {
		return path
	}
	return "/methods/" + url.PathEscape(id)
}
