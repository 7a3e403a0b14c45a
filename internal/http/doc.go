// Package http exposes the method library as a JSON API.
//
// Routes mount under /api by default:
//   - Library: /methods, /methods/{id}, /frameworks/{sector}, /filters
//   - Suggestions: /suggestions/tags, /suggestions/related
//   - Editor sessions: /editor/sessions, /editor/sessions/{id} and its
//     fields, steps, experts, assets, tags, related, validate, save,
//     publish and close sub-resources
//
// Host applications can register handlers on their own mux as needed.
package http
