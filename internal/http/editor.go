package http

import (
	"net/http"
	"strings"
	"time"

	editorcmd "github.com/goliatone/go-methodlib/internal/commands/editor"
	"github.com/goliatone/go-methodlib/internal/editor"
	"github.com/goliatone/go-methodlib/internal/validation"
	"github.com/goliatone/go-methodlib/method"
)

type sessionView struct {
	ID        string        `json:"id"`
	Mode      editor.Mode   `json:"mode"`
	State     editor.State  `json:"state"`
	Method    method.Method `json:"method"`
	Errors    []string      `json:"errors,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type sessionCreatePayload struct {
	MethodID string `json:"methodId,omitempty"`
}

type fieldPayload struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type tagsPayload struct {
	Tags []string `json:"tags"`
}

type relatedPayload struct {
	Related []string `json:"related"`
}

// assetPayload attaches an upload, or a link when URL is set.
type assetPayload struct {
	editor.File
	URL   string `json:"url,omitempty"`
	Label string `json:"label,omitempty"`
}

type validateResponse struct {
	Valid  bool               `json:"valid"`
	Errors []string           `json:"errors"`
	Issues []validation.Issue `json:"issues"`
}

func viewOf(s *editor.Session) sessionView {
	return sessionView{
		ID:        s.ID(),
		Mode:      s.Mode(),
		State:     s.State(),
		Method:    s.Draft(),
		Errors:    s.Errors(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func (api *API) registerEditorRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "editor/sessions")
	session := root + "/{session}"

	mux.HandleFunc("GET "+root, api.handleSessionList)
	mux.HandleFunc("POST "+root, api.handleSessionCreate)
	mux.HandleFunc("GET "+session, api.withSession(api.handleSessionGet))
	mux.HandleFunc("DELETE "+session, api.handleSessionDiscard)
	mux.HandleFunc("POST "+session+"/close", api.handleSessionClose)

	mux.HandleFunc("PATCH "+session+"/fields", api.handleFieldUpdate)
	mux.HandleFunc("PUT "+session+"/tags", api.handleTagsSet)
	mux.HandleFunc("POST "+session+"/tags", api.withSession(api.handleTagAdd))
	mux.HandleFunc("PUT "+session+"/related", api.handleRelatedSet)

	mux.HandleFunc("POST "+session+"/steps", api.withSession(api.handleStepAdd))
	mux.HandleFunc("PATCH "+session+"/steps/{step}", api.withSession(api.handleStepUpdate))
	mux.HandleFunc("DELETE "+session+"/steps/{step}", api.withSession(api.handleStepRemove))
	mux.HandleFunc("POST "+session+"/steps/{step}/resources", api.withSession(api.handleStepResourceAttach))
	mux.HandleFunc("DELETE "+session+"/steps/{step}/resources/{asset}", api.withSession(api.handleStepResourceRemove))

	mux.HandleFunc("POST "+session+"/experts", api.withSession(api.handleExpertAdd))
	mux.HandleFunc("PATCH "+session+"/experts/{expert}", api.withSession(api.handleExpertUpdate))
	mux.HandleFunc("DELETE "+session+"/experts/{expert}", api.withSession(api.handleExpertRemove))

	mux.HandleFunc("POST "+session+"/assets/{slot}", api.withSession(api.handleAssetAttach))
	mux.HandleFunc("DELETE "+session+"/assets/{slot}/{asset}", api.withSession(api.handleAssetRemove))

	mux.HandleFunc("POST "+session+"/validate", api.withSession(api.handleValidate))
	mux.HandleFunc("POST "+session+"/save", api.withSession(api.handleSave))
	mux.HandleFunc("POST "+session+"/publish", api.withSession(api.handlePublish))
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, s *editor.Session)

func (api *API) withSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.sessions == nil {
			writeUnavailable(w)
			return
		}
		s, err := api.sessions.Get(r.PathValue("session"))
		if err != nil {
			api.writeError(w, r, err)
			return
		}
		next(w, r, s)
	}
}

func (api *API) handleSessionList(w http.ResponseWriter, _ *http.Request) {
	if api.sessions == nil {
		writeUnavailable(w)
		return
	}
	sessions := api.sessions.Sessions()
	out := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, viewOf(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *API) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	if api.sessions == nil {
		writeUnavailable(w)
		return
	}
	var payload sessionCreatePayload
	if err := decodeOptionalJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	s, err := api.sessions.Open(r.Context(), strings.TrimSpace(payload.MethodID))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	api.logger.Info("http.session_opened", "session_id", s.ID(), "mode", s.Mode())
	writeJSON(w, http.StatusCreated, viewOf(s))
}

func (api *API) handleSessionGet(w http.ResponseWriter, _ *http.Request, s *editor.Session) {
	writeJSON(w, http.StatusOK, viewOf(s))
}

func (api *API) handleSessionDiscard(w http.ResponseWriter, r *http.Request) {
	if api.sessions == nil {
		writeUnavailable(w)
		return
	}
	id := r.PathValue("session")
	var err error
	if api.commands != nil {
		err = api.commands.Discard.Execute(r.Context(), editorcmd.DiscardCommand{SessionID: id})
	} else {
		err = api.sessions.Discard(r.Context(), id)
	}
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionClose forgets the session and keeps its snapshot, the
// navigate-away path of the editor.
func (api *API) handleSessionClose(w http.ResponseWriter, r *http.Request) {
	if api.sessions == nil {
		writeUnavailable(w)
		return
	}
	if err := api.sessions.Close(r.Context(), r.PathValue("session")); err != nil {
		api.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// afterCommand answers with the session view once a command handler ran.
func (api *API) afterCommand(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	s, err := api.sessions.Get(r.PathValue("session"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

func (api *API) handleFieldUpdate(w http.ResponseWriter, r *http.Request) {
	if api.sessions == nil || api.commands == nil {
		writeUnavailable(w)
		return
	}
	var payload fieldPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	err := api.commands.UpdateField.Execute(r.Context(), editorcmd.UpdateFieldCommand{
		SessionID: r.PathValue("session"),
		Field:     payload.Field,
		Value:     payload.Value,
	})
	api.afterCommand(w, r, err)
}

func (api *API) handleTagsSet(w http.ResponseWriter, r *http.Request) {
	if api.sessions == nil || api.commands == nil {
		writeUnavailable(w)
		return
	}
	var payload tagsPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	err := api.commands.SetTags.Execute(r.Context(), editorcmd.SetTagsCommand{
		SessionID: r.PathValue("session"),
		Tags:      payload.Tags,
	})
	api.afterCommand(w, r, err)
}

type tagPayload struct {
	Tag string `json:"tag"`
}

func (api *API) handleTagAdd(w http.ResponseWriter, r *http.Request, s *editor.Session) {
	var payload tagPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	if strings.TrimSpace(payload.Tag) == "" {
		writeBadRequest(w, "tag is required")
		return
	}
	s.AddTag(payload.Tag)
	writeJSON(w, http.StatusOK, viewOf(s))
}

func (api *API) handleRelatedSet(w http.ResponseWriter, r *http.Request) {
	if api.sessions == nil || api.commands == nil {
		writeUnavailable(w)
		return
	}
	var payload relatedPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	err := api.commands.SetRelated.Execute(r.Context(), editorcmd.SetRelatedCommand{
		SessionID: r.PathValue("session"),
		Related:   payload.Related,
	})
	api.afterCommand(w, r, err)
}

func (api *API) handleStepAdd(w http.ResponseWriter, _ *http.Request, s *editor.Session) {
	writeJSON(w, http.StatusCreated, s.AddStep())
}

func (api *API) handleStepUpdate(w http.ResponseWriter, r *http.Request, s *editor.Session) {
	var patch method.StepPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	if !s.UpdateStep(r.PathValue("step"), patch) {
		api.writeError(w, r, editor.ErrStepNotFound)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

func (api *API) handleStepRemove(w http.ResponseWriter, r *http.Request, s *editor.Session) {
	if !s.RemoveStep(r.PathValue("step")) {
		api.writeError(w, r, editor.ErrStepNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handleStepResourceAttach(w http.ResponseWriter, r *http.Request, s *editor.Session) {
	var file editor.File
	if err := decodeJSON(r, &file); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	asset, err := s.AttachStepResource(r.PathValue("step"), file)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (api *API) handleStepResourceRemove(w http.ResponseWriter, r *http.Request, s *editor.Session) {
	if !s.RemoveStepResource(r.PathValue("step"), r.PathValue("asset")) {
		api.writeError(w, r, errAssetNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handleExpertAdd(w http.ResponseWriter, _ *http.Request, s *editor.Session) {
	writeJSON(w, http.StatusCreated, s.AddExpert())
}

func (api *API) handleExpertUpdate(w http.ResponseWriter, r *http.Request, s *editor.Session) {
	var patch method.ExpertPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	if !s.UpdateExpert(r.PathValue("expert"), patch) {
		api.writeError(w, r, errExpertNotFound)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

func (api *API) handleExpertRemove(w http.ResponseWriter, r *http.Request, s *editor.Session) {
	if !s.RemoveExpert(r.PathValue("expert")) {
		api.writeError(w, r, errExpertNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handleAssetAttach(w http.ResponseWriter, r *http.Request, s *editor.Session) {
	slot, err := editor.ParseSlot(r.PathValue("slot"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	var payload assetPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}

	var asset *method.Asset
	if strings.TrimSpace(payload.URL) != "" {
		asset, err = s.AttachAssetFromURL(slot, payload.URL, payload.Label)
	} else {
		asset, err = s.AttachAsset(slot, payload.File)
	}
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (api *API) handleAssetRemove(w http.ResponseWriter, r *http.Request, s *editor.Session) {
	slot, err := editor.ParseSlot(r.PathValue("slot"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	if !s.RemoveAsset(slot, r.PathValue("asset")) {
		api.writeError(w, r, errAssetNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handleValidate(w http.ResponseWriter, _ *http.Request, s *editor.Session) {
	errs := s.Validate()
	writeJSON(w, http.StatusOK, validateResponse{
		Valid:  len(errs) == 0,
		Errors: errs,
		Issues: validation.Check(s.Draft(), api.rules...),
	})
}

func (api *API) handleSave(w http.ResponseWriter, r *http.Request, s *editor.Session) {
	api.commit(w, r, s, false)
}

func (api *API) handlePublish(w http.ResponseWriter, r *http.Request, s *editor.Session) {
	api.commit(w, r, s, true)
}

// commit answers 422 with the rule messages when validation fails.
func (api *API) commit(w http.ResponseWriter, r *http.Request, s *editor.Session, publish bool) {
	var (
		result editor.Result
		err    error
	)
	if publish {
		result, err = s.Publish(r.Context())
	} else {
		result, err = s.Save(r.Context())
	}
	if err != nil && result.Method == nil {
		api.writeError(w, r, err)
		return
	}
	if err != nil {
		api.logger.Warn("http.publish_navigation_failed", "session_id", s.ID(), "error", err)
	}
	if len(result.Errors) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
