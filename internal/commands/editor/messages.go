package editorcmd

import (
	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-methodlib/internal/editor"
)

const (
	updateFieldMessageType = "methods.editor.update_field"
	setTagsMessageType     = "methods.editor.set_tags"
	setRelatedMessageType  = "methods.editor.set_related"
	autosaveMessageType    = "methods.editor.autosave"
	discardMessageType     = "methods.editor.discard"
)

var fieldNames = []any{
	string(editor.FieldName),
	string(editor.FieldDescription),
	string(editor.FieldCode),
	string(editor.FieldSector),
	string(editor.FieldCommunity),
	string(editor.FieldPhase),
}

var sessionRequired = ozzo.Required.ErrorObject(
	ozzo.NewError("methods.editor.session_required", "session id is required"),
)

// UpdateFieldCommand replaces one scalar field of a session draft.
type UpdateFieldCommand struct {
	SessionID string `json:"session_id"`
	Field     string `json:"field"`
	Value     string `json:"value"`
}

func (UpdateFieldCommand) Type() string { return updateFieldMessageType }

func (cmd UpdateFieldCommand) Validate() error {
	return ozzo.ValidateStruct(&cmd,
		ozzo.Field(&cmd.SessionID, sessionRequired),
		ozzo.Field(&cmd.Field, ozzo.Required, ozzo.In(fieldNames...)),
	)
}

// SetTagsCommand replaces the tag set of a session draft.
type SetTagsCommand struct {
	SessionID string   `json:"session_id"`
	Tags      []string `json:"tags"`
}

func (SetTagsCommand) Type() string { return setTagsMessageType }

func (cmd SetTagsCommand) Validate() error {
	return ozzo.ValidateStruct(&cmd, ozzo.Field(&cmd.SessionID, sessionRequired))
}

// SetRelatedCommand replaces the related method ids of a session draft.
type SetRelatedCommand struct {
	SessionID string   `json:"session_id"`
	Related   []string `json:"related"`
}

func (SetRelatedCommand) Type() string { return setRelatedMessageType }

func (cmd SetRelatedCommand) Validate() error {
	return ozzo.ValidateStruct(&cmd, ozzo.Field(&cmd.SessionID, sessionRequired))
}

// AutosaveCommand writes a session draft to its snapshot slot immediately.
type AutosaveCommand struct {
	SessionID string `json:"session_id"`
}

func (AutosaveCommand) Type() string { return autosaveMessageType }

func (cmd AutosaveCommand) Validate() error {
	return ozzo.ValidateStruct(&cmd, ozzo.Field(&cmd.SessionID, sessionRequired))
}

// DiscardCommand clears the session snapshot and closes the session.
type DiscardCommand struct {
	SessionID string `json:"session_id"`
}

func (DiscardCommand) Type() string { return discardMessageType }

func (cmd DiscardCommand) Validate() error {
	return ozzo.ValidateStruct(&cmd, ozzo.Field(&cmd.SessionID, sessionRequired))
}
