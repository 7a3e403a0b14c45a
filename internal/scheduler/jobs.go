package scheduler

const (
	// JobTypeDraftAutosave writes an editor session's draft to its snapshot.
	JobTypeDraftAutosave = "methods.draft.autosave"
)

// DraftAutosaveJobKey is the unique key of a session's pending autosave tick.
func DraftAutosaveJobKey(sessionID string) string {
	return "editor:" + sessionID + ":autosave"
}
