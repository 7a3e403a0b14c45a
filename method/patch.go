package method

// StepPatch is a partial update for a Step. A non-nil field replaces the
// current value; nil fields leave it untouched.
type StepPatch struct {
	Title     *string  `json:"title,omitempty"`
	Body      *string  `json:"body,omitempty"`
	Resources *[]Asset `json:"resources,omitempty"`
}

// Apply returns a copy of the step with the patch merged in.
func (s Step) Apply(patch StepPatch) Step {
	out := s.Clone()
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.Body != nil {
		out.Body = *patch.Body
	}
	if patch.Resources != nil {
		out.Resources = cloneAssets(*patch.Resources)
	}
	return out
}

// ExpertPatch is a partial update for an Expert.
type ExpertPatch struct {
	Name      *string `json:"name,omitempty"`
	Role      *string `json:"role,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// Apply returns a copy of the expert with the patch merged in.
func (e Expert) Apply(patch ExpertPatch) Expert {
	out := e
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Role != nil {
		out.Role = *patch.Role
	}
	if patch.AvatarURL != nil {
		out.AvatarURL = *patch.AvatarURL
	}
	return out
}

// Empty reports whether the patch carries no changes.
func (p StepPatch) Empty() bool {
	return p.Title == nil && p.Body == nil && p.Resources == nil
}

// Empty reports whether the patch carries no changes.
func (p ExpertPatch) Empty() bool {
	return p.Name == nil && p.Role == nil && p.AvatarURL == nil
}
