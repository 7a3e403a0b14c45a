package method

// Clone returns a deep copy so callers never share slices or pointers.
func (m Method) Clone() Method {
	out := m
	out.Approach = make([]Step, len(m.Approach))
	for i, step := range m.Approach {
		out.Approach[i] = step.Clone()
	}
	out.Downloads = cloneAssets(m.Downloads)
	out.Video = cloneAssetPtr(m.Video)
	out.Audio = cloneAssetPtr(m.Audio)
	if m.Code != nil {
		code := *m.Code
		out.Code = &code
	}
	out.Tags = cloneStrings(m.Tags)
	out.Related = cloneStrings(m.Related)
	out.Experts = append(make([]Expert, 0, len(m.Experts)), m.Experts...)
	out.Capabilities = cloneStrings(m.Capabilities)
	if m.PublishedAt != nil {
		ts := *m.PublishedAt
		out.PublishedAt = &ts
	}
	return out
}

// Normalize replaces nil collections with empty ones so encoded drafts always
// carry arrays.
func (m Method) Normalize() Method {
	if m.Approach == nil {
		m.Approach = []Step{}
	}
	for i := range m.Approach {
		if m.Approach[i].Resources == nil {
			steps := append([]Step(nil), m.Approach...)
			for j := i; j < len(steps); j++ {
				if steps[j].Resources == nil {
					steps[j].Resources = []Asset{}
				}
			}
			m.Approach = steps
			break
		}
	}
	if m.Downloads == nil {
		m.Downloads = []Asset{}
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	if m.Related == nil {
		m.Related = []string{}
	}
	if m.Experts == nil {
		m.Experts = []Expert{}
	}
	return m
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	out := s
	out.Resources = cloneAssets(s.Resources)
	return out
}

func cloneAssets(src []Asset) []Asset {
	return append(make([]Asset, 0, len(src)), src...)
}

func cloneAssetPtr(src *Asset) *Asset {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	return append(make([]string, 0, len(src)), src...)
}
