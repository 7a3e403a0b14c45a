package validation

import (
	"errors"
	"fmt"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-methodlib/method"
)

var (
	ErrNameRequired        = ozzo.NewError("methods.name_required", "Method name is required")
	ErrDescriptionRequired = ozzo.NewError("methods.description_required", "Description is required")
	ErrApproachRequired    = ozzo.NewError("methods.approach_required", "At least one approach step is required")
	ErrStepTitleRequired   = ozzo.NewError("methods.step_title_required", "Step {{.step}} title is required")
	ErrStepBodyRequired    = ozzo.NewError("methods.step_body_required", "Step {{.step}} body is required")
	ErrExpertNameRequired  = ozzo.NewError("methods.expert_name_required", "Expert {{.expert}} name is required")
	ErrExpertRoleRequired  = ozzo.NewError("methods.expert_role_required", "Expert {{.expert}} role is required")
)

// Issue is one failed rule, in the order the rule set evaluated it.
type Issue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RuleOption toggles optional rules.
type RuleOption func(*ruleSet)

// WithExpertRules rejects experts with an empty name or role. The checks run
// after every step check so the required-field ordering is unchanged.
func WithExpertRules(enabled bool) RuleOption {
	return func(rs *ruleSet) {
		rs.experts = enabled
	}
}

type ruleSet struct {
	experts bool
}

// Validate returns the user-facing error messages for a draft. An empty
// result means the method is publishable.
func Validate(m method.Method, opts ...RuleOption) []string {
	issues := Check(m, opts...)
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, issue.Message)
	}
	return messages
}

// Check runs the rule set and returns coded issues in evaluation order.
func Check(m method.Method, opts ...RuleOption) []Issue {
	rs := ruleSet{}
	for _, opt := range opts {
		if opt != nil {
			opt(&rs)
		}
	}

	issues := []Issue{}
	add := func(field string, err error) {
		if err == nil {
			return
		}
		issues = append(issues, toIssue(field, err))
	}

	add("name", requireText(m.Name, ErrNameRequired))
	add("description", requireText(m.Description, ErrDescriptionRequired))
	add("approach", ozzo.Validate(m.Approach, ozzo.Required.ErrorObject(ErrApproachRequired)))

	for i, step := range m.Approach {
		params := map[string]any{"step": i + 1}
		add(fmt.Sprintf("approach[%d].title", i), requireText(step.Title, ErrStepTitleRequired.SetParams(params)))
		add(fmt.Sprintf("approach[%d].body", i), requireText(step.Body, ErrStepBodyRequired.SetParams(params)))
	}

	if rs.experts {
		for i, expert := range m.Experts {
			params := map[string]any{"expert": i + 1}
			add(fmt.Sprintf("experts[%d].name", i), requireText(expert.Name, ErrExpertNameRequired.SetParams(params)))
			add(fmt.Sprintf("experts[%d].role", i), requireText(expert.Role, ErrExpertRoleRequired.SetParams(params)))
		}
	}

	return issues
}

func requireText(value string, errObj ozzo.Error) error {
	return ozzo.Validate(strings.TrimSpace(value), ozzo.Required.ErrorObject(errObj))
}

func toIssue(field string, err error) Issue {
	var coded ozzo.Error
	if errors.As(err, &coded) {
		return Issue{Field: field, Code: coded.Code(), Message: coded.Error()}
	}
	return Issue{Field: field, Message: err.Error()}
}
