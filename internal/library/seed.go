package library

import (
	"context"
	"fmt"

	"github.com/goliatone/go-methodlib/internal/identity"
	"github.com/goliatone/go-methodlib/method"
)

// KnownTags is the starting tag vocabulary for the tag picker.
var KnownTags = []string{
	"Digital design",
	"Public sector",
	"Private sector",
	"Discovery",
	"Alpha",
	"Beta",
	"Live",
	"User research",
	"Data analysis",
	"Strategy",
}

type seedMethod struct {
	slug         string
	name         string
	sector       string
	community    string
	phase        string
	capabilities []string
	description  string
	steps        [][2]string
	tags         []string
	related      []string
}

var sampleLibrary = []seedMethod{
	{
		slug:         "agile-development",
		name:         "Agile Development",
		sector:       "Public sector",
		community:    "Product and Strategy",
		phase:        "Alpha",
		capabilities: []string{"Architecture, Engineering & DevOps"},
		description:  "Deliver working software in short iterations and adapt the plan from what each iteration teaches the team.",
		steps: [][2]string{
			{"Form the team", "Bring product, design and engineering into one team with a single backlog."},
			{"Plan the first sprint", "Agree a sprint goal and pull the highest value items from the backlog."},
		},
		tags:    []string{"Alpha", "Strategy"},
		related: []string{"user-research"},
	},
	{
		slug:         "user-research",
		name:         "User Research",
		sector:       "Private sector",
		community:    "Digital Design",
		phase:        "Discovery",
		capabilities: []string{"Digital Strategy & Experience"},
		description:  "Learn who the users are, what they need and how they behave before committing to a solution.",
		steps: [][2]string{
			{"Frame the questions", "List the assumptions the team holds and the questions research must answer."},
			{"Pick methods", "Choose interviews, surveys or testing based on the questions and the time available."},
		},
		tags:    []string{"User research", "Discovery", "Private sector"},
		related: []string{"user-interviews", "user-desk-research"},
	},
	{
		slug:         "user-interviews",
		name:         "User Interviews",
		sector:       "Public sector",
		community:    "Digital Design",
		phase:        "Discovery",
		capabilities: []string{"Digital Strategy & Experience"},
		description: "User interviews are structured conversations that uncover the needs, pain points and motivations behind user behaviour.\n\n" +
			"They are different from user testing, which observes people using a product.",
		steps: [][2]string{
			{"Define research goals", "Decide what you want to learn. Write down the hypotheses to validate and the assumptions to test."},
			{"Identify and recruit target users", "Compile a diverse list of participants, screen them and schedule 30 to 60 minute sessions with time between them."},
			{"Run the interviews", "Follow the discussion guide, ask open questions and take notes or record with consent."},
		},
		tags:    []string{"Digital design", "Public sector", "Discovery", "Alpha"},
		related: []string{"user-testing", "surveys", "focus-groups"},
	},
	{
		slug:         "user-desk-research",
		name:         "User Desk Research",
		sector:       "Public sector",
		community:    "Data Science",
		phase:        "Discovery",
		capabilities: []string{"Digital Strategy & Experience"},
		description:  "Review existing research, analytics and published material to learn what is already known.",
		steps: [][2]string{
			{"Gather sources", "Collect previous reports, analytics exports and relevant public studies."},
			{"Summarise findings", "Group what you found into themes and note the gaps that need primary research."},
		},
		tags:    []string{"User research", "Data analysis"},
		related: []string{"user-research"},
	},
	{slug: "user-testing", name: "User Testing", sector: "Public sector", community: "User Experience Design", phase: "Alpha",
		capabilities: []string{"Digital Strategy & Experience"},
		description:  "Watch people attempt real tasks with a prototype or live service.",
		steps:        [][2]string{{"Write tasks", "Describe realistic tasks without hinting at the interface."}},
		tags:         []string{"User research", "Alpha"}},
	{slug: "surveys", name: "User Surveys", sector: "Private sector", community: "Data Analytics", phase: "Discovery",
		capabilities: []string{"Data Science"},
		description:  "Collect structured answers from a large group of users.",
		steps:        [][2]string{{"Draft questions", "Keep questions short, neutral and focused on one topic each."}},
		tags:         []string{"Data analysis"}},
	{slug: "focus-groups", name: "Focus Groups", sector: "Private sector", community: "Service Design", phase: "Discovery",
		capabilities: []string{"Digital Strategy & Experience"},
		description:  "Facilitate a moderated discussion with a small group of users.",
		steps:        [][2]string{{"Recruit the group", "Invite six to eight participants who share the trait you are studying."}},
		tags:         []string{"User research"}},
	{slug: "card-sorting", name: "Card Sorting", sector: "Public sector", community: "Information Architecture", phase: "Alpha",
		capabilities: []string{"Digital Strategy & Experience"},
		description:  "Ask users to group content so the navigation matches their mental model.",
		steps:        [][2]string{{"Prepare cards", "Write one content item per card and keep labels plain."}},
		tags:         []string{"Digital design"},
		related:      []string{"tree-testing"}},
	{slug: "tree-testing", name: "Tree Testing", sector: "Public sector", community: "Information Architecture", phase: "Alpha",
		capabilities: []string{"Digital Strategy & Experience"},
		description:  "Check whether users can find items in a proposed navigation hierarchy.",
		steps:        [][2]string{{"Build the tree", "Enter the proposed hierarchy as text without visual design."}},
		tags:         []string{"Digital design"},
		related:      []string{"card-sorting"}},
}

// SampleMethods returns the seed library with deterministic ids. Related
// references are rewritten to the seeded ids.
func SampleMethods() []method.Method {
	out := make([]method.Method, 0, len(sampleLibrary))
	for _, seed := range sampleLibrary {
		id := identity.SeedMethodID(seed.slug)
		m := method.Empty()
		m.ID = id
		m.Name = seed.name
		m.Description = seed.description
		m.Sector = seed.sector
		m.Community = seed.community
		m.Phase = seed.phase
		m.Capabilities = append([]string{}, seed.capabilities...)
		m.Tags = append([]string{}, seed.tags...)
		for i, step := range seed.steps {
			m.Approach = append(m.Approach, method.Step{
				ID:        identity.ChildID(id, "step", i+1),
				Title:     step[0],
				Body:      step[1],
				Resources: []method.Asset{},
			})
		}
		for _, slug := range seed.related {
			m.Related = append(m.Related, identity.SeedMethodID(slug))
		}
		out = append(out, m)
	}
	return out
}

// Seed publishes the sample library. Existing records are overwritten.
func Seed(ctx context.Context, svc Service) (int, error) {
	count := 0
	for _, m := range SampleMethods() {
		if _, err := svc.Publish(ctx, m); err != nil {
			return count, fmt.Errorf("library: seed %s: %w", m.Name, err)
		}
		count++
	}
	return count, nil
}
