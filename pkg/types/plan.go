package types

// ActionKind says what reconciliation will do with one desired link.
type ActionKind string

const (
	// ActionCreate creates a link where nothing exists yet.
	ActionCreate ActionKind = "create"
	// ActionReplace removes whatever occupies the link path, then creates the link.
	ActionReplace ActionKind = "replace"
	// ActionSkip leaves a link that already points at its target untouched.
	ActionSkip ActionKind = "skip"
)

// Action is one planned step for one link.
type Action struct {
	Kind   ActionKind
	Link   string
	Target string
}

// Mutates reports whether applying the action touches the filesystem.
func (a Action) Mutates() bool {
	return a.Kind != ActionSkip
}

// ActionPlan is the ordered list of actions for a run plus the links that
// will be queued for removal once the plan has been applied.
type ActionPlan struct {
	Actions []Action
	Queued  []string
}

// Mutations counts the actions that touch the filesystem.
func (p *ActionPlan) Mutations() int {
	n := 0
	for _, a := range p.Actions {
		if a.Mutates() {
			n++
		}
	}
	return n
}
