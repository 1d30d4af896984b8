package entity

import "strings"

type Action string

const (
	ActionOpen    Action = "open"
	ActionClose   Action = "close"
	ActionSearch  Action = "search"
	ActionUnknown Action = "unknown"
)

// ParseAction maps free-form model output onto a supported action.
// Anything outside open/close/search becomes ActionUnknown.
func ParseAction(s string) Action {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionOpen, ActionClose, ActionSearch:
		return a
	default:
		return ActionUnknown
	}
}

func (a Action) String() string {
	return string(a)
}

type Intent struct {
	Action     Action
	Target     string
	Parameters map[string]any
}

func UnknownIntent() Intent {
	return Intent{Action: ActionUnknown}
}

type CommandResult struct {
	ID       string
	Input    string
	Intent   Intent
	Response string
}
