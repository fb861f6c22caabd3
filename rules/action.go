package rules

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrRuleSyntax is returned for malformed rule strings and rule records
var ErrRuleSyntax = errors.New("rule syntax error")

// Action is the transition an evaluator prescribes for a single cell
type Action uint8

const (
	Die Action = iota
	Survive
	Born
	Unchanged
)

var actionNames = map[Action]string{
	Die:       "die",
	Survive:   "survive",
	Born:      "born",
	Unchanged: "unchanged",
}

// String returns the lower-case action name
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction maps an action name onto the closed Action set
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for action, actionName := range actionNames {
		if actionName == name {
			return action, nil
		}
	}
	return Die, errors.Wrapf(ErrRuleSyntax, "[ParseAction] unknown action: %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	if _, ok := actionNames[a]; !ok {
		return nil, errors.Wrapf(ErrRuleSyntax, "[MarshalText] unknown action: %d", uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Names outside the closed set decode to Unchanged.
func (a *Action) UnmarshalText(text []byte) error {
	action, err := ParseAction(string(text))
	if err != nil {
		action = Unchanged
	}
	*a = action
	return nil
}

// Evaluator decides the next action for a cell from its liveness and live-neighbor count.
// Implementations must be total over (bool, [0,8]) and free of hidden state.
type Evaluator interface {
	Evaluate(alive bool, neighbors int) Action
}
