package rules

import (
	"encoding/json"
	"slices"

	"github.com/pkg/errors"
)

// CellState is the liveness a condition applies to
type CellState string

const (
	Alive CellState = "alive"
	Dead  CellState = "dead"
)

func stateOf(alive bool) CellState {
	if alive {
		return Alive
	}
	return Dead
}

// Operator tags a condition node. Comparison operators make a leaf, And/Or a composite.
type Operator string

const (
	Equals      Operator = "equals"
	LessThan    Operator = "less_than"
	GreaterThan Operator = "greater_than"
	In          Operator = "in"
	NotIn       Operator = "not_in"
	And         Operator = "and"
	Or          Operator = "or"
)

// Value is a leaf operand. Scalar operators use a single element, In/NotIn the whole list.
// In JSON it is either a number or an array of numbers.
type Value []int

// UnmarshalJSON accepts a scalar or a list
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = nil
		return nil
	}
	var scalar int
	if err := json.Unmarshal(data, &scalar); err == nil {
		*v = Value{scalar}
		return nil
	}
	var list []int
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.Wrapf(ErrRuleSyntax, "[Value.UnmarshalJSON] expected integer or integer list, got %s", data)
	}
	*v = list
	return nil
}

// MarshalJSON writes single-element values as a scalar
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v) == 1 {
		return json.Marshal(v[0])
	}
	return json.Marshal([]int(v))
}

func (v Value) scalar() (int, bool) {
	if len(v) != 1 {
		return 0, false
	}
	return v[0], true
}

// Condition is a node of a rule's condition tree
type Condition struct {
	CellState  CellState   `json:"cell_state,omitempty"`
	Operator   Operator    `json:"operator"`
	Value      Value       `json:"value,omitempty"`
	Conditions []Condition `json:"conditions,omitempty"`
}

// Matches reports whether the neighbor count satisfies the condition tree.
// Unknown operators never match.
func (c Condition) Matches(neighbors int) bool {
	switch c.Operator {
	case Equals:
		n, ok := c.Value.scalar()
		return ok && neighbors == n
	case LessThan:
		n, ok := c.Value.scalar()
		return ok && neighbors < n
	case GreaterThan:
		n, ok := c.Value.scalar()
		return ok && neighbors > n
	case In:
		return slices.Contains(c.Value, neighbors)
	case NotIn:
		return !slices.Contains(c.Value, neighbors)
	case And:
		for _, child := range c.Conditions {
			if !child.Matches(neighbors) {
				return false
			}
		}
		return true
	case Or:
		for _, child := range c.Conditions {
			if child.Matches(neighbors) {
				return true
			}
		}
		return false
	}
	return false
}

// Rule is one declarative record: when Conditions match, the cell takes Action
type Rule struct {
	ID         string    `json:"id"`
	Action     Action    `json:"action"`
	Conditions Condition `json:"conditions"`
}

// RuleSet evaluates rules in order, first match wins
type RuleSet struct {
	rules         []Rule
	defaultAction Action
}

// NewRuleSet builds a RuleSet. The order of rules is the priority order and is kept as given.
func NewRuleSet(rules []Rule, defaultAction Action) *RuleSet {
	return &RuleSet{
		rules:         slices.Clone(rules),
		defaultAction: defaultAction,
	}
}

// Evaluate returns the action of the first rule whose conditions match, or the default action.
// A rule is only tried when its root cell_state equals the cell's state; a rule with no root
// cell_state is tried for both live and dead cells.
func (rs *RuleSet) Evaluate(alive bool, neighbors int) Action {
	state := stateOf(alive)
	for _, rule := range rs.rules {
		// the root cell_state gates the whole rule; an empty one applies to both states
		if rule.Conditions.CellState != "" && rule.Conditions.CellState != state {
			continue
		}
		if rule.Conditions.Matches(neighbors) {
			return rule.Action
		}
	}
	return rs.defaultAction
}

// Len returns the number of rules
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Rules returns a copy of the rules in priority order
func (rs *RuleSet) Rules() []Rule {
	return slices.Clone(rs.rules)
}

// DefaultAction is returned when no rule matches
func (rs *RuleSet) DefaultAction() Action {
	return rs.defaultAction
}
