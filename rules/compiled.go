package rules

import (
	"strings"

	"github.com/pkg/errors"
)

// neighborSet is a bitmask over neighbor counts 0..9
type neighborSet uint16

func (s neighborSet) has(n int) bool {
	return n >= 0 && n <= 9 && s&(1<<uint(n)) != 0
}

func (s neighborSet) digits() string {
	var b strings.Builder
	for n := 0; n <= 9; n++ {
		if s.has(n) {
			b.WriteByte(byte('0' + n))
		}
	}
	return b.String()
}

/*
CompiledRule is a Life-like rule in birth/survival notation.

B3/S23 is Conway's Game of Life: a dead cell with exactly 3 live neighbors is born,
a live cell with 2 or 3 live neighbors survives, everything else dies.
*/
type CompiledRule struct {
	born    neighborSet
	survive neighborSet
}

// ParseRule parses a "Bxxx/Syyy" rule string, ignoring case and surrounding whitespace
func ParseRule(dsl string) (*CompiledRule, error) {
	dsl = strings.ToUpper(strings.TrimSpace(dsl))
	if dsl == "" {
		return nil, errors.Wrap(ErrRuleSyntax, "[ParseRule] must provide a rule string (e.g. B3/S23)")
	}

	parts := strings.Split(dsl, "/")
	if len(parts) != 2 {
		return nil, errors.Wrapf(ErrRuleSyntax, "[ParseRule] rule must be in B.../S... format: %q", dsl)
	}
	bornPart, survivePart := parts[0], parts[1]
	if !strings.HasPrefix(bornPart, "B") {
		return nil, errors.Wrapf(ErrRuleSyntax, "[ParseRule] birth part must start with B: %q", dsl)
	}
	if !strings.HasPrefix(survivePart, "S") {
		return nil, errors.Wrapf(ErrRuleSyntax, "[ParseRule] survival part must start with S: %q", dsl)
	}

	born, err := parseCounts(bornPart[1:])
	if err != nil {
		return nil, errors.Wrapf(err, "[ParseRule] birth part of %q", dsl)
	}
	survive, err := parseCounts(survivePart[1:])
	if err != nil {
		return nil, errors.Wrapf(err, "[ParseRule] survival part of %q", dsl)
	}

	return &CompiledRule{born: born, survive: survive}, nil
}

// MustParseRule is ParseRule for rule strings known to be valid; it panics otherwise
func MustParseRule(dsl string) *CompiledRule {
	rule, err := ParseRule(dsl)
	if err != nil {
		panic(err)
	}
	return rule
}

func parseCounts(digits string) (neighborSet, error) {
	var set neighborSet
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, errors.Wrapf(ErrRuleSyntax, "non-digit %q", r)
		}
		set |= 1 << uint(r-'0')
	}
	return set, nil
}

// Evaluate implements Evaluator
func (r *CompiledRule) Evaluate(alive bool, neighbors int) Action {
	if !alive && r.born.has(neighbors) {
		return Born
	}
	if alive && r.survive.has(neighbors) {
		return Survive
	}
	return Die
}

// String returns the canonical rule string, e.g. "B36/S23"
func (r *CompiledRule) String() string {
	return "B" + r.born.digits() + "/S" + r.survive.digits()
}
