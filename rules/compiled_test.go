package rules

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseRuleConway(t *testing.T) {
	rule, err := ParseRule("B3/S23")
	if err != nil {
		t.Fatalf("ParseRule: %v", err)
	}

	for n := 0; n <= 8; n++ {
		want := Die
		if n == 2 || n == 3 {
			want = Survive
		}
		if got := rule.Evaluate(true, n); got != want {
			t.Errorf("Evaluate(true, %d) = %v, want %v", n, got, want)
		}

		want = Die
		if n == 3 {
			want = Born
		}
		if got := rule.Evaluate(false, n); got != want {
			t.Errorf("Evaluate(false, %d) = %v, want %v", n, got, want)
		}
	}
}

func TestParseRuleHighLife(t *testing.T) {
	rule, err := ParseRule("B36/S23")
	if err != nil {
		t.Fatalf("ParseRule: %v", err)
	}
	if got := rule.Evaluate(false, 3); got != Born {
		t.Errorf("Evaluate(false, 3) = %v, want born", got)
	}
	if got := rule.Evaluate(false, 6); got != Born {
		t.Errorf("Evaluate(false, 6) = %v, want born", got)
	}
	if got := rule.Evaluate(false, 4); got != Die {
		t.Errorf("Evaluate(false, 4) = %v, want die", got)
	}
}

func TestParseRuleNormalizes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"B3/S23", "B3/S23"},
		{"  b3/s23 \n", "B3/S23"},
		{"B63/S32", "B36/S23"},
		{"B333/S2323", "B3/S23"},
		{"B2/S", "B2/S"},
		{"B/S", "B/S"},
		{"B9/S", "B9/S"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rule, err := ParseRule(tt.in)
			if err != nil {
				t.Fatalf("ParseRule(%q): %v", tt.in, err)
			}
			if got := rule.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRuleInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"3/S23",
		"B3/23",
		"B3S23",
		"B3/S2/S3",
		"B3x/S23",
		"B3/S2-3",
		"S23/B3",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseRule(in)
			if !errors.Is(err, ErrRuleSyntax) {
				t.Fatalf("ParseRule(%q) error = %v, want ErrRuleSyntax", in, err)
			}
		})
	}
}

func TestCompiledRuleTotalAndDeterministic(t *testing.T) {
	for _, dsl := range []string{"B3/S23", "B36/S23", "B2/S", "B3678/S34678"} {
		rule := MustParseRule(dsl)
		for _, alive := range []bool{true, false} {
			for n := 0; n <= 8; n++ {
				first := rule.Evaluate(alive, n)
				switch first {
				case Born, Survive, Die:
				default:
					t.Fatalf("%s: Evaluate(%v, %d) = %v, outside {born, survive, die}", dsl, alive, n, first)
				}
				if again := rule.Evaluate(alive, n); again != first {
					t.Fatalf("%s: Evaluate(%v, %d) not deterministic: %v then %v", dsl, alive, n, first, again)
				}
			}
		}
	}
}

func TestLookup(t *testing.T) {
	rule, err := Lookup("HighLife")
	if err != nil {
		t.Fatalf("Lookup preset: %v", err)
	}
	if rule.String() != "B36/S23" {
		t.Errorf("Lookup(HighLife) = %s, want B36/S23", rule)
	}

	rule, err = Lookup("b34/s34")
	if err != nil {
		t.Fatalf("Lookup dsl: %v", err)
	}
	if rule.String() != "B34/S34" {
		t.Errorf("Lookup(b34/s34) = %s, want B34/S34", rule)
	}

	if _, err = Lookup("nonsense"); !errors.Is(err, ErrRuleSyntax) {
		t.Errorf("Lookup(nonsense) error = %v, want ErrRuleSyntax", err)
	}

	for _, name := range Presets() {
		if _, err := Lookup(name); err != nil {
			t.Errorf("preset %q does not parse: %v", name, err)
		}
	}
}

func TestActionText(t *testing.T) {
	for _, a := range []Action{Die, Survive, Born, Unchanged} {
		text, err := a.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", a, err)
		}
		var back Action
		if err := back.UnmarshalText(text); err != nil || back != a {
			t.Fatalf("UnmarshalText(%s) = %v, %v", text, back, err)
		}
	}

	if got, err := ParseAction(" SURVIVE "); err != nil || got != Survive {
		t.Errorf("ParseAction(SURVIVE) = %v, %v", got, err)
	}
	if _, err := ParseAction("explode"); !errors.Is(err, ErrRuleSyntax) {
		t.Errorf("ParseAction(explode) error = %v, want ErrRuleSyntax", err)
	}
	if _, err := Action(42).MarshalText(); err == nil {
		t.Error("MarshalText(42) succeeded")
	}
}

func BenchmarkEvaluate(b *testing.B) {
	evaluators := map[string]Evaluator{
		"compiled": Conway,
		"declarative": NewRuleSet([]Rule{
			{ID: "birth", Action: Born, Conditions: Condition{CellState: Dead, Operator: Equals, Value: Value{3}}},
			{ID: "survive", Action: Survive, Conditions: Condition{CellState: Alive, Operator: In, Value: Value{2, 3}}},
		}, Die),
	}
	for name, e := range evaluators {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				e.Evaluate(i&1 == 0, i%9)
			}
		})
	}
}
