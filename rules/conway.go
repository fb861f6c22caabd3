package rules

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

/*
Conway is Conway's Game of Life rule.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
var Conway = MustParseRule("B3/S23")

// presets maps well-known rule names to their B/S notation
var presets = map[string]string{
	"conway":           "B3/S23",
	"highlife":         "B36/S23",
	"seeds":            "B2/S",
	"34life":           "B34/S34",
	"daynight":         "B3678/S34678",
	"lifewithoutdeath": "B3/S012345678",
	"maze":             "B3/S12345",
}

// Presets returns the sorted preset names
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup resolves a preset name or, failing that, parses nameOrDSL as a B/S rule string
func Lookup(nameOrDSL string) (*CompiledRule, error) {
	if dsl, ok := presets[strings.ToLower(strings.TrimSpace(nameOrDSL))]; ok {
		return ParseRule(dsl)
	}
	rule, err := ParseRule(nameOrDSL)
	if err != nil {
		return nil, errors.Wrapf(err, "[Lookup] not a preset (%s) or a valid rule", strings.Join(Presets(), "|"))
	}
	return rule, nil
}
