package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// parseArgAssignments turns repeated --arg name=value flags into a free
// variable binding map, coercing each value to int or bool where it
// parses as one, and falling back to the literal string otherwise.
func parseArgAssignments(assignments []string) (map[string]any, error) {
	out := map[string]any{}
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --arg %q: want name=value", a)
		}
		out[name] = coerce(value)
	}
	return out, nil
}

func coerce(value string) any {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

// mergeArgs overlays overrides onto defaults, returning a new map.
func mergeArgs(defaults, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func lookupScenario(name string) (scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return scenario{}, fmt.Errorf("unknown scenario %q (available: %s)", name, strings.Join(scenarioNames(), ", "))
	}
	return s, nil
}
