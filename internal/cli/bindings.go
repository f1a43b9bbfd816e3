// Parsing of name=value binding and constraint arguments.
// Implements: prd006-hallmark-cli R3 (binding syntax), R4 (constraint syntax).
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseBindings turns "name=value" arguments into a binding set. Values
// coerce to int, then float64, then string, matching the value kinds the
// template engine produces.
func parseBindings(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	bindings := make(map[string]any, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid binding %q: expected name=value", arg)
		}
		bindings[name] = coerceValue(value)
	}
	return bindings, nil
}

// parseConstraints turns "column=v1,v2,..." arguments into a filter
// constraint set: a scalar for single values, a slice for comma lists.
func parseConstraints(args []string) (map[string]any, error) {
	constraints := make(map[string]any, len(args))
	for _, arg := range args {
		column, spec, ok := strings.Cut(arg, "=")
		if !ok || column == "" {
			return nil, fmt.Errorf("invalid constraint %q: expected column=value[,value...]", arg)
		}
		parts := strings.Split(spec, ",")
		if len(parts) == 1 {
			constraints[column] = coerceValue(parts[0])
			continue
		}
		values := make([]any, len(parts))
		for i, p := range parts {
			values[i] = coerceValue(p)
		}
		constraints[column] = values
	}
	return constraints, nil
}

// coerceValue parses a CLI value as int, then float, then string.
func coerceValue(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
