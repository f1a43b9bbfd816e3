// Pattern resolution: iteratively rewrite unbound placeholders to
// wildcards until the template renders to a concrete glob pattern.
// Implements: prd002-template-engine R4 (bounded resolution);
//
//	docs/ARCHITECTURE § Pattern Resolution.
package template

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/hallmark/pkg/types"
)

// Wildcard is the glob token bound to placeholders the caller left
// unresolved. It matches any substring within one path segment.
const Wildcard = "*"

// Step captures the resolver state before one render attempt: the
// template text (with rewrites applied so far) and a snapshot of the
// binding set.
type Step struct {
	Attempt  int
	Pattern  string
	Bindings map[string]any
}

// Resolution is the outcome of a successful Resolve call.
type Resolution struct {
	// Pattern is the fully substituted glob pattern.
	Pattern string
	// Bindings is the final binding set, wildcard markers included.
	Bindings map[string]any
	// Steps records every render attempt in order, for debug output and
	// for testing the termination bound without filesystem access.
	Steps []Step
}

// Resolve renders the template to a glob pattern, rewriting unbound
// placeholders to wildcards one at a time. Each retry produces a new
// template and binding set from the previous ones. The number of
// rewrites is capped at len(source)/3: the shortest placeholder, "{p}",
// occupies three characters, so no template can declare more fields than
// that. Exceeding the cap returns ErrUnresolvable.
func Resolve(t *Template, bindings map[string]any) (Resolution, error) {
	maxRewrites := len(t.Source()) / 3

	bound := make(map[string]any, len(bindings))
	for k, v := range bindings {
		bound[k] = v
	}

	cur := t
	var steps []Step
	for retry := 0; ; retry++ {
		steps = append(steps, Step{Attempt: retry, Pattern: cur.Source(), Bindings: snapshot(bound)})

		rendered, err := cur.Render(bound)
		if err == nil {
			return Resolution{Pattern: rendered, Bindings: bound, Steps: steps}, nil
		}

		var unbound *UnboundFieldError
		if !errors.As(err, &unbound) {
			// Type mismatches and other render failures are not fixable
			// by wildcarding.
			return Resolution{}, err
		}
		if retry >= maxRewrites {
			return Resolution{}, fmt.Errorf("%w: %q after %d rewrites", types.ErrUnresolvable, t.Source(), retry)
		}

		next, err := cur.withoutSpec(unbound.Name)
		if err != nil {
			return Resolution{}, err
		}
		cur = next
		bound[unbound.Name] = Wildcard
	}
}

func snapshot(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
