// Package template implements typed naming templates: compile, render
// against a binding set, and structural parse of candidate strings back
// into typed field values.
// Implements: prd002-template-engine (R1 syntax, R2 render, R3 parse);
//             docs/ARCHITECTURE § Template Engine.
package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/hallmark/pkg/types"
)

// Type specifiers accepted in placeholders.
const (
	SpecNone   = ""  // untyped: matches lazily, recovered as string
	SpecString = "s" // explicit string
	SpecInt    = "d" // decimal integer, recovered as int
	SpecFloat  = "f" // floating point, recovered as float64
	SpecWord   = "w" // word characters only, recovered as string
)

var knownSpecs = map[string]bool{
	SpecNone:   true,
	SpecString: true,
	SpecInt:    true,
	SpecFloat:  true,
	SpecWord:   true,
}

// segment is one token of a compiled template: a literal run or a named
// placeholder.
type segment struct {
	literal string // Literal text; empty for placeholders.
	name    string // Placeholder name; empty for literals.
	spec    string // Placeholder type specifier.
}

// Template is an immutable compiled naming template.
type Template struct {
	src      string
	segments []segment
	fields   []string // Placeholder names in declaration order.
	re       *regexp.Regexp
}

// identRe validates placeholder names. Names must be valid identifiers
// so they can double as regexp group names and table column names.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Compile parses a naming template. Placeholders are written {name} or
// {name:spec}; literal braces are escaped as {{ and }}. Duplicate
// placeholder names and unknown specifiers are errors.
func Compile(src string) (*Template, error) {
	segs, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	return newTemplate(src, segs)
}

func newTemplate(src string, segs []segment) (*Template, error) {
	t := &Template{src: src, segments: segs}

	seen := make(map[string]bool)
	var pattern strings.Builder
	pattern.WriteString(`\A`)
	for _, s := range segs {
		if s.name == "" {
			pattern.WriteString(regexp.QuoteMeta(s.literal))
			continue
		}
		if seen[s.name] {
			return nil, fmt.Errorf("%w: %q in template %q", types.ErrDuplicateKey, s.name, src)
		}
		seen[s.name] = true
		t.fields = append(t.fields, s.name)
		pattern.WriteString(specPattern(s.spec))
	}
	pattern.WriteString(`\z`)

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("compiling match pattern for %q: %w", src, err)
	}
	t.re = re
	return t, nil
}

// tokenize splits src into literal and placeholder segments, merging
// adjacent literals.
func tokenize(src string) ([]segment, error) {
	var segs []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(src); {
		switch src[i] {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(src[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated placeholder at offset %d in %q", types.ErrBadTemplate, i, src)
			}
			end += i
			name, spec, err := splitPlaceholder(src[i+1:end], src)
			if err != nil {
				return nil, err
			}
			flush()
			segs = append(segs, segment{name: name, spec: spec})
			i = end + 1
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, fmt.Errorf("%w: unmatched %q at offset %d in %q", types.ErrBadTemplate, "}", i, src)
		default:
			lit.WriteByte(src[i])
			i++
		}
	}
	flush()
	return segs, nil
}

// splitPlaceholder validates the body of a {name:spec} placeholder.
func splitPlaceholder(body, src string) (name, spec string, err error) {
	name = body
	if idx := strings.IndexByte(body, ':'); idx >= 0 {
		name, spec = body[:idx], body[idx+1:]
	}
	if !identRe.MatchString(name) {
		return "", "", fmt.Errorf("%w: bad placeholder name %q in %q", types.ErrBadTemplate, name, src)
	}
	if !knownSpecs[spec] {
		return "", "", fmt.Errorf("%w: %q on placeholder %q in %q", types.ErrUnknownSpec, spec, name, src)
	}
	return name, spec, nil
}

// specPattern returns the capture group used to recover a field of the
// given spec. Untyped and string fields match lazily so that adjacent
// literals anchor them.
func specPattern(spec string) string {
	switch spec {
	case SpecInt:
		return `([+-]?\d+)`
	case SpecFloat:
		return `([+-]?(?:\d+\.\d*|\.\d+|\d+)(?:[eE][+-]?\d+)?)`
	case SpecWord:
		return `(\w+)`
	default:
		return `(.+?)`
	}
}

// Source returns the template text the Template was compiled from,
// including any rewrites applied by the resolver.
func (t *Template) Source() string { return t.src }

// Fields returns the placeholder names in declaration order.
func (t *Template) Fields() []string {
	out := make([]string, len(t.fields))
	copy(out, t.fields)
	return out
}

// UnboundFieldError reports the first placeholder that Render found no
// binding for.
type UnboundFieldError struct {
	Name string
}

func (e *UnboundFieldError) Error() string {
	return fmt.Sprintf("unbound placeholder %q", e.Name)
}

// Render substitutes every placeholder with its bound value and returns
// the resulting string. The first placeholder without a binding aborts
// the render with an *UnboundFieldError. Typed placeholders reject
// bindings of the wrong kind with ErrTypeMismatch.
func (t *Template) Render(bindings map[string]any) (string, error) {
	var out strings.Builder
	for _, s := range t.segments {
		if s.name == "" {
			out.WriteString(s.literal)
			continue
		}
		v, ok := bindings[s.name]
		if !ok {
			return "", &UnboundFieldError{Name: s.name}
		}
		text, err := formatValue(s.name, s.spec, v)
		if err != nil {
			return "", err
		}
		out.WriteString(text)
	}
	return out.String(), nil
}

// formatValue renders one bound value according to the placeholder spec.
func formatValue(name, spec string, v any) (string, error) {
	switch spec {
	case SpecInt:
		n, ok := toInt64(v)
		if !ok {
			return "", fmt.Errorf("%w: placeholder %q requires an integer, got %T", types.ErrTypeMismatch, name, v)
		}
		return strconv.FormatInt(n, 10), nil
	case SpecFloat:
		if n, ok := toInt64(v); ok {
			return strconv.FormatInt(n, 10), nil
		}
		switch f := v.(type) {
		case float32:
			return strconv.FormatFloat(float64(f), 'g', -1, 64), nil
		case float64:
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		}
		return "", fmt.Errorf("%w: placeholder %q requires a number, got %T", types.ErrTypeMismatch, name, v)
	default:
		return fmt.Sprint(v), nil
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	return 0, false
}

// Parse matches a candidate string against the template and returns the
// typed value of every placeholder. Returns ErrNoMatch when the string
// does not structurally conform.
func (t *Template) Parse(s string) (map[string]any, error) {
	m := t.re.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q against %q", types.ErrNoMatch, s, t.src)
	}

	values := make(map[string]any, len(t.fields))
	group := 1
	for _, seg := range t.segments {
		if seg.name == "" {
			continue
		}
		v, err := convertValue(seg.spec, m[group])
		if err != nil {
			return nil, fmt.Errorf("%w: field %q in %q", types.ErrNoMatch, seg.name, s)
		}
		values[seg.name] = v
		group++
	}
	return values, nil
}

// convertValue turns captured text into the Go value for a spec.
func convertValue(spec, text string) (any, error) {
	switch spec {
	case SpecInt:
		return strconv.Atoi(text)
	case SpecFloat:
		return strconv.ParseFloat(text, 64)
	default:
		return text, nil
	}
}

// withoutSpec returns a copy of the template with the named placeholder's
// type specifier dropped, so a wildcard binding renders as plain text.
// Used by Resolve; the copy shares nothing with the original.
func (t *Template) withoutSpec(name string) (*Template, error) {
	segs := make([]segment, len(t.segments))
	copy(segs, t.segments)
	var src strings.Builder
	for i := range segs {
		if segs[i].name == name {
			segs[i].spec = SpecNone
		}
		src.WriteString(segs[i].text())
	}
	return newTemplate(src.String(), segs)
}

// text renders a segment back to template syntax.
func (s segment) text() string {
	if s.name == "" {
		escaped := strings.ReplaceAll(s.literal, "{", "{{")
		return strings.ReplaceAll(escaped, "}", "}}")
	}
	if s.spec == "" {
		return "{" + s.name + "}"
	}
	return "{" + s.name + ":" + s.spec + "}"
}
