// Package schema validates raw JSON objects against a declarative set of
// field rules. Every field is checked before returning, so callers receive
// all violations in one response.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

type Kind int

const (
	String Kind = iota
	Email
	Int
	Float
)

const (
	msgRequired     = "Missing data for required field."
	msgNull         = "Field may not be null."
	msgInvalidStr   = "Not a valid string."
	msgInvalidInt   = "Not a valid integer."
	msgInvalidFloat = "Not a valid number."
	msgInvalidEmail = "Not a valid email address."
)

// Rule declares the type and constraints of one input field.
type Rule struct {
	Kind      Kind
	Required  bool
	MinLength *int
	Min       *float64
}

// Schema maps input field names to their rules. Keys absent from the schema
// are never read from input.
type Schema map[string]Rule

// Values holds validated, type coerced input. Optional fields that were not
// supplied are absent.
type Values map[string]any

// Errors maps a field name to every message produced for it.
type Errors map[string][]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

func MinLength(n int) *int { return &n }

func Min(n float64) *float64 { return &n }

// Load validates raw against the schema. It returns either the coerced values
// or a non-empty Errors, never both.
func (s Schema) Load(raw map[string]any) (Values, Errors) {
	values := Values{}
	errs := Errors{}

	for field, rule := range s {
		v, ok := raw[field]
		if !ok {
			if rule.Required {
				errs.add(field, msgRequired)
			}
			continue
		}
		if v == nil {
			errs.add(field, msgNull)
			continue
		}

		coerced, msgs := rule.check(v)
		if len(msgs) > 0 {
			errs[field] = append(errs[field], msgs...)
			continue
		}
		values[field] = coerced
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

func (r Rule) check(v any) (any, []string) {
	switch r.Kind {
	case String, Email:
		s, ok := v.(string)
		if !ok {
			return nil, []string{msgInvalidStr}
		}
		var msgs []string
		if r.Kind == Email && !validEmail(s) {
			msgs = append(msgs, msgInvalidEmail)
		}
		if r.MinLength != nil && utf8.RuneCountInString(s) < *r.MinLength {
			msgs = append(msgs, fmt.Sprintf("Shorter than minimum length %d.", *r.MinLength))
		}
		return s, msgs

	case Int:
		n, ok := toInt(v)
		if !ok {
			return nil, []string{msgInvalidInt}
		}
		if r.Min != nil && float64(n) < *r.Min {
			return nil, []string{rangeMessage(*r.Min)}
		}
		return n, nil

	case Float:
		f, ok := toFloat(v)
		if !ok {
			return nil, []string{msgInvalidFloat}
		}
		if r.Min != nil && f < *r.Min {
			return nil, []string{rangeMessage(*r.Min)}
		}
		return f, nil
	}
	return nil, []string{fmt.Sprintf("unsupported field kind %d", r.Kind)}
}

func rangeMessage(min float64) string {
	return "Must be greater than or equal to " + strconv.FormatFloat(min, 'f', -1, 64) + "."
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			if i > math.MaxInt32 || i < math.MinInt32 {
				return 0, false
			}
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, false
		}
		return int(f), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 32)
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case int:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// validEmail accepts a bare addr-spec with a dotted domain, rejecting display
// names and angle-bracket forms that net/mail would otherwise allow.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at < 1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
