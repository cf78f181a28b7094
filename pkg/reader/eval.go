package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hadronlab/cutconf/pkg/resolve"
)

// ValueType names the Go type of a lookup chosen at run time, as the CLI
// and the HTTP server receive it.
type ValueType string

const (
	TypeFloat  ValueType = "float"
	TypeInt    ValueType = "int"
	TypeString ValueType = "string"
	TypeBool   ValueType = "bool"
)

// ParseValueType validates a type name. The empty string means float.
func ParseValueType(s string) (ValueType, error) {
	switch t := ValueType(strings.ToLower(s)); t {
	case "":
		return TypeFloat, nil
	case TypeFloat, TypeInt, TypeString, TypeBool:
		return t, nil
	}
	return "", fmt.Errorf("unknown value type %q: must be float, int, string or bool", s)
}

// Request is a lookup whose result type is chosen at run time. A nil Query
// reads the top-level Key instead.
type Request struct {
	Query *Query
	Key   string
	Type  ValueType
	Array bool

	// Default is the textual fallback. Array defaults are comma separated.
	// Nil means no default: a miss yields a nil Value.
	Default *string
}

// Response is the outcome of Evaluate. Value holds T or []T for the
// requested type.
type Response struct {
	Value       any
	Outcome     resolve.Outcome
	DefaultUsed bool
}

// Evaluate runs req with the type it names. It fails only when the type is
// unknown or the default does not parse as that type.
func (r *Reader) Evaluate(req Request) (Response, error) {
	t, err := ParseValueType(string(req.Type))
	if err != nil {
		return Response{}, err
	}
	switch t {
	case TypeInt:
		return evaluate(r, req, func(s string) (int64, error) {
			return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		})
	case TypeString:
		return evaluate(r, req, func(s string) (string, error) {
			return s, nil
		})
	case TypeBool:
		return evaluate(r, req, func(s string) (bool, error) {
			return strconv.ParseBool(strings.TrimSpace(s))
		})
	default:
		return evaluate(r, req, func(s string) (float64, error) {
			return strconv.ParseFloat(strings.TrimSpace(s), 64)
		})
	}
}

func evaluate[T resolve.Scalar](r *Reader, req Request, parse func(string) (T, error)) (Response, error) {
	if req.Array {
		var def []T
		if req.Default != nil {
			var err error
			if def, err = parseList(*req.Default, parse); err != nil {
				return Response{}, err
			}
		}
		var v []T
		var outcome resolve.Outcome
		if req.Query != nil {
			v, outcome = FindSlice[T](r, *req.Query)
		} else {
			v, outcome = FindArray[T](r, req.Key)
		}
		return respond(v, def, outcome, req.Default != nil), nil
	}

	// Numeric and bool parsers trim; a string default is kept verbatim.
	var def T
	if req.Default != nil {
		var err error
		if def, err = parse(*req.Default); err != nil {
			return Response{}, fmt.Errorf("invalid default %q: %w", *req.Default, err)
		}
	}
	var v T
	var outcome resolve.Outcome
	if req.Query != nil {
		v, outcome = Find[T](r, *req.Query)
	} else {
		v, outcome = FindValue[T](r, req.Key)
	}
	return respond(v, def, outcome, req.Default != nil), nil
}

func respond[V any](v, def V, outcome resolve.Outcome, hasDefault bool) Response {
	switch {
	case outcome == resolve.OutcomeHit:
		return Response{Value: v, Outcome: outcome}
	case hasDefault:
		return Response{Value: def, Outcome: outcome, DefaultUsed: true}
	}
	return Response{Outcome: outcome}
}

// parseList splits a comma separated default. The empty string is an empty
// list.
func parseList[T any](s string, parse func(string) (T, error)) ([]T, error) {
	if strings.TrimSpace(s) == "" {
		return []T{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]T, len(parts))
	for i, p := range parts {
		v, err := parse(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid default element %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}
