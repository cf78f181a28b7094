package resolve

import (
	"math"

	"github.com/hadronlab/cutconf/pkg/node"
)

// Scalar lists the Go types a node can be converted to.
type Scalar interface {
	bool | int | int32 | int64 | float32 | float64 | string
}

// Convert converts a scalar node to T. Ints widen to floats, integral
// floats narrow to ints, and strings are read verbatim. Anything else,
// including integer overflow of T, reports false.
func Convert[T Scalar](n *node.Node) (T, bool) {
	var out T
	switch p := any(&out).(type) {
	case *bool:
		v, ok := n.AsBool()
		if !ok {
			return out, false
		}
		*p = v
	case *string:
		v, ok := n.AsString()
		if !ok {
			return out, false
		}
		*p = v
	case *int64:
		v, ok := n.AsInt()
		if !ok {
			return out, false
		}
		*p = v
	case *int:
		v, ok := n.AsInt()
		if !ok || v < math.MinInt || v > math.MaxInt {
			return out, false
		}
		*p = int(v)
	case *int32:
		v, ok := n.AsInt()
		if !ok || v < math.MinInt32 || v > math.MaxInt32 {
			return out, false
		}
		*p = int32(v)
	case *float64:
		v, ok := n.AsFloat()
		if !ok {
			return out, false
		}
		*p = v
	case *float32:
		v, ok := n.AsFloat()
		if !ok {
			return out, false
		}
		f := float32(v)
		if math.IsInf(float64(f), 0) && !math.IsInf(v, 0) {
			return out, false
		}
		*p = f
	default:
		return out, false
	}
	return out, true
}

// ConvertSlice converts a sequence node element by element. Any element
// that fails to convert fails the whole sequence.
func ConvertSlice[T Scalar](n *node.Node) ([]T, bool) {
	if n.Kind() != node.SequenceKind {
		return nil, false
	}
	items := n.Items()
	out := make([]T, len(items))
	for i, it := range items {
		v, ok := Convert[T](it)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
