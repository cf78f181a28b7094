package reader

import (
	"github.com/hadronlab/cutconf/pkg/node"
	"github.com/hadronlab/cutconf/pkg/resolve"
)

// Query names the keys and probes of a two-stage lookup.
type Query = resolve.Query

// Accessor kinds, as reported in logs and metrics.
const (
	KindScalar   = "scalar"
	KindSequence = "sequence"
	KindValue    = "value"
	KindArray    = "array"
)

// Lookup resolves q to a single value of type T, or returns def.
func Lookup[T resolve.Scalar](r *Reader, q Query, def T) T {
	if v, outcome := Find[T](r, q); outcome == resolve.OutcomeHit {
		return v
	}
	return def
}

// LookupSlice resolves q to a sequence of T, or returns def. If any element
// fails to convert, def is returned whole.
func LookupSlice[T resolve.Scalar](r *Reader, q Query, def []T) []T {
	if v, outcome := FindSlice[T](r, q); outcome == resolve.OutcomeHit {
		return v
	}
	return def
}

// Value reads the top-level key as T, or returns def.
func Value[T resolve.Scalar](r *Reader, key string, def T) T {
	if v, outcome := FindValue[T](r, key); outcome == resolve.OutcomeHit {
		return v
	}
	return def
}

// Array reads the top-level key as a sequence of T, or returns def.
func Array[T resolve.Scalar](r *Reader, key string, def []T) []T {
	if v, outcome := FindArray[T](r, key); outcome == resolve.OutcomeHit {
		return v
	}
	return def
}

// Find is Lookup without a default. The outcome reports the furthest stage
// any document reached; the value is meaningful only on resolve.OutcomeHit.
func Find[T resolve.Scalar](r *Reader, q Query) (T, resolve.Outcome) {
	var out T
	outcome := r.find(KindScalar, q, func(res resolve.Result) resolve.Outcome {
		n := res.Node
		if res.Match == resolve.DependentPassThrough && n.Kind() == node.SequenceKind {
			item, ok := n.Index(probeIndex(q.Probe))
			if !ok {
				return resolve.OutcomeNoValue
			}
			n = item
		}
		v, ok := resolve.Convert[T](n)
		if !ok {
			return resolve.OutcomeConversion
		}
		out = v
		return resolve.OutcomeHit
	})
	return out, outcome
}

// FindSlice is LookupSlice without a default.
func FindSlice[T resolve.Scalar](r *Reader, q Query) ([]T, resolve.Outcome) {
	var out []T
	outcome := r.find(KindSequence, q, func(res resolve.Result) resolve.Outcome {
		v, ok := resolve.ConvertSlice[T](res.Node)
		if !ok {
			return resolve.OutcomeConversion
		}
		out = v
		return resolve.OutcomeHit
	})
	return out, outcome
}

// FindValue is Value without a default.
func FindValue[T resolve.Scalar](r *Reader, key string) (T, resolve.Outcome) {
	var out T
	outcome := r.findKey(KindValue, key, func(n *node.Node) resolve.Outcome {
		v, ok := resolve.Convert[T](n)
		if !ok {
			return resolve.OutcomeConversion
		}
		out = v
		return resolve.OutcomeHit
	})
	return out, outcome
}

// FindArray is Array without a default.
func FindArray[T resolve.Scalar](r *Reader, key string) ([]T, resolve.Outcome) {
	var out []T
	outcome := r.findKey(KindArray, key, func(n *node.Node) resolve.Outcome {
		v, ok := resolve.ConvertSlice[T](n)
		if !ok {
			return resolve.OutcomeConversion
		}
		out = v
		return resolve.OutcomeHit
	})
	return out, outcome
}

// Resolve runs q against each document in turn and returns the first hit,
// without converting it. On a miss the result carries the furthest outcome.
func (r *Reader) Resolve(q Query) resolve.Result {
	var res resolve.Result
	outcome := r.find("", q, func(hit resolve.Result) resolve.Outcome {
		res = hit
		return resolve.OutcomeHit
	})
	if outcome != resolve.OutcomeHit {
		return resolve.Result{Outcome: outcome}
	}
	return res
}

// find resolves q against each document until accept takes a hit.
func (r *Reader) find(kind string, q Query, accept func(resolve.Result) resolve.Outcome) resolve.Outcome {
	outcome := resolve.OutcomeGroupMissing
	for _, doc := range r.current.Load().docs {
		res := resolve.Resolve(doc, q, r.keys)
		if res.Outcome == resolve.OutcomeHit {
			res.Outcome = accept(res)
			if res.Outcome == resolve.OutcomeHit {
				r.record(kind, q.Group, resolve.OutcomeHit)
				return resolve.OutcomeHit
			}
		}
		outcome = resolve.Further(outcome, res.Outcome)
	}

	r.record(kind, q.Group, outcome)
	if kind != "" {
		r.logger.Debug("lookup using default",
			"kind", kind,
			"query", q.String(),
			"outcome", string(outcome),
		)
	}
	return outcome
}

// findKey reads a top-level key from each document until accept takes it.
func (r *Reader) findKey(kind, key string, accept func(*node.Node) resolve.Outcome) resolve.Outcome {
	outcome := resolve.OutcomeGroupMissing
	for _, doc := range r.current.Load().docs {
		n, ok := resolve.Navigate(doc, key)
		if !ok {
			continue
		}
		got := accept(n)
		if got == resolve.OutcomeHit {
			r.record(kind, key, resolve.OutcomeHit)
			return resolve.OutcomeHit
		}
		outcome = resolve.Further(outcome, got)
	}

	r.record(kind, key, outcome)
	r.logger.Debug("read using default",
		"kind", kind,
		"key", key,
		"outcome", string(outcome),
	)
	return outcome
}

func (r *Reader) record(kind, group string, outcome resolve.Outcome) {
	if kind == "" {
		return
	}
	r.metrics.RecordLookup(kind, string(outcome), group)
}

// probeIndex converts a probe to a sequence index. Probes outside the int
// range map to -1, which no sequence holds.
func probeIndex(probe int64) int {
	if int64(int(probe)) != probe {
		return -1
	}
	return int(probe)
}
