package resolve

import (
	"fmt"

	"github.com/hadronlab/cutconf/pkg/node"
)

// Outcome records where a lookup ended.
type Outcome string

const (
	OutcomeHit          Outcome = "hit"
	OutcomeGroupMissing Outcome = "group_missing"
	OutcomeNoPeriod     Outcome = "no_period"
	OutcomeNoValue      Outcome = "no_value"
	OutcomeConversion   Outcome = "conversion"
)

// rank orders failures by how far the lookup got.
func (o Outcome) rank() int {
	switch o {
	case OutcomeNoPeriod:
		return 1
	case OutcomeNoValue:
		return 2
	case OutcomeConversion:
		return 3
	case OutcomeHit:
		return 4
	}
	return 0
}

// Further returns whichever of a and b got further through the stages.
func Further(a, b Outcome) Outcome {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// Query names the keys and probes of a two-stage lookup.
type Query struct {
	// Group is the top-level key holding the list of period entries.
	Group string
	// Period is the key holding each entry's run interval.
	Period string
	// Dependent is the key of the dependent list (e.g. "pid" or "sector"),
	// or the pass-through key.
	Dependent string
	// Value is the key holding the payload.
	Value string
	// Run is matched against the period intervals.
	Run int64
	// Probe is matched exactly against the dependent values.
	Probe int64
}

func (q Query) String() string {
	return fmt.Sprintf("%s/%s/%s/%s run=%d probe=%d", q.Group, q.Period, q.Dependent, q.Value, q.Run, q.Probe)
}

// Keys holds the conventional key names used while resolving.
type Keys struct {
	Bounds      BoundKeys
	PassThrough string
}

// DefaultKeys returns the min/max bound keys and the "single" pass-through key.
func DefaultKeys() Keys {
	return Keys{Bounds: DefaultBoundKeys(), PassThrough: DefaultPassThroughKey}
}

// Result is the outcome of Resolve.
type Result struct {
	// Node is the located value; nil unless Outcome is OutcomeHit.
	Node *node.Node
	// Period is the matched period entry, if any.
	Period *node.Node
	// Match describes the dependent stage.
	Match   DependentMatch
	Outcome Outcome
}

// Resolve runs the group, period, dependent and value stages for q against
// root. It never fails; Result.Outcome tells which stage ended the lookup.
func Resolve(root *node.Node, q Query, keys Keys) Result {
	group, ok := Navigate(root, q.Group)
	if !ok {
		return Result{Outcome: OutcomeGroupMissing}
	}

	period, ok := keys.Bounds.MatchRange(group.Items(), q.Period, q.Run)
	if !ok {
		return Result{Outcome: OutcomeNoPeriod}
	}

	v, match := ResolveDependent(period, q.Dependent, q.Value, q.Probe, keys.PassThrough)
	if match == DependentNone {
		return Result{Period: period, Outcome: OutcomeNoValue}
	}
	return Result{Node: v, Period: period, Match: match, Outcome: OutcomeHit}
}
