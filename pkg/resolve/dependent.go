package resolve

import "github.com/hadronlab/cutconf/pkg/node"

// DefaultPassThroughKey is the dependent key that means "no dependency".
const DefaultPassThroughKey = "single"

// DependentMatch describes how ResolveDependent found its value.
type DependentMatch int

const (
	// DependentNone means no value was found.
	DependentNone DependentMatch = iota
	// DependentExact means an element of the dependent list matched the probe.
	DependentExact
	// DependentPassThrough means the dependent list was bypassed.
	DependentPassThrough
	// DependentFallback means the list was missing or had no match and the
	// period's own value was used.
	DependentFallback
)

func (m DependentMatch) String() string {
	switch m {
	case DependentExact:
		return "exact"
	case DependentPassThrough:
		return "pass-through"
	case DependentFallback:
		return "fallback"
	}
	return "none"
}

// ResolveDependent locates the value node for probe inside a matched period
// entry. An empty dependentKey, or one equal to passThroughKey, selects
// pass-through mode.
func ResolveDependent(entry *node.Node, dependentKey, valueKey string, probe int64, passThroughKey string) (*node.Node, DependentMatch) {
	if dependentKey == "" || dependentKey == passThroughKey {
		if v, ok := Navigate(entry, valueKey); ok {
			return v, DependentPassThrough
		}
		return nil, DependentNone
	}

	if list, ok := Navigate(entry, dependentKey); ok {
		for _, el := range list.Items() {
			if !matchesProbe(el, dependentKey, probe) {
				continue
			}
			if v, ok := Navigate(el, valueKey); ok {
				return v, DependentExact
			}
			// A matching element without a value is treated as no match.
			break
		}
	}

	if v, ok := Navigate(entry, valueKey); ok {
		return v, DependentFallback
	}
	return nil, DependentNone
}

func matchesProbe(el *node.Node, dependentKey string, probe int64) bool {
	v, ok := Navigate(el, dependentKey)
	if !ok {
		return false
	}
	i, ok := v.AsInt()
	return ok && i == probe
}
