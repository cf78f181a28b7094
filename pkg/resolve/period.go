package resolve

import "github.com/hadronlab/cutconf/pkg/node"

// Default keys for mapping-shaped run intervals ({min: 6000, max: 6200}).
const (
	DefaultBoundMinKey = "min"
	DefaultBoundMaxKey = "max"
)

// BoundKeys names the keys of mapping-shaped run intervals.
type BoundKeys struct {
	Min string
	Max string
}

// DefaultBoundKeys returns the conventional min/max bound keys.
func DefaultBoundKeys() BoundKeys {
	return BoundKeys{Min: DefaultBoundMinKey, Max: DefaultBoundMaxKey}
}

// Bounds extracts the inclusive interval stored under boundsKey in entry.
// The interval is either a two-element sequence or a mapping holding the
// min and max keys. Non-integral bounds and min > max are rejected.
func (b BoundKeys) Bounds(entry *node.Node, boundsKey string) (lo, hi int64, ok bool) {
	v, ok := Navigate(entry, boundsKey)
	if !ok {
		return 0, 0, false
	}

	var loNode, hiNode *node.Node
	switch v.Kind() {
	case node.SequenceKind:
		if v.Len() != 2 {
			return 0, 0, false
		}
		loNode, _ = v.Index(0)
		hiNode, _ = v.Index(1)
	case node.MappingKind:
		var okLo, okHi bool
		loNode, okLo = v.Get(b.Min)
		hiNode, okHi = v.Get(b.Max)
		if !okLo || !okHi {
			return 0, 0, false
		}
	default:
		return 0, 0, false
	}

	lo, okLo := loNode.AsInt()
	hi, okHi := hiNode.AsInt()
	if !okLo || !okHi || lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// MatchRange returns the first entry whose interval under boundsKey
// contains probe. Entries without well-formed bounds are skipped.
func (b BoundKeys) MatchRange(entries []*node.Node, boundsKey string, probe int64) (*node.Node, bool) {
	for _, entry := range entries {
		lo, hi, ok := b.Bounds(entry, boundsKey)
		if !ok {
			continue
		}
		if lo <= probe && probe <= hi {
			return entry, true
		}
	}
	return nil, false
}

// MatchRange is BoundKeys.MatchRange with the default bound keys.
func MatchRange(entries []*node.Node, boundsKey string, probe int64) (*node.Node, bool) {
	return DefaultBoundKeys().MatchRange(entries, boundsKey, probe)
}
