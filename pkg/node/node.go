package node

import (
	"math"
	"strconv"
)

// Kind identifies which variant a Node holds.
type Kind int

const (
	NullKind     Kind = iota // absent value or explicit null
	BoolKind                 // true or false
	IntKind                  // 64-bit signed integer
	FloatKind                // 64-bit float
	StringKind               // any other scalar text
	SequenceKind             // ordered list of nodes
	MappingKind              // string-keyed entries in document order
)

var kindNames = [...]string{
	NullKind:     "null",
	BoolKind:     "bool",
	IntKind:      "int",
	FloatKind:    "float",
	StringKind:   "string",
	SequenceKind: "sequence",
	MappingKind:  "mapping",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value *Node
}

// Node is one value position in a document. Only the fields matching Kind
// are meaningful. A nil *Node behaves as null.
type Node struct {
	kind Kind

	b bool
	i int64
	f float64
	s string

	items   []*Node
	entries []Entry
	index   map[string]int
}

// Null returns a null node.
func Null() *Node { return &Node{kind: NullKind} }

// Bool returns a boolean node.
func Bool(v bool) *Node { return &Node{kind: BoolKind, b: v} }

// Int returns an integer node.
func Int(v int64) *Node { return &Node{kind: IntKind, i: v} }

// Float returns a floating-point node.
func Float(v float64) *Node { return &Node{kind: FloatKind, f: v} }

// String returns a string node.
func String(v string) *Node { return &Node{kind: StringKind, s: v} }

// Seq returns a sequence node holding items in order. Nil items become null.
func Seq(items ...*Node) *Node {
	res := &Node{kind: SequenceKind, items: make([]*Node, len(items))}
	for i, it := range items {
		if it == nil {
			it = Null()
		}
		res.items[i] = it
	}
	return res
}

// Map returns a mapping node. When a key repeats, the later value replaces
// the earlier one in place, so keys stay unique and keep first-seen order.
func Map(entries ...Entry) *Node {
	res := &Node{
		kind:    MappingKind,
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		v := e.Value
		if v == nil {
			v = Null()
		}
		if at, ok := res.index[e.Key]; ok {
			res.entries[at].Value = v
			continue
		}
		res.index[e.Key] = len(res.entries)
		res.entries = append(res.entries, Entry{Key: e.Key, Value: v})
	}
	return res
}

// Kind returns the variant n holds. A nil node is null.
func (n *Node) Kind() Kind {
	if n == nil {
		return NullKind
	}
	return n.kind
}

// IsNull reports whether n is null or nil.
func (n *Node) IsNull() bool { return n.Kind() == NullKind }

// IsScalar reports whether n is a bool, number or string.
func (n *Node) IsScalar() bool {
	switch n.Kind() {
	case BoolKind, IntKind, FloatKind, StringKind:
		return true
	}
	return false
}

// IsNumber reports whether n is an int or a float.
func (n *Node) IsNumber() bool {
	k := n.Kind()
	return k == IntKind || k == FloatKind
}

// AsBool returns the value of a bool node.
func (n *Node) AsBool() (bool, bool) {
	if n.Kind() != BoolKind {
		return false, false
	}
	return n.b, true
}

// AsInt returns the value of an int node, or of a float node holding an
// integral value that fits in an int64.
func (n *Node) AsInt() (int64, bool) {
	switch n.Kind() {
	case IntKind:
		return n.i, true
	case FloatKind:
		if n.f != math.Trunc(n.f) || n.f < math.MinInt64 || n.f >= math.MaxInt64 {
			return 0, false
		}
		return int64(n.f), true
	}
	return 0, false
}

// AsFloat returns the value of a float node, widening int nodes.
func (n *Node) AsFloat() (float64, bool) {
	switch n.Kind() {
	case FloatKind:
		return n.f, true
	case IntKind:
		return float64(n.i), true
	}
	return 0, false
}

// AsString returns the value of a string node verbatim.
func (n *Node) AsString() (string, bool) {
	if n.Kind() != StringKind {
		return "", false
	}
	return n.s, true
}

// Len returns the number of items of a sequence or entries of a mapping.
func (n *Node) Len() int {
	switch n.Kind() {
	case SequenceKind:
		return len(n.items)
	case MappingKind:
		return len(n.entries)
	}
	return 0
}

// Index returns the i-th item of a sequence.
func (n *Node) Index(i int) (*Node, bool) {
	if n.Kind() != SequenceKind || i < 0 || i >= len(n.items) {
		return nil, false
	}
	return n.items[i], true
}

// Items returns the items of a sequence, or nil for any other kind. The
// returned slice must not be modified.
func (n *Node) Items() []*Node {
	if n.Kind() != SequenceKind {
		return nil
	}
	return n.items
}

// Get looks key up in a mapping.
func (n *Node) Get(key string) (*Node, bool) {
	if n.Kind() != MappingKind {
		return nil, false
	}
	at, ok := n.index[key]
	if !ok {
		return nil, false
	}
	return n.entries[at].Value, true
}

// Keys returns the mapping keys in document order.
func (n *Node) Keys() []string {
	if n.Kind() != MappingKind {
		return nil
	}
	keys := make([]string, len(n.entries))
	for i, e := range n.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns the mapping entries in document order. The returned slice
// must not be modified.
func (n *Node) Entries() []Entry {
	if n.Kind() != MappingKind {
		return nil
	}
	return n.entries
}

// Interface converts n into plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any.
func (n *Node) Interface() any {
	switch n.Kind() {
	case BoolKind:
		return n.b
	case IntKind:
		return n.i
	case FloatKind:
		return n.f
	case StringKind:
		return n.s
	case SequenceKind:
		res := make([]any, len(n.items))
		for i, it := range n.items {
			res[i] = it.Interface()
		}
		return res
	case MappingKind:
		res := make(map[string]any, len(n.entries))
		for _, e := range n.entries {
			res[e.Key] = e.Value.Interface()
		}
		return res
	}
	return nil
}

// Equal reports whether a and b hold the same value. Int and float nodes
// compare equal when they denote the same number; mappings must list their
// entries in the same order.
func Equal(a, b *Node) bool {
	if a.IsNumber() && b.IsNumber() {
		if a.Kind() == IntKind && b.Kind() == IntKind {
			return a.i == b.i
		}
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return af == bf
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case NullKind:
		return true
	case BoolKind:
		return a.b == b.b
	case StringKind:
		return a.s == b.s
	case SequenceKind:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case MappingKind:
		if len(a.entries) != len(b.entries) {
			return false
		}
		for i, e := range a.entries {
			o := b.entries[i]
			if e.Key != o.Key || !Equal(e.Value, o.Value) {
				return false
			}
		}
		return true
	}
	return false
}
