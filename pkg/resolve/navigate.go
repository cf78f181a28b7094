package resolve

import "github.com/hadronlab/cutconf/pkg/node"

// Navigate looks key up in n. It reports absence when n is not a mapping or
// has no such key.
func Navigate(n *node.Node, key string) (*node.Node, bool) {
	return n.Get(key)
}

// Walk applies Navigate for each key in turn. With no keys it returns n.
func Walk(n *node.Node, keys ...string) (*node.Node, bool) {
	cur := n
	for _, key := range keys {
		next, ok := Navigate(cur, key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
