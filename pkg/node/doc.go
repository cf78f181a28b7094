// Package node provides the typed tree that calibration documents are read
// into.
//
// A Node is a tagged union over null, bool, int, float, string, sequence and
// mapping values. Mappings keep their keys unique and in document order.
// Trees are built once, either with the constructors:
//
//	cuts := node.Map(
//	    node.Entry{Key: "runs", Value: node.Seq(node.Int(6000), node.Int(6200))},
//	    node.Entry{Key: "vals", Value: node.Seq(node.Float(-5), node.Float(5))},
//	)
//
// or by decoding YAML with Decode or DecodeFile, and are never modified
// afterwards. All accessors are read-only and safe for concurrent use.
//
// Accessors never panic on a kind mismatch. Scalar extraction returns a
// (value, ok) pair, and lookups into the wrong kind of node report absence:
//
//	v, ok := n.Get("vals")     // ok is false unless n is a mapping with "vals"
//	f, ok := v.AsFloat()       // ints widen to float
//	i, ok := v.AsInt()         // integral floats narrow to int
//
// A nil *Node behaves as a null node.
package node
