package node

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// mergeTag is the resolved tag of the YAML merge key ("<<: *anchor").
const mergeTag = "!!merge"

// DecodeError reports a YAML construct that has no Node representation.
type DecodeError struct {
	Line    int
	Column  int
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d column %d: %s", e.Line, e.Column, e.Message)
}

func decodeErrorf(y *yaml.Node, format string, args ...any) error {
	return &DecodeError{Line: y.Line, Column: y.Column, Message: fmt.Sprintf(format, args...)}
}

// Decode parses a single YAML document into a Node tree. An empty document
// decodes to a null node.
func Decode(data []byte) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Null(), nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return FromYAML(&doc)
}

// DecodeFile reads and decodes the YAML document at path.
func DecodeFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %q: %w", path, err)
	}
	n, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document %q: %w", path, err)
	}
	return n, nil
}

// FromYAML converts a yaml.v3 node tree. Aliases are expanded and merge
// keys are applied; explicit keys take precedence over merged ones.
func FromYAML(y *yaml.Node) (*Node, error) {
	c := &converter{active: make(map[*yaml.Node]bool)}
	return c.convert(y)
}

type converter struct {
	// active holds the alias targets currently being expanded.
	active map[*yaml.Node]bool

	// decoded counts the nodes built so far and aliased those built while
	// expanding an alias. aliasDepth is the number of open expansions.
	decoded    int
	aliased    int
	aliasDepth int
}

// allowedAliasRatio is the largest share of aliased nodes tolerated once
// decoded nodes have been built. It mirrors the limit yaml.v3 applies when
// decoding into Go values, which does not cover decoding into yaml.Node.
func allowedAliasRatio(decoded int) float64 {
	switch {
	case decoded <= 400_000:
		return 0.99
	case decoded >= 4_000_000:
		return 0.10
	}
	return 0.99 - 0.89*(float64(decoded-400_000)/3_600_000)
}

// count records one built node and fails once alias expansion dominates
// the document.
func (c *converter) count(y *yaml.Node) error {
	c.decoded++
	if c.aliasDepth > 0 {
		c.aliased++
	}
	if c.aliased > 100 && c.decoded > 1000 &&
		float64(c.aliased)/float64(c.decoded) > allowedAliasRatio(c.decoded) {
		return decodeErrorf(y, "document contains excessive aliasing")
	}
	return nil
}

func (c *converter) convert(y *yaml.Node) (*Node, error) {
	// A zero Kind is what yaml.v3 leaves behind for comment-only input.
	if y == nil || y.Kind == 0 {
		return Null(), nil
	}
	if y.Kind != yaml.DocumentNode && y.Kind != yaml.AliasNode {
		if err := c.count(y); err != nil {
			return nil, err
		}
	}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return Null(), nil
		}
		return c.convert(y.Content[0])
	case yaml.AliasNode:
		if c.active[y.Alias] {
			return nil, decodeErrorf(y, "recursive alias %q", y.Value)
		}
		c.active[y.Alias] = true
		c.aliasDepth++
		defer func() {
			delete(c.active, y.Alias)
			c.aliasDepth--
		}()
		return c.convert(y.Alias)
	case yaml.ScalarNode:
		return scalar(y)
	case yaml.SequenceNode:
		items := make([]*Node, len(y.Content))
		for i, it := range y.Content {
			n, err := c.convert(it)
			if err != nil {
				return nil, err
			}
			items[i] = n
		}
		return Seq(items...), nil
	case yaml.MappingNode:
		return c.mapping(y)
	}
	return nil, decodeErrorf(y, "unsupported YAML node kind %d", y.Kind)
}

func (c *converter) mapping(y *yaml.Node) (*Node, error) {
	var explicit, merged []Entry
	for i := 0; i+1 < len(y.Content); i += 2 {
		k, v := y.Content[i], y.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == mergeTag {
			es, err := c.merge(v)
			if err != nil {
				return nil, err
			}
			merged = append(merged, es...)
			continue
		}
		if k.Kind != yaml.ScalarNode {
			return nil, decodeErrorf(k, "mapping key must be a scalar")
		}
		val, err := c.convert(v)
		if err != nil {
			return nil, err
		}
		explicit = append(explicit, Entry{Key: k.Value, Value: val})
	}
	if len(merged) == 0 {
		return Map(explicit...), nil
	}
	seen := make(map[string]bool, len(explicit))
	for _, e := range explicit {
		seen[e.Key] = true
	}
	all := make([]Entry, 0, len(merged)+len(explicit))
	for _, e := range merged {
		if !seen[e.Key] {
			all = append(all, e)
		}
	}
	return Map(append(all, explicit...)...), nil
}

// merge returns the entries contributed by the value of a merge key: a
// mapping, an alias to one, or a sequence of those. Earlier sources win.
func (c *converter) merge(v *yaml.Node) ([]Entry, error) {
	var sources []*yaml.Node
	if v.Kind == yaml.SequenceNode {
		sources = v.Content
	} else {
		sources = []*yaml.Node{v}
	}
	var res []Entry
	seen := make(map[string]bool)
	for _, src := range sources {
		n, err := c.convert(src)
		if err != nil {
			return nil, err
		}
		if n.Kind() != MappingKind {
			return nil, decodeErrorf(src, "merge value must be a mapping, got %s", n.Kind())
		}
		for _, e := range n.Entries() {
			if seen[e.Key] {
				continue
			}
			seen[e.Key] = true
			res = append(res, e)
		}
	}
	return res, nil
}

func scalar(y *yaml.Node) (*Node, error) {
	switch y.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, decodeErrorf(y, "invalid bool %q", y.Value)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := y.Decode(&i); err == nil {
			return Int(i), nil
		}
		// Integers beyond int64 are kept as floats.
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, decodeErrorf(y, "invalid int %q", y.Value)
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, decodeErrorf(y, "invalid float %q", y.Value)
		}
		return Float(f), nil
	}
	return String(y.Value), nil
}
