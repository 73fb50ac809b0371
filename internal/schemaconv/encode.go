// SPDX-License-Identifier: AGPL-3.0-or-later
package schemaconv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

const maxAliasDepth = 64

var jsonInt = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

func encode(doc *yaml.Node) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeNode(&compact, doc, 0); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indenting json: %w", err)
	}
	return out.Bytes(), nil
}

func writeNode(buf *bytes.Buffer, n *yaml.Node, depth int) error {
	switch n.Kind {
	case 0:
		// empty document
		buf.WriteString("null")
		return nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNode(buf, n.Content[0], depth)
	case yaml.AliasNode:
		if depth >= maxAliasDepth {
			return fmt.Errorf("line %d: alias nesting too deep", n.Line)
		}
		return writeNode(buf, n.Alias, depth+1)
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNode(buf, item, depth); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.MappingNode:
		pairs, err := mappingPairs(n, depth)
		if err != nil {
			return err
		}
		buf.WriteByte('{')
		for i, p := range pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, p.key)
			buf.WriteByte(':')
			if err := writeNode(buf, p.value, depth); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.ScalarNode:
		return writeScalar(buf, n)
	default:
		return fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}

type pair struct {
	key   string
	value *yaml.Node
}

// mappingPairs flattens a mapping into ordered pairs. Merge keys are expanded
// in place; keys written explicitly in the mapping win over merged ones.
func mappingPairs(n *yaml.Node, depth int) ([]pair, error) {
	var pairs []pair
	index := map[string]int{}
	explicit := map[string]bool{}

	set := func(key string, value *yaml.Node, fromMerge bool) {
		if i, ok := index[key]; ok {
			if fromMerge && explicit[key] {
				return
			}
			pairs[i].value = value
		} else {
			index[key] = len(pairs)
			pairs = append(pairs, pair{key: key, value: value})
		}
		if !fromMerge {
			explicit[key] = true
		}
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolve(n.Content[i]), n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			sources, err := mergeSources(v)
			if err != nil {
				return nil, err
			}
			for _, src := range sources {
				merged, err := mappingPairs(src, depth+1)
				if err != nil {
					return nil, err
				}
				for _, p := range merged {
					set(p.key, p.value, true)
				}
			}
			continue
		}
		key, err := keyString(k)
		if err != nil {
			return nil, err
		}
		set(key, v, false)
	}
	return pairs, nil
}

func mergeSources(v *yaml.Node) ([]*yaml.Node, error) {
	v = resolve(v)
	switch v.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{v}, nil
	case yaml.SequenceNode:
		out := make([]*yaml.Node, 0, len(v.Content))
		for _, item := range v.Content {
			item = resolve(item)
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: merge value must be a mapping", item.Line)
			}
			out = append(out, item)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: merge value must be a mapping", v.Line)
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for i := 0; n.Kind == yaml.AliasNode && i < maxAliasDepth; i++ {
		n = n.Alias
	}
	return n
}

// keyString renders a mapping key the way JSON object keys are written.
func keyString(k *yaml.Node) (string, error) {
	if k.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
	}
	switch k.ShortTag() {
	case "!!null":
		return "null", nil
	case "!!bool":
		var b bool
		if err := k.Decode(&b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	default:
		return k.Value, nil
	}
}

func writeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		buf.WriteString("null")
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		buf.WriteString(strconv.FormatBool(b))
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			if bigInt(n) {
				buf.WriteString(n.Value)
				return nil
			}
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.WriteString(strconv.FormatInt(i, 10))
	case "!!float":
		// yaml.v3 resolves plain integers beyond uint64 as floats.
		if bigInt(n) {
			buf.WriteString(n.Value)
			return nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("line %d: %q has no JSON representation", n.Line, n.Value)
		}
		data, err := json.Marshal(f)
		if err != nil {
			return err
		}
		buf.Write(data)
	default:
		writeString(buf, n.Value)
	}
	return nil
}

// bigInt reports whether n is an untagged integer literal that JSON can
// carry verbatim.
func bigInt(n *yaml.Node) bool {
	return n.Style&yaml.TaggedStyle == 0 && jsonInt.MatchString(n.Value)
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encode appends a newline.
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}
