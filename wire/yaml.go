package wire

import (
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalYAML implements [yaml.Marshaler]. Object fields are emitted
// in order.
func (n Node) MarshalYAML() (any, error) {
	return n.yamlNode(), nil
}

func (n Node) yamlNode() *yaml.Node {
	switch n.kind {
	case BoolKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(n.b)}
	case NumberKind:
		switch n.form {
		case IntForm:
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(n.i, 10)}
		case UintForm:
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(n.u, 10)}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(n.f, n.form)}
	case StringKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.s}
	case ArrayKind:
		ret := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range n.elems {
			ret.Content = append(ret.Content, e.yamlNode())
		}
		return ret
	case ObjectKind:
		ret := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range n.fields {
			k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}
			ret.Content = append(ret.Content, k, f.Value.yamlNode())
		}
		return ret
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func yamlFloat(f float64, form NumberForm) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	bits := 64
	if form == Float32Form {
		bits = 32
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	// "5" would resolve back to an int.
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
