package cmd

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dzjyyds666/aq-lite/parse/yaml"
	json "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	yamlv3 "go.yaml.in/yaml/v3"
)

// =========================
// Output Format
// =========================

type outputFormat string

const (
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(s string) error {
	switch v := outputFormat(strings.ToLower(s)); v {
	case formatJSON, formatYAML:
		*f = v
		return nil
	}
	return errors.Errorf("unsupported format %q, want json or yaml", s)
}

func (*outputFormat) Type() string { return "format" }

func render(w io.Writer, n yaml.Node, format outputFormat, pretty bool) error {
	switch format {
	case formatYAML:
		return writeYAML(w, n)
	default:
		return writeJSON(w, n, pretty)
	}
}

func writeTokens(w io.Writer, tokens []yaml.Token) {
	for _, t := range tokens {
		fmt.Fprintf(w, "%s\t%q\n", t.Kind, t.Lexeme())
	}
}

// =========================
// JSON
// =========================

var (
	compactJSON = json.Config{}.Froze()
	prettyJSON  = json.Config{IndentionStep: 2}.Froze()
)

// writeJSON streams the tree so mapping keys keep document order.
func writeJSON(w io.Writer, n yaml.Node, pretty bool) error {
	cfg := compactJSON
	if pretty {
		cfg = prettyJSON
	}
	stream := json.NewStream(cfg, w, 512)
	writeJSONNode(stream, n)
	stream.WriteRaw("\n")
	if stream.Error != nil {
		return errors.Wrap(stream.Error, "encode json")
	}
	return errors.Wrap(stream.Flush(), "write json")
}

func writeJSONNode(stream *json.Stream, n yaml.Node) {
	switch v := n.(type) {
	case *yaml.Mapping:
		if v.Len() == 0 {
			stream.WriteEmptyObject()
			return
		}
		stream.WriteObjectStart()
		first := true
		v.Each(func(key string, child yaml.Node) bool {
			if !first {
				stream.WriteMore()
			}
			first = false
			stream.WriteObjectField(key)
			writeJSONNode(stream, child)
			return true
		})
		stream.WriteObjectEnd()
	case *yaml.Sequence:
		if v.Len() == 0 {
			stream.WriteEmptyArray()
			return
		}
		stream.WriteArrayStart()
		for i, elem := range v.Elems {
			if i > 0 {
				stream.WriteMore()
			}
			writeJSONNode(stream, elem)
		}
		stream.WriteArrayEnd()
	case *yaml.Scalar:
		writeJSONScalar(stream, v)
	default:
		stream.WriteNil()
	}
}

func writeJSONScalar(stream *json.Stream, v *yaml.Scalar) {
	switch v.Kind() {
	case yaml.KindString:
		stream.WriteString(v.V.(string))
	case yaml.KindInt:
		i, _ := v.AsInt()
		stream.WriteInt64(i)
	case yaml.KindFloat:
		f := v.V.(float64)
		// JSON has no infinity
		if math.IsInf(f, 0) || math.IsNaN(f) {
			stream.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
			return
		}
		stream.WriteFloat64(f)
	case yaml.KindBool:
		stream.WriteBool(v.V.(bool))
	default:
		stream.WriteNil()
	}
}

// =========================
// YAML
// =========================

func writeYAML(w io.Writer, n yaml.Node) error {
	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLNode(n)); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return errors.Wrap(enc.Close(), "encode yaml")
}

func toYAMLNode(n yaml.Node) *yamlv3.Node {
	switch v := n.(type) {
	case *yaml.Mapping:
		out := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
		if v.Len() == 0 {
			out.Style = yamlv3.FlowStyle
		}
		v.Each(func(key string, child yaml.Node) bool {
			out.Content = append(out.Content, yamlScalar("!!str", key), toYAMLNode(child))
			return true
		})
		return out
	case *yaml.Sequence:
		out := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq"}
		if v.Len() == 0 {
			out.Style = yamlv3.FlowStyle
		}
		for _, elem := range v.Elems {
			out.Content = append(out.Content, toYAMLNode(elem))
		}
		return out
	case *yaml.Scalar:
		switch v.Kind() {
		case yaml.KindString:
			return yamlScalar("!!str", v.V.(string))
		case yaml.KindInt:
			return yamlScalar("!!int", strconv.FormatInt(v.V.(int64), 10))
		case yaml.KindFloat:
			return yamlScalar("!!float", yamlFloat(v.V.(float64)))
		case yaml.KindBool:
			return yamlScalar("!!bool", strconv.FormatBool(v.V.(bool)))
		}
	}
	return yamlScalar("!!null", "null")
}

func yamlScalar(tag, value string) *yamlv3.Node {
	return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: tag, Value: value}
}

// yamlFloat always yields text that reads back as a float, so 1.0 does not
// turn into the int 1.
func yamlFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
