package compiler

import (
	"bytes"
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stevie1mat/flowdsl/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of an editor payload.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the payload format from a file extension. Anything that is not
// .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// View is the graph as produced by the visual editor: UI concepts (type strings, positions)
// plus an untyped attribute bag per node.
type View struct {
	Name  string     `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes []ViewNode `json:"nodes" yaml:"nodes"`
	Edges []ViewEdge `json:"edges" yaml:"edges"`
}

// ViewNode is an editor node. Data is decoded according to Type.
type ViewNode struct {
	ID       string          `json:"id" yaml:"id"`
	Type     string          `json:"type" yaml:"type"`
	Position domain.Position `json:"position" yaml:"position"`
	Data     map[string]any  `json:"data,omitempty" yaml:"data,omitempty"`
}

// ViewEdge is an editor edge. The id is optional.
type ViewEdge struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// scalar accepts any value the editor may store in a text field.
var scalar = schema.Custom("scalar", func(v any) error {
	switch v.(type) {
	case string, bool, int, int64, float64, json.Number:
		return nil
	default:
		return fmt.Errorf("expected scalar, got %T", v)
	}
})

var nodeSchemas = map[domain.Kind]schema.Schema{
	domain.KindInput: {
		"label": schema.String(),
		"inputType": schema.Enum(domain.InputTypeText, domain.InputTypeTextarea,
			domain.InputTypeDropdown, domain.InputTypeMultiselect, domain.InputTypeNumber),
		"placeholder":  schema.String(),
		"variable":     schema.String(),
		"defaultValue": scalar,
		"required":     schema.Bool(),
	},
	domain.KindAction: {
		"prompt":      schema.String(),
		"model":       schema.String(),
		"temperature": schema.FloatRange(0, 2),
		"maxTokens":   schema.PositiveInt(),
		"outputFormat": schema.Enum(domain.OutputFormatText, domain.OutputFormatJSON,
			domain.OutputFormatMarkdown, domain.OutputFormatHTML),
	},
	domain.KindOutput: {
		"label": schema.String(),
		"displayFormat": schema.Enum(domain.DisplayPlain, domain.DisplayMarkdown,
			domain.DisplayCode, domain.DisplayDownload),
		"fileType": schema.String(),
	},
}

// ParseView decodes an editor payload. It does not type-check node data; see View.Graph.
func ParseView(data []byte, format Format) (*View, error) {
	var v View
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse workflow yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to parse workflow json: %w", err)
		}
	}
	return &v, nil
}

// ParseGraph decodes an editor payload straight into a typed graph.
func ParseGraph(data []byte, format Format) (domain.Graph, error) {
	v, err := ParseView(data, format)
	if err != nil {
		return domain.Graph{}, err
	}
	return v.Graph()
}

// Graph converts the view into a typed graph, dropping UI-only details.
// Node and edge order is preserved.
func (v *View) Graph() (domain.Graph, error) {
	g := domain.Graph{
		Nodes: make([]domain.Node, 0, len(v.Nodes)),
		Edges: make([]domain.Edge, 0, len(v.Edges)),
	}

	for _, vn := range v.Nodes {
		node, err := decodeNode(vn)
		if err != nil {
			return domain.Graph{}, err
		}
		g.Nodes = append(g.Nodes, node)
	}

	for i, ve := range v.Edges {
		id := ve.ID
		if id == "" {
			id = fmt.Sprintf("e%d", i+1)
		}
		g.Edges = append(g.Edges, domain.Edge{ID: id, Source: ve.Source, Target: ve.Target})
	}

	return g, nil
}

func decodeNode(vn ViewNode) (domain.Node, error) {
	if vn.ID == "" {
		return domain.Node{}, fmt.Errorf("node of type %q is missing an id", vn.Type)
	}
	kind, err := domain.ParseKind(vn.Type)
	if err != nil {
		return domain.Node{}, fmt.Errorf("node %s: %w", vn.ID, err)
	}
	if err := schema.Validate(nodeSchemas[kind], vn.Data); err != nil {
		return domain.Node{}, fmt.Errorf("node %s: %w", vn.ID, err)
	}

	var data domain.NodeData
	switch kind {
	case domain.KindInput:
		var d domain.InputData
		err = decodeData(vn.Data, &d)
		data = d
	case domain.KindAction:
		var d domain.ActionData
		err = decodeData(vn.Data, &d)
		data = d
	case domain.KindOutput:
		var d domain.OutputData
		err = decodeData(vn.Data, &d)
		data = d
	}
	if err != nil {
		return domain.Node{}, fmt.Errorf("node %s: failed to decode data: %w", vn.ID, err)
	}

	return domain.Node{ID: vn.ID, Data: data, Position: vn.Position}, nil
}

func decodeData(in map[string]any, out any) error {
	if len(in) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(scalarToString),
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// scalarToString keeps the editor's spelling of booleans and numbers bound to string fields.
// Weak decoding alone would turn true into "1".
func scalarToString(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch v := data.(type) {
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	default:
		return data, nil
	}
}
