package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the closed set of node kinds understood by the compiler.
type Kind string

const (
	// KindInput collects a value from the user and binds it to a variable.
	KindInput Kind = "input"
	// KindAction runs a prompt against a model.
	KindAction Kind = "action"
	// KindOutput presents or exports a result.
	KindOutput Kind = "output"
)

// String implements fmt.Stringer.
func (k Kind) String() string { return string(k) }

// ParseKind maps an editor node type to a Kind.
// Matching is case-insensitive and accepts the editor aliases (e.g. "inputNode", "ai").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "input", "inputnode":
		return KindInput, nil
	case "action", "actionnode", "ai", "ainode":
		return KindAction, nil
	case "output", "outputnode":
		return KindOutput, nil
	default:
		return "", fmt.Errorf("unknown node kind %q", s)
	}
}

// Input types accepted by an Input node.
const (
	InputTypeText        = "text"
	InputTypeTextarea    = "textarea"
	InputTypeDropdown    = "dropdown"
	InputTypeMultiselect = "multiselect"
	InputTypeNumber      = "number"
)

// Output formats produced by an Action node.
const (
	OutputFormatText     = "text"
	OutputFormatJSON     = "json"
	OutputFormatMarkdown = "markdown"
	OutputFormatHTML     = "html"
)

// Display formats of an Output node.
const (
	DisplayPlain    = "plain"
	DisplayMarkdown = "markdown"
	DisplayCode     = "code"
	DisplayDownload = "download"
)

// NodeData is the kind-specific payload of a Node.
// The set of implementations is closed: InputData, ActionData and OutputData.
type NodeData interface {
	Kind() Kind
	isNodeData()
}

// InputData configures an Input node.
type InputData struct {
	Label        string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	InputType    string `json:"inputType,omitempty" yaml:"inputType,omitempty" mapstructure:"inputType"`
	Placeholder  string `json:"placeholder,omitempty" yaml:"placeholder,omitempty" mapstructure:"placeholder"`
	Variable     string `json:"variable,omitempty" yaml:"variable,omitempty" mapstructure:"variable"`
	DefaultValue string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty" mapstructure:"defaultValue"`
	Required     bool   `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
}

// ActionData configures an Action node.
// Prompt may reference {variable} placeholders; they are kept verbatim.
type ActionData struct {
	Prompt       string  `json:"prompt,omitempty" yaml:"prompt,omitempty" mapstructure:"prompt"`
	Model        string  `json:"model,omitempty" yaml:"model,omitempty" mapstructure:"model"`
	Temperature  float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`
	MaxTokens    int     `json:"maxTokens" yaml:"maxTokens" mapstructure:"maxTokens"`
	OutputFormat string  `json:"outputFormat,omitempty" yaml:"outputFormat,omitempty" mapstructure:"outputFormat"`
}

// OutputData configures an Output node.
type OutputData struct {
	Label         string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	DisplayFormat string `json:"displayFormat,omitempty" yaml:"displayFormat,omitempty" mapstructure:"displayFormat"`
	FileType      string `json:"fileType,omitempty" yaml:"fileType,omitempty" mapstructure:"fileType"`
}

func (InputData) Kind() Kind  { return KindInput }
func (ActionData) Kind() Kind { return KindAction }
func (OutputData) Kind() Kind { return KindOutput }

func (InputData) isNodeData()  {}
func (ActionData) isNodeData() {}
func (OutputData) isNodeData() {}

// Position is the canvas coordinate of a node. It is never read by the compiler.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node represents a logical unit in the workflow graph.
type Node struct {
	ID       string
	Data     NodeData
	Position Position
}

// NewInput creates an Input node.
func NewInput(id string, data InputData) Node { return Node{ID: id, Data: data} }

// NewAction creates an Action node.
func NewAction(id string, data ActionData) Node { return Node{ID: id, Data: data} }

// NewOutput creates an Output node.
func NewOutput(id string, data OutputData) Node { return Node{ID: id, Data: data} }

// Kind returns the kind of the node payload, or "" if the node carries none.
func (n Node) Kind() Kind {
	if n.Data == nil {
		return ""
	}
	return n.Data.Kind()
}

// Input returns the Input payload if the node is an Input node.
func (n Node) Input() (InputData, bool) {
	d, ok := n.Data.(InputData)
	return d, ok
}

// Action returns the Action payload if the node is an Action node.
func (n Node) Action() (ActionData, bool) {
	d, ok := n.Data.(ActionData)
	return d, ok
}

// Output returns the Output payload if the node is an Output node.
func (n Node) Output() (OutputData, bool) {
	d, ok := n.Data.(OutputData)
	return d, ok
}

// wireNode is the JSON shape of a node, matching the editor payload.
type wireNode struct {
	ID       string          `json:"id"`
	Type     Kind            `json:"type"`
	Position Position        `json:"position"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// MarshalJSON encodes the node as {id, type, position, data}.
func (n Node) MarshalJSON() ([]byte, error) {
	w := wireNode{ID: n.ID, Type: n.Kind(), Position: n.Position}
	if n.Data != nil {
		data, err := json.Marshal(n.Data)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
		w.Data = data
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the {id, type, position, data} shape strictly.
// Lenient decoding of raw editor payloads lives in the compiler package.
func (n *Node) UnmarshalJSON(b []byte) error {
	var w wireNode
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	kind, err := ParseKind(string(w.Type))
	if err != nil {
		return fmt.Errorf("node %s: %w", w.ID, err)
	}

	var data NodeData
	switch kind {
	case KindInput:
		var d InputData
		err = unmarshalData(w.Data, &d)
		data = d
	case KindAction:
		var d ActionData
		err = unmarshalData(w.Data, &d)
		data = d
	case KindOutput:
		var d OutputData
		err = unmarshalData(w.Data, &d)
		data = d
	}
	if err != nil {
		return fmt.Errorf("node %s: %w", w.ID, err)
	}

	*n = Node{ID: w.ID, Data: data, Position: w.Position}
	return nil
}

func unmarshalData(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}
