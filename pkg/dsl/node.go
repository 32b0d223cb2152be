package dsl

import "github.com/stevie1mat/flowdsl/pkg/domain"

type edgeSource struct {
	b   *Builder
	id  string
	pos domain.Position
}

func (s *edgeSource) to(targets ...string) {
	for _, t := range targets {
		s.b.Connect(s.id, t)
	}
}

// InputBuilder provides a fluent API for configuring an Input node.
type InputBuilder struct {
	edgeSource
	data domain.InputData
}

// Label sets the question shown to the user.
func (n *InputBuilder) Label(label string) *InputBuilder {
	n.data.Label = label
	return n
}

// Variable names the value for downstream {variable} references.
func (n *InputBuilder) Variable(name string) *InputBuilder {
	n.data.Variable = name
	return n
}

// Type sets the input widget (text, textarea, dropdown, multiselect, number).
func (n *InputBuilder) Type(inputType string) *InputBuilder {
	n.data.InputType = inputType
	return n
}

// Placeholder sets the hint displayed in an empty field.
func (n *InputBuilder) Placeholder(text string) *InputBuilder {
	n.data.Placeholder = text
	return n
}

// Default sets the initial value.
func (n *InputBuilder) Default(value string) *InputBuilder {
	n.data.DefaultValue = value
	return n
}

// Required marks the input as mandatory.
func (n *InputBuilder) Required() *InputBuilder {
	n.data.Required = true
	return n
}

// At places the node on the canvas.
func (n *InputBuilder) At(x, y float64) *InputBuilder {
	n.pos = domain.Position{X: x, Y: y}
	return n
}

// To adds edges from this node to the targets.
func (n *InputBuilder) To(targets ...string) *InputBuilder {
	n.to(targets...)
	return n
}

func (n *InputBuilder) build() domain.Node {
	node := domain.NewInput(n.id, n.data)
	node.Position = n.pos
	return node
}

// ActionBuilder provides a fluent API for configuring an Action node.
type ActionBuilder struct {
	edgeSource
	data domain.ActionData
}

// Prompt sets the prompt template. Placeholders are kept verbatim.
func (n *ActionBuilder) Prompt(prompt string) *ActionBuilder {
	n.data.Prompt = prompt
	return n
}

// Model sets the model identifier.
func (n *ActionBuilder) Model(model string) *ActionBuilder {
	n.data.Model = model
	return n
}

// Temperature sets the sampling temperature (0.0 to 2.0).
func (n *ActionBuilder) Temperature(t float64) *ActionBuilder {
	n.data.Temperature = t
	return n
}

// MaxTokens sets the generation limit.
func (n *ActionBuilder) MaxTokens(max int) *ActionBuilder {
	n.data.MaxTokens = max
	return n
}

// OutputFormat sets the generated format (text, json, markdown, html).
func (n *ActionBuilder) OutputFormat(format string) *ActionBuilder {
	n.data.OutputFormat = format
	return n
}

// At places the node on the canvas.
func (n *ActionBuilder) At(x, y float64) *ActionBuilder {
	n.pos = domain.Position{X: x, Y: y}
	return n
}

// To adds edges from this node to the targets.
func (n *ActionBuilder) To(targets ...string) *ActionBuilder {
	n.to(targets...)
	return n
}

func (n *ActionBuilder) build() domain.Node {
	node := domain.NewAction(n.id, n.data)
	node.Position = n.pos
	return node
}

// OutputBuilder provides a fluent API for configuring an Output node.
type OutputBuilder struct {
	edgeSource
	data domain.OutputData
}

// Label sets the output title.
func (n *OutputBuilder) Label(label string) *OutputBuilder {
	n.data.Label = label
	return n
}

// Format sets the display format (plain, markdown, code, download).
func (n *OutputBuilder) Format(format string) *OutputBuilder {
	n.data.DisplayFormat = format
	return n
}

// FileType sets the exported file type for downloads.
func (n *OutputBuilder) FileType(fileType string) *OutputBuilder {
	n.data.FileType = fileType
	return n
}

// At places the node on the canvas.
func (n *OutputBuilder) At(x, y float64) *OutputBuilder {
	n.pos = domain.Position{X: x, Y: y}
	return n
}

// Terminal is a no-op marker for readability: outputs usually end the flow.
func (n *OutputBuilder) Terminal() *OutputBuilder {
	return n
}

func (n *OutputBuilder) build() domain.Node {
	node := domain.NewOutput(n.id, n.data)
	node.Position = n.pos
	return node
}
