/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing
workflow graphs.

It allows developers to define workflows with a type-safe, fluent builder instead of hand
writing editor JSON. Each node kind has its own builder, so only the attributes that exist for
that kind can be set. This is particularly useful for tests, fixtures and generated workflows.

Example usage:

	b := dsl.New()

	b.Input("topic").
		Label("Topic").
		Variable("topic").
		To("draft")

	b.Action("draft").
		Prompt("Write about {topic}").
		Model("mistral").
		Temperature(0.7).
		MaxTokens(256).
		To("result")

	b.Output("result").
		Format("markdown")

	graph := b.Build()
*/
package dsl
