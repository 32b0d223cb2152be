/*
Package flowdsl compiles visual AI-workflow graphs into a compact textual DSL.

A workflow is a directed acyclic graph of Input nodes (collect a value), Action nodes (run a
prompt against a model) and Output nodes (present the result), as drawn in a node editor.
flowdsl validates the graph, orders it topologically, renders it as DSL text, describes each
step in plain language and estimates how long and how complex a run would be.

# Concept

Every operation is a pure function over the graph handed in by the caller: nothing is cached
between calls and identical input always produces byte-identical output. The caller decides
when to recompute (typically on every edit in the editor). Persistence, transport and metrics
live in adapters around this core (see pkg/adapters and pkg/catalog).

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/stevie1mat/flowdsl"
		"github.com/stevie1mat/flowdsl/pkg/dsl"
	)

	func main() {
		b := dsl.New()
		b.Input("1").Label("Topic").Variable("topic").To("2")
		b.Action("2").Prompt("Write about {topic}").Model("mistral").Temperature(0.7).MaxTokens(256).To("3")
		b.Output("3").Format("markdown")

		c := flowdsl.New()
		out, err := c.Compile(context.Background(), b.Build())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(out.DSL)
	}

Validation never fails: errors and warnings are returned as data. Sequence and Compile reject
graphs that would not validate with errors wrapping domain.ErrInvalidGraph.
*/
package flowdsl
