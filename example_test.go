package flowdsl_test

import (
	"context"
	"fmt"

	"github.com/stevie1mat/flowdsl"
	"github.com/stevie1mat/flowdsl/pkg/dsl"
)

func ExampleCompiler_Compile() {
	b := dsl.New()
	b.Input("1").Label("Topic").Variable("topic").To("2")
	b.Action("2").Prompt("Write about {topic}").Model("mistral").Temperature(0.7).MaxTokens(256).To("3")
	b.Output("3").Label("Post").Format("markdown")

	out, err := flowdsl.New().Compile(context.Background(), b.Build())
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Print(out.DSL)
	for _, step := range out.Steps {
		fmt.Println(step)
	}
	fmt.Println(out.Plan.Description)
	fmt.Println(out.Plan.EstimatedTime, out.Plan.Complexity)
	// Output:
	// workflow "Topic" {
	//     input topic : text = ""
	//     action 2 { prompt: "Write about {topic}", model: "mistral", temperature: 0.70, max_tokens: 256 }
	//     output 3 { format: "markdown", type: "" }
	// }
	// Step 1: Collect input "Topic"
	// Step 2: Generate content using mistral with prompt "Write about {topic}"
	// Step 3: Display/export result as markdown
	// Takes Topic, runs 1 action step(s), produces Post.
	// < 1 minute Simple
}

func ExampleCompiler_Validate() {
	b := dsl.New()
	b.Input("in").Label("Question").To("answer")
	b.Action("answer").Model("mistral")
	b.Output("out")

	res := flowdsl.New().Validate(context.Background(), b.Build())
	fmt.Println("valid:", res.IsValid)
	for _, e := range res.Errors {
		fmt.Println("error:", e)
	}
	for _, w := range res.Warnings {
		fmt.Println("warning:", w)
	}
	// Output:
	// valid: true
	// warning: Node answer has no downstream connection
}
