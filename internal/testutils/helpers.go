package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stevie1mat/flowdsl/pkg/dsl"
	"github.com/stretchr/testify/require"
)

// TopicJSON is the editor payload of the Topic → mistral → markdown workflow.
const TopicJSON = `{
  "nodes": [
    {"id": "1", "type": "input", "position": {"x": 0, "y": 0}, "data": {"label": "Topic", "variable": "topic", "inputType": "text"}},
    {"id": "2", "type": "action", "position": {"x": 200, "y": 0}, "data": {"prompt": "Write about {topic}", "model": "mistral", "temperature": 0.7, "maxTokens": 256}},
    {"id": "3", "type": "output", "position": {"x": 400, "y": 0}, "data": {"label": "Post", "displayFormat": "markdown"}}
  ],
  "edges": [
    {"id": "e1", "source": "1", "target": "2"},
    {"id": "e2", "source": "2", "target": "3"}
  ]
}`

// OrphanJSON holds a single unconnected action: no input, no output.
const OrphanJSON = `{"nodes": [{"id": "a", "type": "action", "data": {}}], "edges": []}`

// TopicGraph is TopicJSON built in Go.
func TopicGraph() domain.Graph {
	b := dsl.New()
	b.Input("1").Label("Topic").Variable("topic").Type("text").To("2")
	b.Action("2").Prompt("Write about {topic}").Model("mistral").Temperature(0.7).MaxTokens(256).To("3")
	b.Output("3").Label("Post").Format("markdown")
	return b.Build()
}

// WriteFile creates name with content in a fresh temporary directory and returns its path.
// It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write fixture")
	return path
}
