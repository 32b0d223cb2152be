package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stevie1mat/flowdsl/internal/testutils"
	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const topicYAML = `nodes:
  - id: "1"
    type: input
    data:
      label: Topic
  - id: "2"
    type: action
    data:
      model: mistral
  - id: "3"
    type: output
edges:
  - source: "1"
    target: "2"
  - source: "2"
    target: "3"
`

func TestReadGraph(t *testing.T) {
	jsonPath := testutils.WriteFile(t, "topic.json", testutils.TopicJSON)
	yamlPath := testutils.WriteFile(t, "topic.yml", topicYAML)

	tests := []struct {
		name  string
		path  string
		stdin string
	}{
		{"json file", jsonPath, ""},
		{"yaml file", yamlPath, ""},
		{"stdin", Stdin, testutils.TopicJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(tt.path, strings.NewReader(tt.stdin))
			require.NoError(t, err)
			require.Len(t, g.Nodes, 3)
			assert.Len(t, g.Edges, 2)
			assert.Equal(t, domain.KindAction, g.Nodes[1].Kind())
		})
	}
}

func TestReadGraph_Errors(t *testing.T) {
	_, err := ReadGraph(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.ErrorContains(t, err, "failed to read workflow")

	_, err = ReadGraph(Stdin, strings.NewReader("{broken"))
	assert.ErrorContains(t, err, "-:")
}

func TestSystemMessage(t *testing.T) {
	var buf bytes.Buffer
	SystemMessage(&buf, "Compiled %d steps.", 3)
	assert.Equal(t, ">>> Compiled 3 steps.\n", buf.String())
}
