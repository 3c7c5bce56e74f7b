package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"taskchat/domain/ports"
)

func TestParseClassificationToolCall(t *testing.T) {
	cls, err := parseClassification(`{"tool":"add_task","arguments":{"title":"buy milk"}}`)
	require.NoError(t, err)
	assert.Equal(t, "add_task", cls.Tool)
	assert.Equal(t, "buy milk", cls.Arguments["title"])
	assert.Empty(t, cls.Clarification)
}

func TestParseClassificationClarification(t *testing.T) {
	cls, err := parseClassification(`{"clarification":"Which task did you mean?"}`)
	require.NoError(t, err)
	assert.Empty(t, cls.Tool)
	assert.Equal(t, "Which task did you mean?", cls.Clarification)
}

func TestParseClassificationCodeFence(t *testing.T) {
	reply := "```json\n{\"tool\":\"list_tasks\",\"arguments\":{}}\n```"
	cls, err := parseClassification(reply)
	require.NoError(t, err)
	assert.Equal(t, "list_tasks", cls.Tool)
}

func TestParseClassificationSurroundingProse(t *testing.T) {
	reply := `Sure! Here is the routing decision: {"tool":"complete_task","arguments":{"task":"buy milk"}} Hope that helps.`
	cls, err := parseClassification(reply)
	require.NoError(t, err)
	assert.Equal(t, "complete_task", cls.Tool)
	assert.Equal(t, "buy milk", cls.Arguments["task"])
}

func TestParseClassificationGarbage(t *testing.T) {
	for _, reply := range []string{"", "I would add a task for you", `{"arguments":{}}`} {
		_, err := parseClassification(reply)
		assert.Error(t, err, reply)
	}
}

func TestCatalogueJSON(t *testing.T) {
	out := catalogueJSON([]ports.ToolSchema{
		{Name: "add_task", Description: "Create a task", Parameters: `{"type":"object"}`},
		{Name: "list_tasks", Description: "List tasks", Parameters: `{"type":"object"}`},
	})

	require.True(t, gjson.Valid(out))
	parsed := gjson.Parse(out)
	assert.Equal(t, int64(2), int64(len(parsed.Array())))
	assert.Equal(t, "add_task", parsed.Get("0.name").String())
	assert.Equal(t, "object", parsed.Get("1.parameters.type").String())
}
