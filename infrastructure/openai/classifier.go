package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"taskchat/domain/ports"
	"taskchat/pkg/logger"
)

const systemPrompt = `You route task-management requests to tools. You never execute anything yourself.

Available tools:
%s

Reply with a single JSON object and nothing else, in one of two shapes:
{"tool": "<tool name>", "arguments": {<arguments matching the tool's parameter schema>}}
{"clarification": "<one short question to the user>"}

Rules:
- Pick a tool only when the user's intent is clear. When in doubt, ask a clarification.
- When the user refers to a task by its words rather than an id, put the phrase in the "task" argument and leave "task_id" out.
- Never invent task ids.`

// Classifier calls an OpenAI-compatible chat completion endpoint and maps
// the reply onto a tool call or a clarification.
type Classifier struct {
	client openai.Client
	model  string
}

type Config struct {
	APIKey  string
	BaseURL string // optional, for OpenAI-compatible endpoints
	Model   string
}

func NewClassifier(cfg Config) *Classifier {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Classifier{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

func (c *Classifier) Classify(ctx context.Context, text string, recent []ports.ClassifierMessage, tools []ports.ToolSchema) (*ports.Classification, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(recent)+2)
	messages = append(messages, openai.SystemMessage(fmt.Sprintf(systemPrompt, catalogueJSON(tools))))

	for _, m := range recent {
		if m.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(text))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(0),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	reply := completion.Choices[0].Message.Content
	classification, err := parseClassification(reply)
	if err != nil {
		logger.Warn("Unparseable classifier reply", "reply", reply, "error", err)
		return nil, err
	}
	return classification, nil
}

// catalogueJSON renders the tool schemas as a JSON array for the prompt.
// Parameters are already JSON, so they are spliced in raw.
func catalogueJSON(tools []ports.ToolSchema) string {
	out := "[]"
	for i, t := range tools {
		out, _ = sjson.Set(out, fmt.Sprintf("%d.name", i), t.Name)
		out, _ = sjson.Set(out, fmt.Sprintf("%d.description", i), t.Description)
		out, _ = sjson.SetRaw(out, fmt.Sprintf("%d.parameters", i), t.Parameters)
	}
	return out
}

// parseClassification reads the model's JSON reply. Code fences and
// surrounding prose are tolerated; the first JSON object wins.
func parseClassification(reply string) (*ports.Classification, error) {
	payload := extractJSON(reply)
	if !gjson.Valid(payload) {
		return nil, fmt.Errorf("reply is not valid JSON")
	}

	parsed := gjson.Parse(payload)

	if clarification := parsed.Get("clarification").String(); clarification != "" {
		return &ports.Classification{Clarification: clarification}, nil
	}

	tool := parsed.Get("tool").String()
	if tool == "" {
		return nil, fmt.Errorf("reply names no tool and no clarification")
	}

	arguments := map[string]any{}
	if raw := parsed.Get("arguments"); raw.IsObject() {
		for k, v := range raw.Map() {
			arguments[k] = v.Value()
		}
	}

	return &ports.Classification{Tool: tool, Arguments: arguments}, nil
}

func extractJSON(reply string) string {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	reply = strings.TrimSpace(reply)

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start >= 0 && end > start {
		return reply[start : end+1]
	}
	return reply
}

var _ ports.IntentClassifier = (*Classifier)(nil)
