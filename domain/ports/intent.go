package ports

import "context"

// ClassifierMessage is one prior turn handed to the collaborator as context.
type ClassifierMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolSchema describes one allowed output of the classifier.
type ToolSchema struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  string `json:"parameters"` // JSON schema for the argument object
}

// Classification is the collaborator's decision: either a tool call
// (Tool non-empty, Arguments a JSON object) or a clarification to relay
// verbatim to the user.
type Classification struct {
	Tool          string
	Arguments     map[string]any
	Clarification string
}

// IntentClassifier is the external language-understanding collaborator.
// Implementations must respect ctx cancellation; the dispatcher bounds every
// call with a timeout. Failures are reported as errors, never as panics —
// the resolver degrades to its deterministic path.
type IntentClassifier interface {
	Classify(ctx context.Context, text string, recent []ClassifierMessage, tools []ToolSchema) (*Classification, error)
}
