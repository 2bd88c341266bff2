package providers

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatProvider completes a transcript. The first message may carry the
// system prompt.
type ChatProvider interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
}

// UpstreamError is a failure reported by the model provider itself.
type UpstreamError struct {
	Provider string
	Status   int
	Message  string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// splitSystem separates a leading system message from the conversation.
func splitSystem(messages []Message) (string, []Message) {
	if len(messages) > 0 && messages[0].Role == RoleSystem {
		return messages[0].Content, messages[1:]
	}
	return "", messages
}
