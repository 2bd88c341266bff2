package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider completes chats through the Google GenAI SDK.
type GeminiProvider struct {
	client    *genai.Client
	model     string
	maxTokens int32
	logger    *zap.Logger
}

func NewGeminiProvider(ctx context.Context, apiKey, model string, maxTokens int32, logger *zap.Logger) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if maxTokens <= 0 {
		maxTokens = 500
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiProvider{client: client, model: model, maxTokens: maxTokens, logger: logger}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	system, contents := toGeminiContents(messages)
	cfg := &genai.GenerateContentConfig{MaxOutputTokens: p.maxTokens}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		return "", p.wrapError(ctx, err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// wrapError keeps context errors as they are so callers can tell a timeout
// from a provider failure.
func (p *GeminiProvider) wrapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("gemini: %w", ctxErr)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	return &UpstreamError{Provider: p.Name(), Message: err.Error()}
}

// toGeminiContents maps the transcript onto Gemini's user/model roles.
func toGeminiContents(messages []Message) (string, []*genai.Content) {
	system, rest := splitSystem(messages)
	contents := make([]*genai.Content, 0, len(rest))
	for _, m := range rest {
		role := genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(role)))
	}
	return system, contents
}
