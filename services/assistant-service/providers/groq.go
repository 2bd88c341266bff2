package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama3-8b-8192"
)

type GroqConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
	MaxRetries int
	// Backoff is the first retry delay; it doubles on every retry.
	Backoff time.Duration
}

func DefaultGroqConfig(apiKey string) GroqConfig {
	return GroqConfig{
		APIKey:     apiKey,
		BaseURL:    DefaultGroqBaseURL,
		Model:      DefaultGroqModel,
		MaxTokens:  500,
		Timeout:    60 * time.Second,
		MaxRetries: 3,
		Backoff:    time.Second,
	}
}

// GroqProvider talks to Groq's OpenAI compatible chat completions API.
type GroqProvider struct {
	cfg        GroqConfig
	httpClient *http.Client
	logger     *zap.Logger
}

type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func NewGroqProvider(cfg GroqConfig, logger *zap.Logger) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}
	def := DefaultGroqConfig(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = def.Backoff
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &GroqProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

func (p *GroqProvider) Name() string { return "groq" }

func (p *GroqProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:     p.cfg.Model,
		Messages:  messages,
		MaxTokens: p.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := p.cfg.Backoff << uint(attempt-1)
			p.logger.Warn("Retrying Groq request",
				zap.Int("attempt", attempt), zap.Duration("delay", delay), zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		text, retry, err := p.do(ctx, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retry {
			return "", err
		}
	}
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// do sends one request. retry reports whether the failure is worth repeating.
func (p *GroqProvider) do(ctx context.Context, payload []byte) (text string, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", ctx.Err() == nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("read response: %w", err)
	}

	var parsed chatResponse
	decodeErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("groq returned status %d", resp.StatusCode)
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		upstream := &UpstreamError{Provider: p.Name(), Status: resp.StatusCode, Message: msg}
		return "", resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500, upstream
	}
	if decodeErr != nil {
		return "", false, fmt.Errorf("decode response: %w", decodeErr)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", false, &UpstreamError{Provider: p.Name(), Status: resp.StatusCode, Message: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return "", false, nil
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), false, nil
}
