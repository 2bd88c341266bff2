package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	awspkg "github.com/corexathletics/storefront/pkg/aws"
	"github.com/corexathletics/storefront/services/assistant-service/models"
	"github.com/corexathletics/storefront/services/assistant-service/providers"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/common/logger"
	"go.uber.org/zap"
)

const noAnswer = "(No answer returned from the assistant.)"

var sampleQuestions = []string{
	"What is the difference between joggers and tights?",
	"Are your compression shorts available in navy?",
	"Which tops have moisture-wicking?",
	"What's your most popular hoodie?",
	"Suggest a good workout routine for beginners.",
}

// SystemPrompt is the assistant persona for a catalog with the given names.
func SystemPrompt(productNames []string) string {
	return "You are a helpful and friendly assistant for Core X, a sports clothing brand. " +
		"You are an expert on our products and can also answer general knowledge questions, " +
		"especially about fitness and wellness. Available products: " +
		strings.Join(productNames, ", ") +
		". If asked about stock level, say you do not have inventory data."
}

type ChatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error)
	Samples() []string
}

type chatService struct {
	provider     providers.ChatProvider
	systemPrompt string
	metrics      awspkg.MetricsRecorder
	logger       *zap.Logger
}

func NewChatService(provider providers.ChatProvider, productNames []string, metrics awspkg.MetricsRecorder, logger *zap.Logger) ChatService {
	return &chatService{
		provider:     provider,
		systemPrompt: SystemPrompt(productNames),
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *chatService) Samples() []string {
	out := make([]string, len(sampleQuestions))
	copy(out, sampleQuestions)
	return out
}

func (s *chatService) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error) {
	transcript, err := s.transcript(req.Messages)
	if err != nil {
		return nil, err
	}

	log := logger.For(ctx, s.logger)
	start := time.Now()
	text, err := s.provider.Complete(ctx, transcript)
	s.recordLatency(ctx, time.Since(start))
	if err != nil {
		s.record(ctx, awspkg.MetricChatFailures)
		log.Error("Chat completion failed", zap.String("provider", s.provider.Name()), zap.Error(err))

		// A provider may report an expired request as an upstream failure.
		if ctx.Err() != nil {
			return nil, apperrors.New(http.StatusGatewayTimeout, "Assistant timed out", err)
		}
		var upstream *providers.UpstreamError
		if errors.As(err, &upstream) {
			return nil, apperrors.BadGateway(upstream.Message, err)
		}
		return nil, apperrors.BadGateway(err.Error(), err)
	}
	s.record(ctx, awspkg.MetricChatCompletions)

	if text == "" {
		text = noAnswer
	}
	log.Info("Chat completed",
		zap.String("provider", s.provider.Name()),
		zap.Int("messages", len(transcript)),
		zap.Duration("latency", time.Since(start)))
	return &models.ChatReply{Message: text}, nil
}

// transcript validates the client messages and replaces any client system
// prompt with the server one.
func (s *chatService) transcript(messages []providers.Message) ([]providers.Message, error) {
	if len(messages) == 0 {
		return nil, apperrors.BadRequest("messages must not be empty", nil)
	}
	if len(messages) > models.MaxMessages {
		return nil, apperrors.BadRequest(fmt.Sprintf("at most %d messages are allowed", models.MaxMessages), nil)
	}

	out := make([]providers.Message, 0, len(messages)+1)
	out = append(out, providers.Message{Role: providers.RoleSystem, Content: s.systemPrompt})
	for i, m := range messages {
		content := strings.TrimSpace(m.Content)
		switch m.Role {
		case providers.RoleSystem:
			continue
		case providers.RoleUser, providers.RoleAssistant:
		default:
			return nil, apperrors.BadRequest(fmt.Sprintf("messages[%d]: unknown role %q", i, m.Role), nil)
		}
		if content == "" {
			return nil, apperrors.BadRequest(fmt.Sprintf("messages[%d]: content must not be empty", i), nil)
		}
		out = append(out, providers.Message{Role: m.Role, Content: content})
	}
	if len(out) == 1 {
		return nil, apperrors.BadRequest("at least one user or assistant message is required", nil)
	}
	return out, nil
}

func (s *chatService) record(ctx context.Context, metric string) {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.RecordCount(ctx, metric, map[string]string{"Provider": s.provider.Name()}); err != nil {
		logger.For(ctx, s.logger).Warn("metric write failed", zap.String("metric", metric), zap.Error(err))
	}
}

func (s *chatService) recordLatency(ctx context.Context, d time.Duration) {
	if s.metrics == nil {
		return
	}
	_ = s.metrics.RecordLatency(ctx, awspkg.MetricChatLatency, d, map[string]string{"Provider": s.provider.Name()})
}
