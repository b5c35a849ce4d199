package assistant

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/domain/models"
	"github.com/mamadbah2/agrilink/internal/service/reporting"
	"github.com/mamadbah2/agrilink/pkg/clients/anthropic"
)

// Service answers free-form farming questions and produces narrative
// summaries of the current reporting aggregates.
type Service struct {
	ai        anthropic.Client
	reporting *reporting.Service
	logger    *zap.Logger
}

// NewService wires the assistant. ai may be nil when no provider key is
// configured; calls then fail with a DependencyError.
func NewService(ai anthropic.Client, reporting *reporting.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ai: ai, reporting: reporting, logger: logger}
}

// Chat forwards the conversation to the AI provider.
func (s *Service) Chat(ctx context.Context, history []anthropic.Message, input string) (string, error) {
	if s.ai == nil {
		return "", &models.DependencyError{Dependency: "ai provider", Err: fmt.Errorf("not configured")}
	}
	if input == "" {
		return "", fmt.Errorf("empty message: %w", models.ErrInvalidArgument)
	}

	reply, err := s.ai.Chat(ctx, history, input)
	if err != nil {
		return "", &models.DependencyError{Dependency: "ai provider", Err: err}
	}
	return reply, nil
}

// Summary feeds the current aggregates to the AI provider and returns a
// short narrative.
func (s *Service) Summary(ctx context.Context) (string, error) {
	if s.ai == nil {
		return "", &models.DependencyError{Dependency: "ai provider", Err: fmt.Errorf("not configured")}
	}

	report, err := s.reporting.SummaryText(ctx)
	if err != nil {
		return "", err
	}

	summary, err := s.ai.Summarize(ctx, report)
	if err != nil {
		return "", &models.DependencyError{Dependency: "ai provider", Err: err}
	}

	s.logger.Debug("summary generated", zap.Int("report_len", len(report)))
	return summary, nil
}
