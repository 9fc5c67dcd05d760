// Package generation turns prompts into text through a pluggable backend and
// records every result in the user's history.
package generation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/raushankrgupta/virtual-closet/history"
	"github.com/raushankrgupta/virtual-closet/models"
	"go.uber.org/zap"
)

var (
	// ErrEmptyPrompt is returned before any I/O when the prompt is blank
	ErrEmptyPrompt = errors.New("please enter a prompt")
	// ErrGenerationFailed covers every backend failure; callers show one generic message
	ErrGenerationFailed = errors.New("failed to generate text")
)

// DefaultCap is the longest generated text surfaced or stored, in characters
const DefaultCap = 500

// Ellipsis marks truncated text
const Ellipsis = "..."

// Generator produces text for a prompt
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Truncate cuts text longer than limit characters down to limit characters
// followed by an ellipsis. A non-positive limit disables truncation.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + Ellipsis
}

// Service validates prompts, generates, truncates once and appends the result
// to history
type Service struct {
	generator Generator
	history   history.Store
	cap       int
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a generator to a history store. history may be nil, in
// which case nothing is recorded.
func NewService(gen Generator, store history.Store, limit int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		generator: gen,
		history:   store,
		cap:       limit,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate returns the truncated text for prompt. When userID is set the
// result is appended to that user's history; a failed append is logged and
// does not affect the returned text.
func (s *Service) Generate(ctx context.Context, userID, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn("text generation failed", zap.String("user_id", userID), zap.Error(err))
		if errors.Is(err, ErrGenerationFailed) {
			return "", err
		}
		return "", errors.Join(ErrGenerationFailed, err)
	}
	text = Truncate(text, s.cap)

	if userID != "" && s.history != nil {
		entry := models.HistoryEntry{Prompt: prompt, Text: text, CreatedAt: s.now().UnixMilli()}
		res, err := s.history.AppendOrCreate(ctx, userID, entry)
		if err != nil {
			s.logger.Warn("failed to record generation history",
				zap.String("user_id", userID),
				zap.String("outcome", res.Outcome.String()),
				zap.Error(err),
			)
		} else {
			s.logger.Debug("generation history recorded",
				zap.String("user_id", userID),
				zap.String("outcome", res.Outcome.String()),
			)
		}
	}
	return text, nil
}
