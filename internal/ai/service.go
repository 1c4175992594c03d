package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/models"
	"github.com/jkantola/smalltalk/internal/prompt"
)

const (
	// maxAttempts bounds gateway calls per logical request, failures included.
	maxAttempts = 3
	// retryPause is the fixed delay between attempts. No backoff, no jitter.
	retryPause = time.Second
)

// Service runs prompts through the gateway under the retry policy. Its
// methods never fail: on exhaustion they return the fixed fallback for the
// call site, so callers always hold a structurally valid result.
type Service struct {
	completer Completer
	logger    *slog.Logger
	// sleep is swapped out in tests to avoid real delays.
	sleep func(time.Duration)
}

func NewService(completer Completer, logger *slog.Logger) *Service {
	return &Service{
		completer: completer,
		logger:    logger.With("source", "ai.Service"),
		sleep:     time.Sleep,
	}
}

// turnFallback is returned verbatim when all turn attempts are exhausted.
func turnFallback() models.TurnDecision {
	return models.TurnDecision{
		Reasoning: "Fallback due to repeated LLM errors.",
		Response:  "I'm sorry, I seem to be having a bit of trouble. Could you please repeat that?",
	}
}

// analysisFallback is returned verbatim when all analysis attempts are exhausted.
func analysisFallback() models.AnalysisResult {
	return models.AnalysisResult{
		Summary:              "Could not generate analysis due to a repeated API error.",
		InfoElicited:         false,
		SuccessfulTechniques: []models.AnalysisTechnique{},
		MissedOpportunities:  []models.AnalysisOpportunity{},
		OverallFeedback: "We were unable to analyze this session. Please try another one. " +
			"If the problem persists, there may be a connection issue.",
		Score: 0,
	}
}

// NextTurn produces the persona's next turn decision for the session state.
func (s *Service) NextTurn(
	ctx context.Context,
	persona models.Persona,
	secret string,
	log []models.Turn,
	mode models.Mode,
) models.TurnDecision {
	instruction, history := prompt.Turn(persona, secret, log, mode)
	req := CompletionRequest{
		Model:             turnModel,
		SystemInstruction: instruction,
		History:           history,
		Shape:             ShapeTurnDecision,
		Temperature:       0.8,
		TopP:              1.0,
		TopK:              40,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		decision, err := s.attemptTurn(ctx, req)
		if err == nil {
			return decision
		}
		s.logger.LogAttrs(ctx, slog.LevelWarn, "turn request failed",
			slog.Int("attempt", attempt), errors.SlogError(err))
		if attempt < maxAttempts {
			s.sleep(retryPause)
		}
	}
	return turnFallback()
}

func (s *Service) attemptTurn(ctx context.Context, req CompletionRequest) (models.TurnDecision, error) {
	raw, err := s.completer.Complete(ctx, req)
	if err != nil {
		return models.TurnDecision{}, errors.Wrap(err, "gateway call")
	}
	return decodeTurnDecision(raw)
}

// Analyze produces the coach report over the full transcript.
func (s *Service) Analyze(
	ctx context.Context,
	persona models.Persona,
	secret string,
	log []models.Turn,
	mode models.Mode,
) models.AnalysisResult {
	instruction, transcript := prompt.Analysis(persona, secret, log, mode)
	req := CompletionRequest{
		Model:             analysisModel,
		SystemInstruction: instruction,
		History:           []prompt.Message{transcript},
		Shape:             ShapeAnalysis,
		Temperature:       0.5,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		analysis, err := s.attemptAnalysis(ctx, req)
		if err == nil {
			return analysis
		}
		s.logger.LogAttrs(ctx, slog.LevelWarn, "analysis request failed",
			slog.Int("attempt", attempt), errors.SlogError(err))
		if attempt < maxAttempts {
			s.sleep(retryPause)
		}
	}
	return analysisFallback()
}

func (s *Service) attemptAnalysis(ctx context.Context, req CompletionRequest) (models.AnalysisResult, error) {
	raw, err := s.completer.Complete(ctx, req)
	if err != nil {
		return models.AnalysisResult{}, errors.Wrap(err, "gateway call")
	}
	return decodeAnalysis(raw)
}
