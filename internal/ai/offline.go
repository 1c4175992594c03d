package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jkantola/smalltalk/internal/models"
)

// OfflineClient is a deterministic stand-in for the Gemini gateway used when
// no API key is configured, e.g. in local development and handler tests. It
// produces contract-valid responses without network I/O.
type OfflineClient struct{}

func NewOfflineClient() *OfflineClient {
	return &OfflineClient{}
}

func (c *OfflineClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	switch req.Shape {
	case ShapeAnalysis:
		result := models.AnalysisResult{
			Summary:              "Offline mode: no analysis was performed.",
			InfoElicited:         false,
			SuccessfulTechniques: []models.AnalysisTechnique{},
			MissedOpportunities:  []models.AnalysisOpportunity{},
			OverallFeedback:      "Configure GEMINI_API_KEY to receive real coaching feedback.",
			Score:                100,
		}
		out, err := json.Marshal(result)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		turns := len(req.History)
		decision := models.TurnDecision{
			Reasoning: "Offline mode, echoing a canned reply.",
			Response:  fmt.Sprintf("That's interesting, tell me more. (offline reply %d)", turns),
		}
		out, err := json.Marshal(decision)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// Speak returns a short stretch of silence in the gateway's PCM format.
func (c *OfflineClient) Speak(_ context.Context, _, _ string) ([]byte, error) {
	return make([]byte, 4800), nil
}
