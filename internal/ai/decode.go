package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jkantola/smalltalk/internal/models"
	"github.com/kaptinlin/jsonrepair"
)

// DecodeError reports why a model response failed validation against its
// expected shape.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode model response: %s", e.Reason)
	}
	return fmt.Sprintf("decode model response: field %q %s", e.Field, e.Reason)
}

// repairJSON salvages common LLM output defects (markdown fences, trailing
// commas, single quotes) before strict decoding.
func repairJSON(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	repaired, err := jsonrepair.JSONRepair(trimmed)
	if err != nil {
		return "", &DecodeError{Reason: fmt.Sprintf("not JSON: %v", err)}
	}
	return repaired, nil
}

// decodeTurnDecision validates the turn-decision contract:
// {"reasoning": string, "response": string}.
func decodeTurnDecision(raw string) (models.TurnDecision, error) {
	var decision models.TurnDecision

	repaired, err := repairJSON(raw)
	if err != nil {
		return decision, err
	}

	var payload struct {
		Reasoning *string `json:"reasoning"`
		Response  *string `json:"response"`
	}
	if err = json.Unmarshal([]byte(repaired), &payload); err != nil {
		return decision, &DecodeError{Reason: fmt.Sprintf("unmarshal: %v", err)}
	}
	if payload.Reasoning == nil {
		return decision, &DecodeError{Field: "reasoning", Reason: "missing or not a string"}
	}
	if payload.Response == nil {
		return decision, &DecodeError{Field: "response", Reason: "missing or not a string"}
	}

	decision.Reasoning = *payload.Reasoning
	decision.Response = *payload.Response
	return decision, nil
}

// decodeAnalysis validates the analysis contract including the required
// integer score.
func decodeAnalysis(raw string) (models.AnalysisResult, error) {
	var analysis models.AnalysisResult

	repaired, err := repairJSON(raw)
	if err != nil {
		return analysis, err
	}

	var payload struct {
		Summary              *string                       `json:"summary"`
		InfoElicited         *bool                         `json:"infoElicited"`
		SuccessfulTechniques *[]models.AnalysisTechnique   `json:"successfulTechniques"`
		MissedOpportunities  *[]models.AnalysisOpportunity `json:"missedOpportunities"`
		OverallFeedback      *string                       `json:"overallFeedback"`
		Score                *float64                      `json:"score"`
	}
	if err = json.Unmarshal([]byte(repaired), &payload); err != nil {
		return analysis, &DecodeError{Reason: fmt.Sprintf("unmarshal: %v", err)}
	}
	switch {
	case payload.Summary == nil:
		return analysis, &DecodeError{Field: "summary", Reason: "missing or not a string"}
	case payload.InfoElicited == nil:
		return analysis, &DecodeError{Field: "infoElicited", Reason: "missing or not a boolean"}
	case payload.SuccessfulTechniques == nil:
		return analysis, &DecodeError{Field: "successfulTechniques", Reason: "missing or not an array"}
	case payload.MissedOpportunities == nil:
		return analysis, &DecodeError{Field: "missedOpportunities", Reason: "missing or not an array"}
	case payload.OverallFeedback == nil:
		return analysis, &DecodeError{Field: "overallFeedback", Reason: "missing or not a string"}
	case payload.Score == nil:
		return analysis, &DecodeError{Field: "score", Reason: "missing or not a number"}
	}

	analysis.Summary = *payload.Summary
	analysis.InfoElicited = *payload.InfoElicited
	analysis.SuccessfulTechniques = *payload.SuccessfulTechniques
	analysis.MissedOpportunities = *payload.MissedOpportunities
	analysis.OverallFeedback = *payload.OverallFeedback
	analysis.Score = int(*payload.Score)
	return analysis, nil
}
