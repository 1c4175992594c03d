package models

// AnalysisTechnique records one technique the trainee employed successfully,
// with quoted evidence from the transcript.
type AnalysisTechnique struct {
	Technique string `json:"technique"`
	Example   string `json:"example"`
	Analysis  string `json:"analysis"`
}

// AnalysisOpportunity records a moment where a technique could have been
// applied, with suggested phrasing.
type AnalysisOpportunity struct {
	Technique  string `json:"technique"`
	Suggestion string `json:"suggestion"`
	Example    string `json:"example"`
}

// AnalysisResult is the coach's post-session report. Immutable after creation.
//
// Score is computed by the model from the rubric embedded in the analysis
// instruction. This code only validates its presence and type.
type AnalysisResult struct {
	Summary              string                `json:"summary"`
	InfoElicited         bool                  `json:"infoElicited"`
	SuccessfulTechniques []AnalysisTechnique   `json:"successfulTechniques"`
	MissedOpportunities  []AnalysisOpportunity `json:"missedOpportunities"`
	OverallFeedback      string                `json:"overallFeedback"`
	Score                int                   `json:"score"`
}
