package ai

import (
	"testing"

	"github.com/jkantola/smalltalk/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDecodeTurnDecision(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      models.TurnDecision
		wantField string
		wantErr   bool
	}{
		{
			name: "valid",
			raw:  `{"reasoning": "They are guarded.", "response": "Lovely weather, isn't it?"}`,
			want: models.TurnDecision{Reasoning: "They are guarded.", Response: "Lovely weather, isn't it?"},
		},
		{
			name: "markdown fenced",
			raw:  "```json\n{\"reasoning\": \"r\", \"response\": \"text\"}\n```",
			want: models.TurnDecision{Reasoning: "r", Response: "text"},
		},
		{
			name:      "missing response",
			raw:       `{"reasoning": "r"}`,
			wantField: "response",
			wantErr:   true,
		},
		{
			name:      "wrong type",
			raw:       `{"reasoning": 42, "response": "text"}`,
			wantErr:   true,
		},
		{
			name:    "not json",
			raw:     "not json",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := decodeTurnDecision(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var decodeErr *DecodeError
				require.ErrorAs(t, err, &decodeErr)
				if tt.wantField != "" {
					require.Equal(t, tt.wantField, decodeErr.Field)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, decision)
		})
	}
}

func TestDecodeAnalysis(t *testing.T) {
	valid := `{
		"summary": "The secret slipped out on turn four.",
		"infoElicited": true,
		"successfulTechniques": [
			{"technique": "Feigned Ignorance", "example": "Surely that can't be right?", "analysis": "Brenda corrected the record."}
		],
		"missedOpportunities": [],
		"overallFeedback": "Strong rapport, rushed closing.",
		"score": 145
	}`

	analysis, err := decodeAnalysis(valid)
	require.NoError(t, err)
	require.True(t, analysis.InfoElicited)
	require.Equal(t, 145, analysis.Score)
	require.Len(t, analysis.SuccessfulTechniques, 1)
	require.Equal(t, "Feigned Ignorance", analysis.SuccessfulTechniques[0].Technique)
	require.Empty(t, analysis.MissedOpportunities)

	// Every required field is enforced, including the score.
	missingScore := `{
		"summary": "s", "infoElicited": false, "successfulTechniques": [],
		"missedOpportunities": [], "overallFeedback": "f"
	}`
	_, err = decodeAnalysis(missingScore)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, "score", decodeErr.Field)
}
