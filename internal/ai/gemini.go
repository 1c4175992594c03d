package ai

import (
	"context"

	"github.com/jkantola/smalltalk/internal/errors"
	"google.golang.org/genai"
)

const (
	turnModel     = "gemini-2.5-flash"
	analysisModel = "gemini-2.5-pro"
	speechModel   = "gemini-2.5-flash-preview-tts"
)

// GeminiClient implements Completer and Synthesizer against the Gemini API.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient constructs the gateway client. The client is passed
// explicitly to the components that need it, there is no package-level
// instance.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}
	return &GeminiClient{client: client}, nil
}

// Complete sends one prompt and returns the raw response text. The caller
// owns parsing and retries.
func (c *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	contents := make([]*genai.Content, 0, len(req.History))
	for _, message := range req.History {
		contents = append(contents, genai.NewContentFromText(message.Text, genai.Role(message.Role)))
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(req.Temperature)
	}
	if req.TopP > 0 {
		config.TopP = genai.Ptr(req.TopP)
	}
	if req.TopK > 0 {
		config.TopK = genai.Ptr(req.TopK)
	}
	if req.Shape == ShapeAnalysis {
		config.ResponseSchema = analysisSchema()
	}

	response, err := c.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return "", errors.Wrap(err, "generate content")
	}
	return response.Text(), nil
}

// Speak synthesizes text with the given prebuilt voice and returns raw
// 24 kHz 16-bit mono PCM.
func (c *GeminiClient) Speak(ctx context.Context, text, voiceName string) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voiceName},
			},
		},
	}
	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}

	response, err := c.client.Models.GenerateContent(ctx, speechModel, contents, config)
	if err != nil {
		return nil, errors.Wrap(err, "generate speech")
	}
	for _, candidate := range response.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, errors.New("no audio data in response")
}

// analysisSchema is the formal response constraint for coach reports. The
// validator still checks every field, the schema just nudges the model.
func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "A one-sentence summary of the conversation's outcome from the user's perspective.",
			},
			"infoElicited": {
				Type:        genai.TypeBoolean,
				Description: "A boolean indicating if the target secret information was successfully revealed.",
			},
			"successfulTechniques": {
				Type:        genai.TypeArray,
				Description: "An array of specific techniques employed successfully. If none, this must be an empty array.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"technique": {Type: genai.TypeString, Description: "The name of the elicitation or anti-elicitation technique used."},
						"example":   {Type: genai.TypeString, Description: "A direct quote from the conversation that exemplifies this technique."},
						"analysis":  {Type: genai.TypeString, Description: "A brief analysis of why this technique was effective against the specific persona or situation."},
					},
					Required: []string{"technique", "example", "analysis"},
				},
			},
			"missedOpportunities": {
				Type:        genai.TypeArray,
				Description: "An array of specific moments where an opportunity was missed. If none, this must be an empty array.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"technique":  {Type: genai.TypeString, Description: "The name of the technique that could have been used."},
						"suggestion": {Type: genai.TypeString, Description: "A description of the moment in the conversation where the technique could have been applied."},
						"example":    {Type: genai.TypeString, Description: "A concrete example of what could have been said to apply the technique."},
					},
					Required: []string{"technique", "suggestion", "example"},
				},
			},
			"overallFeedback": {
				Type:        genai.TypeString,
				Description: "A final, concise paragraph of constructive feedback.",
			},
			"score": {
				Type:        genai.TypeInteger,
				Description: "The integer score computed from the rubric in the instruction.",
			},
		},
		Required: []string{"summary", "infoElicited", "successfulTechniques", "missedOpportunities", "overallFeedback", "score"},
	}
}
