// Package ai wraps the language-model gateway: request construction, the
// retry policy around it, and strict decoding of the structured JSON the
// model must return.
package ai

import (
	"context"

	"github.com/jkantola/smalltalk/internal/prompt"
)

// ResponseShape selects the response contract the gateway enforces.
type ResponseShape int

const (
	// ShapeTurnDecision expects {"reasoning": string, "response": string}.
	ShapeTurnDecision ResponseShape = iota
	// ShapeAnalysis expects the full coach report and attaches a formal
	// response schema to the request.
	ShapeAnalysis
)

// CompletionRequest carries one prompt to the gateway. Zero-valued sampling
// parameters are left to the model's defaults.
type CompletionRequest struct {
	Model             string
	SystemInstruction string
	History           []prompt.Message
	Shape             ResponseShape
	Temperature       float32
	TopP              float32
	TopK              float32
}

// Completer is the gateway boundary for text completions. Production uses the
// Gemini-backed client; tests substitute scripted doubles.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Synthesizer is the gateway boundary for speech synthesis. Returns raw
// 24 kHz 16-bit mono PCM.
type Synthesizer interface {
	Speak(ctx context.Context, text, voiceName string) ([]byte, error)
}
