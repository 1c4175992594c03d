package models

// Speaker tags who authored a conversation turn.
type Speaker string

const (
	SpeakerUser    Speaker = "User"
	SpeakerPersona Speaker = "Persona"
	// SpeakerSystem carries in-band error notices so a failed turn never
	// leaves the log in a partial state.
	SpeakerSystem Speaker = "System"
)

// Turn is one atomic contribution to a conversation log.
//
// Reasoning is present only on persona turns and carries the model's
// self-reported rationale. It is advisory, never validated against behavior.
type Turn struct {
	Speaker   Speaker `json:"speaker"`
	Text      string  `json:"text"`
	Reasoning string  `json:"reasoning,omitempty"`
}

// TurnDecision is the structured decision returned by the model for one turn.
type TurnDecision struct {
	Reasoning string `json:"reasoning"`
	Response  string `json:"response"`
}
