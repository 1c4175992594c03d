package models

// Mode selects which doctrine drives the AI persona for a session.
//
// In elicit mode the human practices extracting the secret and the persona
// defends it. In resist mode the roles flip: the persona works the human for
// the secret and the human practices deflecting.
type Mode string

const (
	ModeElicit Mode = "elicit"
	ModeResist Mode = "resist"
)

// Persona is a scripted character profile driving the AI's role-play behavior.
//
// The descriptive traits are free text used only as prompt material, never
// parsed. TargetInfo and ConversationStarters must be non-empty before the
// persona can seed a session.
type Persona struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	VoiceName string `json:"voiceName,omitempty"`

	Psychology string `json:"psychology"`
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`

	// TargetInfo are the candidate secret facts a session can pick from.
	TargetInfo []string `json:"targetInfo"`
	// ConversationStarters are the candidate opening lines.
	ConversationStarters []string `json:"conversationStarters"`
}

// Playable reports whether the persona can seed a new session.
func (p Persona) Playable() bool {
	return len(p.TargetInfo) > 0 && len(p.ConversationStarters) > 0
}
