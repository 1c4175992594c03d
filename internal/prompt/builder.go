// Package prompt builds the natural-language instructions and role-tagged
// histories sent to the language model. Everything here is pure: same inputs,
// same prompts.
package prompt

import (
	"fmt"
	"strings"

	"github.com/jkantola/smalltalk/internal/models"
)

// Role tags a history message for the model API.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one role-tagged entry of the conversation history.
type Message struct {
	Role Role
	Text string
}

// Turn maps the session state to the system instruction and history for the
// next persona turn.
//
// The secret appears only inside the instruction block. It is never
// re-injected into the history, so the model cannot be tricked into treating
// it as something it already said.
func Turn(persona models.Persona, secret string, log []models.Turn, mode models.Mode) (string, []Message) {
	history := make([]Message, 0, len(log))
	for _, turn := range log {
		role := RoleModel
		if turn.Speaker == models.SpeakerUser {
			role = RoleUser
		}
		history = append(history, Message{Role: role, Text: turn.Text})
	}

	var instruction string
	if mode == models.ModeResist {
		instruction = fmt.Sprintf(resistDoctrine,
			persona.Name, persona.Role, persona.Psychology, persona.Strengths, persona.Weaknesses,
			secret, persona.Name)
	} else {
		instruction = fmt.Sprintf(elicitDoctrine,
			persona.Name, persona.Role, persona.Psychology, persona.Strengths, persona.Weaknesses,
			secret, persona.Name)
	}
	return instruction, history
}

// Analysis maps the finished session to the coach instruction and the single
// user message carrying the transcript.
func Analysis(persona models.Persona, secret string, log []models.Turn, mode models.Mode) (string, Message) {
	lines := make([]string, 0, len(log))
	for _, turn := range log {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Speaker, turn.Text))
	}
	transcript := Message{
		Role: RoleUser,
		Text: "Here is the conversation transcript:\n\n" + strings.Join(lines, "\n"),
	}

	var instruction string
	if mode == models.ModeResist {
		instruction = fmt.Sprintf(resistCoach,
			persona.Name, persona.Role, persona.Psychology, persona.Strengths, persona.Weaknesses, secret)
	} else {
		instruction = fmt.Sprintf(elicitCoach,
			persona.Name, persona.Role, persona.Psychology, persona.Strengths, persona.Weaknesses, secret)
	}
	return instruction, transcript
}
