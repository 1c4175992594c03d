package main

import (
	"net/http"
	"strings"

	"github.com/jkantola/smalltalk/internal/audio"
)

// defaultVoice is used when the active persona has no voice tag.
const defaultVoice = "Kore"

// speechPost synthesizes the given text with the active persona's voice and
// responds with a playable WAV file.
func (app *application) speechPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	text := strings.TrimSpace(r.PostForm.Get("text"))
	if text == "" {
		app.clientError(w, r, http.StatusUnprocessableEntity)
		return
	}

	voice := app.machine(r).Snapshot().Persona.VoiceName
	if voice == "" {
		voice = defaultVoice
	}

	pcm, err := app.synthesizer.Speak(r.Context(), text, voice)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	_, _ = w.Write(audio.WAV(pcm))
}
