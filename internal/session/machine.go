// Package session drives the turn-based training session lifecycle. One
// Machine exists per user; the Manager hands them out. All session state is
// in-memory and transient, only analysis results submitted to the leaderboard
// outlive the machine.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/models"
	"github.com/jkantola/smalltalk/internal/random"
)

// State names the machine's current screen. The machine is cyclic, every
// session eventually returns to StateMenu.
type State string

const (
	StateMenu             State = "menu"
	StateConversation     State = "inConversation"
	StateAnalysis         State = "sessionAnalysis"
	StateManagingPersonas State = "managingPersonas"
	StateLeaderboard      State = "leaderboard"
)

var (
	// ErrNoPersonas signals an empty persona registry at session start. The
	// caller redirects to persona management instead of failing hard.
	ErrNoPersonas = errors.NewSentinel("no playable personas available")
	// ErrNoTargets signals an empty attack-target pool for a resist session.
	ErrNoTargets = errors.NewSentinel("no attack targets available")
	// ErrTurnInFlight reports a submission dropped by the single-flight
	// guard. Dropped, not queued.
	ErrTurnInFlight = errors.NewSentinel("a turn is already in flight")
	// ErrWrongState reports an operation invoked outside its legal state.
	ErrWrongState = errors.NewSentinel("operation not allowed in current state")
)

// Advisor produces persona turns and post-session analyses. Both calls always
// return a structurally valid result, exhausted retries surface as fallbacks.
type Advisor interface {
	NextTurn(ctx context.Context, persona models.Persona, secret string, log []models.Turn, mode models.Mode) models.TurnDecision
	Analyze(ctx context.Context, persona models.Persona, secret string, log []models.Turn, mode models.Mode) models.AnalysisResult
}

// Machine holds one user's session lifecycle. All methods are safe for
// concurrent use; gateway calls run outside the lock so a slow model response
// never blocks snapshot reads.
type Machine struct {
	advisor Advisor
	source  random.Source
	logger  *slog.Logger

	mu       sync.Mutex
	state    State
	persona  models.Persona
	secret   string
	mode     models.Mode
	log      []models.Turn
	analysis *models.AnalysisResult
	inFlight bool
}

func NewMachine(advisor Advisor, source random.Source, logger *slog.Logger) *Machine {
	return &Machine{
		advisor: advisor,
		source:  source,
		logger:  logger.With("source", "session.Machine"),
		state:   StateMenu,
	}
}

// Snapshot is a point-in-time copy of the machine for rendering. The log
// slice is copied so templates never observe a concurrent append.
type Snapshot struct {
	State    State
	Persona  models.Persona
	Secret   string
	Mode     models.Mode
	Log      []models.Turn
	Analysis *models.AnalysisResult
	InFlight bool
}

func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	logCopy := make([]models.Turn, len(m.log))
	copy(logCopy, m.log)
	return Snapshot{
		State:    m.state,
		Persona:  m.persona,
		Secret:   m.secret,
		Mode:     m.mode,
		Log:      logCopy,
		Analysis: m.analysis,
		InFlight: m.inFlight,
	}
}

// StartSession picks a random persona, secret, and opening line, seeds the
// log with the opener, and enters the conversation. In resist mode the secret
// comes from the external attack-target pool instead of the persona's own
// target list.
func (m *Machine) StartSession(personas []models.Persona, targets []string, mode models.Mode) error {
	playable := make([]models.Persona, 0, len(personas))
	for _, persona := range personas {
		if persona.Playable() {
			playable = append(playable, persona)
		}
	}
	if len(playable) == 0 {
		return ErrNoPersonas
	}
	if mode == models.ModeResist && len(targets) == 0 {
		return ErrNoTargets
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateMenu && m.state != StateManagingPersonas {
		return errors.Wrap(ErrWrongState, "start session", slog.String("state", string(m.state)))
	}

	persona := random.Pick(m.source, playable)
	secret := random.Pick(m.source, persona.TargetInfo)
	if mode == models.ModeResist {
		secret = random.Pick(m.source, targets)
	}
	opener := random.Pick(m.source, persona.ConversationStarters)

	m.persona = persona
	m.secret = secret
	m.mode = mode
	m.log = []models.Turn{{Speaker: models.SpeakerPersona, Text: opener}}
	m.analysis = nil
	m.inFlight = false
	m.state = StateConversation
	return nil
}

// SubmitUserTurn appends the user's turn and obtains the persona's reply.
// While a turn is in flight further submissions are dropped with
// ErrTurnInFlight. An unexpected failure mid-turn is recorded as a System
// entry so the log never ends on a dangling user turn without a reply.
func (m *Machine) SubmitUserTurn(ctx context.Context, text string) error {
	m.mu.Lock()
	if m.state != StateConversation {
		m.mu.Unlock()
		return errors.Wrap(ErrWrongState, "submit turn", slog.String("state", string(m.state)))
	}
	if m.inFlight {
		m.mu.Unlock()
		return ErrTurnInFlight
	}
	m.inFlight = true
	m.log = append(m.log, models.Turn{Speaker: models.SpeakerUser, Text: text})
	persona, secret, mode := m.persona, m.secret, m.mode
	logCopy := make([]models.Turn, len(m.log))
	copy(logCopy, m.log)
	m.mu.Unlock()

	reply := m.safeNextTurn(ctx, persona, secret, logCopy, mode)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight = false
	// EndSession or ReturnToMenu may have raced the gateway call. The late
	// reply belongs to a session that no longer exists, drop it.
	if m.state != StateConversation {
		return nil
	}
	m.log = append(m.log, reply)
	return nil
}

// safeNextTurn converts a panic anywhere on the turn path into an in-band
// System entry.
func (m *Machine) safeNextTurn(
	ctx context.Context,
	persona models.Persona,
	secret string,
	log []models.Turn,
	mode models.Mode,
) (turn models.Turn) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "turn submission panicked",
				slog.String("panic", fmt.Sprint(r)))
			turn = models.Turn{
				Speaker: models.SpeakerSystem,
				Text:    fmt.Sprintf("An error occurred: %v", r),
			}
		}
	}()

	decision := m.advisor.NextTurn(ctx, persona, secret, log, mode)
	return models.Turn{
		Speaker:   models.SpeakerPersona,
		Text:      decision.Response,
		Reasoning: decision.Reasoning,
	}
}

// EndSession closes the conversation. A session where nothing beyond the
// seeded opener happened is discarded silently; otherwise the full transcript
// goes through the analysis path and the result is stored for display.
func (m *Machine) EndSession(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateConversation {
		m.mu.Unlock()
		return errors.Wrap(ErrWrongState, "end session", slog.String("state", string(m.state)))
	}
	if len(m.log) <= 1 {
		m.resetLocked()
		m.mu.Unlock()
		return nil
	}
	persona, secret, mode := m.persona, m.secret, m.mode
	logCopy := make([]models.Turn, len(m.log))
	copy(logCopy, m.log)
	m.mu.Unlock()

	analysis := m.advisor.Analyze(ctx, persona, secret, logCopy, mode)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateConversation {
		return nil
	}
	m.analysis = &analysis
	m.state = StateAnalysis
	return nil
}

// ReturnToMenu clears all session state. Legal from any state.
func (m *Machine) ReturnToMenu() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

func (m *Machine) resetLocked() {
	m.persona = models.Persona{}
	m.secret = ""
	m.mode = ""
	m.log = nil
	m.analysis = nil
	m.inFlight = false
	m.state = StateMenu
}

// Visit moves between the menu and its side screens. Conversation and
// analysis states are reachable only through StartSession and EndSession.
func (m *Machine) Visit(target State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch target {
	case StateMenu:
		if m.state == StateManagingPersonas || m.state == StateLeaderboard || m.state == StateAnalysis {
			m.resetLocked()
			return nil
		}
	case StateManagingPersonas, StateLeaderboard:
		if m.state == StateMenu {
			m.state = target
			return nil
		}
	}
	return errors.Wrap(ErrWrongState, "visit",
		slog.String("from", string(m.state)), slog.String("to", string(target)))
}
