package session_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/jkantola/smalltalk/internal/models"
	"github.com/jkantola/smalltalk/internal/random"
	"github.com/jkantola/smalltalk/internal/session"
	"github.com/jkantola/smalltalk/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

// fakeAdvisor scripts persona replies and records analysis inputs. The
// blockTurn channel, when set, holds NextTurn open so tests can exercise the
// single-flight guard deterministically.
type fakeAdvisor struct {
	mu            sync.Mutex
	turnCalls     int
	analyzeCalls  int
	analyzedLog   []models.Turn
	reply         models.TurnDecision
	analysis      models.AnalysisResult
	panicOnTurn   bool
	blockTurn     chan struct{}
	turnStarted   chan struct{}
}

func (f *fakeAdvisor) NextTurn(_ context.Context, _ models.Persona, _ string, _ []models.Turn, _ models.Mode) models.TurnDecision {
	f.mu.Lock()
	f.turnCalls++
	f.mu.Unlock()
	if f.turnStarted != nil {
		f.turnStarted <- struct{}{}
	}
	if f.blockTurn != nil {
		<-f.blockTurn
	}
	if f.panicOnTurn {
		panic("gateway wiring broke")
	}
	return f.reply
}

func (f *fakeAdvisor) Analyze(_ context.Context, _ models.Persona, _ string, log []models.Turn, _ models.Mode) models.AnalysisResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyzeCalls++
	f.analyzedLog = log
	return f.analysis
}

func testPersonas() []models.Persona {
	return []models.Persona{
		{
			ID:                   "frank-engineer-1",
			Name:                 "Frank",
			Role:                 "Disgruntled Engineer",
			TargetInfo:           []string{"the project is six months behind"},
			ConversationStarters: []string{"Another day, another fire drill."},
		},
		{
			ID:                   "brenda-manager-2",
			Name:                 "Brenda",
			Role:                 "Ambitious Mid-Level Manager",
			TargetInfo:           []string{"the NexusFlow launch date"},
			ConversationStarters: []string{"Busy quarter, isn't it?"},
		},
	}
}

func newTestMachine(advisor session.Advisor) *session.Machine {
	return session.NewMachine(advisor, random.NewSeededSource(7), testhelpers.NewLogger(io.Discard))
}

func TestStartSessionSeedsSingleOpener(t *testing.T) {
	t.Parallel()
	machine := newTestMachine(&fakeAdvisor{})

	require.NoError(t, machine.StartSession(testPersonas(), nil, models.ModeElicit))

	snap := machine.Snapshot()
	require.Equal(t, session.StateConversation, snap.State)
	require.Len(t, snap.Log, 1)
	require.Equal(t, models.SpeakerPersona, snap.Log[0].Speaker)
	require.Contains(t, snap.Persona.ConversationStarters, snap.Log[0].Text)
	require.Contains(t, snap.Persona.TargetInfo, snap.Secret)
}

func TestStartSessionRequiresPlayablePersonas(t *testing.T) {
	t.Parallel()
	machine := newTestMachine(&fakeAdvisor{})

	err := machine.StartSession(nil, nil, models.ModeElicit)
	require.ErrorIs(t, err, session.ErrNoPersonas)
	require.Equal(t, session.StateMenu, machine.Snapshot().State)

	// A persona without starters or targets cannot seed a session either.
	unplayable := []models.Persona{{ID: "x", Name: "X", Role: "r"}}
	err = machine.StartSession(unplayable, nil, models.ModeElicit)
	require.ErrorIs(t, err, session.ErrNoPersonas)
}

func TestStartSessionResistModeUsesTargetPool(t *testing.T) {
	t.Parallel()
	machine := newTestMachine(&fakeAdvisor{})
	targets := []string{"your home address", "your mother's maiden name"}

	require.NoError(t, machine.StartSession(testPersonas(), targets, models.ModeResist))
	require.Contains(t, targets, machine.Snapshot().Secret)

	machine.ReturnToMenu()
	require.ErrorIs(t, machine.StartSession(testPersonas(), nil, models.ModeResist), session.ErrNoTargets)
}

func TestSubmitUserTurnAppendsBothTurns(t *testing.T) {
	t.Parallel()
	advisor := &fakeAdvisor{
		reply: models.TurnDecision{Reasoning: "Probing back.", Response: "Why do you ask?"},
	}
	machine := newTestMachine(advisor)
	require.NoError(t, machine.StartSession(testPersonas(), nil, models.ModeElicit))

	require.NoError(t, machine.SubmitUserTurn(context.Background(), "How's the big project going?"))

	snap := machine.Snapshot()
	require.Len(t, snap.Log, 3)
	require.Equal(t, models.SpeakerUser, snap.Log[1].Speaker)
	require.Equal(t, "How's the big project going?", snap.Log[1].Text)
	require.Equal(t, models.SpeakerPersona, snap.Log[2].Speaker)
	require.Equal(t, "Why do you ask?", snap.Log[2].Text)
	require.Equal(t, "Probing back.", snap.Log[2].Reasoning)
	require.False(t, snap.InFlight)
}

func TestSubmitUserTurnSingleFlight(t *testing.T) {
	t.Parallel()
	advisor := &fakeAdvisor{
		reply:       models.TurnDecision{Response: "One at a time."},
		blockTurn:   make(chan struct{}),
		turnStarted: make(chan struct{}, 1),
	}
	machine := newTestMachine(advisor)
	require.NoError(t, machine.StartSession(testPersonas(), nil, models.ModeElicit))

	done := make(chan error, 1)
	go func() {
		done <- machine.SubmitUserTurn(context.Background(), "first")
	}()
	<-advisor.turnStarted

	// The second submission is dropped, not queued.
	require.ErrorIs(t, machine.SubmitUserTurn(context.Background(), "second"), session.ErrTurnInFlight)
	require.True(t, machine.Snapshot().InFlight)

	close(advisor.blockTurn)
	require.NoError(t, <-done)

	snap := machine.Snapshot()
	require.Len(t, snap.Log, 3)
	require.Equal(t, 1, advisor.turnCalls)
	for _, turn := range snap.Log {
		require.NotEqual(t, "second", turn.Text)
	}
}

func TestSubmitUserTurnPanicBecomesSystemTurn(t *testing.T) {
	t.Parallel()
	advisor := &fakeAdvisor{panicOnTurn: true}
	machine := newTestMachine(advisor)
	require.NoError(t, machine.StartSession(testPersonas(), nil, models.ModeElicit))

	require.NoError(t, machine.SubmitUserTurn(context.Background(), "hello"))

	snap := machine.Snapshot()
	require.Equal(t, session.StateConversation, snap.State, "session continues after the error")
	require.Len(t, snap.Log, 3)
	require.Equal(t, models.SpeakerSystem, snap.Log[2].Speaker)
	require.Contains(t, snap.Log[2].Text, "An error occurred")
	require.False(t, snap.InFlight)
}

func TestEndSessionDiscardsSeedOnlySession(t *testing.T) {
	t.Parallel()
	advisor := &fakeAdvisor{}
	machine := newTestMachine(advisor)
	require.NoError(t, machine.StartSession(testPersonas(), nil, models.ModeElicit))

	require.NoError(t, machine.EndSession(context.Background()))

	snap := machine.Snapshot()
	require.Equal(t, session.StateMenu, snap.State)
	require.Nil(t, snap.Analysis)
	require.Empty(t, snap.Log)
	require.Zero(t, advisor.analyzeCalls, "no analysis for a session with no real exchange")
}

func TestEndSessionAnalyzesFullTranscript(t *testing.T) {
	t.Parallel()
	advisor := &fakeAdvisor{
		reply:    models.TurnDecision{Response: "Well, since you ask..."},
		analysis: models.AnalysisResult{Summary: "Secret revealed.", InfoElicited: true, Score: 130},
	}
	machine := newTestMachine(advisor)
	require.NoError(t, machine.StartSession(testPersonas(), nil, models.ModeElicit))
	require.NoError(t, machine.SubmitUserTurn(context.Background(), "Tell me everything."))

	require.NoError(t, machine.EndSession(context.Background()))

	snap := machine.Snapshot()
	require.Equal(t, session.StateAnalysis, snap.State)
	require.NotNil(t, snap.Analysis)
	require.Equal(t, 130, snap.Analysis.Score)
	require.Len(t, advisor.analyzedLog, 3, "opener, user turn, persona reply")
}

func TestReturnToMenuClearsEverything(t *testing.T) {
	t.Parallel()
	advisor := &fakeAdvisor{
		reply:    models.TurnDecision{Response: "Hm."},
		analysis: models.AnalysisResult{Summary: "s"},
	}
	machine := newTestMachine(advisor)
	require.NoError(t, machine.StartSession(testPersonas(), nil, models.ModeElicit))
	require.NoError(t, machine.SubmitUserTurn(context.Background(), "hi"))
	require.NoError(t, machine.EndSession(context.Background()))

	machine.ReturnToMenu()

	snap := machine.Snapshot()
	require.Equal(t, session.StateMenu, snap.State)
	require.Empty(t, snap.Log)
	require.Empty(t, snap.Secret)
	require.Nil(t, snap.Analysis)
	require.Empty(t, snap.Persona.ID)

	// The machine is cyclic, a fresh session starts cleanly.
	require.NoError(t, machine.StartSession(testPersonas(), nil, models.ModeElicit))
	require.Len(t, machine.Snapshot().Log, 1)
}

func TestVisitSideStates(t *testing.T) {
	t.Parallel()
	machine := newTestMachine(&fakeAdvisor{})

	require.NoError(t, machine.Visit(session.StateLeaderboard))
	require.Equal(t, session.StateLeaderboard, machine.Snapshot().State)
	require.NoError(t, machine.Visit(session.StateMenu))

	require.NoError(t, machine.Visit(session.StateManagingPersonas))
	require.ErrorIs(t, machine.Visit(session.StateLeaderboard), session.ErrWrongState)
	require.NoError(t, machine.Visit(session.StateMenu))

	// Conversation is reachable only through StartSession.
	require.ErrorIs(t, machine.Visit(session.StateConversation), session.ErrWrongState)
}

func TestManagerReturnsStableMachinePerUser(t *testing.T) {
	t.Parallel()
	manager := session.NewManager(&fakeAdvisor{}, random.NewSeededSource(1), testhelpers.NewLogger(io.Discard))

	first := manager.ForUser(1)
	second := manager.ForUser(2)
	require.NotSame(t, first, second)
	require.Same(t, first, manager.ForUser(1))

	require.NoError(t, first.StartSession(testPersonas(), nil, models.ModeElicit))
	require.Equal(t, session.StateMenu, second.Snapshot().State, "sessions do not leak across users")
}
