package session

import (
	"log/slog"
	"sync"

	"github.com/jkantola/smalltalk/internal/random"
)

// Manager hands out one Machine per user. Machines are created lazily and
// live for the process lifetime, session state is deliberately not persisted.
type Manager struct {
	advisor Advisor
	source  random.Source
	logger  *slog.Logger

	mu       sync.Mutex
	machines map[int64]*Machine
}

func NewManager(advisor Advisor, source random.Source, logger *slog.Logger) *Manager {
	return &Manager{
		advisor:  advisor,
		source:   source,
		logger:   logger,
		machines: make(map[int64]*Machine),
	}
}

// ForUser returns the user's machine, creating it on first use.
func (m *Manager) ForUser(userID int64) *Machine {
	m.mu.Lock()
	defer m.mu.Unlock()

	machine, ok := m.machines[userID]
	if !ok {
		machine = NewMachine(m.advisor, m.source, m.logger)
		m.machines[userID] = machine
	}
	return machine
}
