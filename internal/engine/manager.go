package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"neuroscreen/internal/models"
)

// Session bundles the sequencer and session controller for one active
// assessment. Mutating operations must be serialized by the caller; the
// embedded mutex is what the HTTP layer locks around each event.
type Session struct {
	sync.Mutex
	Sequencer  *Sequencer
	Controller *SessionController
}

// Manager tracks active sessions. Sessions share nothing with each other;
// the manager only guards its own registry map.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	batteries *models.BatterySet
	clock     Clock
}

func NewManager(batteries *models.BatterySet, clock Clock) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		batteries: batteries,
		clock:     clock,
	}
}

// Start creates a new session for a domain. Adaptive sessions draw items
// from a fresh generator; fixed sessions walk the configured battery.
func (m *Manager) Start(domain models.Domain, adaptive bool) (*Session, error) {
	if !domain.Valid() {
		return nil, fmt.Errorf("unknown domain %q", domain)
	}

	var sequencer *Sequencer
	if adaptive {
		generator := NewQuestionGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
		seq, err := NewAdaptiveSequencer(domain, generator, m.clock)
		if err != nil {
			return nil, err
		}
		sequencer = seq
	} else {
		battery, ok := m.batteries.Batteries[domain]
		if !ok {
			return nil, fmt.Errorf("no battery configured for domain %q", domain)
		}
		sequencer = NewFixedSequencer(battery, m.clock)
	}

	session := &Session{
		Sequencer:  sequencer,
		Controller: NewSessionController(sequencer, m.clock),
	}

	m.mu.Lock()
	m.sessions[sequencer.State().SessionID] = session
	m.mu.Unlock()
	return session, nil
}

// Get looks up an active session.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

// End discards a session's state. Called after the result aggregator has
// emitted the final result.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
