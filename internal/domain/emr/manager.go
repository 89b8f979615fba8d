package emr

import "sync"

// Manager tracks the active editing scope per session. A session edits
// one patient at a time; switching patients closes the old scope so
// late completions from it are dropped rather than bleeding into the
// new one.
type Manager struct {
	mu     sync.Mutex
	scopes map[string]*Scope
}

func NewManager() *Manager {
	return &Manager{scopes: make(map[string]*Scope)}
}

// Scope returns the session's editing scope for patientID, creating a
// fresh one when the session has none or was editing another patient.
func (m *Manager) Scope(sessionID, patientID string) *Scope {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.scopes[sessionID]; ok {
		if s.patientID == patientID {
			return s
		}
		s.close()
	}
	s := newScope(patientID)
	m.scopes[sessionID] = s
	return s
}

// Drop discards the session's scope, if any. Called on logout.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.scopes[sessionID]; ok {
		s.close()
		delete(m.scopes, sessionID)
	}
}
