// Package history keeps per-conversation chat logs in memory. Nothing is
// persisted: a restart starts every conversation empty.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"quantum-coin/internal/responder"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Content is either plain text or text with attached charts.
type Content struct {
	Text   string                `json:"text"`
	Charts []responder.ChartData `json:"charts,omitempty"`
}

type Message struct {
	ID        uuid.UUID `json:"id"`
	Role      Role      `json:"role"`
	Content   Content   `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string][]Message
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string][]Message), now: time.Now}
}

func (m *Manager) Reset(conv string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, conv)
}

func (m *Manager) AppendUser(conv, text string) Message {
	return m.append(conv, RoleUser, Content{Text: text})
}

func (m *Manager) AppendAssistant(conv string, content Content) Message {
	return m.append(conv, RoleAssistant, content)
}

func (m *Manager) append(conv string, role Role, content Content) Message {
	msg := Message{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		Timestamp: m.now(),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[conv] = append(m.sessions[conv], msg)
	return msg
}

// Get returns a copy of the conversation in insertion order.
func (m *Manager) Get(conv string) []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	es := m.sessions[conv]
	out := make([]Message, len(es))
	copy(out, es)
	return out
}

func (m *Manager) Len(conv string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions[conv])
}
