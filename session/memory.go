package session

import (
	"cmp"
	"context"
	"sync"
	"time"

	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// Memory keeps everything in process memory.
type Memory struct {
	mu            sync.RWMutex
	sessions      map[string]Session
	messages      map[string][]Message
	nextSessionID int
	nextMessageID int
	now           func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		sessions:      make(map[string]Session),
		messages:      make(map[string][]Message),
		nextSessionID: 1,
		nextMessageID: 1,
		now:           time.Now,
	}
}

func (m *Memory) CreateSession(ctx context.Context, sessionID, title string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[sessionID]; ok {
		return existing, nil
	}

	s := Session{
		ID:        m.nextSessionID,
		SessionID: sessionID,
		Title:     title,
		CreatedAt: m.now(),
	}
	m.nextSessionID++
	m.sessions[sessionID] = s

	return s, nil
}

func (m *Memory) AppendMessage(ctx context.Context, sessionID string, role Role, content string) (Message, error) {
	if err := ctx.Err(); err != nil {
		return Message{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	msg := Message{
		ID:        m.nextMessageID,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: m.now(),
	}
	m.nextMessageID++
	m.messages[sessionID] = append(m.messages[sessionID], msg)

	return msg, nil
}

func (m *Memory) Messages(ctx context.Context, sessionID string) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return append(make([]Message, 0, len(m.messages[sessionID])), m.messages[sessionID]...), nil
}

func (m *Memory) Sessions(ctx context.Context) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	sessions := make([]Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	slices.SortFunc(sessions, newestFirst)
	return sessions, nil
}

func (m *Memory) Session(ctx context.Context, sessionID string) (mo.Option[Session], error) {
	if err := ctx.Err(); err != nil {
		return mo.None[Session](), err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[sessionID]; ok {
		return mo.Some(s), nil
	}
	return mo.None[Session](), nil
}

func newestFirst(a, b Session) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

type snapshot struct {
	Sessions      []Session            `json:"sessions"`
	Messages      map[string][]Message `json:"messages"`
	NextSessionID int                  `json:"next_session_id"`
	NextMessageID int                  `json:"next_message_id"`
}

func (m *Memory) snapshot() *snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := &snapshot{
		Sessions:      make([]Session, 0, len(m.sessions)),
		Messages:      make(map[string][]Message, len(m.messages)),
		NextSessionID: m.nextSessionID,
		NextMessageID: m.nextMessageID,
	}
	for _, session := range m.sessions {
		s.Sessions = append(s.Sessions, session)
	}
	for id, messages := range m.messages {
		s.Messages[id] = slices.Clone(messages)
	}
	return s
}

func (m *Memory) restore(s *snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, session := range s.Sessions {
		m.sessions[session.SessionID] = session
	}
	for id, messages := range s.Messages {
		m.messages[id] = messages
	}
	m.nextSessionID = max(s.NextSessionID, 1)
	m.nextMessageID = max(s.NextMessageID, 1)
}
