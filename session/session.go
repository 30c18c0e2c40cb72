// Package session stores chat sessions and their messages.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/samber/mo"
)

// Role of a message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Session is a chat conversation.
type Session struct {
	ID        int       `json:"id"`
	SessionID string    `json:"sessionId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is one entry of a session.
type Message struct {
	ID        int       `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists sessions and messages. Implementations are safe for concurrent use.
type Store interface {
	// CreateSession registers sessionID. An existing session is returned unchanged.
	CreateSession(ctx context.Context, sessionID, title string) (Session, error)
	// AppendMessage adds a message at the end of the session's history.
	AppendMessage(ctx context.Context, sessionID string, role Role, content string) (Message, error)
	// Messages returns the history in insertion order, empty for unknown sessions.
	Messages(ctx context.Context, sessionID string) ([]Message, error)
	// Sessions returns every session, newest first.
	Sessions(ctx context.Context) ([]Session, error)
	Session(ctx context.Context, sessionID string) (mo.Option[Session], error)
}

// NewID returns a fresh session identifier: the base36 millisecond timestamp
// followed by 8 random hex characters.
func NewID() string {
	var suffix [4]byte
	_, _ = rand.Read(suffix[:])
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + hex.EncodeToString(suffix[:])
}
