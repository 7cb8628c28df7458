// ABOUTME: Conversational session state with disk persistence
// ABOUTME: Keeps a stable session id, the transcript, and the open flag
package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transcript entry roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Entry is one turn of the conversation.
type Entry struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the chat client's durable state. The ID survives restarts so
// the answer endpoint can correlate a visitor's questions across runs.
type Session struct {
	ID      string  `json:"id"`
	Open    bool    `json:"open"`
	Entries []Entry `json:"entries"`
}

// New creates a fresh session with a random id and a closed widget.
func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// Append records a turn in the transcript.
func (s *Session) Append(role, content string) {
	s.Entries = append(s.Entries, Entry{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
}

// Clear drops the transcript but keeps the session id and open state.
func (s *Session) Clear() {
	s.Entries = nil
}

// LastAssistant returns the most recent assistant turn, or "" when the
// assistant has not spoken yet.
func (s *Session) LastAssistant() string {
	for i := len(s.Entries) - 1; i >= 0; i-- {
		if s.Entries[i].Role == RoleAssistant {
			return s.Entries[i].Content
		}
	}
	return ""
}

// Manager loads and saves sessions under a data directory.
type Manager struct {
	path string
}

// NewManager creates a Manager storing state at dir/session.json.
func NewManager(dir string) *Manager {
	return &Manager{path: filepath.Join(dir, "session.json")}
}

// Path returns the backing file's location.
func (m *Manager) Path() string {
	return m.path
}

// Load restores the saved session. Loading is best effort: a missing,
// unreadable, or corrupt file yields a fresh session with a warning, never
// an error, so a broken state file cannot lock the user out of chat.
func (m *Manager) Load() *Session {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read session state at %s: %v", m.path, err)
		}
		return New()
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("Warning: session state at %s is corrupt, starting fresh: %v", m.path, err)
		return New()
	}
	if strings.TrimSpace(s.ID) == "" {
		s.ID = uuid.NewString()
	}
	return &s
}

// Save writes the session to disk. Unlike Load, a save failure is reported:
// silently losing the transcript would be worse than surfacing the error.
func (m *Manager) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("writing session state to %s: %w", m.path, err)
	}
	return nil
}

// Reset deletes the saved state entirely. A missing file is not an error.
func (m *Manager) Reset() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session state at %s: %w", m.path, err)
	}
	return nil
}
