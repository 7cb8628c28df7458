// ABOUTME: Tests for the chat widget model
// ABOUTME: Drives Update directly with key and size messages
package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chairaharder/askchaira/internal/client"
	"github.com/chairaharder/askchaira/internal/session"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	sess := session.New()
	sess.Open = true
	mgr := session.NewManager(t.TempDir())
	sub := client.NewSubmitter(client.NewClient("http://localhost:0"), nil, "visitor")

	m := New(sess, mgr, sub)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestToggleClosesAndClearsInput(t *testing.T) {
	m := newTestModel(t)
	m.sess.Append(session.RoleUser, "hi")
	m.input.SetValue("draft text")

	updated, _ := m.Update(keyMsg("tab"))
	m = updated.(Model)

	if m.sess.Open {
		t.Error("tab should close the widget")
	}
	if m.input.Value() != "" {
		t.Error("closing should clear the input draft")
	}
	if len(m.sess.Entries) != 1 {
		t.Error("closing must preserve the transcript")
	}

	updated, _ = m.Update(keyMsg("tab"))
	m = updated.(Model)
	if !m.sess.Open {
		t.Error("tab should reopen the widget")
	}
}

func TestClearTranscriptKeepsSessionID(t *testing.T) {
	m := newTestModel(t)
	m.sess.Append(session.RoleUser, "hi")
	m.sess.Append(session.RoleAssistant, "hello")
	id := m.sess.ID

	updated, _ := m.Update(keyMsg("ctrl+l"))
	m = updated.(Model)

	if len(m.sess.Entries) != 0 {
		t.Error("ctrl+l should clear the transcript")
	}
	if m.sess.ID != id {
		t.Error("clearing the transcript must not rotate the session id")
	}
}

func TestEnterWithEmptyInputIsNoop(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)

	if cmd != nil {
		t.Error("empty submit should not start a request")
	}
	if m.loading {
		t.Error("empty submit should not set loading")
	}
	if len(m.sess.Entries) != 0 {
		t.Error("empty submit should not record a turn")
	}
}

func TestSubmitRecordsUserTurnImmediately(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("What does Chaira do?")

	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)

	if cmd == nil {
		t.Fatal("submit should dispatch a request command")
	}
	if !m.loading {
		t.Error("submit should set the loading flag")
	}
	// The question shows in the transcript while the answer is pending,
	// before the command ever runs.
	if len(m.sess.Entries) != 1 {
		t.Fatalf("entries = %d, want the user turn recorded up front", len(m.sess.Entries))
	}
	if m.sess.Entries[0].Role != session.RoleUser || m.sess.Entries[0].Content != "What does Chaira do?" {
		t.Errorf("user turn = %+v", m.sess.Entries[0])
	}
}

func TestClearWhileRequestInFlight(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("Hi")

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)

	// Clearing mid-flight runs on the update loop; the pending command
	// never touches the session, so this cannot race the append.
	updated, _ = m.Update(keyMsg("ctrl+l"))
	m = updated.(Model)
	if len(m.sess.Entries) != 0 {
		t.Fatalf("entries = %d after clear", len(m.sess.Entries))
	}

	updated, _ = m.Update(answerMsg{content: "Hello"})
	m = updated.(Model)

	if m.loading {
		t.Error("answer arrival should clear the loading flag")
	}
	if len(m.sess.Entries) != 1 {
		t.Fatalf("entries = %d, want just the late assistant turn", len(m.sess.Entries))
	}
	if m.sess.Entries[0].Role != session.RoleAssistant || m.sess.Entries[0].Content != "Hello" {
		t.Errorf("assistant turn = %+v", m.sess.Entries[0])
	}
}

func TestAnswerAppendsAssistantTurn(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("Hi")

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)

	updated, _ = m.Update(answerMsg{content: "Hello there"})
	m = updated.(Model)

	if len(m.sess.Entries) != 2 {
		t.Fatalf("entries = %d, want user + assistant", len(m.sess.Entries))
	}
	if m.sess.Entries[1].Role != session.RoleAssistant || m.sess.Entries[1].Content != "Hello there" {
		t.Errorf("assistant turn = %+v", m.sess.Entries[1])
	}
}

func TestAnswerAdvancesSuggestionWindow(t *testing.T) {
	m := newTestModel(t)

	first, _ := m.suggestion(0)

	updated, _ := m.Update(answerMsg{content: "done"})
	m = updated.(Model)

	if m.loading {
		t.Error("answer arrival should clear the loading flag")
	}
	next, _ := m.suggestion(0)
	if next == first {
		t.Error("suggestion window should advance after an assistant response")
	}
}

func TestSuggestionWindowWraps(t *testing.T) {
	m := newTestModel(t)

	seen := map[string]bool{}
	for range suggestionPool {
		q, ok := m.suggestion(0)
		if !ok {
			t.Fatal("suggestion window came up empty")
		}
		seen[q] = true
		updated, _ := m.Update(answerMsg{content: "x"})
		m = updated.(Model)
	}

	q, _ := m.suggestion(0)
	if !seen[q] {
		t.Error("suggestion window should wrap back to the pool start")
	}
}

func TestLoadingGatesInput(t *testing.T) {
	m := newTestModel(t)
	m.loading = true

	updated, _ := m.Update(keyMsg("x"))
	m = updated.(Model)

	if m.input.Value() != "" {
		t.Error("typing should be ignored while a request is in flight")
	}

	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)
	if cmd != nil {
		t.Error("enter should be ignored while a request is in flight")
	}
}

func TestTranscriptViewShowsTurns(t *testing.T) {
	m := newTestModel(t)
	m.sess.Append(session.RoleUser, "What does Chaira do?")
	m.sess.Append(session.RoleAssistant, "She builds software.")

	view := m.transcriptView()
	for _, want := range []string{"You", "Chaira", "What does Chaira do?", "She builds software."} {
		if !strings.Contains(view, want) {
			t.Errorf("transcript view missing %q", want)
		}
	}
}
