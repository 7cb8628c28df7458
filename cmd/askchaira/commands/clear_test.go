// ABOUTME: Tests for clear command group
// ABOUTME: Verifies store and chat clearing against temporary state

package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chairaharder/askchaira/internal/session"
	"github.com/chairaharder/askchaira/internal/storage/sqlite"
)

func TestNewClearCmd(t *testing.T) {
	cmd := NewClearCmd()

	if cmd.Use != "clear" {
		t.Errorf("Use = %q, want %q", cmd.Use, "clear")
	}

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"store", "chat"} {
		if !names[want] {
			t.Errorf("subcommand %q not registered", want)
		}
	}
}

func TestClearStoreCmd(t *testing.T) {
	t.Setenv("ASKCHAIRA_DB", filepath.Join(t.TempDir(), "test.db"))

	cmd := NewClearCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"store"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(output.String(), "Removed 0 chunks") {
		t.Errorf("output = %q", output.String())
	}
}

func TestClearStoreCmd_UnknownSource(t *testing.T) {
	t.Setenv("ASKCHAIRA_DB", filepath.Join(t.TempDir(), "test.db"))

	cmd := NewClearCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"store", "--source", "blog"})

	if err := cmd.Execute(); err == nil {
		t.Error("unknown source should be an error")
	}
}

func TestClearChatCmd_KeepsSessionID(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	manager := session.NewManager(sqlite.DefaultDataDir())
	sess := manager.Load()
	sess.Append(session.RoleUser, "hi")
	sess.Append(session.RoleAssistant, "hello")
	if err := manager.Save(sess); err != nil {
		t.Fatal(err)
	}
	id := sess.ID

	cmd := NewClearCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"chat"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	reloaded := manager.Load()
	if len(reloaded.Entries) != 0 {
		t.Errorf("transcript entries = %d after clear", len(reloaded.Entries))
	}
	if reloaded.ID != id {
		t.Error("clearing the transcript must not rotate the session id")
	}
}
