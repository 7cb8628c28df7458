// ABOUTME: Tests for chat command structure
// ABOUTME: Verifies flags and endpoint requirement

package commands

import (
	"strings"
	"testing"
)

func TestNewChatCmd(t *testing.T) {
	cmd := NewChatCmd()

	if cmd.Use != "chat" {
		t.Errorf("Use = %q, want %q", cmd.Use, "chat")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if flag := cmd.Flags().Lookup("open"); flag == nil {
		t.Error("--open flag not found")
	}
}

func TestChatCmd_RequiresAskURL(t *testing.T) {
	t.Setenv("ASKCHAIRA_ASK_URL", "")

	cmd := NewChatCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("chat without ASKCHAIRA_ASK_URL should fail")
	}
	if !strings.Contains(err.Error(), "ASKCHAIRA_ASK_URL") {
		t.Errorf("error should name the missing variable, got %v", err)
	}
}
