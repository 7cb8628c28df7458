// ABOUTME: Tests for ingest command structure
// ABOUTME: Verifies flags, validation, and credential requirements

package commands

import (
	"strings"
	"testing"
)

func TestNewIngestCmd(t *testing.T) {
	cmd := NewIngestCmd()

	if cmd.Use != "ingest" {
		t.Errorf("Use = %q, want %q", cmd.Use, "ingest")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Example == "" {
		t.Error("Example should not be empty")
	}
}

func TestIngestCmd_Flags(t *testing.T) {
	cmd := NewIngestCmd()

	if flag := cmd.Flags().Lookup("source"); flag == nil {
		t.Error("--source flag not found")
	} else if flag.Shorthand != "s" {
		t.Errorf("--source shorthand = %q, want s", flag.Shorthand)
	}

	if flag := cmd.Flags().Lookup("target"); flag == nil {
		t.Error("--target flag not found")
	} else if flag.Shorthand != "t" {
		t.Errorf("--target shorthand = %q, want t", flag.Shorthand)
	}
}

func TestIngestCmd_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cmd := NewIngestCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("ingest without OPENAI_API_KEY should fail")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error should name the missing variable, got %v", err)
	}
}

func TestIngestCmd_RejectsUnknownSource(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cmd := NewIngestCmd()
	cmd.SetArgs([]string{"--source", "blog"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("unknown source should fail")
	}
	if !strings.Contains(err.Error(), "blog") {
		t.Errorf("error should name the bad source, got %v", err)
	}
}
