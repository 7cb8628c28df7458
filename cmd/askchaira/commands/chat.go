// ABOUTME: Chat command opens the terminal chat widget
// ABOUTME: Wires the persisted session, ask client, and bubbletea program
package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chairaharder/askchaira/internal/client"
	"github.com/chairaharder/askchaira/internal/session"
	"github.com/chairaharder/askchaira/internal/storage/sqlite"
	"github.com/chairaharder/askchaira/internal/tui"
)

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the terminal chat widget",
		Long: `Chat with the answer endpoint about Chaira's content.

The transcript and session id persist across runs. Tab toggles the
widget open and closed, ctrl+l clears the transcript, esc quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(open)
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "Start with the widget expanded")

	return cmd
}

func runChat(open bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireAskURL(); err != nil {
		return err
	}

	manager := session.NewManager(sqlite.DefaultDataDir())
	sess := manager.Load()
	if open {
		sess.Open = true
	}

	submitter := client.NewSubmitter(client.NewClient(cfg.AskURL), nil, cfg.UserLabel)

	program := tea.NewProgram(tui.New(sess, manager, submitter), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat widget failed: %w", err)
	}
	return nil
}
