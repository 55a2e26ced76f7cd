package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gafferdev/gaffer/internal/board"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show a live task board",
	Long: `Open a live, read-only task board in the terminal.

The board reloads whenever the registry file changes, so it can stay open
while agents claim and submit tasks. Press / to filter, q to quit.`,
	RunE: runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	model, err := board.New(a.root)
	if err != nil {
		return err
	}
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
