package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gafferdev/gaffer/internal/history"
)

var (
	historyTask  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the local audit log of workflow actions",
	Long: `Show this machine's audit log of claim/submit/approve/merge actions.

The log is local and advisory; the registry file remains the source of
truth for task state.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyTask, "task", "", "Only show events for this task")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of events (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := os.Stat(history.ProjectDBPath(a.root)); os.IsNotExist(err) {
		fmt.Println("No history recorded yet.")
		return nil
	}

	db := a.hist
	if db == nil {
		db, err = history.OpenProject(a.root)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	events, err := db.List(historyTask, historyLimit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No history recorded yet.")
		return nil
	}

	for _, ev := range events {
		line := fmt.Sprintf("%s  %-7s %s by %s", ev.CreatedAt.Local().Format("2006-01-02 15:04"), ev.Action, ev.TaskID, ev.Agent)
		if ev.Detail != "" {
			line += " (" + ev.Detail + ")"
		}
		fmt.Println(line)
	}
	return nil
}
