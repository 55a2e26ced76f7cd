package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <task-id>",
	Short: "Merge an approved task",
	Long: `Merge the pull request for a task in review and mark it merged.

Requires an open pull request matching the task's branch.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	agent, err := requireAgent()
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.wf.Merge(agent.Name, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Merged PR #%d\n", result.PR.Number)
	for _, warn := range result.Warnings {
		fmt.Printf("Warning: %v\n", warn)
	}
	fmt.Printf("\nTask %q has been merged.\n", result.Task.ID)
	return nil
}
