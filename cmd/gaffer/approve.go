package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var approveCmd = &cobra.Command{
	Use:   "approve <task-id>",
	Short: "Approve a task after reviewing it",
	Long: `Approve a task in review.

Approves the matching pull request on the hosting service when one is
found. You cannot approve your own task.`,
	Args: cobra.ExactArgs(1),
	RunE: runApprove,
}

func runApprove(cmd *cobra.Command, args []string) error {
	agent, err := requireAgent()
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.wf.Approve(agent.Name, args[0])
	if err != nil {
		return err
	}

	switch {
	case result.PR != nil:
		fmt.Printf("Approved PR #%d\n", result.PR.Number)
	case result.Warning != nil:
		fmt.Printf("Could not approve on the hosting service: %v\n", result.Warning)
		fmt.Println("Approval recorded in registry only.")
	default:
		fmt.Println("No matching PR found. Approval recorded in registry only.")
	}

	fmt.Printf("\nTask %q approved by %s.\n", result.Task.ID, agent.Name)
	fmt.Printf("The author (%s) can now merge with 'gaffer merge %s'.\n", result.Task.ClaimedBy, result.Task.ID)
	return nil
}
