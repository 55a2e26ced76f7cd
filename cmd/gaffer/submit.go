package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gafferdev/gaffer/internal/workflow"
)

var (
	submitTitle string
	submitBody  string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit your work as a pull request",
	Long: `Submit the current branch's task for review.

Pushes the branch, creates a PR against the default branch, and moves the
task to review. If PR creation fails the task still advances; create the
PR manually.`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&submitTitle, "title", "t", "", "PR title (defaults to task description)")
	submitCmd.Flags().StringVarP(&submitBody, "body", "b", "", "PR body")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	agent, err := requireAgent()
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.wf.Submit(agent.Name, workflow.SubmitOptions{Title: submitTitle, Body: submitBody})
	if err != nil {
		return err
	}

	if result.PR != nil {
		fmt.Printf("Created PR #%d: %s\n", result.PR.Number, result.PR.URL)
	}
	if result.PRErr != nil {
		fmt.Printf("Failed to create PR: %v\n", result.PRErr)
		fmt.Println("You may need to create the PR manually.")
	}

	fmt.Printf("\nTask %q is now awaiting review.\n", result.Task.ID)
	return nil
}
