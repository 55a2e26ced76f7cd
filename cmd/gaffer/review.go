package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gafferdev/gaffer/internal/forge"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List tasks awaiting review",
	RunE:  runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	reg, err := a.loadRegistry()
	if err != nil {
		return err
	}

	reviewTasks := reg.TasksInReview()
	if len(reviewTasks) == 0 {
		fmt.Println("No tasks awaiting review.")
		return nil
	}

	fmt.Println("Tasks awaiting review:")
	fmt.Println(strings.Repeat("-", 60))
	for _, task := range reviewTasks {
		fmt.Printf("  %s: %s\n", task.ID, task.Description)
		fmt.Printf("    Author: %s\n", task.ClaimedBy)
		fmt.Printf("    Branch: %s\n", task.Branch)
		if len(task.Files) > 0 {
			fmt.Printf("    Files: %s\n", strings.Join(task.Files, ", "))
		}
		fmt.Println()
	}

	// Best-effort: the hosting CLI may be unavailable or unauthenticated.
	host := forge.NewGitHubCLI(a.root)
	prs, err := host.ListPullRequests("open")
	if err != nil || len(prs) == 0 {
		return nil
	}

	fmt.Println("\nOpen PRs:")
	for _, pr := range prs {
		fmt.Printf("  #%d: %s\n", pr.Number, pr.Title)
		fmt.Printf("    Branch: %s\n", pr.Branch)
		fmt.Printf("    URL: %s\n", pr.URL)
		fmt.Println()
	}
	return nil
}
