package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your claimed tasks",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	agent, err := requireAgent()
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	reg, err := a.loadRegistry()
	if err != nil {
		return err
	}

	currentBranch, err := a.git.CurrentBranch()
	if err != nil {
		return err
	}

	fmt.Printf("Agent: %s\n", agent.Name)
	fmt.Printf("Current branch: %s\n\n", currentBranch)

	myTasks := reg.TasksByAgent(agent.Name)
	if len(myTasks) == 0 {
		fmt.Println("No tasks claimed.")
		return nil
	}

	fmt.Println("Your tasks:")
	for _, task := range myTasks {
		marker := " "
		if task.Branch == currentBranch {
			marker = "*"
		}
		fmt.Printf("  %s %s: %s\n", marker, task.ID, task.Description)
		fmt.Printf("      Status: %s\n", statusSprint(task.Status))
		fmt.Printf("      Branch: %s\n", task.Branch)
	}
	return nil
}
