package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gafferdev/gaffer/pkg/models"
)

var (
	newTaskFiles   []string
	newTaskDepends []string
)

var newTaskCmd = &cobra.Command{
	Use:   "new-task <id> <description>",
	Short: "Add a new task to the registry",
	Long: `Add a new task to the registry.

Example: gaffer new-task auth "Implement user authentication" -f src/auth/ -f src/models/user.go`,
	Args: cobra.ExactArgs(2),
	RunE: runNewTask,
}

func init() {
	newTaskCmd.Flags().StringArrayVarP(&newTaskFiles, "files", "f", nil, "Files/directories this task affects")
	newTaskCmd.Flags().StringArrayVarP(&newTaskDepends, "depends", "d", nil, "Task IDs this depends on")
}

func runNewTask(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	reg, err := a.loadRegistry()
	if err != nil {
		return err
	}

	task := models.NewTask(args[0], args[1])
	task.Files = newTaskFiles
	task.DependsOn = newTaskDepends

	if err := reg.AddTask(task); err != nil {
		return err
	}
	if err := reg.Save(a.root); err != nil {
		return err
	}

	fmt.Printf("Added task: %s\n", task.ID)
	fmt.Printf("  Description: %s\n", task.Description)
	if len(task.Files) > 0 {
		fmt.Printf("  Files: %s\n", strings.Join(task.Files, ", "))
	}
	if len(task.DependsOn) > 0 {
		fmt.Printf("  Depends on: %s\n", strings.Join(task.DependsOn, ", "))
	}
	return nil
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List all tasks and their status",
	RunE:  runTasks,
}

func runTasks(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	reg, err := a.loadRegistry()
	if err != nil {
		return err
	}

	fmt.Printf("Goal: %s\n\n", reg.Goal)
	fmt.Println("Tasks:")
	fmt.Println(strings.Repeat("-", 60))

	for _, task := range reg.Tasks {
		fmt.Printf("  %s: %s\n", task.ID, task.Description)
		fmt.Printf("    Status: %s\n", statusSprint(task.Status))
		if task.ClaimedBy != "" {
			fmt.Printf("    Claimed by: %s\n", task.ClaimedBy)
		}
		if task.Branch != "" {
			fmt.Printf("    Branch: %s\n", task.Branch)
		}
		if len(task.DependsOn) > 0 {
			fmt.Printf("    Depends on: %s\n", strings.Join(task.DependsOn, ", "))
		}
		if len(task.Files) > 0 {
			fmt.Printf("    Files: %s\n", strings.Join(task.Files, ", "))
		}
		fmt.Println()
	}
	return nil
}
