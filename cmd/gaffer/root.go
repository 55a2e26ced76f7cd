package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gaffer",
	Short: "Multi-agent collaborative development",
	Long: `Gaffer coordinates multiple agents working on a shared codebase.

Tasks live in a gaffer.yaml registry at the repository root. Agents claim
tasks, work on dedicated branches, submit pull requests for review, and
merge once another agent approves. Gaffer tracks who may do what; git and
the hosting service do the actual merging.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createRegistryCmd)
	rootCmd.AddCommand(newTaskCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(historyCmd)
}
