package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gafferdev/gaffer/internal/workflow"
)

var claimForce bool

var claimCmd = &cobra.Command{
	Use:   "claim <task-id>",
	Short: "Claim a task and create a branch for it",
	Long: `Claim a pending task and create a working branch for it.

The task is marked as claimed by you and a branch named
agent/<name>/<task-id> is created off the default branch.

Example: gaffer claim implement-auth`,
	Args: cobra.ExactArgs(1),
	RunE: runClaim,
}

func init() {
	claimCmd.Flags().BoolVar(&claimForce, "force", false, "Claim even with conflicts or unmet dependencies")
}

func runClaim(cmd *cobra.Command, args []string) error {
	agent, err := requireAgent()
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.wf.Claim(agent.Name, args[0], claimForce)
	if err != nil {
		var blocked *workflow.ClaimBlockedError
		if errors.As(err, &blocked) {
			if len(blocked.UnmetDependencies) > 0 {
				fmt.Println("Unmet dependencies:")
				for _, dep := range blocked.UnmetDependencies {
					fmt.Printf("  - %s\n", dep)
				}
			}
			if len(blocked.Conflicts) > 0 {
				fmt.Println("Potential file conflicts:")
				for _, c := range blocked.Conflicts {
					fmt.Printf("  - %s (also in %s by %s)\n", c.Path, c.Other.ID, c.Other.ClaimedBy)
				}
			}
		}
		return err
	}

	fmt.Printf("Claimed task %q\n", result.Task.ID)
	fmt.Printf("Created branch: %s\n", result.Branch)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Make your changes")
	fmt.Println("  2. Commit your work")
	fmt.Println("  3. Run 'gaffer submit' to create a PR")
	return nil
}
