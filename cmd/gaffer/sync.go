package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull latest changes and rebase your branch",
	Long: `Bring your branch up to date with the default branch.

On the default branch this fetches and pulls. On a task branch it fetches
and rebases onto the remote default branch; uncommitted changes must be
committed or stashed first.`,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	if _, err := requireAgent(); err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	currentBranch, err := a.git.CurrentBranch()
	if err != nil {
		return err
	}
	defaultBranch, err := a.git.DefaultBranch()
	if err != nil {
		return err
	}
	hasRemote, err := a.git.HasRemote()
	if err != nil {
		return err
	}

	if currentBranch == defaultBranch {
		fmt.Printf("On %s, pulling latest...\n", defaultBranch)
		if hasRemote {
			if err := a.git.FetchAll(); err != nil {
				return err
			}
			if err := a.git.Pull(); err != nil {
				return err
			}
		}
		fmt.Println("Done.")
		return nil
	}

	dirty, err := a.git.HasChanges()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("you have uncommitted changes; commit or stash first")
	}

	if hasRemote {
		fmt.Println("Fetching latest from remote...")
		if err := a.git.FetchAll(); err != nil {
			return err
		}
	}

	fmt.Printf("Rebasing %s onto %s...\n", currentBranch, defaultBranch)
	if err := a.git.Rebase("origin/" + defaultBranch); err != nil {
		return fmt.Errorf("rebase failed: %w\nResolve conflicts and run 'git rebase --continue'", err)
	}
	fmt.Println("Rebase successful.")
	return nil
}
