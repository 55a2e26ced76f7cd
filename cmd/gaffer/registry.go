package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gafferdev/gaffer/internal/registry"
)

var createRegistryCmd = &cobra.Command{
	Use:   "create-registry <goal>",
	Short: "Create a new task registry",
	Long: `Create a new gaffer.yaml registry at the repository root.

Example: gaffer create-registry "Build a REST API for user management"`,
	Args: cobra.ExactArgs(1),
	RunE: runCreateRegistry,
}

func runCreateRegistry(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if registry.Exists(a.root) {
		return fmt.Errorf("%s already exists", registry.Path(a.root))
	}

	reg := registry.New(args[0])
	if err := reg.Save(a.root); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", registry.Path(a.root))
	fmt.Printf("Goal: %s\n", reg.Goal)
	fmt.Println("\nAdd tasks with: gaffer new-task <id> <description>")
	return nil
}
