package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gafferdev/gaffer/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Initialize this agent with a name",
	Long: `Initialize this agent with a name.

The agent name identifies your work in the task registry and is used for
branch naming (agent/<name>/<task-id>).

Example: gaffer init alpha`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	agent := &config.Agent{Name: args[0]}
	if err := agent.Save(); err != nil {
		return err
	}
	fmt.Printf("Initialized agent %q\n", agent.Name)
	fmt.Printf("Config saved to: %s\n", config.Path())
	return nil
}
