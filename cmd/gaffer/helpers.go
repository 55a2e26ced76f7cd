package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/gafferdev/gaffer/internal/config"
	"github.com/gafferdev/gaffer/internal/forge"
	"github.com/gafferdev/gaffer/internal/git"
	"github.com/gafferdev/gaffer/internal/history"
	"github.com/gafferdev/gaffer/internal/registry"
	"github.com/gafferdev/gaffer/internal/workflow"
	"github.com/gafferdev/gaffer/pkg/models"
)

// app bundles the collaborators every registry-touching command needs.
type app struct {
	root string
	git  *git.ExecRunner
	wf   *workflow.Workflow
	hist *history.DB
}

// newApp resolves the repository root and wires the workflow. The audit
// log is attached best-effort; a repository without one still works.
func newApp() (*app, error) {
	runner := git.NewRunner(".")
	root, err := runner.RepoRoot()
	if err != nil {
		return nil, fmt.Errorf("not in a git repository")
	}

	rooted := git.NewRunner(root)
	wf := workflow.New(root, rooted, forge.NewGitHubCLI(root))

	a := &app{root: root, git: rooted, wf: wf}
	if db, err := history.OpenProject(root); err == nil {
		a.hist = db
		wf.SetRecorder(db)
	}
	return a, nil
}

// Close releases the audit log handle.
func (a *app) Close() {
	if a.hist != nil {
		a.hist.Close()
	}
}

// loadRegistry loads the registry for the app's repository.
func (a *app) loadRegistry() (*registry.Registry, error) {
	return registry.Load(a.root)
}

// requireAgent loads the configured agent identity.
func requireAgent() (*config.Agent, error) {
	return config.Load()
}

// statusSprint colors a status string for terminal output.
func statusSprint(s models.Status) string {
	c := color.New(color.FgWhite)
	switch s {
	case models.StatusClaimed:
		c = color.New(color.FgYellow)
	case models.StatusInProgress:
		c = color.New(color.FgCyan)
	case models.StatusReview:
		c = color.New(color.FgMagenta)
	case models.StatusMerged:
		c = color.New(color.FgGreen)
	}
	return c.Sprintf("[%s]", s)
}
