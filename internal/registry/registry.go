// Package registry manages the shared task registry: the persisted
// collection of tasks plus the overall goal, and the query logic the
// coordination workflow builds on.
package registry

import (
	"fmt"
	"strings"

	"github.com/gafferdev/gaffer/pkg/models"
)

// Registry holds the goal and the ordered task list. Task order is
// insertion order, which is also file order.
type Registry struct {
	Goal  string         `yaml:"goal"`
	Tasks []*models.Task `yaml:"tasks"`
}

// New creates an empty registry with the given goal.
func New(goal string) *Registry {
	return &Registry{Goal: goal, Tasks: []*models.Task{}}
}

// GetTask returns the task with the given ID, or nil if absent.
func (r *Registry) GetTask(id string) *models.Task {
	for _, t := range r.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// AddTask appends a task to the registry. Adding a duplicate ID is an
// error.
func (r *Registry) AddTask(task *models.Task) error {
	if r.GetTask(task.ID) != nil {
		return fmt.Errorf("task %q already exists", task.ID)
	}
	r.Tasks = append(r.Tasks, task)
	return nil
}

// PendingTasks returns all pending tasks in registry order.
func (r *Registry) PendingTasks() []*models.Task {
	var out []*models.Task
	for _, t := range r.Tasks {
		if t.Status == models.StatusPending {
			out = append(out, t)
		}
	}
	return out
}

// TasksByAgent returns all tasks claimed by the named agent, in registry
// order.
func (r *Registry) TasksByAgent(agent string) []*models.Task {
	var out []*models.Task
	for _, t := range r.Tasks {
		if t.ClaimedBy == agent {
			out = append(out, t)
		}
	}
	return out
}

// TasksInReview returns all tasks awaiting review, in registry order.
func (r *Registry) TasksInReview() []*models.Task {
	var out []*models.Task
	for _, t := range r.Tasks {
		if t.Status == models.StatusReview {
			out = append(out, t)
		}
	}
	return out
}

// TaskByBranch returns the task whose working branch matches, or nil.
func (r *Registry) TaskByBranch(branch string) *models.Task {
	for _, t := range r.Tasks {
		if t.Branch == branch {
			return t
		}
	}
	return nil
}

// CheckDependencies returns a descriptor for every unmet dependency of
// the task, in depends_on order. A dependency is unmet when it does not
// exist ("id (not found)") or has not been merged ("id (status: x)").
// An empty result means all dependencies are satisfied.
func (r *Registry) CheckDependencies(task *models.Task) []string {
	var unmet []string
	for _, depID := range task.DependsOn {
		dep := r.GetTask(depID)
		switch {
		case dep == nil:
			unmet = append(unmet, fmt.Sprintf("%s (not found)", depID))
		case dep.Status != models.StatusMerged:
			unmet = append(unmet, fmt.Sprintf("%s (status: %s)", depID, dep.Status))
		}
	}
	return unmet
}

// Conflict reports an overlap between one of a task's declared paths and
// an active task touching the same area.
type Conflict struct {
	// Path is the conflicting path from the claiming task's file list.
	Path string
	// Other is the active task that also declares the path.
	Other *models.Task
}

// CheckFileConflicts returns every overlap between the task's files and
// the files of other active (claimed, in_progress, review) tasks. A task
// never conflicts with itself; pending and merged tasks never conflict.
// Pairs are emitted in registry order, then file-list order, without
// deduplication.
func (r *Registry) CheckFileConflicts(task *models.Task) []Conflict {
	var conflicts []Conflict
	for _, other := range r.Tasks {
		if other.ID == task.ID {
			continue
		}
		if !other.Status.Active() {
			continue
		}
		for _, file := range task.Files {
			for _, otherFile := range other.Files {
				if pathsOverlap(file, otherFile) {
					conflicts = append(conflicts, Conflict{Path: file, Other: other})
				}
			}
		}
	}
	return conflicts
}

// pathsOverlap reports whether two declared paths might touch the same
// files. Trailing slashes are stripped, then one path must be a string
// prefix of the other. This is deliberately not segment-aware: "src/auth"
// overlaps "src/auth2". Kept for compatibility with existing registries.
func pathsOverlap(a, b string) bool {
	a = strings.TrimRight(a, "/")
	b = strings.TrimRight(b, "/")
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}
