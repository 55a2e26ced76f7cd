// Package models defines the shared value types for the task registry.
package models

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Status represents the current state of a task in the coordination
// workflow. Transitions only move forward: pending -> claimed ->
// in_progress -> review -> merged.
type Status string

const (
	// StatusPending indicates the task is unclaimed.
	StatusPending Status = "pending"
	// StatusClaimed indicates an agent has reserved the task and created
	// a branch for it.
	StatusClaimed Status = "claimed"
	// StatusInProgress indicates the task is actively being worked on.
	// No command transitions into this state; agents may set it by
	// editing the registry directly.
	StatusInProgress Status = "in_progress"
	// StatusReview indicates the task has been submitted and awaits
	// approval.
	StatusReview Status = "review"
	// StatusMerged indicates the task's work has landed on the default
	// branch.
	StatusMerged Status = "merged"
)

// ParseStatus maps a wire string to a Status. Returns false for unknown
// values.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusClaimed, StatusInProgress, StatusReview, StatusMerged:
		return Status(s), true
	default:
		return "", false
	}
}

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// Active returns true for statuses considered when detecting file
// conflicts. Pending and merged tasks never conflict.
func (s Status) Active() bool {
	switch s {
	case StatusClaimed, StatusInProgress, StatusReview:
		return true
	default:
		return false
	}
}

// UnmarshalYAML decodes a status string, rejecting unknown values.
func (s *Status) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw == "" {
		*s = StatusPending
		return nil
	}
	parsed, ok := ParseStatus(raw)
	if !ok {
		return fmt.Errorf("unknown task status %q", raw)
	}
	*s = parsed
	return nil
}

// Task represents a unit of work in the registry.
type Task struct {
	// ID is the unique identifier for this task within a registry.
	ID string `yaml:"id"`
	// Description is the free-text label for the task.
	Description string `yaml:"description"`
	// Status is the current state of the task.
	Status Status `yaml:"status"`
	// ClaimedBy is the name of the agent that claimed the task. Once set
	// it is retained for history, even after merge.
	ClaimedBy string `yaml:"claimed_by,omitempty"`
	// Branch is the working branch created on claim.
	Branch string `yaml:"branch,omitempty"`
	// Files lists the paths (files or directory prefixes) this task
	// intends to touch. May be empty for unscoped tasks.
	Files []string `yaml:"files,omitempty"`
	// DependsOn lists task IDs that must be merged before this task may
	// be claimed.
	DependsOn []string `yaml:"depends_on,omitempty"`
}

// NewTask creates a pending task with no owner and no branch.
func NewTask(id, description string) *Task {
	return &Task{
		ID:          id,
		Description: description,
		Status:      StatusPending,
	}
}

// UnmarshalYAML decodes a task, defaulting an omitted status to pending.
func (t *Task) UnmarshalYAML(value *yaml.Node) error {
	type plain Task
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	*t = Task(p)
	return nil
}
