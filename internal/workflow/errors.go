package workflow

import (
	"fmt"
	"strings"

	"github.com/gafferdev/gaffer/internal/registry"
)

// ValidationError is a hard precondition violation: the requested
// transition is not legal for the task's current state. The operation
// performs no mutation.
type ValidationError struct {
	TaskID string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.TaskID == "" {
		return e.Reason
	}
	return fmt.Sprintf("task %q: %s", e.TaskID, e.Reason)
}

// ClaimBlockedError is a soft conflict found during claim: unmet
// dependencies or file overlaps with active tasks. It aborts the claim
// unless the agent forces it.
type ClaimBlockedError struct {
	TaskID            string
	UnmetDependencies []string
	Conflicts         []registry.Conflict
}

func (e *ClaimBlockedError) Error() string {
	var parts []string
	if len(e.UnmetDependencies) > 0 {
		parts = append(parts, fmt.Sprintf("%d unmet dependencies", len(e.UnmetDependencies)))
	}
	if len(e.Conflicts) > 0 {
		parts = append(parts, fmt.Sprintf("%d file conflicts", len(e.Conflicts)))
	}
	return fmt.Sprintf("task %q blocked: %s (use --force to claim anyway)", e.TaskID, strings.Join(parts, ", "))
}
