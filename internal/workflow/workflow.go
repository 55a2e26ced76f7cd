// Package workflow implements the coordination state machine layered on
// the task registry. Each operation validates every precondition against
// the in-memory registry before touching git, the hosting service, or
// the registry file, so a rejected transition never leaves partial
// state behind.
package workflow

import (
	"fmt"

	"github.com/gafferdev/gaffer/internal/forge"
	"github.com/gafferdev/gaffer/internal/git"
	"github.com/gafferdev/gaffer/internal/registry"
	"github.com/gafferdev/gaffer/pkg/models"
)

// Recorder receives audit events for successful transitions. Recording
// is best-effort; failures never abort a transition.
type Recorder interface {
	Record(action, taskID, agent, detail string) error
}

// Workflow drives task transitions against a repository's registry.
// The acting agent's name is passed to each operation explicitly; the
// workflow itself carries no identity.
type Workflow struct {
	repoRoot string
	git      git.Runner
	host     forge.Host
	recorder Recorder
}

// New creates a workflow for the repository at repoRoot.
func New(repoRoot string, g git.Runner, h forge.Host) *Workflow {
	return &Workflow{repoRoot: repoRoot, git: g, host: h}
}

// SetRecorder attaches an audit recorder.
func (w *Workflow) SetRecorder(r Recorder) {
	w.recorder = r
}

// BranchName returns the working branch for an agent's claim on a task.
func BranchName(agent, taskID string) string {
	return fmt.Sprintf("agent/%s/%s", agent, taskID)
}

// record writes an audit event, ignoring failures.
func (w *Workflow) record(action, taskID, agent, detail string) {
	if w.recorder == nil {
		return
	}
	_ = w.recorder.Record(action, taskID, agent, detail)
}

// commitRegistry stages and commits the registry file.
func (w *Workflow) commitRegistry(message string) error {
	if err := w.git.Add(registry.FileName); err != nil {
		return err
	}
	return w.git.Commit(message)
}

// ClaimResult reports a successful claim.
type ClaimResult struct {
	Task   *models.Task
	Branch string
}

// Claim reserves a pending task for the agent and creates its working
// branch off the default branch. Unmet dependencies and file conflicts
// block the claim unless force is set; the override leaves no trace in
// the persisted task.
func (w *Workflow) Claim(agent, taskID string, force bool) (*ClaimResult, error) {
	reg, err := registry.Load(w.repoRoot)
	if err != nil {
		return nil, err
	}

	task := reg.GetTask(taskID)
	if task == nil {
		return nil, &ValidationError{TaskID: taskID, Reason: "not found"}
	}
	if task.Status != models.StatusPending {
		return nil, &ValidationError{TaskID: taskID, Reason: fmt.Sprintf("not pending (status: %s)", task.Status)}
	}

	if !force {
		unmet := reg.CheckDependencies(task)
		conflicts := reg.CheckFileConflicts(task)
		if len(unmet) > 0 || len(conflicts) > 0 {
			return nil, &ClaimBlockedError{TaskID: taskID, UnmetDependencies: unmet, Conflicts: conflicts}
		}
	}

	branch := BranchName(agent, taskID)
	exists, err := w.git.BranchExists(branch)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ValidationError{TaskID: taskID, Reason: fmt.Sprintf("branch %q already exists", branch)}
	}

	defaultBranch, err := w.git.DefaultBranch()
	if err != nil {
		return nil, err
	}
	if err := w.git.CheckoutBranch(defaultBranch); err != nil {
		return nil, err
	}

	// Opportunistic: the default branch may have no upstream yet.
	if hasRemote, err := w.git.HasRemote(); err == nil && hasRemote {
		_ = w.git.Pull()
	}

	if err := w.git.CreateAndCheckoutBranch(branch); err != nil {
		return nil, err
	}

	task.Status = models.StatusClaimed
	task.ClaimedBy = agent
	task.Branch = branch

	if err := reg.Save(w.repoRoot); err != nil {
		return nil, err
	}
	if err := w.commitRegistry(fmt.Sprintf("[gaffer] Claim task: %s", taskID)); err != nil {
		return nil, err
	}

	w.record("claim", taskID, agent, branch)
	return &ClaimResult{Task: task, Branch: branch}, nil
}

// SubmitOptions customizes the pull request created on submit.
type SubmitOptions struct {
	// Title overrides the default "<id>: <description>" PR title.
	Title string
	// Body overrides the generated PR body.
	Body string
}

// SubmitResult reports a successful submit. PR is nil and PRErr set when
// the pull request could not be created; the task still advances to
// review.
type SubmitResult struct {
	Task  *models.Task
	PR    *forge.PullRequest
	PRErr error
}

// Submit moves the task for the current branch into review: pushes the
// branch, opens a pull request against the default branch, and commits
// the registry change. The branch must belong to the submitting agent
// and, when a remote exists, must already contain the remote default
// branch tip.
func (w *Workflow) Submit(agent string, opts SubmitOptions) (*SubmitResult, error) {
	reg, err := registry.Load(w.repoRoot)
	if err != nil {
		return nil, err
	}

	currentBranch, err := w.git.CurrentBranch()
	if err != nil {
		return nil, err
	}
	defaultBranch, err := w.git.DefaultBranch()
	if err != nil {
		return nil, err
	}
	if currentBranch == defaultBranch {
		return nil, &ValidationError{Reason: fmt.Sprintf("on %s; switch to a task branch first", defaultBranch)}
	}

	task := reg.TaskByBranch(currentBranch)
	if task == nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("no task found for branch %q", currentBranch)}
	}
	if task.ClaimedBy != agent {
		return nil, &ValidationError{TaskID: task.ID, Reason: fmt.Sprintf("claimed by %q, not you", task.ClaimedBy)}
	}

	hasRemote, err := w.git.HasRemote()
	if err != nil {
		return nil, err
	}
	if hasRemote {
		if err := w.git.FetchAll(); err != nil {
			return nil, err
		}
		rebased, err := w.git.IsRebased("origin/" + defaultBranch)
		if err != nil {
			return nil, err
		}
		if !rebased {
			return nil, &ValidationError{TaskID: task.ID, Reason: fmt.Sprintf("branch is not rebased onto latest %s; run 'gaffer sync' first", defaultBranch)}
		}
	}

	if err := w.git.Push(currentBranch, true); err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("%s: %s", task.ID, task.Description)
	}
	body := opts.Body
	if body == "" {
		body = defaultPRBody(task, agent)
	}

	// A failed PR creation is reported but does not block the review
	// transition; the PR can be opened manually.
	pr, prErr := w.host.CreatePullRequest(title, body, defaultBranch)

	task.Status = models.StatusReview
	if err := reg.Save(w.repoRoot); err != nil {
		return nil, err
	}
	if err := w.commitRegistry(fmt.Sprintf("[gaffer] Submit task for review: %s", task.ID)); err != nil {
		return nil, err
	}
	if err := w.git.Push(currentBranch, false); err != nil {
		return nil, err
	}

	w.record("submit", task.ID, agent, currentBranch)
	return &SubmitResult{Task: task, PR: pr, PRErr: prErr}, nil
}

// defaultPRBody renders the standard pull request body for a task.
func defaultPRBody(task *models.Task, agent string) string {
	files := "Not specified"
	if len(task.Files) > 0 {
		files = ""
		for _, f := range task.Files {
			files += fmt.Sprintf("- %s\n", f)
		}
	}
	return fmt.Sprintf("## Task\n%s\n\n## Files affected\n%s\n\n---\nSubmitted by agent: %s\n", task.Description, files, agent)
}

// ApproveResult reports an approval. PR is nil when no open pull request
// matched the task's branch; Warning carries a hosting-service failure
// that was tolerated.
type ApproveResult struct {
	Task    *models.Task
	PR      *forge.PullRequest
	Warning error
}

// Approve records the agent's approval of a task in review. The task's
// author cannot approve their own work. The matching pull request is
// approved on the hosting service when one is found; the approval still
// counts when it is not.
func (w *Workflow) Approve(agent, taskID string) (*ApproveResult, error) {
	reg, err := registry.Load(w.repoRoot)
	if err != nil {
		return nil, err
	}

	task := reg.GetTask(taskID)
	if task == nil {
		return nil, &ValidationError{TaskID: taskID, Reason: "not found"}
	}
	if task.Status != models.StatusReview {
		return nil, &ValidationError{TaskID: taskID, Reason: fmt.Sprintf("not in review (status: %s)", task.Status)}
	}
	if task.ClaimedBy == agent {
		return nil, &ValidationError{TaskID: taskID, Reason: "you cannot approve your own task"}
	}

	result := &ApproveResult{Task: task}
	prs, err := w.host.ListPullRequests("open")
	if err != nil {
		result.Warning = err
	} else if pr, err := forge.FindByBranch(prs, task.Branch); err == nil {
		if err := w.host.ApprovePullRequest(pr.Number); err != nil {
			result.Warning = err
		} else {
			result.PR = pr
		}
	}

	w.record("approve", taskID, agent, "")
	return result, nil
}

// MergeResult reports a successful merge. Warnings carry non-fatal
// failures from updating the local default branch afterwards.
type MergeResult struct {
	Task     *models.Task
	PR       *forge.PullRequest
	Warnings []error
}

// Merge merges the open pull request for a task in review and marks the
// task merged. A missing pull request is fatal: without one there is
// nothing to merge and the registry is not touched. Once the remote
// merge succeeds the transition is committed even if refreshing the
// local default branch fails.
func (w *Workflow) Merge(agent, taskID string) (*MergeResult, error) {
	reg, err := registry.Load(w.repoRoot)
	if err != nil {
		return nil, err
	}

	task := reg.GetTask(taskID)
	if task == nil {
		return nil, &ValidationError{TaskID: taskID, Reason: "not found"}
	}
	if task.Status != models.StatusReview {
		return nil, &ValidationError{TaskID: taskID, Reason: fmt.Sprintf("not in review (status: %s)", task.Status)}
	}

	prs, err := w.host.ListPullRequests("open")
	if err != nil {
		return nil, err
	}
	pr, err := forge.FindByBranch(prs, task.Branch)
	if err != nil {
		return nil, fmt.Errorf("task %q: %w for branch %q", taskID, err, task.Branch)
	}
	if err := w.host.MergePullRequest(pr.Number); err != nil {
		return nil, err
	}

	result := &MergeResult{Task: task, PR: pr}

	defaultBranch, err := w.git.DefaultBranch()
	if err != nil {
		return nil, err
	}
	if err := w.git.CheckoutBranch(defaultBranch); err != nil {
		return nil, err
	}
	if err := w.git.Pull(); err != nil {
		result.Warnings = append(result.Warnings, err)
	}

	task.Status = models.StatusMerged
	if err := reg.Save(w.repoRoot); err != nil {
		return nil, err
	}
	if err := w.commitRegistry(fmt.Sprintf("[gaffer] Mark task as merged: %s", taskID)); err != nil {
		result.Warnings = append(result.Warnings, err)
	} else if err := w.git.Push(defaultBranch, false); err != nil {
		result.Warnings = append(result.Warnings, err)
	}

	w.record("merge", taskID, agent, fmt.Sprintf("#%d", pr.Number))
	return result, nil
}
