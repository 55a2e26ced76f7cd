package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// Error is the failure of a single git command. It carries the arguments
// and combined output so call sites can decide whether to surface or
// suppress it.
type Error struct {
	Args   []string
	Output string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("git %s: %v: %s", strings.Join(e.Args, " "), e.Err, strings.TrimSpace(e.Output))
}

func (e *Error) Unwrap() error { return e.Err }

// ExecRunner implements Runner using exec.Command.
type ExecRunner struct {
	repoPath string
}

// NewRunner creates a git runner operating in the given directory. Any
// directory inside the repository works; use RepoRoot to resolve the
// root.
func NewRunner(repoPath string) *ExecRunner {
	return &ExecRunner{repoPath: repoPath}
}

// run executes a git command and returns its trimmed output.
func (r *ExecRunner) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.repoPath
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", &Error{Args: args, Output: string(out), Err: err}
	}
	return strings.TrimSpace(string(out)), nil
}

// runSilent executes a git command and discards its output.
func (r *ExecRunner) runSilent(args ...string) error {
	_, err := r.run(args...)
	return err
}

// RepoRoot returns the root directory of the repository.
func (r *ExecRunner) RepoRoot() (string, error) {
	return r.run("rev-parse", "--show-toplevel")
}

// CurrentBranch returns the name of the current branch.
func (r *ExecRunner) CurrentBranch() (string, error) {
	return r.run("rev-parse", "--abbrev-ref", "HEAD")
}

// DefaultBranch returns "main" when a branch by that name exists,
// otherwise "master".
func (r *ExecRunner) DefaultBranch() (string, error) {
	ok, err := r.BranchExists("main")
	if err != nil {
		return "", err
	}
	if ok {
		return "main", nil
	}
	return "master", nil
}

// HasChanges returns true if there are uncommitted changes.
func (r *ExecRunner) HasChanges() (bool, error) {
	status, err := r.run("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return len(status) > 0, nil
}

// BranchExists returns true if the local branch exists.
func (r *ExecRunner) BranchExists(name string) (bool, error) {
	cmd := exec.Command("git", "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	cmd.Dir = r.repoPath
	if err := cmd.Run(); err != nil {
		// Exit code 1 means the branch doesn't exist, not a failure.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return false, nil
		}
		return false, &Error{Args: []string{"show-ref", "--verify", name}, Err: err}
	}
	return true, nil
}

// CreateAndCheckoutBranch creates and switches to a new branch.
func (r *ExecRunner) CreateAndCheckoutBranch(name string) error {
	return r.runSilent("checkout", "-b", name)
}

// CheckoutBranch switches to the specified branch.
func (r *ExecRunner) CheckoutBranch(name string) error {
	return r.runSilent("checkout", name)
}

// Add stages the specified paths for commit.
func (r *ExecRunner) Add(paths ...string) error {
	args := append([]string{"add"}, paths...)
	return r.runSilent(args...)
}

// Commit creates a new commit with the given message.
func (r *ExecRunner) Commit(message string) error {
	return r.runSilent("commit", "-m", message)
}

// HasRemote returns true if an origin remote is configured.
func (r *ExecRunner) HasRemote() (bool, error) {
	cmd := exec.Command("git", "remote", "get-url", "origin")
	cmd.Dir = r.repoPath
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return false, nil
		}
		return false, &Error{Args: []string{"remote", "get-url", "origin"}, Err: err}
	}
	return true, nil
}

// Pull pulls the current branch from its upstream.
func (r *ExecRunner) Pull() error {
	return r.runSilent("pull")
}

// Push pushes the branch, optionally setting origin as upstream.
func (r *ExecRunner) Push(branch string, setUpstream bool) error {
	if setUpstream {
		return r.runSilent("push", "-u", "origin", branch)
	}
	return r.runSilent("push")
}

// FetchAll fetches from all remotes.
func (r *ExecRunner) FetchAll() error {
	return r.runSilent("fetch", "--all")
}

// Rebase rebases the current branch onto the specified base.
func (r *ExecRunner) Rebase(base string) error {
	return r.runSilent("rebase", base)
}

// IsRebased returns true iff the current branch already contains base:
// the merge-base of HEAD and base equals base's tip.
func (r *ExecRunner) IsRebased(base string) (bool, error) {
	mergeBase, err := r.run("merge-base", "HEAD", base)
	if err != nil {
		return false, err
	}
	tip, err := r.run("rev-parse", base)
	if err != nil {
		return false, err
	}
	return mergeBase == tip, nil
}

// Verify ExecRunner implements Runner at compile time.
var _ Runner = (*ExecRunner)(nil)
