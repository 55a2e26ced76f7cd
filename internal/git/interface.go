// Package git provides an interface for the git operations the
// coordination workflow depends on.
package git

// RepoOperations defines repository-level queries.
type RepoOperations interface {
	// RepoRoot returns the root directory of the repository.
	RepoRoot() (string, error)
	// CurrentBranch returns the name of the current branch.
	CurrentBranch() (string, error)
	// DefaultBranch returns the integration branch: "main" if it exists,
	// otherwise "master".
	DefaultBranch() (string, error)
	// HasChanges returns true if there are uncommitted changes.
	HasChanges() (bool, error)
}

// BranchOperations defines the interface for git branch operations.
type BranchOperations interface {
	// BranchExists returns true if the local branch exists.
	BranchExists(name string) (bool, error)
	// CreateAndCheckoutBranch creates and switches to a new branch
	// (git checkout -b).
	CreateAndCheckoutBranch(name string) error
	// CheckoutBranch switches to the specified branch.
	CheckoutBranch(name string) error
}

// CommitOperations defines the interface for staging and committing.
type CommitOperations interface {
	// Add stages the specified paths for commit.
	Add(paths ...string) error
	// Commit creates a new commit with the given message.
	Commit(message string) error
}

// RemoteOperations defines the interface for remote interactions.
type RemoteOperations interface {
	// HasRemote returns true if an origin remote is configured.
	HasRemote() (bool, error)
	// Pull pulls the current branch from its upstream.
	Pull() error
	// Push pushes the branch, optionally setting origin as upstream.
	Push(branch string, setUpstream bool) error
	// FetchAll fetches from all remotes.
	FetchAll() error
	// Rebase rebases the current branch onto the specified base.
	Rebase(base string) error
	// IsRebased returns true iff the merge-base of HEAD and base equals
	// base's tip, i.e. the current branch already contains base.
	IsRebased(base string) (bool, error)
}

// Runner defines the complete interface for git operations consumed by
// the workflow. Consumers should prefer the focused interfaces when
// possible.
type Runner interface {
	RepoOperations
	BranchOperations
	CommitOperations
	RemoteOperations
}
