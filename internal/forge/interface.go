// Package forge provides an interface for the code-review hosting
// operations (pull requests) the coordination workflow depends on.
package forge

import "errors"

// ErrNoPullRequest indicates no pull request matched the requested
// branch.
var ErrNoPullRequest = errors.New("no matching pull request")

// PullRequest describes a pull request on the hosting service.
type PullRequest struct {
	Number int
	Title  string
	Branch string
	Author string
	URL    string
}

// Host defines the pull-request operations consumed by the workflow.
type Host interface {
	// CreatePullRequest opens a pull request from the current branch
	// against base and returns it.
	CreatePullRequest(title, body, base string) (*PullRequest, error)
	// ListPullRequests returns pull requests in the given state
	// ("open", "closed", "merged" or "all"), in the service's order.
	ListPullRequests(state string) ([]*PullRequest, error)
	// ApprovePullRequest submits an approving review.
	ApprovePullRequest(number int) error
	// MergePullRequest merges the pull request and deletes its source
	// branch.
	MergePullRequest(number int) error
}

// FindByBranch returns the first pull request whose head branch matches,
// preserving list order, or ErrNoPullRequest.
func FindByBranch(prs []*PullRequest, branch string) (*PullRequest, error) {
	for _, pr := range prs {
		if pr.Branch == branch {
			return pr, nil
		}
	}
	return nil, ErrNoPullRequest
}
