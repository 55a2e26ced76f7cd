package forge

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Error is the failure of a single gh command. It carries the arguments
// and combined output for diagnosis.
type Error struct {
	Args   []string
	Output string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gh %s: %v: %s", strings.Join(e.Args, " "), e.Err, strings.TrimSpace(e.Output))
}

func (e *Error) Unwrap() error { return e.Err }

// GitHubCLI implements Host by shelling out to the gh CLI.
type GitHubCLI struct {
	repoPath string
}

// NewGitHubCLI creates a GitHub host for the repository at the given
// path.
func NewGitHubCLI(repoPath string) *GitHubCLI {
	return &GitHubCLI{repoPath: repoPath}
}

// run executes a gh command and returns its stdout.
func (g *GitHubCLI) run(args ...string) (string, error) {
	cmd := exec.Command("gh", args...)
	cmd.Dir = g.repoPath
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", &Error{Args: args, Output: string(out), Err: err}
	}
	return strings.TrimSpace(string(out)), nil
}

// CreatePullRequest opens a pull request from the current branch against
// base. gh prints the PR URL; the number is its last path segment.
func (g *GitHubCLI) CreatePullRequest(title, body, base string) (*PullRequest, error) {
	args := []string{"pr", "create", "--title", title, "--body", body, "--base", base}
	url, err := g.run(args...)
	if err != nil {
		return nil, err
	}

	number := 0
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		if n, err := strconv.Atoi(url[idx+1:]); err == nil {
			number = n
		}
	}

	return &PullRequest{Number: number, Title: title, URL: url}, nil
}

// prRecord mirrors the fields requested from gh pr list --json.
type prRecord struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	HeadRefName string `json:"headRefName"`
	Author      struct {
		Login string `json:"login"`
	} `json:"author"`
	URL string `json:"url"`
}

// ListPullRequests returns pull requests in the given state, in the
// order gh returns them.
func (g *GitHubCLI) ListPullRequests(state string) ([]*PullRequest, error) {
	args := []string{"pr", "list", "--state", state, "--json", "number,title,headRefName,author,url"}
	out, err := g.run(args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var records []prRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		return nil, fmt.Errorf("parse gh pr list output: %w", err)
	}

	prs := make([]*PullRequest, 0, len(records))
	for _, rec := range records {
		prs = append(prs, &PullRequest{
			Number: rec.Number,
			Title:  rec.Title,
			Branch: rec.HeadRefName,
			Author: rec.Author.Login,
			URL:    rec.URL,
		})
	}
	return prs, nil
}

// ApprovePullRequest submits an approving review.
func (g *GitHubCLI) ApprovePullRequest(number int) error {
	_, err := g.run("pr", "review", strconv.Itoa(number), "--approve")
	return err
}

// MergePullRequest merges the pull request and deletes its source
// branch.
func (g *GitHubCLI) MergePullRequest(number int) error {
	_, err := g.run("pr", "merge", strconv.Itoa(number), "--merge", "--delete-branch")
	return err
}

// Verify GitHubCLI implements Host at compile time.
var _ Host = (*GitHubCLI)(nil)
