// Package vcs implements the optional git integration: finding the
// repository a scan root belongs to, and listing the files staged for
// the next commit, so `--staged` can restrict a scan to what's about
// to be committed instead of the whole tree.
package vcs

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// DiscoverRoot walks upward from start looking for a repository,
// matching `git rev-parse --show-toplevel`. It returns ok=false, not
// an error, when start isn't inside a git repository at all.
func DiscoverRoot(start string) (root string, ok bool, err error) {
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return "", false, nil
		}
		return "", false, fmt.Errorf("opening repository at %s: %w", start, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", false, fmt.Errorf("resolving worktree: %w", err)
	}
	return wt.Filesystem.Root(), true, nil
}

// StagedFiles lists repo-root-relative paths staged for the next
// commit, matching `git diff --name-only --cached --diff-filter=ACM`:
// additions, copies, and modifications, but not deletions.
func StagedFiles(repoRoot string) ([]string, error) {
	repo, err := git.PlainOpen(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", repoRoot, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolving worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("computing status: %w", err)
	}

	var files []string
	for path, fileStatus := range status {
		switch fileStatus.Staging {
		case git.Added, git.Modified, git.Copied:
			files = append(files, filepath.Join(repoRoot, path))
		}
	}
	return files, nil
}
