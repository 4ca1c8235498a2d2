// Package gitinfo collects the run provenance the director attaches to
// every run log: the current commit SHA and a list of files that differ
// from HEAD (modified, added, deleted, renamed, untracked). Absence of a
// git repository at the given path is not an error - it simply means the
// run log carries no SHA/Edits.
package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Collect opens the repository at repoPath and reports its HEAD SHA and
// current staged and working-tree edits. If repoPath is not inside a git
// repository, it returns an empty sha, no edits and a nil error - the
// caller simply omits sha/edits from the run log's metadata, the same
// graceful degradation get_git_sha's bare except provided.
func Collect(repoPath string) (sha string, edits []string, err error) {
	repo, openErr := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if openErr != nil {
		return "", nil, nil
	}

	head, headErr := repo.Head()
	if headErr == nil {
		sha = head.Hash().String()
	}

	worktree, wtErr := repo.Worktree()
	if wtErr != nil {
		return sha, nil, nil
	}
	status, statusErr := worktree.Status()
	if statusErr != nil {
		return sha, nil, nil
	}

	for path, entry := range status {
		edits = append(edits, describeChange(path, entry))
	}

	return sha, edits, nil
}

func describeChange(path string, entry *git.FileStatus) string {
	code := entry.Worktree
	if code == git.Unmodified {
		code = entry.Staging
	}
	switch code {
	case git.Modified:
		return fmt.Sprintf("modified: %s", path)
	case git.Added:
		return fmt.Sprintf("added: %s", path)
	case git.Deleted:
		return fmt.Sprintf("deleted: %s", path)
	case git.Renamed:
		return fmt.Sprintf("renamed: %s", path)
	case git.Untracked:
		return fmt.Sprintf("untracked: %s", path)
	default:
		return fmt.Sprintf("changed: %s", path)
	}
}
