package config

import (
	"github.com/go-git/go-git/v5"
)

// FindRepoRoot walks up from start to the enclosing git worktree and returns
// its root directory. ok is false outside a worktree or for bare repositories.
func FindRepoRoot(start string) (root string, ok bool) {
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", false
	}
	return wt.Filesystem.Root(), true
}
