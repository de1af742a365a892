// Package project locates the project root for configuration discovery.
package project

import (
	gogit "github.com/go-git/go-git/v5"
)

// DiscoverRoot returns the git toplevel enclosing dir, walking up through
// parent directories the way git itself does. When dir is not inside a work
// tree (or the repository is bare), dir is returned unchanged: configuration
// discovery then stays scoped to the working directory.
func DiscoverRoot(dir string) string {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return dir
	}
	wt, err := repo.Worktree()
	if err != nil {
		return dir
	}
	return wt.Filesystem.Root()
}
