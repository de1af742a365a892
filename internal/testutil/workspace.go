// Package testutil provides helpers for creating temporary taskweave
// workspaces for end-to-end testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Workspace is a builder for temporary directories shaped like a taskweave
// project: a working directory, an optional enclosing git repository, and
// .taskweave configuration files.
type Workspace struct {
	t    testing.TB
	path string
	repo *gogit.Repository
	time time.Time
}

// NewWorkspace creates an empty workspace in a temporary directory.
func NewWorkspace(t testing.TB) *Workspace {
	t.Helper()
	return &Workspace{
		t:    t,
		path: t.TempDir(),
		time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// NewGitWorkspace creates a workspace inside an initialized git repository
// with one commit, so project-root discovery resolves to it.
func NewGitWorkspace(t testing.TB) *Workspace {
	t.Helper()
	ws := NewWorkspace(t)

	repo, err := gogit.PlainInit(ws.path, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	ws.repo = repo
	ws.Commit("initial")
	return ws
}

// Path returns the workspace root directory.
func (w *Workspace) Path() string {
	return w.path
}

// Subdir creates (if needed) and returns a directory under the workspace
// root. rel uses forward slashes.
func (w *Workspace) Subdir(rel string) string {
	w.t.Helper()
	dir := filepath.Join(w.path, filepath.FromSlash(rel))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.t.Fatalf("creating %s: %v", rel, err)
	}
	return dir
}

// WriteFile writes content to rel under the workspace root, creating parent
// directories as needed.
func (w *Workspace) WriteFile(rel, content string) string {
	w.t.Helper()
	path := filepath.Join(w.path, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.t.Fatalf("creating parent of %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		w.t.Fatalf("writing %s: %v", rel, err)
	}
	return path
}

// WriteAppConfig writes .taskweave/app.yml in the workspace root.
func (w *Workspace) WriteAppConfig(content string) {
	w.t.Helper()
	w.WriteFile(".taskweave/app.yml", content)
}

// WriteUserConfig writes .taskweave/user.yml in the workspace root.
func (w *Workspace) WriteUserConfig(content string) {
	w.t.Helper()
	w.WriteFile(".taskweave/user.yml", content)
}

// WriteProfile writes .taskweave/profiles/<name>-app.yml in the workspace
// root.
func (w *Workspace) WriteProfile(name, content string) {
	w.t.Helper()
	w.WriteFile(".taskweave/profiles/"+name+"-app.yml", content)
}

// Commit stages everything and creates a commit. Requires a git workspace.
func (w *Workspace) Commit(message string) string {
	w.t.Helper()
	if w.repo == nil {
		w.t.Fatalf("workspace has no git repository")
	}
	w.time = w.time.Add(time.Minute)

	wt, err := w.repo.Worktree()
	if err != nil {
		w.t.Fatalf("getting worktree: %v", err)
	}

	// An empty tree cannot be committed; make sure something is staged.
	marker := ".taskweave-marker"
	if err := os.WriteFile(filepath.Join(w.path, marker), []byte(message), 0o644); err != nil {
		w.t.Fatalf("writing marker: %v", err)
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		w.t.Fatalf("staging files: %v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  w.time,
		},
	})
	if err != nil {
		w.t.Fatalf("committing: %v", err)
	}
	return hash.String()
}
