// Package provenance records which git commit a scenario file came from.
package provenance

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Info describes the repository state of a scenario file. The zero Info
// means the file is not inside a git repository.
type Info struct {
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
	// Dirty reports uncommitted changes anywhere in the worktree.
	Dirty bool `json:"dirty"`
	// ConfigModified reports that the scenario file itself differs from HEAD.
	ConfigModified bool `json:"config_modified"`
}

// Tracked reports whether the file lives in a repository with at least one commit.
func (i Info) Tracked() bool { return i.Commit != "" }

// Detect inspects the repository containing path.
func Detect(path string) (Info, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Info{}, fmt.Errorf("resolve %s: %w", path, err)
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return Info{}, nil
	}
	if err != nil {
		return Info{}, fmt.Errorf("open repository: %w", err)
	}

	var info Info
	head, err := repo.Head()
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		return info, nil
	case err != nil:
		return Info{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	info.Commit = head.Hash().String()
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	wt, err := repo.Worktree()
	if err != nil {
		return Info{}, fmt.Errorf("open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return Info{}, fmt.Errorf("worktree status: %w", err)
	}
	info.Dirty = !status.IsClean()

	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		root = wt.Filesystem.Root()
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if rel, err := filepath.Rel(root, abs); err == nil {
		if fs, ok := status[filepath.ToSlash(rel)]; ok {
			info.ConfigModified = fs.Worktree != git.Unmodified || fs.Staging != git.Unmodified
		}
	}
	return info, nil
}
