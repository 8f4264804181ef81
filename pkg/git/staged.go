package git

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"

	"github.com/leaktk/precommit/pkg/logger"
)

// Staged describes what is about to be committed
type Staged struct {
	// Root is the top of the worktree; Paths are relative to it
	Root  string
	Paths []string
}

// StagedFiles opens the repository that contains dir and lists every path
// with a change in the index (added, modified, renamed, copied or deleted),
// sorted by path. Deleted paths are kept so callers can decide to skip them.
func StagedFiles(dir string) (*Staged, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open repository: path=%q error=%q", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("could not open worktree: path=%q error=%q", dir, err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("could not read status: path=%q error=%q", dir, err)
	}

	paths := make([]string, 0, len(status))
	for path, fileStatus := range status {
		switch fileStatus.Staging {
		case git.Unmodified, git.Untracked:
			continue
		}

		paths = append(paths, filepath.ToSlash(path))
	}

	sort.Strings(paths)

	root := worktree.Filesystem.Root()
	logger.Debug("staged files: root=%q count=%d", root, len(paths))

	return &Staged{
		Root:  root,
		Paths: paths,
	}, nil
}
