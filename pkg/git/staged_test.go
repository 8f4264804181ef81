package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestStagedFiles(t *testing.T) {
	repoDir := t.TempDir()

	repo, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	writeFile(t, repoDir, "a.txt", "committed\n")
	writeFile(t, repoDir, "d.txt", "committed\n")
	_, err = worktree.Add("a.txt")
	require.NoError(t, err)
	_, err = worktree.Add("d.txt")
	require.NoError(t, err)
	_, err = worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	// Staged: a new file, a nested new file and a deletion
	writeFile(t, repoDir, "b.txt", "api_key = 1\n")
	writeFile(t, repoDir, "sub/e.txt", "new\n")
	_, err = worktree.Add("b.txt")
	require.NoError(t, err)
	_, err = worktree.Add("sub/e.txt")
	require.NoError(t, err)
	_, err = worktree.Remove("a.txt")
	require.NoError(t, err)

	// Not staged: an untracked file and an unstaged modification
	writeFile(t, repoDir, "c.txt", "untracked\n")
	writeFile(t, repoDir, "d.txt", "changed but not added\n")

	t.Run("FromRoot", func(t *testing.T) {
		staged, err := StagedFiles(repoDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "b.txt", "sub/e.txt"}, staged.Paths)

		data, err := os.ReadFile(filepath.Join(staged.Root, "b.txt"))
		require.NoError(t, err)
		assert.Equal(t, "api_key = 1\n", string(data))
	})

	t.Run("FromSubdirectory", func(t *testing.T) {
		staged, err := StagedFiles(filepath.Join(repoDir, "sub"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "b.txt", "sub/e.txt"}, staged.Paths)
	})

	t.Run("NothingStaged", func(t *testing.T) {
		emptyDir := t.TempDir()
		_, err := git.PlainInit(emptyDir, false)
		require.NoError(t, err)

		staged, err := StagedFiles(emptyDir)
		require.NoError(t, err)
		assert.Empty(t, staged.Paths)
	})
}

func TestStagedFilesNotARepo(t *testing.T) {
	staged, err := StagedFiles(t.TempDir())
	assert.Nil(t, staged)
	assert.ErrorContains(t, err, "could not open repository")
}
