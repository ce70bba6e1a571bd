package lore

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader(t *testing.T) {
	root := sampleSite(t)
	rel := func(files []string) []string {
		var out []string
		for _, f := range files {
			r, err := filepath.Rel(root, f)
			require.NoError(t, err)
			out = append(out, filepath.ToSlash(r))
		}
		return out
	}

	files, err := NewLoader().Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"notes/scratch.md",
		"posts/2024-05-25/hello.md",
		"travel/2022-remote.md",
		"travel/2023-lima.md",
		"travel/2024-kyoto.md",
		"travel/draft.md",
	}, rel(files))

	files, err = NewLoader(filepath.Join(root, "travel")).Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"notes/scratch.md", "posts/2024-05-25/hello.md"}, rel(files))
}

func TestLoaderSkipsHiddenAndUnderscore(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{
		"a.md",
		"b.markdown",
		"README.md",
		"c.txt",
		"_themes/x/page.md",
		".git/notes.md",
		"deep/down/d.mdown",
	} {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, ioutil.WriteFile(path, []byte("x"), 0644))
	}
	files, err := NewLoader().Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "b.markdown"),
		filepath.Join(root, "deep", "down", "d.mdown"),
	}, files)
}

func TestLoaderMissingRoot(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestHasExt(t *testing.T) {
	assert.True(t, HasExt("a/b.md", ".md", ".markdown"))
	assert.False(t, HasExt("a/b.md.txt", ".md"))
	assert.False(t, HasExt("a/b", ".md"))
}
