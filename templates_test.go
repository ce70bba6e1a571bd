package lore

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplatesBuiltin(t *testing.T) {
	tpl, err := loadTemplates(t.TempDir(), "")
	require.NoError(t, err)
	assert.NotNil(t, tpl.Lookup(DefaultTpl.Post))
	assert.NotNil(t, tpl.Lookup(DefaultTpl.Travel))
}

func TestLoadTemplatesTheme(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ThemeDir, "plain")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "post.html"), []byte("plain {{.Post.Title}}"), 0644))

	tpl, err := loadTemplates(root, "plain")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tpl.ExecuteTemplate(&buf, DefaultTpl.Post, map[string]interface{}{"Post": &Post{Title: "x"}}))
	assert.Equal(t, "plain x", buf.String())
	assert.NotNil(t, tpl.Lookup(DefaultTpl.Travel))
}

func TestLoadTemplatesMissingTheme(t *testing.T) {
	_, err := loadTemplates(t.TempDir(), "gone")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
