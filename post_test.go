package lore

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertPost(t *testing.T) {
	root := sampleSite(t)
	r := renderer(t, root)

	src := filepath.Join(root, "posts", "2024-05-25", "hello.md")
	out, err := r.ConvertPost(context.Background(), src, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "posts", "2024-05-25", "hello.html"), out)

	b, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	html := string(b)
	assert.Contains(t, html, "<title>Hello, world</title>")
	assert.Contains(t, html, `<a href="hello.html">`)
	assert.Contains(t, html, `href="../../styles.css"`)
	assert.Contains(t, html, `<a href="https://example.com" style="color:rgb(109, 109, 109)">Sid Sharma</a>, Ada`)
	assert.Contains(t, html, "[2024-05-25]")
	assert.Contains(t, html, "the first post")
	assert.Contains(t, html, "<em>markdown</em>")
	assert.NotContains(t, html, "<h1 id=")
	assert.Contains(t, html, "sid&#39;s ramblings")
}

func TestConvertPostOutput(t *testing.T) {
	root := sampleSite(t)
	r := renderer(t, root)

	dest := filepath.Join(t.TempDir(), "custom.html")
	out, err := r.ConvertPost(context.Background(), filepath.Join(root, "notes", "scratch.md"), dest)
	require.NoError(t, err)
	assert.Equal(t, dest, out)

	b, err := ioutil.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<title>Scratch notes</title>")
	assert.Contains(t, string(b), `href="../styles.css"`)
}

func TestConvertPostMissing(t *testing.T) {
	root := sampleSite(t)
	r := renderer(t, root)
	_, err := r.ConvertPost(context.Background(), filepath.Join(root, "nope.md"), "")
	assert.Error(t, err)
}

func TestConvertPostBeforeBefore(t *testing.T) {
	_, err := NewDefaultRenderer(quiet()).ConvertPost(context.Background(), "x.md", "")
	assert.Error(t, err)
}

func TestPostDateFallbacks(t *testing.T) {
	root := sampleSite(t)
	r := renderer(t, root)
	r.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	src := filepath.Join(root, "notes", "scratch.md")
	out, err := r.ConvertPost(context.Background(), src, "")
	require.NoError(t, err)
	b, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[2025-01-02]")
	assert.Contains(t, string(b), `<a href="https://example.com" style="color:rgb(109, 109, 109)">Sid Sharma</a>`)
}

func TestPostTitle(t *testing.T) {
	assert.Equal(t, "From front", postTitle(map[string]interface{}{"title": "From front"}, []byte("# Heading")))
	assert.Equal(t, "Heading", postTitle(nil, []byte("intro\n  # Heading  \nmore")))
	assert.Equal(t, "Blog Post", postTitle(nil, []byte("## not a title\n#nope")))
}

func TestPostDate(t *testing.T) {
	now := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2020-01-01", postDate(map[string]interface{}{"date": "2020-01-01"}, "notes/2024-05-25/a.md", now))
	assert.Equal(t, "2024-05-25", postDate(nil, "notes/2024-05-25/a.md", now))
	assert.Equal(t, "2023-08-26", postDate(nil, "posts/2023-08-26-trip.md", now))
	assert.Equal(t, "2025-06-07", postDate(nil, "notes/a.md", now))
}

func TestPostAuthors(t *testing.T) {
	site := []Author{{Name: "Site Owner"}}
	assert.Equal(t, site, postAuthors(nil, site))
	assert.Equal(t, []Author{{Name: DefaultAuthor}}, postAuthors(nil, nil))
	assert.Equal(t, []Author{{Name: "Solo"}}, postAuthors(map[string]interface{}{"authors": "Solo"}, site))

	front := map[string]interface{}{"authors": []interface{}{
		map[interface{}]interface{}{"name": "A", "url": "https://a.example"},
		"B",
		map[interface{}]interface{}{"url": "https://nameless.example"},
	}}
	assert.Equal(t, []Author{{Name: "A", URL: "https://a.example"}, {Name: "B"}}, postAuthors(front, site))
	assert.Equal(t, site, postAuthors(map[string]interface{}{"authors": []interface{}{}}, site))
}

func TestCSSPath(t *testing.T) {
	root := t.TempDir()
	assert.Equal(t, ".", cssPath(root, filepath.Join(root, "index.md")))
	assert.Equal(t, "..", cssPath(root, filepath.Join(root, "travel", "a.md")))
	assert.Equal(t, "../..", cssPath(root, filepath.Join(root, "notes", "2024-05-25", "a.md")))
	assert.Equal(t, "..", cssPath(root, filepath.Join(os.TempDir(), "elsewhere", "x", "a.md")))
}
