package lore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldmark(t *testing.T) {
	src := []byte("# Title\n\nSome *text* and ~~gone~~.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<div class=\"raw\">kept</div>\n")
	out, err := NewGoldmark("").Convert(context.Background(), src)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, `<h1 id="title">Title</h1>`)
	assert.Contains(t, html, "<em>text</em>")
	assert.Contains(t, html, "<del>gone</del>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, `<div class="raw">kept</div>`)
}

func TestGoldmarkHighlighting(t *testing.T) {
	src := []byte("```go\npackage main\n```\n")

	plain, err := NewGoldmark("").Convert(context.Background(), src)
	require.NoError(t, err)
	assert.Contains(t, string(plain), `<code class="language-go">`)

	styled, err := NewGoldmark("monokai").Convert(context.Background(), src)
	require.NoError(t, err)
	assert.Contains(t, string(styled), `style="`)
	assert.NotContains(t, string(styled), `class="language-go"`)
}

func TestGoldmarkCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGoldmark("").Convert(ctx, []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewConverter(t *testing.T) {
	c, err := NewConverter("", "")
	require.NoError(t, err)
	assert.IsType(t, &Goldmark{}, c)

	c, err = NewConverter(EnginePandoc, "")
	require.NoError(t, err)
	assert.IsType(t, &Pandoc{}, c)

	_, err = NewConverter("blackfriday", "")
	assert.Error(t, err)
}

func TestPandocMissingBinary(t *testing.T) {
	p := &Pandoc{Path: filepath.Join(t.TempDir(), "no-pandoc")}
	_, err := p.Convert(context.Background(), []byte("# hi"))
	assert.Error(t, err)
}

func TestStripFirstH1(t *testing.T) {
	sample := []struct {
		in, out string
	}{
		{`<h1 id="a">A</h1>` + "\n<p>body</p>", "<p>body</p>"},
		{"<p>intro</p>\n<h1>A</h1>\n<h1>B</h1>", "<p>intro</p>\n<h1>B</h1>"},
		{"<h1 class=\"x\">multi\nline</h1><p>b</p>", "<p>b</p>"},
		{"<h2>not me</h2>", "<h2>not me</h2>"},
		{"", ""},
	}
	for _, v := range sample {
		assert.Equal(t, v.out, string(StripFirstH1([]byte(v.in))), v.in)
	}
}
