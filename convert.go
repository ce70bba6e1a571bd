package lore

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

const (
	EngineGoldmark = "goldmark"
	EnginePandoc   = "pandoc"
)

// Converter turns a markdown body into an html fragment.
type Converter interface {
	Convert(ctx context.Context, src []byte) ([]byte, error)
}

// NewConverter returns the converter for engine.
func NewConverter(engine, codeStyle string) (Converter, error) {
	switch engine {
	case "", EngineGoldmark:
		return NewGoldmark(codeStyle), nil
	case EnginePandoc:
		return &Pandoc{}, nil
	}
	return nil, fmt.Errorf("unknown markdown engine %q", engine)
}

// Goldmark converts markdown in process.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark returns a github flavoured converter. Code blocks are
// highlighted server side when codeStyle names a chroma style, otherwise
// they are left for a client side highlighter.
func NewGoldmark(codeStyle string) *Goldmark {
	ext := []goldmark.Extender{extension.GFM, extension.Footnote}
	if codeStyle != "" {
		ext = append(ext, highlighting.NewHighlighting(highlighting.WithStyle(codeStyle)))
	}
	return &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(ext...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
	}
}

func (g *Goldmark) Convert(ctx context.Context, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := g.md.Convert(src, &buf); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

// Pandoc shells out to the pandoc binary.
type Pandoc struct {
	// Path of the binary, "pandoc" from PATH when empty.
	Path string
}

func (p *Pandoc) Convert(ctx context.Context, src []byte) ([]byte, error) {
	bin := p.Path
	if bin == "" {
		bin = "pandoc"
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-f", "markdown", "-t", "html")
	cmd.Stdin = bytes.NewReader(src)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", bin, err, msg)
		}
		return nil, fmt.Errorf("running %s: %w", bin, err)
	}
	return bytes.TrimSpace(stdout.Bytes()), nil
}

var firstH1 = regexp.MustCompile(`(?s)<h1[^>]*>.*?</h1>\s*`)

// StripFirstH1 drops the first level one heading of a converted fragment,
// the page header already shows the title.
func StripFirstH1(html []byte) []byte {
	loc := firstH1.FindIndex(html)
	if loc == nil {
		return html
	}
	out := make([]byte, 0, len(html)-(loc[1]-loc[0]))
	out = append(out, html[:loc[0]]...)
	return append(out, html[loc[1]:]...)
}
