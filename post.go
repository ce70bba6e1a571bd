package lore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/unknwon/com"
)

// Post is what the post template sees.
type Post struct {
	Title   string
	Authors []Author
	Date    string
	Summary string
	Link    string
	CSSPath string
	Content template.HTML
}

// ConvertPost converts a single markdown file. The result is written to out,
// or next to file with an .html extension when out is empty. It returns the
// path written.
func (d *DefaultRenderer) ConvertPost(ctx context.Context, file, out string) (string, error) {
	if d.config == nil {
		return "", errors.New("renderer used before Before")
	}
	if !com.IsFile(file) {
		return "", fmt.Errorf("file %s not found", file)
	}
	page, err := d.readPage(file)
	if err != nil {
		return "", err
	}
	if out == "" {
		out = withExt(file, DefaultExt)
	}
	if err := d.renderPost(ctx, page, out); err != nil {
		return "", err
	}
	return out, nil
}

func (d *DefaultRenderer) renderPost(ctx context.Context, page *Page, out string) error {
	post, err := d.newPost(ctx, page, out)
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"Site": d.config.Site,
		"Post": post,
	}
	if err := d.execute(DefaultTpl.Post, data, out); err != nil {
		return err
	}
	d.log.Info("converted", "src", page.Path, "out", out)
	d.log.Debug("post metadata", "title", post.Title, "date", post.Date,
		"authors", len(post.Authors), "html_bytes", len(post.Content))
	return nil
}

func (d *DefaultRenderer) newPost(ctx context.Context, page *Page, out string) (*Post, error) {
	html, err := d.conv.Convert(ctx, page.Body)
	if err != nil {
		return nil, err
	}
	return &Post{
		Title:   postTitle(page.Data, page.Body),
		Authors: postAuthors(page.Data, d.config.Site.Authors),
		Date:    postDate(page.Data, page.Path, d.now()),
		Summary: stringValue(page.Data["summary"]),
		Link:    filepath.Base(out),
		CSSPath: cssPath(d.root, page.Path),
		Content: template.HTML(StripFirstH1(html)),
	}, nil
}

// postTitle prefers the front matter title, then the first "# " heading.
func postTitle(front map[string]interface{}, body []byte) string {
	if t := stringValue(front["title"]); t != "" {
		return t
	}
	s := bufio.NewScanner(bytes.NewReader(body))
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return defaultTitle
}

func postAuthors(front map[string]interface{}, fallback []Author) []Author {
	if len(fallback) == 0 {
		fallback = []Author{{Name: DefaultAuthor}}
	}
	v, ok := front["authors"]
	if !ok {
		return fallback
	}
	var authors []Author
	switch x := v.(type) {
	case string:
		authors = append(authors, Author{Name: x})
	case []interface{}:
		for _, a := range x {
			switch y := a.(type) {
			case string:
				authors = append(authors, Author{Name: y})
			case map[interface{}]interface{}:
				authors = append(authors, Author{Name: stringValue(y["name"]), URL: stringValue(y["url"])})
			case map[string]interface{}:
				authors = append(authors, Author{Name: stringValue(y["name"]), URL: stringValue(y["url"])})
			}
		}
	}
	n := 0
	for _, a := range authors {
		if a.Name != "" {
			authors[n] = a
			n++
		}
	}
	if n == 0 {
		return fallback
	}
	return authors[:n]
}

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// postDate prefers the front matter date, then the first YYYY-MM-DD
// directory or file name in path, then now.
func postDate(front map[string]interface{}, path string, now time.Time) string {
	if d := stringValue(front["date"]); d != "" {
		return d
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if m := datePattern.FindString(part); m != "" {
			return m
		}
	}
	return now.Format("2006-01-02")
}

// stringValue renders a scalar front matter value.
func stringValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case time.Time:
		return x.Format("2006-01-02")
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}
