package lore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

var (
	//ErrInvalidFront is returned when a front matter block is present but can
	// not be decoded. The body returned alongside it is the whole document.
	ErrInvalidFront = errors.New("invalid front matter")

	defaultDelim = "---"
	jsonDelim    = "+++"
)

type (
	//HandlerFunc decodes the text of a front matter block.
	HandlerFunc func(string) (map[string]interface{}, error)
)

//Matter splits documents into front matter and body.
type Matter struct {
	handlers map[string]HandlerFunc
}

func newMatter() *Matter {
	return &Matter{handlers: make(map[string]HandlerFunc)}
}

//NewYAML returns a Matter that understands yaml front matter. The default
// delimiter is ---
func NewYAML(opts ...string) *Matter {
	delim := defaultDelim
	if len(opts) > 0 {
		delim = opts[0]
	}
	m := newMatter()
	m.Handle(delim, YAMLHandler)
	return m
}

//NewJSON returns a Matter that understands json front matter. The default
// delimiter is +++
func NewJSON(opts ...string) *Matter {
	delim := jsonDelim
	if len(opts) > 0 {
		delim = opts[0]
	}
	m := newMatter()
	m.Handle(delim, JSONHandler)
	return m
}

//Handle registers a handler for the given frontmatter delimiter
func (m *Matter) Handle(delim string, fn HandlerFunc) {
	m.handlers[delim] = fn
}

// Parse splits input into its front matter and body. A document that does
// not open with a known delimiter, or never closes it, has an empty front
// matter and is returned whole as the body.
func (m *Matter) Parse(input io.Reader) (front map[string]interface{}, body io.Reader, err error) {
	data, err := ioutil.ReadAll(input)
	if err != nil {
		return nil, nil, err
	}
	delim, text, rest, ok := m.split(data)
	if !ok {
		return map[string]interface{}{}, bytes.NewReader(data), nil
	}
	front, err = m.handlers[delim](text)
	if err != nil {
		return nil, bytes.NewReader(data), fmt.Errorf("%w: %v", ErrInvalidFront, err)
	}
	if front == nil {
		front = map[string]interface{}{}
	}
	return front, bytes.NewReader(rest), nil
}

func (m *Matter) split(data []byte) (delim, front string, body []byte, ok bool) {
	for d := range m.handlers {
		if !bytes.HasPrefix(data, []byte(d)) {
			continue
		}
		open := bytes.IndexByte(data, '\n')
		if open < 0 || len(bytes.TrimSpace(data[len(d):open])) != 0 {
			continue
		}
		closing := bytes.Index(data[open:], []byte("\n"+d))
		if closing < 0 {
			continue
		}
		closing += open
		after := closing + 1 + len(d)
		if nl := bytes.IndexByte(data[after:], '\n'); nl >= 0 {
			after += nl + 1
		} else {
			after = len(data)
		}
		if closing > open {
			front = string(data[open+1 : closing])
		}
		return d, front, bytes.TrimSpace(data[after:]), true
	}
	return "", "", nil, false
}

//JSONHandler decodes front matter text as a json object.
func JSONHandler(front string) (map[string]interface{}, error) {
	var rst map[string]interface{}
	err := json.Unmarshal([]byte(front), &rst)
	if err != nil {
		return nil, err
	}
	return rst, nil
}

//YAMLHandler decodes front matter text as a yaml mapping.
func YAMLHandler(front string) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	err := yaml.Unmarshal([]byte(front), out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
