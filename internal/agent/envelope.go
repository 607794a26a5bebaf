package agent

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned by Unwrap when text was not produced by Wrap.
var ErrMalformed = errors.New("malformed envelope")

// Envelope wraps a document in an agent-specific container. Unwrap(Wrap(x))
// returns x exactly.
type Envelope interface {
	Wrap(doc string) string
	Unwrap(text string) (string, error)
}

// Bounded is implemented by envelopes whose generated region can be located
// inside a file that also holds user content.
type Bounded interface {
	// Bounds returns the first line of wrapped output and the closing line.
	Bounds() (first, end string)
}

// Block places a document between a begin and an end line, after optional
// header comment lines.
type Block struct {
	Header []string
	Begin  string
	End    string
}

// Markers builds a block delimited by HTML comment sentinels.
func Markers(header []string, begin, end string) Block {
	return Block{Header: header, Begin: "<!-- " + begin + " -->", End: "<!-- " + end + " -->"}
}

// Tag builds a block delimited by an XML-style tag.
func Tag(header []string, name string) Block {
	return Block{Header: header, Begin: "<" + name + ">", End: "</" + name + ">"}
}

func (b Block) prefix() string {
	if len(b.Header) == 0 {
		return b.Begin + "\n"
	}
	return strings.Join(b.Header, "\n") + "\n\n" + b.Begin + "\n"
}

func (b Block) suffix() string {
	return "\n" + b.End + "\n"
}

func (b Block) Wrap(doc string) string {
	return b.prefix() + doc + b.suffix()
}

func (b Block) Unwrap(text string) (string, error) {
	pre, suf := b.prefix(), b.suffix()
	if len(text) < len(pre)+len(suf) || !strings.HasPrefix(text, pre) || !strings.HasSuffix(text, suf) {
		return "", fmt.Errorf("%w: missing %s ... %s", ErrMalformed, b.Begin, b.End)
	}
	return text[len(pre) : len(text)-len(suf)], nil
}

func (b Block) Bounds() (string, string) {
	first, _, _ := strings.Cut(b.prefix(), "\n")
	return first, b.End
}

// Field is one frontmatter key and value. Value is a string or a bool.
type Field struct {
	Key   string
	Value any
}

// Frontmatter places a YAML header before the document.
type Frontmatter struct {
	Fields []Field
}

func (f Frontmatter) prefix() string {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, fld := range f.Fields {
		value := &yaml.Node{Kind: yaml.ScalarNode}
		switch v := fld.Value.(type) {
		case bool:
			value.Tag = "!!bool"
			value.Value = fmt.Sprint(v)
		default:
			value.Tag = "!!str"
			value.Style = yaml.DoubleQuotedStyle
			value.Value = fmt.Sprint(v)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: fld.Key}, value)
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		// Scalar-only mappings always encode.
		panic(err)
	}
	return "---\n" + string(out) + "---\n\n"
}

func (f Frontmatter) Wrap(doc string) string {
	return f.prefix() + doc
}

func (f Frontmatter) Unwrap(text string) (string, error) {
	pre := f.prefix()
	if !strings.HasPrefix(text, pre) {
		return "", fmt.Errorf("%w: frontmatter does not match", ErrMalformed)
	}
	return text[len(pre):], nil
}

// Generated returns the standard header lines naming the generating command.
func Generated(display, command string) []string {
	return []string{
		"<!-- Generated by promptctl: " + display + " -->",
		"<!-- Regenerate: " + command + " -->",
	}
}
