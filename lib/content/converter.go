package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	nethtml "golang.org/x/net/html"
)

// ErrInvalidDocument is returned when the input is not a JSON document object
var ErrInvalidDocument = errors.New("content must be a JSON document object")

// Rendered holds the derived representations of a structured document
type Rendered struct {
	HTML string
	Text string
}

// Converter turns editor documents into hypertext and plain text
type Converter interface {
	Convert(doc []byte) (Rendered, error)
}

// Node is one node of an editor (ProseMirror/TipTap) document
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Mark is an inline formatting annotation on a text node
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// DocumentConverter renders the StarterKit node set
type DocumentConverter struct{}

// NewConverter creates the default document converter
func NewConverter() *DocumentConverter {
	return &DocumentConverter{}
}

// Convert parses doc and renders its HTML and plain-text forms
func (c *DocumentConverter) Convert(doc []byte) (Rendered, error) {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Rendered{}, ErrInvalidDocument
	}

	var root Node
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return Rendered{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var b strings.Builder
	renderNode(&b, root)
	out := b.String()
	return Rendered{HTML: out, Text: PlainText(out)}, nil
}

var blockTags = map[string]string{
	"paragraph":  "p",
	"blockquote": "blockquote",
	"bulletList": "ul",
	"listItem":   "li",
}

func renderNode(b *strings.Builder, n Node) {
	switch n.Type {
	case "text":
		renderText(b, n)
	case "hardBreak":
		b.WriteString("<br>")
	case "horizontalRule":
		b.WriteString("<hr>")
	case "heading":
		level := intAttr(n.Attrs, "level", 1)
		if level < 1 || level > 6 {
			level = 1
		}
		tag := "h" + strconv.Itoa(level)
		b.WriteString("<" + tag + ">")
		renderChildren(b, n)
		b.WriteString("</" + tag + ">")
	case "orderedList":
		start := intAttr(n.Attrs, "start", 1)
		if start != 1 {
			b.WriteString(`<ol start="` + strconv.Itoa(start) + `">`)
		} else {
			b.WriteString("<ol>")
		}
		renderChildren(b, n)
		b.WriteString("</ol>")
	case "codeBlock":
		if lang, ok := n.Attrs["language"].(string); ok && lang != "" {
			b.WriteString(`<pre><code class="language-` + html.EscapeString(lang) + `">`)
		} else {
			b.WriteString("<pre><code>")
		}
		renderChildren(b, n)
		b.WriteString("</code></pre>")
	default:
		tag, ok := blockTags[n.Type]
		if !ok {
			// doc and unknown nodes render their children only
			renderChildren(b, n)
			return
		}
		b.WriteString("<" + tag + ">")
		renderChildren(b, n)
		b.WriteString("</" + tag + ">")
	}
}

func renderChildren(b *strings.Builder, n Node) {
	for _, child := range n.Content {
		renderNode(b, child)
	}
}

func renderText(b *strings.Builder, n Node) {
	closers := make([]string, 0, len(n.Marks))
	for _, m := range n.Marks {
		open, end := markTags(m)
		if open == "" {
			continue
		}
		b.WriteString(open)
		closers = append(closers, end)
	}
	b.WriteString(html.EscapeString(n.Text))
	for i := len(closers) - 1; i >= 0; i-- {
		b.WriteString(closers[i])
	}
}

func markTags(m Mark) (string, string) {
	switch m.Type {
	case "bold":
		return "<strong>", "</strong>"
	case "italic":
		return "<em>", "</em>"
	case "strike":
		return "<s>", "</s>"
	case "underline":
		return "<u>", "</u>"
	case "code":
		return "<code>", "</code>"
	case "link":
		href, _ := m.Attrs["href"].(string)
		if !safeHref(href) {
			return "", ""
		}
		return `<a href="` + html.EscapeString(href) + `" rel="noopener noreferrer nofollow">`, "</a>"
	default:
		return "", ""
	}
}

// safeHref only lets through web and mail links
func safeHref(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "mailto:")
}

func intAttr(attrs map[string]any, key string, fallback int) int {
	switch v := attrs[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// PlainText extracts the visible text of an HTML fragment, with every run of
// whitespace and every tag boundary collapsed to a single space.
func PlainText(fragment string) string {
	z := nethtml.NewTokenizer(strings.NewReader(fragment))
	var parts []string
	for {
		switch z.Next() {
		case nethtml.ErrorToken:
			// io.EOF or a malformed tail; either way keep what was read
			return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
		case nethtml.TextToken:
			parts = append(parts, string(z.Text()))
		}
	}
}
