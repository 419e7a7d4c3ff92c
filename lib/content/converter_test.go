package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertStarterKitDocument(t *testing.T) {
	doc := `{
		"type": "doc",
		"content": [
			{"type": "heading", "attrs": {"level": 2}, "content": [{"type": "text", "text": "Chapter One"}]},
			{"type": "paragraph", "content": [
				{"type": "text", "text": "Hello "},
				{"type": "text", "text": "world", "marks": [{"type": "bold"}, {"type": "italic"}]},
				{"type": "hardBreak"},
				{"type": "text", "text": "a < b"}
			]},
			{"type": "bulletList", "content": [
				{"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "one"}]}]}
			]},
			{"type": "orderedList", "attrs": {"start": 3}, "content": [
				{"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "three"}]}]}
			]},
			{"type": "codeBlock", "attrs": {"language": "go"}, "content": [{"type": "text", "text": "x := 1"}]},
			{"type": "horizontalRule"}
		]
	}`

	out, err := NewConverter().Convert([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t,
		`<h2>Chapter One</h2>`+
			`<p>Hello <strong><em>world</em></strong><br>a &lt; b</p>`+
			`<ul><li><p>one</p></li></ul>`+
			`<ol start="3"><li><p>three</p></li></ol>`+
			`<pre><code class="language-go">x := 1</code></pre>`+
			`<hr>`,
		out.HTML)
	assert.Equal(t, "Chapter One Hello world a < b one three x := 1", out.Text)
}

func TestConvertDropsUnsafeLinks(t *testing.T) {
	doc := `{"type":"doc","content":[{"type":"paragraph","content":[
		{"type":"text","text":"ok","marks":[{"type":"link","attrs":{"href":"https://example.com/?a=1&b=2"}}]},
		{"type":"text","text":"bad","marks":[{"type":"link","attrs":{"href":"javascript:alert(1)"}}]}
	]}]}`

	out, err := NewConverter().Convert([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t,
		`<p><a href="https://example.com/?a=1&amp;b=2" rel="noopener noreferrer nofollow">ok</a>bad</p>`,
		out.HTML)
}

func TestConvertUnknownNodesRenderChildren(t *testing.T) {
	out, err := NewConverter().Convert([]byte(`{"type":"doc","content":[{"type":"callout","content":[{"type":"text","text":"inside"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "inside", out.HTML)
	assert.Equal(t, "inside", out.Text)
}

func TestConvertRejectsNonObjects(t *testing.T) {
	for _, in := range []string{``, `null`, `"text"`, `[1,2]`, `{"type":`} {
		_, err := NewConverter().Convert([]byte(in))
		assert.ErrorIs(t, err, ErrInvalidDocument, "input %q", in)
	}
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Hello world", PlainText("<p>  Hello\n\n</p><p>world </p>"))
	assert.Equal(t, "", PlainText(""))
	assert.Equal(t, "a & b", PlainText("<p>a &amp; b</p>"))
}
