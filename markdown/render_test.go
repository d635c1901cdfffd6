package markdown

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentflare-ai/go-xmldoc/xmlcomment"
)

func TestMarkupParagraphs(t *testing.T) {
	r := NewRenderer(Options{})
	assert.Equal(t, "one\n\ntwo", r.Markup("<para>one</para><para>two</para>"))
}

func TestMarkupInlineStyles(t *testing.T) {
	r := NewRenderer(Options{})
	got := r.Markup("make <b>bold</b> and <i>slanted</i> and <c>x + 1</c>")
	assert.Equal(t, "make **bold** and *slanted* and `x + 1`", got)
}

func TestMarkupCodeBlock(t *testing.T) {
	r := NewRenderer(Options{})
	assert.Equal(t, "```cs\nvar x = 1;\n```", r.Markup(`<code language="cs">var x = 1;</code>`))
	assert.Equal(t, "```\nvar x = 1;\n```", r.Markup("<code>var x = 1;</code>"))
}

func TestMarkupXref(t *testing.T) {
	resolver := func(id string) (string, string, bool) {
		if id == "Widgets.Store" {
			return "Store", "store.md", true
		}
		return "", "", false
	}
	linked := NewRenderer(Options{ResolveXref: resolver})
	got := linked.Markup(`see <xref href="Widgets.Store" data-throw-if-not-resolved="false"/> now`)
	assert.Equal(t, "see [Store](store.md) now", got)

	plain := NewRenderer(Options{})
	got = plain.Markup(`see <xref href="Widgets.Store" data-throw-if-not-resolved="false"/> now`)
	assert.Equal(t, "see `Widgets.Store` now", got)
}

func TestMarkupSeeVariants(t *testing.T) {
	r := NewRenderer(Options{})
	assert.Equal(t, "`Foo`", r.Markup(`<see cref="T:Foo"/>`))
	assert.Equal(t, "`null`", r.Markup(`<see langword="null"/>`))
	assert.Equal(t, "", r.Markup(`<see cref="not an id"/>`))
}

func TestMarkupParamref(t *testing.T) {
	r := NewRenderer(Options{})
	assert.Equal(t, "use *id* with *T*", r.Markup(`use <paramref name="id"/> with <typeparamref name="T"/>`))
}

func TestMarkupBulletList(t *testing.T) {
	r := NewRenderer(Options{})
	got := r.Markup(`<list type="bullet"><item><term>A</term><description>first</description></item><item><description>second</description></item></list>`)
	assert.Equal(t, "- **A**: first\n- second", got)
}

func TestMarkupNumberedList(t *testing.T) {
	r := NewRenderer(Options{})
	got := r.Markup(`<list type="number"><item><description>one</description></item><item><description>two</description></item></list>`)
	assert.Equal(t, "1. one\n2. two", got)
}

func TestMarkupTableList(t *testing.T) {
	r := NewRenderer(Options{})
	got := r.Markup(`<list type="table"><listheader><term>Key</term><description>Meaning</description></listheader><item><term>x</term><description>why</description></item></list>`)
	assert.Equal(t, "| Key | Meaning |\n| --- | --- |\n| x | why |", got)
}

func TestMarkupFallsBackOnLiteralAngles(t *testing.T) {
	r := NewRenderer(Options{})
	assert.Equal(t, "a < b", r.Markup("  a < b\n"))
}

func TestMarkupFlattensUnknownElements(t *testing.T) {
	r := NewRenderer(Options{})
	assert.Equal(t, "inner text", r.Markup("<note>inner text</note>"))
}

func TestMarkupEmpty(t *testing.T) {
	r := NewRenderer(Options{})
	assert.Equal(t, "", r.Markup(""))
	assert.Equal(t, "", r.Markup("  \n  "))
}

func TestRenderFullMember(t *testing.T) {
	c := &xmlcomment.Comment{
		Summary: "Gets things.",
		Returns: "A thing.",
		Remarks: "<para>Careful.</para>",
		Parameters: []xmlcomment.NamedText{
			{Name: "id", Text: "The id."},
		},
		TypeParameters: []xmlcomment.NamedText{
			{Name: "T", Text: "Element type."},
		},
		Exceptions: []xmlcomment.CrefInfo{
			{ID: "System.ArgumentNullException", Description: "when nil"},
		},
		Examples: []string{"<code>x()</code>"},
		Sees:     []xmlcomment.CrefInfo{{ID: "Widgets.Store"}},
		SeeAlsos: []xmlcomment.CrefInfo{{ID: "Widgets.Cache", Description: "cache layer"}},
	}

	var buf bytes.Buffer
	NewRenderer(Options{}).Render(&buf, "Widgets.Store.Get(int)", c)
	out := buf.String()

	assert.Contains(t, out, "## Widgets.Store.Get(int)\n\nGets things.\n\n")
	assert.Contains(t, out, "### Type Parameters\n\n| Name | Description |\n| --- | --- |\n| `T` | Element type. |\n")
	assert.Contains(t, out, "### Parameters\n\n| Name | Description |\n| --- | --- |\n| `id` | The id. |\n")
	assert.Contains(t, out, "### Returns\n\nA thing.\n\n")
	assert.Contains(t, out, "### Remarks\n\nCareful.\n\n")
	assert.Contains(t, out, "### Exceptions\n\n- `System.ArgumentNullException` — when nil\n")
	assert.Contains(t, out, "### Examples\n\n```\nx()\n```\n\n")
	assert.Contains(t, out, "### See Also\n\n- `Widgets.Store`\n- `Widgets.Cache` — cache layer\n")
}

func TestRenderEmptyComment(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(Options{}).Render(&buf, "Widgets.Store", &xmlcomment.Comment{})
	assert.Equal(t, "## Widgets.Store\n\n", buf.String())
}

func TestRenderHeadingLevel(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(Options{HeadingLevel: 3}).Render(&buf, "Widgets.Store", &xmlcomment.Comment{Returns: "x"})
	out := buf.String()
	assert.Contains(t, out, "### Widgets.Store\n")
	assert.Contains(t, out, "#### Returns\n")
}

func TestTableCellEscapesPipes(t *testing.T) {
	assert.Equal(t, `a \| b`, tableCell("a | b"))
}
