package xmlcomment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetGetComment = `
<summary>
Gets a widget by id. Uses <see cref="T:Widgets.Store"/> internally.
</summary>
<param name="id">The widget id.</param>
<param name="id">ignored duplicate</param>
<param name="">skipped, no key</param>
<typeparam name="T">Element type.</typeparam>
<returns>The widget.</returns>
<remarks>
<para>Extra detail.</para>
</remarks>
<exception cref="T:System.ArgumentNullException">id is null.</exception>
<exception cref="NotAnId">dropped entirely</exception>
<example>
<code language="cs">
var w = store.Get(1);
</code>
</example>
<see cref="T:Widgets.Store"/>
<seealso cref="M:Widgets.Store.Get(System.Int32)">Get</seealso>
<seealso cref="!:http://example.com">external link</seealso>
`

func TestParseFullComment(t *testing.T) {
	logger, recorded := testLogger(t)
	var refs []string
	c := Parse(widgetGetComment, &Context{
		Source:         "widgets.xml",
		Name:           "M:Widgets.Store.Get(System.Int32)",
		Logger:         logger,
		OnCrefResolved: func(id string) { refs = append(refs, id) },
	})
	require.NotNil(t, c)

	assert.Contains(t, c.Summary, "Gets a widget by id.")
	assert.Contains(t, c.Summary, `<xref href="Widgets.Store" data-throw-if-not-resolved="false"/>`)
	assert.NotContains(t, c.Summary, "cref")

	require.Equal(t, []NamedText{{Name: "id", Text: "The widget id."}}, c.Parameters)
	require.Equal(t, []NamedText{{Name: "T", Text: "Element type."}}, c.TypeParameters)
	assert.Equal(t, "The widget.", c.Returns)
	assert.Contains(t, c.Remarks, "<para>Extra detail.</para>")

	require.Len(t, c.Exceptions, 1)
	assert.Equal(t, CrefInfo{
		ID:          "System.ArgumentNullException",
		CommentID:   "T:System.ArgumentNullException",
		Kind:        KindType,
		Description: "id is null.",
	}, c.Exceptions[0])

	require.Len(t, c.Sees, 1)
	assert.Equal(t, "Widgets.Store", c.Sees[0].ID)
	assert.Equal(t, KindType, c.Sees[0].Kind)

	require.Len(t, c.SeeAlsos, 1)
	assert.Equal(t, "Widgets.Store.Get(System.Int32)", c.SeeAlsos[0].ID)
	assert.Equal(t, KindMethod, c.SeeAlsos[0].Kind)
	assert.Equal(t, "Get", c.SeeAlsos[0].Description)

	require.Len(t, c.Examples, 1)
	assert.Contains(t, c.Examples[0], `<code language="cs">var w = store.Get(1);</code>`)

	// seealso elements resolve before see elements; every occurrence reports.
	assert.Equal(t, []string{"Widgets.Store.Get(System.Int32)", "Widgets.Store", "Widgets.Store"}, refs)

	// One duplicate-param warning, one invalid-seealso warning. The invalid
	// exception cref is dropped without a diagnostic.
	warnings := recorded.warnings()
	require.Len(t, warnings, 2)
}

func TestParseDuplicateParamKeepsFirst(t *testing.T) {
	logger, recorded := testLogger(t)
	c := Parse(`<param name="x">first</param><param name="x">second</param>`, &Context{Logger: logger})
	require.NotNil(t, c)

	text, ok := c.Parameter("x")
	require.True(t, ok)
	assert.Equal(t, "first", text)
	require.Len(t, recorded.warnings(), 1)
	attrs := recordAttrs(recorded.warnings()[0])
	assert.Equal(t, "x", attrs["key"])
	assert.Equal(t, "param", attrs["element"])
}

func TestParseFirstSummaryWins(t *testing.T) {
	logger, _ := testLogger(t)
	c := Parse(`<summary>first</summary><summary>second</summary>`, &Context{Logger: logger})
	require.NotNil(t, c)
	assert.Equal(t, "first", c.Summary)
}

func TestParseDecodesEntitiesOnce(t *testing.T) {
	logger, _ := testLogger(t)
	c := Parse(`<summary>Writes &lt;b&gt; and &amp;lt;i&amp;gt; tags.</summary>`, &Context{Logger: logger})
	require.NotNil(t, c)
	assert.Equal(t, "Writes <b> and &lt;i&gt; tags.", c.Summary)
}

func TestParsePreserveRawCrefs(t *testing.T) {
	logger, _ := testLogger(t)
	called := false
	c := Parse(widgetGetComment, &Context{
		Logger:           logger,
		PreserveRawCrefs: true,
		OnCrefResolved:   func(string) { called = true },
	})
	require.NotNil(t, c)
	assert.Contains(t, c.Summary, `<see cref="T:Widgets.Store"/>`)
	assert.NotContains(t, c.Summary, "xref")
	assert.False(t, called)
	require.Len(t, c.Sees, 1)
	require.Len(t, c.SeeAlsos, 1)
}

func TestParseEmptyInput(t *testing.T) {
	logger, recorded := testLogger(t)
	assert.Nil(t, Parse("", &Context{Logger: logger}))
	assert.Nil(t, Parse("   \n\t", &Context{Logger: logger}))
	assert.Empty(t, recorded.warnings())
}

func TestParseBadCommentSentinel(t *testing.T) {
	logger, recorded := testLogger(t)
	c := Parse(`<!-- Badly formed XML comment ignored for member "M:Widgets.Store.Get(System.Int32)" -->`, &Context{
		Logger: logger,
		Name:   "M:Widgets.Store.Get(System.Int32)",
	})
	assert.Nil(t, c)
	require.Len(t, recorded.warnings(), 1)
}

func TestParseUnparsableMarkup(t *testing.T) {
	logger, recorded := testLogger(t)
	assert.Nil(t, Parse("<summary>unclosed", &Context{Logger: logger}))
	require.Len(t, recorded.warnings(), 1)
}

func TestParseNilContext(t *testing.T) {
	c := Parse(`<summary>hello</summary>`, nil)
	require.NotNil(t, c)
	assert.Equal(t, "hello", c.Summary)
}

func TestParseAbsentListsStayNil(t *testing.T) {
	logger, _ := testLogger(t)
	c := Parse(`<summary>only a summary</summary>`, &Context{Logger: logger})
	require.NotNil(t, c)
	assert.Nil(t, c.Exceptions)
	assert.Nil(t, c.Sees)
	assert.Nil(t, c.SeeAlsos)
	assert.Nil(t, c.Examples)
	assert.Nil(t, c.Parameters)
	assert.Equal(t, "", c.Remarks)
}

func TestParseSelfClosingSummary(t *testing.T) {
	logger, recorded := testLogger(t)
	c := Parse(`<summary/>`, &Context{Logger: logger})
	require.NotNil(t, c)
	assert.Equal(t, "", c.Summary)
	assert.Empty(t, recorded.warnings())
}

func TestParseDeepIndentation(t *testing.T) {
	logger, _ := testLogger(t)
	indented := strings.ReplaceAll(widgetGetComment, "\n", "\n        ")
	c := Parse(indented, &Context{Logger: logger})
	require.NotNil(t, c)
	assert.Contains(t, c.Summary, "\nGets a widget by id.")
}
