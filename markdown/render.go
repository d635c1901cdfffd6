package markdown

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/agentflare-ai/go-xmldoc/xmlcomment"
)

// XrefResolver maps a bare identifier to link text and target. When it
// reports false the identifier is rendered as inline code instead of a link;
// an unresolved reference must never fail the render.
type XrefResolver func(id string) (label, href string, ok bool)

// Options configures a Renderer.
type Options struct {
	// HeadingLevel is the heading depth used for each member section
	// (subsections sit one level deeper). Defaults to 2.
	HeadingLevel int

	// ResolveXref turns cross-reference identifiers into links. Nil renders
	// every reference as inline code.
	ResolveXref XrefResolver
}

// Renderer writes parsed comments as Markdown. A Renderer is stateless and
// safe to share across goroutines.
type Renderer struct {
	opts Options
}

func NewRenderer(opts Options) *Renderer {
	if opts.HeadingLevel <= 0 {
		opts.HeadingLevel = 2
	}
	return &Renderer{opts: opts}
}

// Render writes one member section: heading, summary, parameter tables,
// returns, remarks, exceptions, examples, and see-also links. Fields the
// comment does not carry are omitted entirely.
func (r *Renderer) Render(w io.Writer, name string, c *xmlcomment.Comment) {
	heading := strings.Repeat("#", r.opts.HeadingLevel)
	sub := heading + "#"
	fmt.Fprintf(w, "%s %s\n\n", heading, name)
	if text := r.Markup(c.Summary); text != "" {
		fmt.Fprintf(w, "%s\n\n", text)
	}
	r.renderNamedTable(w, sub, "Type Parameters", c.TypeParameters)
	r.renderNamedTable(w, sub, "Parameters", c.Parameters)
	if text := r.Markup(c.Returns); text != "" {
		fmt.Fprintf(w, "%s Returns\n\n%s\n\n", sub, text)
	}
	if text := r.Markup(c.Remarks); text != "" {
		fmt.Fprintf(w, "%s Remarks\n\n%s\n\n", sub, text)
	}
	if len(c.Exceptions) > 0 {
		fmt.Fprintf(w, "%s Exceptions\n\n", sub)
		for _, e := range c.Exceptions {
			fmt.Fprintf(w, "%s\n", bulletLine(r.link(e.ID), oneLine(r.Markup(e.Description))))
		}
		fmt.Fprintln(w)
	}
	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "%s Examples\n\n", sub)
		for _, ex := range c.Examples {
			if text := r.Markup(ex); text != "" {
				fmt.Fprintf(w, "%s\n\n", text)
			}
		}
	}
	if len(c.Sees) > 0 || len(c.SeeAlsos) > 0 {
		fmt.Fprintf(w, "%s See Also\n\n", sub)
		for _, s := range append(append([]xmlcomment.CrefInfo{}, c.Sees...), c.SeeAlsos...) {
			fmt.Fprintf(w, "%s\n", bulletLine(r.link(s.ID), oneLine(r.Markup(s.Description))))
		}
		fmt.Fprintln(w)
	}
}

func (r *Renderer) renderNamedTable(w io.Writer, sub, title string, entries []xmlcomment.NamedText) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(w, "%s %s\n\n", sub, title)
	fmt.Fprintf(w, "| Name | Description |\n| --- | --- |\n")
	for _, e := range entries {
		fmt.Fprintf(w, "| `%s` | %s |\n", e.Name, tableCell(oneLine(r.Markup(e.Text))))
	}
	fmt.Fprintln(w)
}

// Markup converts one extracted field value, still carrying its structural
// element vocabulary, into Markdown. Content that no longer parses (literal
// angle brackets survive entity decoding) falls back to the trimmed raw text.
func (r *Renderer) Markup(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	frag, err := xmlcomment.ParseFragment(text)
	if err != nil {
		return strings.TrimSpace(text)
	}
	var sb strings.Builder
	r.writeNodes(&sb, frag.Children)
	return strings.TrimSpace(blankRuns.ReplaceAllString(sb.String(), "\n\n"))
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

func (r *Renderer) writeNodes(sb *strings.Builder, nodes []*xmlcomment.Node) {
	for _, n := range nodes {
		r.writeNode(sb, n)
	}
}

func (r *Renderer) writeNode(sb *strings.Builder, n *xmlcomment.Node) {
	switch n.Type {
	case xmlcomment.TextNode:
		sb.WriteString(n.Text)
		return
	case xmlcomment.CommentNode:
		return
	}
	switch n.Name {
	case "para", "value":
		blockBreak(sb)
		r.writeNodes(sb, n.Children)
		blockBreak(sb)
	case "b", "strong":
		fmt.Fprintf(sb, "**%s**", r.inline(n))
	case "i", "em":
		fmt.Fprintf(sb, "*%s*", r.inline(n))
	case "c":
		fmt.Fprintf(sb, "`%s`", strings.TrimSpace(n.InnerText()))
	case "code":
		lang, _ := n.AttrValue("language")
		blockBreak(sb)
		fmt.Fprintf(sb, "```%s\n%s\n```", lang, strings.Trim(n.InnerText(), "\n"))
		blockBreak(sb)
	case "xref":
		href, _ := n.AttrValue("href")
		sb.WriteString(r.link(href))
	case "see", "seealso":
		r.writeSee(sb, n)
	case "paramref", "typeparamref":
		if name, ok := n.AttrValue("name"); ok {
			fmt.Fprintf(sb, "*%s*", name)
		}
	case "list":
		r.writeList(sb, n)
	default:
		r.writeNodes(sb, n.Children)
	}
}

// writeSee handles the see element's two flavors: cref references (present
// when raw crefs were preserved or the element sat at the comment root) and
// langword keyword references.
func (r *Renderer) writeSee(sb *strings.Builder, n *xmlcomment.Node) {
	if cref, ok := n.AttrValue("cref"); ok {
		if id, valid := xmlcomment.ParseCommentID(cref); valid {
			sb.WriteString(r.link(id.Identifier))
		} else {
			sb.WriteString(r.inline(n))
		}
		return
	}
	if word, ok := n.AttrValue("langword"); ok {
		fmt.Fprintf(sb, "`%s`", word)
		return
	}
	r.writeNodes(sb, n.Children)
}

func (r *Renderer) writeList(sb *strings.Builder, n *xmlcomment.Node) {
	typ, _ := n.AttrValue("type")
	items := n.SelectElements("item")
	blockBreak(sb)
	switch typ {
	case "table":
		header := n.SelectElements("listheader")
		termTitle, descTitle := "Term", "Description"
		if len(header) > 0 {
			if t := r.itemPart(header[0], "term"); t != "" {
				termTitle = t
			}
			if d := r.itemPart(header[0], "description"); d != "" {
				descTitle = d
			}
		}
		fmt.Fprintf(sb, "| %s | %s |\n| --- | --- |\n", tableCell(termTitle), tableCell(descTitle))
		for _, item := range items {
			fmt.Fprintf(sb, "| %s | %s |\n", tableCell(r.itemPart(item, "term")), tableCell(r.itemPart(item, "description")))
		}
	case "number":
		for i, item := range items {
			fmt.Fprintf(sb, "%d. %s\n", i+1, r.itemText(item))
		}
	default:
		for _, item := range items {
			fmt.Fprintf(sb, "- %s\n", r.itemText(item))
		}
	}
	blockBreak(sb)
}

// itemText renders one list item: "**term**: description" when a term is
// present, otherwise the item's inline content.
func (r *Renderer) itemText(item *xmlcomment.Node) string {
	term := r.itemPart(item, "term")
	desc := r.itemPart(item, "description")
	switch {
	case term != "" && desc != "":
		return fmt.Sprintf("**%s**: %s", term, desc)
	case term != "":
		return fmt.Sprintf("**%s**", term)
	case desc != "":
		return desc
	default:
		return r.inline(item)
	}
}

func (r *Renderer) itemPart(item *xmlcomment.Node, name string) string {
	for _, n := range item.SelectElements(name) {
		return r.inline(n)
	}
	return ""
}

func (r *Renderer) inline(n *xmlcomment.Node) string {
	var sb strings.Builder
	r.writeNodes(&sb, n.Children)
	return oneLine(sb.String())
}

func (r *Renderer) link(id string) string {
	if r.opts.ResolveXref != nil {
		if label, href, ok := r.opts.ResolveXref(id); ok {
			return fmt.Sprintf("[%s](%s)", label, href)
		}
	}
	return fmt.Sprintf("`%s`", id)
}

func blockBreak(sb *strings.Builder) {
	if sb.Len() == 0 {
		return
	}
	s := sb.String()
	switch {
	case strings.HasSuffix(s, "\n\n"):
	case strings.HasSuffix(s, "\n"):
		sb.WriteByte('\n')
	default:
		sb.WriteString("\n\n")
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func tableCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func bulletLine(ref, description string) string {
	if description == "" {
		return fmt.Sprintf("- %s", ref)
	}
	return fmt.Sprintf("- %s — %s", ref, description)
}
