package xmlcomment

import (
	"html"
	"log/slog"
	"strings"
)

// Comment is the structured form of one XML documentation comment. It is
// built once by Parse and read-only afterwards; it keeps no reference to the
// Context it was built with.
type Comment struct {
	Summary string
	Remarks string
	Returns string

	// Parameters and TypeParameters keep document order; duplicate names are
	// resolved first-seen-wins at build time.
	Parameters     []NamedText
	TypeParameters []NamedText

	// Exceptions, Sees and SeeAlsos hold only entries whose cref passed
	// comment-id validation; they stay nil when the tag never appears.
	Exceptions []CrefInfo
	Sees       []CrefInfo
	SeeAlsos   []CrefInfo

	Examples []string
}

// NamedText is one keyed entry such as a param or typeparam description.
type NamedText struct {
	Name string
	Text string
}

// CrefInfo is one validated cross-reference with its optional description.
type CrefInfo struct {
	ID          string // bare identifier, kind prefix stripped
	CommentID   string // canonical "K:Identifier" form
	Kind        TargetKind
	Description string
}

// Parameter looks up a parameter description by name.
func (c *Comment) Parameter(name string) (string, bool) {
	return lookupNamed(c.Parameters, name)
}

// TypeParameter looks up a type-parameter description by name.
func (c *Comment) TypeParameter(name string) (string, bool) {
	return lookupNamed(c.TypeParameters, name)
}

func lookupNamed(entries []NamedText, name string) (string, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e.Text, true
		}
	}
	return "", false
}

// Context supplies provenance for diagnostics and the two behavioral knobs of
// a parse: whether raw crefs are preserved and where resolved references are
// reported. Parse only reads it; a nil Context behaves like a zero one.
type Context struct {
	Source    string // originating file path, diagnostics only
	Repo      string // optional remote repository coordinate
	StartLine int
	Name      string // display name of the documented declaration

	// PreserveRawCrefs skips cref resolution entirely, leaving see/seealso
	// elements exactly as authored.
	PreserveRawCrefs bool

	// OnCrefResolved is invoked once per resolved cref occurrence with the
	// bare identifier. It must be safe for concurrent use if Parse is called
	// from multiple goroutines.
	OnCrefResolved func(id string)

	// Logger receives warning diagnostics; nil means slog.Default().
	Logger *slog.Logger
}

func (ctx *Context) logger() *slog.Logger {
	if ctx != nil && ctx.Logger != nil {
		return ctx.Logger
	}
	return slog.Default()
}

func (ctx *Context) warn(msg string, args ...any) {
	if ctx != nil {
		if ctx.Source != "" {
			args = append(args, "source", ctx.Source, "line", ctx.StartLine)
		}
		if ctx.Repo != "" {
			args = append(args, "repo", ctx.Repo)
		}
		if ctx.Name != "" {
			args = append(args, "name", ctx.Name)
		}
	}
	ctx.logger().Warn(msg, args...)
}

// badCommentSentinel is what the compiler leaves behind when a doc comment
// was not well formed; such members carry no usable documentation.
const badCommentSentinel = "<!-- Badly formed XML comment ignored for member"

// Parse builds a Comment from raw doc-comment markup. It returns nil, never
// an error, when no model can be produced: empty input, the malformed-comment
// sentinel, and unparsable markup all degrade to "no documentation", with a
// warning for the latter two.
func Parse(raw string, ctx *Context) *Comment {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, badCommentSentinel) {
		ctx.warn("badly formed doc comment ignored")
		return nil
	}
	root, err := ParseFragment(raw)
	if err != nil {
		ctx.warn("unparsable doc comment markup", "error", err)
		return nil
	}
	if ctx == nil || !ctx.PreserveRawCrefs {
		var onResolved func(string)
		if ctx != nil {
			onResolved = ctx.OnCrefResolved
		}
		resolveCrefLinks(root, "seealso", onResolved, ctx)
		resolveCrefLinks(root, "see", onResolved, ctx)
	}
	return &Comment{
		Summary:        singleValue(root, "summary"),
		Remarks:        singleValue(root, "remarks"),
		Returns:        singleValue(root, "returns"),
		Parameters:     namedValues(root, "param", ctx),
		TypeParameters: namedValues(root, "typeparam", ctx),
		Exceptions:     crefValues(root, "exception"),
		Sees:           crefValues(root, "see"),
		SeeAlsos:       crefValues(root, "seealso"),
		Examples:       elementValues(root, "example"),
	}
}

// elementValue extracts an element's inner markup, dedented against the
// element's own source column and entity-decoded exactly once.
func elementValue(n *Node) string {
	return html.UnescapeString(Normalize(n.InnerXML(), n.Col))
}

func singleValue(root *Node, name string) string {
	for _, n := range root.SelectElements(name) {
		return elementValue(n)
	}
	return ""
}

func elementValues(root *Node, name string) []string {
	var out []string
	for _, n := range root.SelectElements(name) {
		out = append(out, elementValue(n))
	}
	return out
}

func namedValues(root *Node, name string, ctx *Context) []NamedText {
	var out []NamedText
	seen := make(map[string]struct{})
	for _, n := range root.SelectElements(name) {
		key, _ := n.AttrValue("name")
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			ctx.warn("duplicate entry ignored", "element", name, "key", key)
			continue
		}
		seen[key] = struct{}{}
		out = append(out, NamedText{Name: key, Text: elementValue(n)})
	}
	return out
}

// crefValues extracts the top-level reference list for one element name.
// Unlike the resolver, entries with an invalid cref are dropped without a
// diagnostic: this is a read-only extraction, nothing is rewritten in place.
func crefValues(root *Node, name string) []CrefInfo {
	var out []CrefInfo
	for _, n := range root.SelectElements(name) {
		cref, _ := n.AttrValue("cref")
		id, ok := ParseCommentID(cref)
		if !ok {
			continue
		}
		out = append(out, CrefInfo{
			ID:          id.Identifier,
			CommentID:   cref,
			Kind:        id.Kind,
			Description: strings.TrimSpace(elementValue(n)),
		})
	}
	return out
}
