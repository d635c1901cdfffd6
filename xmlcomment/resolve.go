package xmlcomment

import "fmt"

const (
	xrefElement  = "xref"
	softFailAttr = "data-throw-if-not-resolved"
)

// resolveCrefLinks validates every cref-bearing element with the given name
// and rewrites the valid ones into neutral <xref> placeholders.
//
// Invalid crefs are logged and left in place so the rest of the comment still
// extracts. Valid crefs are reported through onResolved once per occurrence;
// elements sitting directly under the comment root are reported but never
// rewritten, keeping top-level see/seealso lists extractable afterwards.
// Any panic while walking one element list is contained here: a broken
// subtree must not take the remaining fields down with it.
func resolveCrefLinks(root *Node, name string, onResolved func(string), ctx *Context) {
	defer func() {
		if r := recover(); r != nil {
			ctx.warn("cref resolution failed", "element", name, "error", fmt.Sprint(r))
		}
	}()
	for _, el := range root.Descendants(name) {
		cref, ok := el.AttrValue("cref")
		if !ok || cref == "" {
			continue
		}
		id, ok := ParseCommentID(cref)
		if !ok {
			ctx.warn("invalid cref ignored", "cref", cref, "element", name)
			continue
		}
		if el.Parent != root {
			el.ReplaceWith(&Node{
				Type: ElementNode,
				Name: xrefElement,
				Attrs: []Attr{
					{Name: "href", Value: id.Identifier},
					{Name: softFailAttr, Value: "false"},
				},
			})
		}
		if onResolved != nil {
			onResolved(id.Identifier)
		}
	}
}
