package xmlcomment

import (
	"encoding/xml"
	"io"
	"sort"
	"strings"
)

// NodeType discriminates the node kinds kept in the parsed tree.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
)

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is one node of a parsed markup fragment. Elements record the line
// (1-based) and column (0-based) of their opening "<" so callers can derive
// indentation baselines; both stay zero when no position was observed.
type Node struct {
	Type     NodeType
	Name     string
	Attrs    []Attr
	Text     string
	Parent   *Node
	Children []*Node
	Line     int
	Col      int
}

// ParseFragment parses a markup fragment that may contain text, comments, and
// any number of top-level elements. The returned node is a synthetic root
// holding the fragment's nodes as children.
func ParseFragment(src string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(src))
	lineStarts := indexLineStarts(src)
	root := &Node{Type: ElementNode, Name: "#fragment"}
	cur := root
	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			line, col := positionAt(lineStarts, int(start))
			n := &Node{
				Type:   ElementNode,
				Name:   t.Name.Local,
				Parent: cur,
				Line:   line,
				Col:    col,
			}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			cur.Children = append(cur.Children, n)
			cur = n
		case xml.EndElement:
			cur = cur.Parent
		case xml.CharData:
			cur.appendText(string(t))
		case xml.Comment:
			cur.Children = append(cur.Children, &Node{Type: CommentNode, Text: string(t), Parent: cur})
		}
	}
	if cur != root {
		return nil, &xml.SyntaxError{Msg: "unexpected end of fragment: unclosed element " + cur.Name}
	}
	return root, nil
}

// appendText merges adjacent character data into a single text node so the
// decoder's CDATA/entity splits do not fragment the tree.
func (n *Node) appendText(text string) {
	if len(n.Children) > 0 {
		if last := n.Children[len(n.Children)-1]; last.Type == TextNode {
			last.Text += text
			return
		}
	}
	n.Children = append(n.Children, &Node{Type: TextNode, Text: text, Parent: n})
}

// AttrValue returns the value of the named attribute.
func (n *Node) AttrValue(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SelectElements returns the direct child elements with the given name, in
// document order.
func (n *Node) SelectElements(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == ElementNode && c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Descendants returns every element below n (not n itself) with the given
// name, in document order.
func (n *Node) Descendants(name string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(p *Node) {
		for _, c := range p.Children {
			if c.Type != ElementNode {
				continue
			}
			if c.Name == name {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// ReplaceWith swaps n for repl in n's parent. It reports false when n has no
// parent or is no longer attached.
func (n *Node) ReplaceWith(repl *Node) bool {
	if n.Parent == nil {
		return false
	}
	for i, c := range n.Parent.Children {
		if c == n {
			repl.Parent = n.Parent
			n.Parent.Children[i] = repl
			n.Parent = nil
			return true
		}
	}
	return false
}

// InnerXML serializes n's children back to markup. Text is re-escaped so a
// single entity decode downstream restores the original character data.
func (n *Node) InnerXML() string {
	var sb strings.Builder
	for _, c := range n.Children {
		c.writeXML(&sb)
	}
	return sb.String()
}

// InnerText concatenates the character data of n's subtree.
func (n *Node) InnerText() string {
	var sb strings.Builder
	var walk func(*Node)
	walk = func(p *Node) {
		for _, c := range p.Children {
			switch c.Type {
			case TextNode:
				sb.WriteString(c.Text)
			case ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func (n *Node) writeXML(sb *strings.Builder) {
	switch n.Type {
	case TextNode:
		sb.WriteString(textEscaper.Replace(n.Text))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Text)
		sb.WriteString("-->")
	case ElementNode:
		sb.WriteByte('<')
		sb.WriteString(n.Name)
		for _, a := range n.Attrs {
			sb.WriteByte(' ')
			sb.WriteString(a.Name)
			sb.WriteString(`="`)
			sb.WriteString(attrEscaper.Replace(a.Value))
			sb.WriteByte('"')
		}
		if len(n.Children) == 0 {
			sb.WriteString("/>")
			return
		}
		sb.WriteByte('>')
		for _, c := range n.Children {
			c.writeXML(sb)
		}
		sb.WriteString("</")
		sb.WriteString(n.Name)
		sb.WriteByte('>')
	}
}

func indexLineStarts(src string) []int {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func positionAt(lineStarts []int, offset int) (line, col int) {
	i := sort.Search(len(lineStarts), func(i int) bool { return lineStarts[i] > offset }) - 1
	return i + 1, offset - lineStarts[i]
}
