package markdown

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// ConvertHTML renders Markdown produced by Renderer into an HTML body. GFM is
// enabled so the parameter tables survive conversion, and heading ids are
// generated so links into a page stay stable.
func ConvertHTML(md []byte) ([]byte, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(ghtml.WithUnsafe()),
	)
	var buf bytes.Buffer
	if err := engine.Convert(md, &buf); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	return buf.Bytes(), nil
}

// Page wraps an HTML body in a minimal standalone document.
func Page(title string, body []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title))
	buf.Write(body)
	buf.WriteString("\n</body>\n</html>\n")
	return buf.Bytes()
}
