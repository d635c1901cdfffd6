package main

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/agentflare-ai/go-xmldoc/markdown"
	"github.com/agentflare-ai/go-xmldoc/xmlcomment"
)

type options struct {
	format        string
	outputPath    string
	refsPath      string
	baseURL       string
	title         string
	configPath    string
	preserveCrefs bool
	verbose       bool
}

const (
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

type cliApp struct {
	stdout io.Writer
	opts   options
}

func run(argv []string, stdout io.Writer) error {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(argv)
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context, inputs []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := app.opts
	if opts.verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	switch opts.format {
	case formatMarkdown, formatHTML:
	default:
		return fmt.Errorf("unsupported format %q (want %s or %s)", opts.format, formatMarkdown, formatHTML)
	}
	if len(inputs) == 0 {
		return errors.New("no XML documentation files provided")
	}

	registry := newCrefRegistry()
	renderer := markdown.NewRenderer(markdown.Options{
		ResolveXref: xrefResolver(opts.baseURL),
	})
	pages := make([]docPage, 0, len(inputs))
	for _, path := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := app.documentFile(path, renderer, registry)
		if err != nil {
			return err
		}
		pages = append(pages, page)
	}

	if opts.refsPath != "" {
		if err := writeRefIndex(opts.refsPath, registry.sorted()); err != nil {
			return err
		}
	}
	if wantsDirectoryOutput(opts.outputPath) {
		return app.writePagesToDir(opts.outputPath, pages)
	}
	var buf bytes.Buffer
	for _, page := range pages {
		buf.Write(page.content)
	}
	out, err := app.finalize(pageTitle(opts.title, pages), buf.Bytes())
	if err != nil {
		return err
	}
	return writeOutput(opts.outputPath, app.stdout, out)
}

// docFile mirrors the compiler's XML documentation file layout: an assembly
// header followed by one member element per documented declaration, whose
// body is the raw doc-comment markup.
type docFile struct {
	Assembly struct {
		Name string `xml:"name"`
	} `xml:"assembly"`
	Members []docMember `xml:"members>member"`
}

type docMember struct {
	Name string `xml:"name,attr"`
	Body string `xml:",innerxml"`
}

func parseDocFile(path string) (*docFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc docFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &doc, nil
}

type docPage struct {
	source  string
	title   string
	summary string
	content []byte
}

func (app *cliApp) documentFile(path string, renderer *markdown.Renderer, registry *crefRegistry) (docPage, error) {
	doc, err := parseDocFile(path)
	if err != nil {
		return docPage{}, err
	}
	title := doc.Assembly.Name
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", title)
	var summary string
	for _, m := range doc.Members {
		c := xmlcomment.Parse(m.Body, &xmlcomment.Context{
			Source:           path,
			Name:             m.Name,
			PreserveRawCrefs: app.opts.preserveCrefs,
			OnCrefResolved:   registry.add,
		})
		if c == nil {
			slog.Debug("member without documentation model", "source", path, "name", m.Name)
			continue
		}
		renderer.Render(&buf, memberDisplayName(m.Name), c)
		if summary == "" {
			summary = firstSentence(renderer.Markup(c.Summary))
		}
	}
	return docPage{source: path, title: title, summary: summary, content: buf.Bytes()}, nil
}

// memberDisplayName strips the comment-id kind prefix from a member name so
// headings read "System.String", not "T:System.String". Names that are not
// comment ids pass through untouched.
func memberDisplayName(name string) string {
	if id, ok := xmlcomment.ParseCommentID(name); ok {
		return id.Identifier
	}
	return name
}

func firstSentence(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if idx := strings.Index(text, ". "); idx >= 0 {
		return strings.TrimSpace(text[:idx+1])
	}
	return strings.TrimSpace(text)
}

func pageTitle(flagTitle string, pages []docPage) string {
	if flagTitle != "" {
		return flagTitle
	}
	if len(pages) > 0 {
		return pages[0].title
	}
	return "Documentation"
}

// finalize converts a rendered Markdown document into the requested output
// format.
func (app *cliApp) finalize(title string, md []byte) ([]byte, error) {
	if app.opts.format != formatHTML {
		return md, nil
	}
	body, err := markdown.ConvertHTML(md)
	if err != nil {
		return nil, err
	}
	return markdown.Page(title, body), nil
}

func outputExt(format string) string {
	if format == formatHTML {
		return ".html"
	}
	return ".md"
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func wantsDirectoryOutput(path string) bool {
	if path == "" || path == "-" {
		return false
	}
	info, err := os.Stat(path)
	if err == nil {
		return info.IsDir()
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false
	}
	if strings.HasSuffix(path, string(os.PathSeparator)) {
		return true
	}
	return filepath.Ext(path) == ""
}

type tocEntry struct {
	title   string
	link    string
	summary string
}

// writePagesToDir writes one output file per input document plus an index
// whose table of contents links every page.
func (app *cliApp) writePagesToDir(outDir string, pages []docPage) error {
	if outDir == "" {
		return errors.New("missing output directory")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	ext := outputExt(app.opts.format)
	entries := make([]tocEntry, 0, len(pages))
	for _, page := range pages {
		base := strings.TrimSuffix(filepath.Base(page.source), filepath.Ext(page.source))
		name := base + ext
		out, err := app.finalize(page.title, page.content)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, name), out, 0o644); err != nil {
			return err
		}
		entries = append(entries, tocEntry{title: page.title, link: name, summary: page.summary})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].title < entries[j].title
	})
	title := pageTitle(app.opts.title, pages)
	index, err := app.finalize(title, buildTOC(title, entries))
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "index"+ext), index, 0o644)
}

func buildTOC(title string, entries []tocEntry) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n## Documents\n\n", title)
	for _, entry := range entries {
		if entry.summary != "" {
			fmt.Fprintf(&buf, "- [%s](%s) — %s\n", entry.title, entry.link, entry.summary)
		} else {
			fmt.Fprintf(&buf, "- [%s](%s)\n", entry.title, entry.link)
		}
	}
	buf.WriteString("\n")
	return buf.Bytes()
}

// crefRegistry accumulates the identifiers the resolver reports. The resolver
// fires once per occurrence; the registry dedupes so the emitted index lists
// each reference once. Safe for concurrent use.
type crefRegistry struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func newCrefRegistry() *crefRegistry {
	return &crefRegistry{ids: make(map[string]struct{})}
}

func (r *crefRegistry) add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[id] = struct{}{}
}

func (r *crefRegistry) sorted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func writeRefIndex(path string, ids []string) error {
	var buf bytes.Buffer
	for _, id := range ids {
		buf.WriteString(id)
		buf.WriteByte('\n')
	}
	return writeOutput(path, io.Discard, buf.Bytes())
}

// xrefResolver links references under a base URL when one is configured;
// otherwise references render as inline code and a later pass can resolve
// them.
func xrefResolver(baseURL string) markdown.XrefResolver {
	if baseURL == "" {
		return nil
	}
	base := strings.TrimSuffix(baseURL, "/")
	return func(id string) (string, string, bool) {
		return id, base + "/" + url.PathEscape(id), true
	}
}
