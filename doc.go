// # go-xmldoc
//
// `go-xmldoc` renders compiler-emitted XML documentation files as Markdown or
// HTML. It parses each `<member>` doc comment into a structured model
// (summary, remarks, params, returns, exceptions, examples, see-also),
// normalizes the whitespace of embedded markup so code samples and paragraphs
// survive any source indentation, and resolves `cref` cross-references into
// neutral placeholders a link-resolution pass can finish later.
//
// Key capabilities:
//
//   - render one Markdown section per documented member, with parameter and
//     type-parameter tables, fenced code examples, and exception lists.
//   - rewrite valid `cref` references to `<xref>` placeholders carrying the
//     bare identifier and a soft-fail flag; invalid references are warned
//     about and left alone, and a malformed comment never aborts the run.
//   - emit the full set of discovered references via `--refs` so an external
//     registry can resolve links, or link them directly via `--base-url`.
//   - write a single document, a file per input under a directory (`-o docs/`
//     adds an index with a table of contents), or HTML via `--format html`.
//   - pick up defaults from `.go-xmldoc.yaml` (see `--config`).
//   - ship a Cobra-powered CLI with rich `--help`, `--version`, shell
//     completion, and a `gen-docs` helper for publishing the CLI reference.
//
// ## Usage
//
//	go-xmldoc [flags] <doc.xml ...>
//
// Examples:
//
//   - Render a documentation file to stdout:
//
//     go-xmldoc Widgets.xml
//
//   - Export one page per assembly plus an index:
//
//     go-xmldoc -o ./docs Widgets.xml Gadgets.xml
//
//   - HTML output with resolved reference links:
//
//     go-xmldoc --format html --base-url https://docs.example.com/api -o ./site Widgets.xml
//
//   - Collect the cross-reference index for a later link pass:
//
//     go-xmldoc --refs refs.txt -o /dev/null Widgets.xml
//
// ## Supported Flags
//
//   - `-f, --format`: `markdown` (default) or `html`.
//   - `-o, --output`: output file, or directory for one page per input.
//   - `--refs FILE`: write the sorted, deduplicated reference index.
//   - `--base-url URL`: turn cross-references into links under this URL.
//   - `--title`: title for the combined document or directory index.
//   - `--preserve-crefs`: keep raw `cref` attributes untouched.
//   - `--config FILE`: explicit config file (default: `.go-xmldoc.yaml`).
//   - `-v, --verbose`: debug logging on stderr.
//
// ## Library Use
//
// The `xmlcomment` package exposes the comment model (`xmlcomment.Parse`),
// the comment-id grammar (`xmlcomment.ParseCommentID`), and the whitespace
// normalizer; the `markdown` package renders parsed comments. Parsing is
// synchronous and allocation-only, so callers may run one Parse per
// declaration across goroutines as long as their callback and logger are
// concurrency safe.
package main
