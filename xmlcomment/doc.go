// Package xmlcomment parses .NET-style XML documentation comments into
// structured models: it validates kind-prefixed comment ids, normalizes the
// whitespace of embedded markup, resolves cref cross-references into neutral
// xref placeholders, and extracts summary/remarks/param/exception/see fields.
//
// Parsing is failure tolerant. Malformed input, invalid crefs, and
// missing fields all degrade to less documentation, never to an error: a
// broken comment must not abort a whole documentation build.
package xmlcomment
