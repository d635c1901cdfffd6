// Package markdown renders parsed documentation comments as Markdown and,
// when asked, converts that Markdown to standalone HTML pages.
package markdown
