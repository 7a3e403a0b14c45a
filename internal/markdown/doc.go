// Package markdown renders method text through goldmark and imports methods
// authored as Markdown files with a frontmatter header.
package markdown
