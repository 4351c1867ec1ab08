package utils

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderMarkdown converts a Markdown notes field into its stored HTML
// twin. The machine and revision notes columns both keep a rendered
// copy alongside the source so read endpoints never pay for rendering.
func RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(src), p, r))
}
