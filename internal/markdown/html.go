package markdown

import (
	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
)

// ToHTML renders a Markdown document to an HTML fragment, for previewing
// rendered documentation without a wiki engine.
func ToHTML(src string) string {
	doc := gm.Parse([]byte(src), newParser())
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(gm.Render(doc, renderer))
}
