// Package markdown post-processes rendered documents: it normalizes
// cross-page template links and produces HTML previews.
package markdown

import (
	"path"
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"
)

func newParser() *gmparser.Parser {
	return gmparser.NewWithExtensions(gmparser.CommonExtensions | gmparser.Autolink)
}

// NormalizeLinks points relative template links at their rendered names, so
// "Home.npmd" becomes "Home.md". External URLs and fragment-only links pass
// through untouched.
func NormalizeLinks(src string) string {
	doc := gm.Parse([]byte(src), newParser())

	linkMap := make(map[string]string)
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if link, ok := node.(*ast.Link); ok {
			dest := string(link.Destination)
			if renamed, ok := renameTemplateLink(dest); ok {
				linkMap[dest] = renamed
			}
		}
		return ast.GoToNext
	})

	return rewriteLinks(src, linkMap)
}

// renameTemplateLink maps a relative ".npmd" destination to its ".md"
// counterpart, keeping any anchor.
func renameTemplateLink(dest string) (string, bool) {
	if dest == "" || strings.Contains(dest, "://") || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "mailto:") {
		return "", false
	}
	base, anchor, hasAnchor := strings.Cut(dest, "#")
	if !strings.EqualFold(path.Ext(base), ".npmd") {
		return "", false
	}
	renamed := strings.TrimSuffix(base, path.Ext(base)) + ".md"
	if hasAnchor {
		renamed += "#" + anchor
	}
	return renamed, true
}

// rewriteLinks replaces link destinations with targeted string edits. The
// document is parsed only to discover destinations; replacements happen on
// the source text so the original formatting survives.
func rewriteLinks(src string, linkMap map[string]string) string {
	if len(linkMap) == 0 {
		return src
	}

	result := src

	// Inline links: [text](destination)
	for oldDest, newDest := range linkMap {
		result = strings.ReplaceAll(result, "]("+oldDest+")", "]("+newDest+")")
	}

	// Reference-style definitions: [ref]: destination
	refMap := make(map[string]string, len(linkMap))
	for oldDest, newDest := range linkMap {
		refMap["]: "+oldDest] = "]: " + newDest
	}
	lines := strings.Split(result, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for oldSuffix, newSuffix := range refMap {
			if strings.HasSuffix(trimmed, oldSuffix) {
				lines[i] = strings.Replace(line, oldSuffix, newSuffix, 1)
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}
