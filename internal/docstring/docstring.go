// Package docstring splits numpydoc-style docstrings into a summary and an
// ordered list of named sections.
package docstring

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SectionExamples is the canonical name of the section handled by the
// examples tokenizer rather than the generic section renderers.
const SectionExamples = "Examples"

// knownSections lists the standard numpydoc section names, in canonical
// capitalization. Anything else found under a dashed header is a custom
// section.
var knownSections = []string{
	"Parameters",
	"Returns",
	"Yields",
	"Receives",
	"Raises",
	"Warns",
	"Other Parameters",
	"Attributes",
	"Methods",
	"See Also",
	"Notes",
	"Warnings",
	"References",
	SectionExamples,
}

// parametersLike holds the sections rendered as name/type/description entry
// lists.
var parametersLike = map[string]bool{
	"Parameters":       true,
	"Returns":          true,
	"Yields":           true,
	"Receives":         true,
	"Raises":           true,
	"Warns":            true,
	"Other Parameters": true,
	"Attributes":       true,
	"Methods":          true,
}

var canonicalNames = func() map[string]string {
	m := make(map[string]string, len(knownSections))
	for _, name := range knownSections {
		m[strings.ToLower(name)] = name
	}
	return m
}()

// Section is one named block of a docstring. Name carries canonical
// capitalization for standard sections and the author's spelling for custom
// ones. Body is dedented relative to the header and stripped of trailing
// blank lines.
type Section struct {
	Name   string
	Body   string
	Custom bool
}

// ParametersLike reports whether the section renders as a name/type/desc
// entry list.
func (s Section) ParametersLike() bool {
	return !s.Custom && parametersLike[s.Name]
}

// Doc is a structurally parsed docstring.
type Doc struct {
	Summary  string
	Sections []Section
}

// CustomSections returns the names of all custom sections, in order.
func (d *Doc) CustomSections() []string {
	var names []string
	for _, s := range d.Sections {
		if s.Custom {
			names = append(names, s.Name)
		}
	}
	return names
}

// DuplicateSectionError reports two sections sharing a normalized name.
type DuplicateSectionError struct {
	Name string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("section %q appears more than once in the docstring", e.Name)
}

// Parse splits a raw docstring into a summary and its sections. The text is
// cleaned first (see Clean), so indentation inside section bodies is relative
// to the docstring base. Duplicate section names are an error, never silently
// merged.
func Parse(raw string) (*Doc, error) {
	lines := strings.Split(Clean(raw), "\n")

	type header struct {
		name   string
		indent int
		line   int
	}
	var headers []header
	seen := make(map[string]bool)

	for i := 0; i < len(lines)-1; i++ {
		name, indent, ok := sectionHeader(lines[i], lines[i+1])
		if !ok {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, &DuplicateSectionError{Name: name}
		}
		seen[key] = true
		headers = append(headers, header{name: name, indent: indent, line: i})
		i++ // skip the underline
	}

	doc := &Doc{}
	summaryEnd := len(lines)
	if len(headers) > 0 {
		summaryEnd = headers[0].line
	}
	doc.Summary = strings.Join(trimBlankEdges(lines[:summaryEnd]), "\n")

	for i, h := range headers {
		end := len(lines)
		if i+1 < len(headers) {
			end = headers[i+1].line
		}
		body := trimBlankEdges(lines[h.line+2 : end])
		if h.indent > 0 {
			body = dedentBy(body, h.indent)
		}
		canonical, known := canonicalNames[strings.ToLower(h.name)]
		section := Section{Name: h.name, Body: strings.Join(body, "\n"), Custom: !known}
		if known {
			section.Name = canonical
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}

// sectionHeader reports whether line followed by next forms a dashed section
// header. The underline must sit at the same indentation and be made of '-'
// or '=' characters, at least as long as the header text. Like numpydoc we
// require the header to start with an uppercase letter so that ordinary prose
// above a table rule is not mistaken for a section.
func sectionHeader(line, next string) (name string, indent int, ok bool) {
	l := strings.TrimRight(line, " \t")
	n := strings.TrimRight(next, " \t")
	name = strings.TrimLeft(l, " ")
	underline := strings.TrimLeft(n, " ")
	if name == "" || underline == "" {
		return "", 0, false
	}
	indent = len(l) - len(name)
	if indent != len(n)-len(underline) {
		return "", 0, false
	}
	r, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsUpper(r) {
		return "", 0, false
	}
	if len(underline) < len(name) {
		return "", 0, false
	}
	for _, c := range underline {
		if c != '-' && c != '=' {
			return "", 0, false
		}
	}
	return name, indent, true
}

// Clean normalizes a docstring the way Python's inspect.cleandoc does: tabs
// are expanded to 8-column tab stops, leading whitespace is stripped from the
// first line, the longest common indentation of the remaining non-blank lines
// is removed, and blank edge lines are dropped.
func Clean(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = expandTabs(line)
	}

	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	lines[0] = strings.TrimLeft(lines[0], " ")
	if margin > 0 {
		rest := dedentBy(lines[1:], margin)
		lines = append(lines[:1], rest...)
	}
	return strings.Join(trimBlankEdges(lines), "\n")
}

// expandTabs advances each tab to the next multiple-of-8 column, matching
// str.expandtabs.
func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := 8 - col%8
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

func dedentBy(lines []string, n int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		removed := 0
		for removed < n && removed < len(line) && line[removed] == ' ' {
			removed++
		}
		out[i] = line[removed:]
	}
	return out
}

func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
