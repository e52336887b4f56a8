// Package render composes the docstring pipeline: resolve a directive's
// target, structure its docstring, and emit the Markdown fragment, including
// recursive rendering of selected members.
package render

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/npmd-dev/npmd/internal/directive"
	"github.com/npmd-dev/npmd/internal/docstring"
	"github.com/npmd-dev/npmd/internal/examples"
	"github.com/npmd-dev/npmd/internal/members"
	"github.com/npmd-dev/npmd/internal/resolver"
)

// memberSeparator sits between the owning object's fragment and each member
// fragment.
const memberSeparator = "\n\n---\n\n"

// selfOrClsRe matches a leading self/cls argument (and its trailing comma)
// in a call signature.
var selfOrClsRe = regexp.MustCompile(`\((self|cls) *,* *`)

var mdEscaper = strings.NewReplacer("_", `\_`, "*", `\*`)

// Engine renders directives against a resolver. It holds no mutable state;
// one engine may serve any number of render calls.
type Engine struct {
	resolver resolver.Resolver
	logger   *slog.Logger
}

func New(res resolver.Resolver) *Engine {
	return &Engine{resolver: res, logger: slog.Default()}
}

// RenderObject renders the Markdown fragment for one directive, member
// expansion included.
func (e *Engine) RenderObject(d *directive.Directive) (string, error) {
	return e.renderObject(d, false)
}

func (e *Engine) renderObject(d *directive.Directive, lenient bool) (string, error) {
	obj, err := e.resolver.Resolve(d.Target)
	if err != nil {
		return "", err
	}

	doc, err := docstring.Parse(obj.Docstring)
	if err != nil {
		return "", fmt.Errorf("parsing docstring of %q: %w", d.Target, err)
	}

	if custom := doc.CustomSections(); len(custom) > 0 && !d.IgnoreCustomSectionWarning {
		e.logger.Warn("custom sections rendered as plain markdown",
			"target", d.Target, "sections", strings.Join(custom, ", "))
	}

	fragment := e.renderFragment(d, obj, doc)
	if len(d.Members) == 0 {
		return fragment, nil
	}

	selected, err := e.selectMembers(d, obj, lenient)
	if err != nil {
		return "", err
	}

	fragments := []string{fragment}
	for _, member := range selected {
		child, err := e.renderObject(d.Child(member), lenient)
		if err != nil {
			if !lenient {
				return "", err
			}
			e.logger.Error("skipping member that failed to render",
				"target", d.Target, "member", member, "error", err)
			continue
		}
		fragments = append(fragments, child)
	}
	return strings.Join(fragments, memberSeparator), nil
}

func (e *Engine) selectMembers(d *directive.Directive, obj *resolver.Object, lenient bool) ([]string, error) {
	if !lenient {
		return members.Select(d.Target, obj.Members, d.Members)
	}
	selected, errs := members.SelectLenient(d.Target, obj.Members, d.Members)
	for _, err := range errs {
		e.logger.Error("skipping unknown member", "target", d.Target, "error", err)
	}
	return selected, nil
}

// renderFragment assembles header, summary and sections for a single object.
func (e *Engine) renderFragment(d *directive.Directive, obj *resolver.Object, doc *docstring.Doc) string {
	blocks := []string{header(d, obj)}
	if doc.Summary != "" {
		blocks = append(blocks, doc.Summary)
	}
	for _, section := range doc.Sections {
		lines := renderSection(section, d)
		if len(lines) == 0 {
			continue
		}
		heading := strings.Repeat("#", d.SectionLevel) + " " + section.Name
		blocks = append(blocks, heading, strings.Join(lines, "\n"))
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

// header emits the object's title line one level above the section level:
// the aliased name in a colored span, with the cleaned call signature in
// italics for callables.
func header(d *directive.Directive, obj *resolver.Object) string {
	level := d.SectionLevel - 1
	if level < 1 {
		level = 1
	}
	name := fmt.Sprintf(`<span style="color:purple">%s</span>`, escape(d.HeaderName()))
	line := strings.Repeat("#", level) + " " + name
	if obj.Signature != "" {
		line += fmt.Sprintf("_%s_", escape(cleanSignature(obj.Signature)))
	}
	return line
}

func renderSection(section docstring.Section, d *directive.Directive) []string {
	if section.Body == "" {
		return nil
	}
	switch {
	case section.Name == docstring.SectionExamples:
		return examples.Render(section.Body, examples.Config{
			Lang:                    d.ExamplesLang,
			RemoveDoctestSkip:       d.RemoveDoctestSkip,
			RemoveDoctestBlanklines: d.RemoveDoctestBlanklines,
		})
	case section.ParametersLike():
		return renderEntries(docstring.ParseEntries(section.Body))
	case section.Name == "See Also":
		return renderSeeAlso(docstring.ParseSeeAlso(section.Body))
	default:
		// Notes, Warnings, References and custom sections are plain markdown
		return strings.Split(section.Body, "\n")
	}
}

// renderEntries renders Parameters-like entries as a bulleted list:
// bold name, italic type, indented description.
func renderEntries(entries []docstring.Entry) []string {
	var out []string
	for i, entry := range entries {
		var parts []string
		if entry.Name != "" {
			parts = append(parts, "**"+escape(entry.Name)+"**")
		}
		if entry.Type != "" {
			parts = append(parts, "**_"+escape(entry.Type)+"_**")
		}
		first := strings.Join(parts, " : ")
		if first != "" {
			first = "* " + first
		}
		out = append(out, first)
		out = append(out, descriptionLines(entry.Desc)...)
		if i < len(entries)-1 {
			out = append(out, "")
		}
	}
	return out
}

func renderSeeAlso(entries []docstring.SeeAlsoEntry) []string {
	var out []string
	for i, entry := range entries {
		names := make([]string, len(entry.Names))
		for j, n := range entry.Names {
			names[j] = escape(n)
		}
		out = append(out, "* **"+strings.Join(names, ", ")+"**")
		out = append(out, descriptionLines(entry.Desc)...)
		if i < len(entries)-1 {
			out = append(out, "")
		}
	}
	return out
}

// descriptionLines indents description text by two spaces: enough for a
// bullet-level indent, not enough to start an accidental code block.
func descriptionLines(desc []string) []string {
	if len(desc) == 0 {
		return nil
	}
	out := []string{""}
	for _, line := range desc {
		if strings.TrimSpace(line) == "" {
			out = append(out, line)
		} else {
			out = append(out, "  "+line)
		}
	}
	return out
}

func escape(s string) string {
	return mdEscaper.Replace(s)
}

func cleanSignature(sig string) string {
	return selfOrClsRe.ReplaceAllString(sig, "(")
}
