// Package directive parses the {{ "obj": ... }} placeholder lines embedded in
// Markdown templates.
package directive

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/npmd-dev/npmd/internal/examples"
	"github.com/npmd-dev/npmd/internal/members"
)

// Defaults for the optional directive keys.
const (
	DefaultExamplesLang = "python"
	DefaultSectionLevel = 3
)

// Directive is one parsed placeholder occurrence. It is never mutated after
// Parse returns it.
type Directive struct {
	// Target is the dotted path of the object to document (the "obj" key).
	Target string
	// Alias replaces Target in the rendered header when set.
	Alias string
	// ExamplesLang labels example input fences and is the default output
	// tag for example steps.
	ExamplesLang string
	// RemoveDoctestSkip strips "# doctest: +SKIP" from example inputs.
	RemoveDoctestSkip bool
	// RemoveDoctestBlanklines turns "<BLANKLINE>" outputs into empty lines.
	RemoveDoctestBlanklines bool
	// SectionLevel is the Markdown heading level for sections; the object
	// header sits one level above.
	SectionLevel int
	// IgnoreCustomSectionWarning silences the custom-section diagnostic.
	IgnoreCustomSectionWarning bool
	// Members selects additional members of Target to render.
	Members []members.Token

	// Line is the original placeholder text, preserved verbatim when a
	// render fails in ignore-errors mode.
	Line string
}

// Child derives the directive used to render one selected member: the target
// (and alias, when set) gain the member suffix and no further member
// expansion happens.
func (d *Directive) Child(member string) *Directive {
	child := *d
	child.Target = d.Target + "." + member
	if d.Alias != "" {
		child.Alias = d.Alias + "." + member
	}
	child.Members = nil
	return &child
}

// HeaderName returns the name shown in the rendered header.
func (d *Directive) HeaderName() string {
	if d.Alias != "" {
		return d.Alias
	}
	return d.Target
}

// SyntaxError reports a malformed placeholder. Offset is the byte offset of
// the line within the scanned document (zero when parsing a bare line).
type SyntaxError struct {
	Line   string
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid placeholder at byte %d: %s (line: %s)", e.Offset, e.Reason, e.Line)
}

// IsCandidate reports whether the trimmed line has the placeholder shape:
// it begins with two opening braces and ends with two closing braces.
// Directives never span lines.
func IsCandidate(line string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= 4 && strings.HasPrefix(trimmed, "{{") && strings.HasSuffix(trimmed, "}}")
}

// Search decides what a template line is. It returns a parsed directive, or
// (nil, nil) for lines that are not placeholders at all. Degenerate
// {{token}} lines are inline example-language tags, not directives, and also
// yield (nil, nil): they only have meaning inside an Examples section.
func Search(line string) (*Directive, error) {
	if !IsCandidate(line) || examples.InlineTag(line) != "" {
		return nil, nil
	}
	return Parse(line)
}

// Parse decodes a placeholder line. The interior after stripping one brace
// from each side is a JSON object; "obj" is required, unknown keys fail, and
// every other key takes its documented default.
func Parse(line string) (*Directive, error) {
	trimmed := strings.TrimSpace(line)
	interior := trimmed[1 : len(trimmed)-1]

	var raw map[string]any
	if err := json.Unmarshal([]byte(interior), &raw); err != nil {
		return nil, &SyntaxError{Line: trimmed, Reason: fmt.Sprintf("malformed record: %v", err)}
	}

	d := &Directive{
		ExamplesLang: DefaultExamplesLang,
		SectionLevel: DefaultSectionLevel,
		Line:         line,
	}

	for key, value := range raw {
		var err error
		switch key {
		case "obj":
			d.Target, err = stringValue(key, value)
		case "alias":
			d.Alias, err = stringValue(key, value)
		case "examples_md_lang":
			d.ExamplesLang, err = stringValue(key, value)
		case "remove_doctest_skip":
			d.RemoveDoctestSkip, err = boolValue(key, value)
		case "remove_doctest_blanklines":
			d.RemoveDoctestBlanklines, err = boolValue(key, value)
		case "md_section_level":
			d.SectionLevel, err = intValue(key, value)
		case "ignore_custom_section_warning":
			d.IgnoreCustomSectionWarning, err = boolValue(key, value)
		case "members":
			d.Members, err = memberTokens(value)
		default:
			err = fmt.Errorf("unknown key %q", key)
		}
		if err != nil {
			return nil, &SyntaxError{Line: trimmed, Reason: err.Error()}
		}
	}

	if d.Target == "" {
		return nil, &SyntaxError{Line: trimmed, Reason: `missing mandatory key "obj"`}
	}
	if d.SectionLevel < 1 {
		return nil, &SyntaxError{Line: trimmed, Reason: fmt.Sprintf("md_section_level must be >= 1, got %d", d.SectionLevel)}
	}
	return d, nil
}

func stringValue(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("key %q expects a string, got %T", key, v)
	}
	return s, nil
}

func boolValue(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("key %q expects a boolean, got %T", key, v)
	}
	return b, nil
}

func intValue(key string, v any) (int, error) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("key %q expects an integer, got %v", key, v)
	}
	return int(f), nil
}

// memberTokens decodes the raw "members" list. JSON arrays keep their order,
// so token order is preserved.
func memberTokens(v any) ([]members.Token, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf(`key "members" expects a list of strings, got %T`, v)
	}
	raw := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf(`key "members" contains a non-string value: %v`, item)
		}
		raw = append(raw, s)
	}
	return members.ParseTokens(raw)
}
