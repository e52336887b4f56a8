package render

import (
	"errors"
	"strings"

	"github.com/npmd-dev/npmd/internal/directive"
)

// Issue records one directive that failed in ignore-errors mode. The
// directive's original text stays in the output untouched.
type Issue struct {
	// Line is the original placeholder line.
	Line string
	// Offset is the byte offset of the line within the document.
	Offset int
	// Err is the underlying failure.
	Err error
}

// Result is a substituted document plus any recorded failures.
type Result struct {
	Text   string
	Issues []Issue
}

// RenderString substitutes every placeholder in a document. Each directive
// line is replaced by its rendered fragment in a single pass: inserted
// Markdown is never re-scanned for further directives. In strict mode the
// first failure aborts with its typed error; with ignoreErrors the failing
// line passes through verbatim, the failure is recorded on the result, and
// the remaining directives still render.
func (e *Engine) RenderString(text string, ignoreErrors bool) (*Result, error) {
	var out []string
	var issues []Issue
	offset := 0

	for _, line := range strings.Split(text, "\n") {
		lineOffset := offset
		offset += len(line) + 1

		d, err := directive.Search(line)
		if err != nil {
			var syntaxErr *directive.SyntaxError
			if errors.As(err, &syntaxErr) {
				syntaxErr.Offset = lineOffset
			}
			if !ignoreErrors {
				return nil, err
			}
			e.logger.Error("keeping unparseable placeholder verbatim", "line", strings.TrimSpace(line), "error", err)
			issues = append(issues, Issue{Line: line, Offset: lineOffset, Err: err})
			out = append(out, line)
			continue
		}
		if d == nil {
			out = append(out, line)
			continue
		}

		fragment, err := e.renderObject(d, ignoreErrors)
		if err != nil {
			if !ignoreErrors {
				return nil, err
			}
			e.logger.Error("keeping failed placeholder verbatim", "target", d.Target, "error", err)
			issues = append(issues, Issue{Line: line, Offset: lineOffset, Err: err})
			out = append(out, line)
			continue
		}
		out = append(out, fragment)
	}

	return &Result{Text: strings.Join(out, "\n"), Issues: issues}, nil
}
