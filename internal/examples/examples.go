// Package examples turns the body of an Examples docstring section into
// Markdown. Interleaved interactive-prompt inputs and captured outputs become
// fenced code blocks; inline {{tag}} lines switch how subsequent outputs are
// formatted.
package examples

import (
	"regexp"
	"strings"
)

// Reserved output tags. Any other tag is treated as a fence info-string for
// the step's output.
const (
	TagRaw              = "raw"
	TagMarkdownRendered = "markdown_rendered"
)

var (
	promptRe      = regexp.MustCompile(`^(>>> ?|\.\.\. ?)`)
	doctestSkipRe = regexp.MustCompile(` *# *doctest: *\+SKIP *$`)
	blanklineRe   = regexp.MustCompile(`^ *<BLANKLINE> *$`)
	inlineTagRe   = regexp.MustCompile(`^\{\{([^{}:",]+)\}\}$`)
)

// InlineTag returns the tag carried by an inline {{token}} line, or "" if the
// line is not one. The token must be a single bare word: anything containing
// JSON punctuation is a render directive, not a tag.
func InlineTag(line string) string {
	m := inlineTagRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Step is one input/output pair. TextLines hold any prose that appeared
// before the input run and are emitted verbatim. Tag is the output language
// tag active when the step started.
type Step struct {
	Tag         string
	TextLines   []string
	InputLines  []string
	OutputLines []string
}

// Config controls rendering of an Examples section.
type Config struct {
	// Lang is the directive-level example language. It labels every input
	// fence and is the output tag for steps with no overriding inline tag.
	Lang                    string
	RemoveDoctestSkip       bool
	RemoveDoctestBlanklines bool
}

type lineType int

const (
	lineText lineType = iota
	lineInput
	lineOutput
	lineTag
)

// label classifies each line. A prompt line is input. A non-blank line
// directly after an input is output, and output continues over non-blank
// lines. Inline {{tag}} lines and everything else are tag and text lines.
func label(lines []string) []lineType {
	types := make([]lineType, len(lines))
	for i, line := range lines {
		if promptRe.MatchString(line) {
			types[i] = lineInput
			continue
		}
		blank := strings.TrimSpace(line) == ""
		followsInput := i > 0 && types[i-1] == lineInput
		followsOutput := i > 0 && types[i-1] == lineOutput
		prevBlank := i > 0 && strings.TrimSpace(lines[i-1]) == ""
		if (followsInput && !blank) || (followsOutput && !blank && !prevBlank) {
			types[i] = lineOutput
			continue
		}
		if InlineTag(line) != "" {
			types[i] = lineTag
			continue
		}
		types[i] = lineText
	}
	return types
}

// Parse groups the lines of an Examples body into steps. defaultTag seeds the
// active output tag; an inline tag line replaces it for all following steps
// until the next tag line.
func Parse(lines []string, defaultTag string) []Step {
	types := label(lines)
	tag := defaultTag

	var steps []Step
	var text []string
	var cur *Step

	flush := func() {
		if cur != nil {
			steps = append(steps, *cur)
			cur = nil
		}
	}

	for i, line := range lines {
		switch types[i] {
		case lineTag:
			flush()
			tag = InlineTag(line)
		case lineText:
			flush()
			text = append(text, line)
		case lineInput:
			// a new prompt after captured output starts the next step
			if cur != nil && len(cur.OutputLines) > 0 {
				flush()
			}
			if cur == nil {
				cur = &Step{Tag: tag, TextLines: text}
				text = nil
			}
			cur.InputLines = append(cur.InputLines, line)
		case lineOutput:
			cur.OutputLines = append(cur.OutputLines, line)
		}
	}
	flush()
	if len(text) > 0 {
		steps = append(steps, Step{Tag: tag, TextLines: text})
	}
	return steps
}

// Render converts an Examples section body to Markdown lines.
func Render(body string, cfg Config) []string {
	if cfg.Lang == "" {
		cfg.Lang = "python"
	}
	var out []string
	for _, step := range Parse(strings.Split(body, "\n"), cfg.Lang) {
		out = append(out, step.TextLines...)
		out = append(out, renderInput(step, cfg)...)
		out = append(out, renderOutput(step, cfg)...)
	}
	return out
}

func renderInput(step Step, cfg Config) []string {
	if len(step.InputLines) == 0 {
		return nil
	}
	out := []string{"```" + inputInfoString(step.Tag, cfg.Lang)}
	for _, line := range step.InputLines {
		if cfg.RemoveDoctestSkip {
			line = doctestSkipRe.ReplaceAllString(line, "")
		}
		out = append(out, promptRe.ReplaceAllString(line, ""))
	}
	return append(out, "```")
}

func renderOutput(step Step, cfg Config) []string {
	if len(step.OutputLines) == 0 {
		return nil
	}
	var out []string
	fenced := step.Tag != TagMarkdownRendered
	if fenced {
		info := step.Tag
		if info == TagRaw {
			info = ""
		}
		out = append(out, "```"+info)
	}
	for _, line := range step.OutputLines {
		if cfg.RemoveDoctestBlanklines && blanklineRe.MatchString(line) {
			line = ""
		}
		out = append(out, line)
	}
	if fenced {
		out = append(out, "```")
	}
	return out
}

// inputInfoString labels the input fence with the example language. The input
// fence never follows the per-step output tag, except that a raw step leaves
// the input unlabeled too. Reserved flags are not languages, so they never
// label a fence.
func inputInfoString(tag, lang string) string {
	if tag == TagRaw {
		return ""
	}
	if lang == TagRaw || lang == TagMarkdownRendered {
		return ""
	}
	return lang
}
