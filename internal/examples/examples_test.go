package examples

import (
	"strings"
	"testing"
)

func render(body string, cfg Config) string {
	return strings.Join(Render(body, cfg), "\n")
}

func TestInlineTag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		line string
		want string
	}{
		{"{{python}}", "python"},
		{"  {{raw}}  ", "raw"},
		{"{{markdown_rendered}}", "markdown_rendered"},
		{`{{"obj":"datetime.datetime"}}`, ""},
		{"{{two words}}", "two words"},
		{"not a tag", ""},
		{"{{}}", ""},
	}
	for _, c := range cases {
		if got := InlineTag(c.line); got != c.want {
			t.Errorf("InlineTag(%q) = %q, want %q", c.line, got, c.want)
		}
	}
}

func TestParse_Blocks(t *testing.T) {
	t.Parallel()

	lines := []string{
		"{{python}}",
		"* first example",
		">>> print(123)",
		"123",
		"",
		"* second example",
		">>> print(\"hello\")",
		"hello",
	}
	steps := Parse(lines, "raw")
	if len(steps) != 2 {
		t.Fatalf("got %d steps: %+v", len(steps), steps)
	}
	if steps[0].Tag != "python" {
		t.Errorf("step 0 tag: %q", steps[0].Tag)
	}
	if len(steps[0].TextLines) != 1 || steps[0].TextLines[0] != "* first example" {
		t.Errorf("step 0 text: %v", steps[0].TextLines)
	}
	if steps[0].InputLines[0] != ">>> print(123)" || steps[0].OutputLines[0] != "123" {
		t.Errorf("step 0: %+v", steps[0])
	}
	// the inline tag persists into the second step
	if steps[1].Tag != "python" {
		t.Errorf("step 1 tag: %q", steps[1].Tag)
	}
	if len(steps[1].OutputLines) != 1 || steps[1].OutputLines[0] != "hello" {
		t.Errorf("step 1 output: %v", steps[1].OutputLines)
	}
}

func TestParse_TagOverridesPerStep(t *testing.T) {
	t.Parallel()

	lines := []string{
		">>> a",
		"out_a",
		"",
		"{{json}}",
		">>> b",
		"out_b",
	}
	steps := Parse(lines, "raw")
	if len(steps) != 2 {
		t.Fatalf("got %d steps", len(steps))
	}
	if steps[0].Tag != "raw" || steps[1].Tag != "json" {
		t.Errorf("tags: %q, %q", steps[0].Tag, steps[1].Tag)
	}
}

func TestParse_InputWithoutOutput(t *testing.T) {
	t.Parallel()

	steps := Parse([]string{">>> setup()"}, "raw")
	if len(steps) != 1 || len(steps[0].OutputLines) != 0 || len(steps[0].InputLines) != 1 {
		t.Fatalf("got %+v", steps)
	}
}

func TestParse_ContinuationPrompt(t *testing.T) {
	t.Parallel()

	steps := Parse([]string{">>> for i in range(2):", "...     print(i)", "0", "1"}, "raw")
	if len(steps) != 1 {
		t.Fatalf("got %d steps", len(steps))
	}
	if len(steps[0].InputLines) != 2 || len(steps[0].OutputLines) != 2 {
		t.Fatalf("got %+v", steps[0])
	}
}

func TestRender_RawTwoUnlabeledFences(t *testing.T) {
	t.Parallel()

	got := render(">>> print('Hello')\nHello", Config{Lang: "raw"})
	want := "```\nprint('Hello')\n```\n```\nHello\n```"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_MarkdownRenderedTableUnfenced(t *testing.T) {
	t.Parallel()

	body := "{{markdown_rendered}}\n>>> df.to_markdown()\n| A | B |\n|---|---|\n| 1 | 2 |"
	got := render(body, Config{Lang: "python"})
	want := "```python\ndf.to_markdown()\n```\n| A | B |\n|---|---|\n| 1 | 2 |"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_OutputFenceFollowsTagInputFenceDoesNot(t *testing.T) {
	t.Parallel()

	body := "{{text}}\n>>> greet()\nhi there"
	got := render(body, Config{Lang: "python"})
	want := "```python\ngreet()\n```\n```text\nhi there\n```"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_RemoveDoctestSkip(t *testing.T) {
	t.Parallel()

	body := "{{html}}\n>>> fetch() # doctest: +SKIP\n<p>hi</p>"
	got := render(body, Config{Lang: "python", RemoveDoctestSkip: true})
	if strings.Contains(got, "SKIP") {
		t.Errorf("skip marker not removed:\n%s", got)
	}
	if !strings.Contains(got, "fetch()\n") {
		t.Errorf("input statement mangled:\n%s", got)
	}
}

func TestRender_SkipMarkerKeptByDefault(t *testing.T) {
	t.Parallel()

	got := render(">>> fetch() # doctest: +SKIP\nok", Config{Lang: "raw"})
	if !strings.Contains(got, "# doctest: +SKIP") {
		t.Errorf("skip marker should be preserved:\n%s", got)
	}
}

func TestRender_RemoveDoctestBlanklines(t *testing.T) {
	t.Parallel()

	body := ">>> print('a\\n\\nb')\na\n<BLANKLINE>\nb"
	got := render(body, Config{Lang: "raw", RemoveDoctestBlanklines: true})
	want := "```\nprint('a\\n\\nb')\n```\n```\na\n\nb\n```"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_TextPassesThrough(t *testing.T) {
	t.Parallel()

	body := "Some prose first.\n\n>>> x = 1"
	got := render(body, Config{Lang: "raw"})
	if !strings.Contains(got, "Some prose first.") {
		t.Errorf("prose lost:\n%s", got)
	}
	if strings.Contains(got, ">>>") {
		t.Errorf("prompt marker leaked:\n%s", got)
	}
}

func TestRender_TagLineRemoved(t *testing.T) {
	t.Parallel()

	got := render("{{raw}}\n>>> x\n1", Config{Lang: "python"})
	if strings.Contains(got, "{{") {
		t.Errorf("tag line leaked into output:\n%s", got)
	}
}
