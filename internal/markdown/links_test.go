package markdown

import (
	"strings"
	"testing"
)

func TestNormalizeLinks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "inline template link",
			src:  "See [the API](Api.npmd) for details.",
			want: "See [the API](Api.md) for details.",
		},
		{
			name: "anchor preserved",
			src:  "[section](Guide.npmd#setup)",
			want: "[section](Guide.md#setup)",
		},
		{
			name: "case insensitive extension",
			src:  "[home](Home.NPMD)",
			want: "[home](Home.md)",
		},
		{
			name: "markdown link untouched",
			src:  "[other](Other.md)",
			want: "[other](Other.md)",
		},
		{
			name: "external url untouched",
			src:  "[site](https://example.com/page.npmd)",
			want: "[site](https://example.com/page.npmd)",
		},
		{
			name: "fragment only untouched",
			src:  "[up](#top)",
			want: "[up](#top)",
		},
		{
			name: "reference definition",
			src:  "[guide][1]\n\n[1]: Guide.npmd",
			want: "[guide][1]\n\n[1]: Guide.md",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeLinks(tc.src); got != tc.want {
				t.Errorf("NormalizeLinks(%q) = %q, want %q", tc.src, got, tc.want)
			}
		})
	}
}

func TestNormalizeLinks_PreservesFormatting(t *testing.T) {
	t.Parallel()

	src := "# Title\n\n* a bullet with [a link](Page.npmd)\n\n```\ncode block\n```\n"
	got := NormalizeLinks(src)
	want := strings.Replace(src, "Page.npmd", "Page.md", 1)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTML(t *testing.T) {
	t.Parallel()

	got := ToHTML("# Title\n\nSome *emphasis*.")
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "<em>emphasis</em>") {
		t.Errorf("unexpected HTML: %s", got)
	}
}
