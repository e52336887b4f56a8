package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/npmd-dev/npmd/internal/directive"
	"github.com/npmd-dev/npmd/internal/markdown"
	"github.com/npmd-dev/npmd/internal/members"
)

var objCmd = &cobra.Command{
	Use:   "obj <path>",
	Short: "Render one object's docstring as Markdown",
	Example: `  npmd obj mypkg.download
  npmd obj mypkg.MyClass --members 'public$'
  npmd obj mypkg.MyClass.my_method --alias my_method --level 2`,
	Args: cobra.ExactArgs(1),
	Run:  runObj,
}

var (
	objAlias        string
	objExamplesLang string
	objLevel        int
	objMembers      []string
	objSkip         bool
	objBlanklines   bool
	objHTML         bool
)

func init() {
	objCmd.Flags().StringVar(&objAlias, "alias", "", "display name for the rendered header")
	objCmd.Flags().StringVar(&objExamplesLang, "examples-lang", directive.DefaultExamplesLang, "language tag for example code fences")
	objCmd.Flags().IntVar(&objLevel, "level", directive.DefaultSectionLevel, "heading level for docstring sections")
	objCmd.Flags().StringSliceVar(&objMembers, "members", nil, `member selectors: public$, private$, dunder$, +name, -name, name`)
	objCmd.Flags().BoolVar(&objSkip, "remove-doctest-skip", false, "strip doctest +SKIP markers from examples")
	objCmd.Flags().BoolVar(&objBlanklines, "remove-doctest-blanklines", false, "replace <BLANKLINE> markers in example output")
	objCmd.Flags().BoolVar(&objHTML, "html", false, "emit an HTML preview instead of Markdown")

	rootCmd.AddCommand(objCmd)
}

func runObj(cmd *cobra.Command, args []string) {
	if objLevel < 1 {
		log.Fatalf("--level must be at least 1")
	}
	tokens, err := members.ParseTokens(objMembers)
	if err != nil {
		log.Fatalf("invalid --members: %v", err)
	}

	d := &directive.Directive{
		Target:                  args[0],
		Alias:                   objAlias,
		ExamplesLang:            objExamplesLang,
		SectionLevel:            objLevel,
		Members:                 tokens,
		RemoveDoctestSkip:       objSkip,
		RemoveDoctestBlanklines: objBlanklines,
	}

	engine, err := newEngine()
	if err != nil {
		log.Fatalf("failed to create renderer: %v", err)
	}

	fragment, err := engine.RenderObject(d)
	if err != nil {
		log.Fatalf("failed to render %s: %v", d.Target, err)
	}

	if objHTML {
		fmt.Println(markdown.ToHTML(fragment))
		return
	}
	fmt.Println(fragment)
}
