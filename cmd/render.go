package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/npmd-dev/npmd/internal/render"
)

var stringCmd = &cobra.Command{
	Use:   "string [text]",
	Short: "Substitute placeholders in a Markdown string",
	Long:  `Substitute every {{...}} placeholder in a Markdown string. Reads stdin when no argument is given.`,
	Example: `  npmd string '{{"obj": "mypkg.download"}}'
  cat template.npmd | npmd string`,
	Args: cobra.MaximumNArgs(1),
	Run:  runString,
}

var fileCmd = &cobra.Command{
	Use:   "file <source> [destination]",
	Short: "Render a template file",
	Long:  `Render a template file. Writes to the destination when given, otherwise prints to stdout.`,
	Example: `  npmd file docs/Home.npmd
  npmd file docs/Home.npmd wiki/Home.md
  npmd file --ignore-errors docs/Home.npmd wiki/Home.md`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runFile,
}

func init() {
	rootCmd.AddCommand(stringCmd)
	rootCmd.AddCommand(fileCmd)
}

func runString(cmd *cobra.Command, args []string) {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("failed to read stdin: %v", err)
		}
		text = string(data)
	}

	engine, err := newEngine()
	if err != nil {
		log.Fatalf("failed to create renderer: %v", err)
	}

	result, err := engine.RenderString(text, ignoreErrors(cmd))
	if err != nil {
		log.Fatalf("rendering failed: %v", err)
	}

	fmt.Println(result.Text)
	reportIssues(result.Issues)
}

func runFile(cmd *cobra.Command, args []string) {
	destination := ""
	if len(args) == 2 {
		destination = args[1]
	}

	engine, err := newEngine()
	if err != nil {
		log.Fatalf("failed to create renderer: %v", err)
	}

	file, err := engine.RenderFile(args[0], destination, ignoreErrors(cmd))
	if err != nil {
		log.Fatalf("rendering failed: %v", err)
	}

	if destination == "" {
		fmt.Println(file.RenderedText)
	}
	reportIssues(file.Issues)
}

// reportIssues prints failed placeholders to stderr so rendered output on
// stdout stays clean.
func reportIssues(issues []render.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "  issue at byte %d: %v\n", issue.Offset, issue.Err)
	}
	if len(issues) > 0 {
		fmt.Fprintf(os.Stderr, "%d placeholder(s) left verbatim\n", len(issues))
	}
}
