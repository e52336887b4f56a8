package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/npmd-dev/npmd/internal/render"
)

var folderCmd = &cobra.Command{
	Use:   "folder <source> <destination>",
	Short: "Render every template in a folder",
	Long: `Render every matching template under the source folder into a mirrored
destination tree. Non-Markdown extensions are normalized to ".md".`,
	Example: `  npmd folder docs/ wiki/
  npmd folder --recursive docs/ wiki/
  npmd folder --pattern '\.npmd$' --case-sensitive docs/ wiki/`,
	Args: cobra.ExactArgs(2),
	Run:  runFolder,
}

var (
	folderRecursive     bool
	folderPattern       string
	folderCaseSensitive bool
	folderConcurrency   int
)

func init() {
	folderCmd.Flags().BoolVar(&folderRecursive, "recursive", false, "descend into subfolders")
	folderCmd.Flags().StringVar(&folderPattern, "pattern", "", "file name pattern (default matches .md and .npmd)")
	folderCmd.Flags().BoolVar(&folderCaseSensitive, "case-sensitive", false, "match the pattern case sensitively")
	folderCmd.Flags().IntVar(&folderConcurrency, "concurrency", 0, "files rendered in parallel (default from config)")

	rootCmd.AddCommand(folderCmd)
}

func runFolder(cmd *cobra.Command, args []string) {
	opts := render.FolderOptions{
		Source:        args[0],
		Destination:   args[1],
		Recursive:     folderRecursive || cfg.Render.Recursive,
		IgnoreErrors:  ignoreErrors(cmd),
		Pattern:       folderPattern,
		CaseSensitive: folderCaseSensitive || cfg.Render.CaseSensitive,
		Concurrency:   folderConcurrency,
	}
	if opts.Pattern == "" {
		opts.Pattern = cfg.Render.Pattern
	}
	if opts.Concurrency == 0 {
		opts.Concurrency = cfg.Render.Concurrency
	}

	engine, err := newEngine()
	if err != nil {
		log.Fatalf("failed to create renderer: %v", err)
	}

	rendered, err := engine.RenderFolder(opts)
	if err != nil {
		log.Fatalf("rendering failed: %v", err)
	}

	issues := 0
	for _, file := range rendered {
		if len(file.Issues) > 0 {
			issues += len(file.Issues)
			fmt.Printf("  %s -> %s (%d issues)\n", file.Source, file.Destination, len(file.Issues))
			continue
		}
		fmt.Printf("  %s -> %s\n", file.Source, file.Destination)
	}
	fmt.Printf("rendered %d file(s)\n", len(rendered))
	if issues > 0 {
		fmt.Printf("%d placeholder(s) left verbatim\n", issues)
	}
}
