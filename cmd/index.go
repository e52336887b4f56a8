package cmd

import (
	"fmt"
	"log"
	"sort"

	"github.com/spf13/cobra"

	"github.com/npmd-dev/npmd/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the documentation index",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build <packages ...>",
	Short: "Extract documentation from Go packages into the index",
	Example: `  npmd index build ./...
  npmd index build github.com/some/pkg/...
  npmd index build --out docs.idx.zst ./...`,
	Args: cobra.MinimumNArgs(1),
	Run:  runIndexBuild,
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the objects in the index",
	Args:  cobra.NoArgs,
	Run:   runIndexList,
}

var indexOut string

func init() {
	indexBuildCmd.Flags().StringVar(&indexOut, "out", "", "index file to write (defaults to the cached index)")

	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexListCmd)
	rootCmd.AddCommand(indexCmd)
}

func indexPath() string {
	if flagIndexPath != "" {
		return flagIndexPath
	}
	return cfg.Index.Path
}

func runIndexBuild(cmd *cobra.Command, args []string) {
	out := indexOut
	if out == "" {
		out = indexPath()
	}

	file, err := index.Build(args...)
	if err != nil {
		log.Fatalf("failed to extract documentation: %v", err)
	}
	if err := index.Write(out, file); err != nil {
		log.Fatalf("failed to write index: %v", err)
	}

	fmt.Printf("indexed %d object(s) into %s\n", len(file.Objects), out)
}

func runIndexList(cmd *cobra.Command, args []string) {
	file, err := index.Read(indexPath())
	if err != nil {
		log.Fatalf("failed to read index: %v", err)
	}

	paths := make([]string, 0, len(file.Objects))
	for path := range file.Objects {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		fmt.Println(path)
	}
}
