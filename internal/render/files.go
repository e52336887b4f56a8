package render

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/npmd-dev/npmd/internal/markdown"
)

// DefaultPattern matches template file names: ".npmd" templates and plain
// ".md" documents.
const DefaultPattern = `\.(np)?md$`

// RenderedFile is the outcome of rendering one template file.
type RenderedFile struct {
	Source       string
	Destination  string
	OriginalText string
	RenderedText string
	Issues       []Issue
}

// RenderFile reads the template at source, substitutes its placeholders and,
// when destination is non-empty, writes the rendered text back (creating
// missing directories).
func (e *Engine) RenderFile(source, destination string, ignoreErrors bool) (*RenderedFile, error) {
	e.logger.Info("rendering template file", "source", source, "destination", destination)

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", source, err)
	}

	result, err := e.RenderString(string(data), ignoreErrors)
	if err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", source, err)
	}

	text := result.Text
	if destination != "" {
		// Cross-page links still point at template names; rendered files
		// drop the template extension, so the links follow suit.
		text = markdown.NormalizeLinks(text)
		if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
			return nil, fmt.Errorf("creating destination directory: %w", err)
		}
		if err := os.WriteFile(destination, []byte(text), 0644); err != nil {
			return nil, fmt.Errorf("writing rendered file %s: %w", destination, err)
		}
	}

	return &RenderedFile{
		Source:       source,
		Destination:  destination,
		OriginalText: string(data),
		RenderedText: text,
		Issues:       result.Issues,
	}, nil
}

// FolderOptions configures RenderFolder.
type FolderOptions struct {
	Source string
	// Destination mirrors the source tree when non-empty; rendered files
	// keep their names with non-Markdown extensions normalized to ".md".
	Destination  string
	Recursive    bool
	IgnoreErrors bool
	// Pattern filters file names; DefaultPattern when empty.
	Pattern       string
	CaseSensitive bool
	// Concurrency bounds the per-file fan-out; 4 when zero.
	Concurrency int
}

// RenderFolder renders every matching template under the source folder.
// Files are independent, so they render concurrently; results come back in
// deterministic path order. With IgnoreErrors a file that cannot be read or
// rendered is reported as a result carrying the failure and the remaining
// files still render; otherwise the first failure aborts.
func (e *Engine) RenderFolder(opts FolderOptions) ([]*RenderedFile, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !opts.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling file pattern %q: %w", opts.Pattern, err)
	}

	sources, err := listFiles(opts.Source, re, opts.Recursive)
	if err != nil {
		return nil, err
	}
	e.logger.Info("rendering folder", "source", opts.Source, "files", len(sources))

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	rendered := make([]*RenderedFile, len(sources))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, source := range sources {
		g.Go(func() error {
			destination := ""
			if opts.Destination != "" {
				var err error
				destination, err = destinationPath(opts.Source, opts.Destination, source)
				if err != nil {
					return err
				}
			}
			file, err := e.RenderFile(source, destination, opts.IgnoreErrors)
			if err != nil {
				if !opts.IgnoreErrors {
					return err
				}
				e.logger.Error("skipping file that failed to render", "source", source, "error", err)
				rendered[i] = &RenderedFile{
					Source:      source,
					Destination: destination,
					Issues:      []Issue{{Err: err}},
				}
				return nil
			}
			rendered[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rendered, nil
}

func listFiles(folder string, re *regexp.Regexp, recursive bool) ([]string, error) {
	var files []string
	if recursive {
		err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && re.MatchString(d.Name()) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking folder %s: %w", folder, err)
		}
	} else {
		entries, err := os.ReadDir(folder)
		if err != nil {
			return nil, fmt.Errorf("listing folder %s: %w", folder, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && re.MatchString(entry.Name()) {
				files = append(files, filepath.Join(folder, entry.Name()))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// destinationPath mirrors a source file into the destination tree and
// normalizes the extension: anything that is not already ".md" (case
// insensitive) becomes ".md", so "Home.npmd" renders to "Home.md" while
// "Logging.MD" keeps its name.
func destinationPath(sourceRoot, destinationRoot, source string) (string, error) {
	rel, err := filepath.Rel(sourceRoot, source)
	if err != nil {
		return "", fmt.Errorf("relativizing %s: %w", source, err)
	}
	destination := filepath.Join(destinationRoot, rel)
	if !strings.EqualFold(filepath.Ext(destination), ".md") {
		destination = strings.TrimSuffix(destination, filepath.Ext(destination)) + ".md"
	}
	return destination, nil
}
