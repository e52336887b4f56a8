// Package index stores a pre-extracted docstring index: every documented
// object of a package tree, serialized as JSON and zstd-compressed. The
// index doubles as a resolver, so templates can be rendered without loading
// the documented source again.
package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/npmd-dev/npmd/internal/resolver"
)

// Entry is one indexed object.
type Entry struct {
	Signature string   `json:"signature,omitempty"`
	Docstring string   `json:"docstring,omitempty"`
	Members   []string `json:"members,omitempty"`
}

// File is the on-disk index document.
type File struct {
	Objects map[string]Entry `json:"objects"`
}

// Build extracts all documented objects of the packages matched by the
// patterns into an index document.
func Build(patterns ...string) (*File, error) {
	objects, err := resolver.Extract(patterns...)
	if err != nil {
		return nil, err
	}
	f := &File{Objects: make(map[string]Entry, len(objects))}
	for path, obj := range objects {
		f.Objects[path] = Entry{
			Signature: obj.Signature,
			Docstring: obj.Docstring,
			Members:   obj.Members,
		}
	}
	return f, nil
}

// Write serializes the index to path, zstd-compressed.
func Write(path string, f *File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}

	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("compressing index: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing zstd writer: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing index file: %w", err)
	}
	return nil
}

// Read loads and decompresses an index file.
func Read(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading index file %s: %w", path, err)
	}
	defer fh.Close()

	r, err := zstd.NewReader(fh)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing index file %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding index file %s: %w", path, err)
	}
	return &f, nil
}

// Resolver serves lookups from a loaded index.
type Resolver struct {
	objects map[string]Entry
}

// Open reads the index at path and wraps it as a resolver.
func Open(path string) (*Resolver, error) {
	f, err := Read(path)
	if err != nil {
		return nil, err
	}
	return NewResolver(f), nil
}

// NewResolver wraps an in-memory index document.
func NewResolver(f *File) *Resolver {
	return &Resolver{objects: f.Objects}
}

func (r *Resolver) Resolve(path string) (*resolver.Object, error) {
	entry, ok := r.objects[path]
	if !ok {
		return nil, &resolver.NotFoundError{Path: path}
	}
	return &resolver.Object{
		Path:      path,
		Signature: entry.Signature,
		Docstring: entry.Docstring,
		Members:   entry.Members,
	}, nil
}
