package index

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/npmd-dev/npmd/internal/resolver"
)

func sampleFile() *File {
	return &File{Objects: map[string]Entry{
		"demo.Greeter": {
			Docstring: "A greeter.\n\nExamples\n--------\n>>> greet()\nhi",
			Members:   []string{"Greet", "_hidden"},
		},
		"demo.Greeter.Greet": {
			Signature: "(name string) string",
			Docstring: "Greets someone.",
		},
	}}
}

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docs.idx.zst")
	if err := Write(path, sampleFile()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, sampleFile()) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, sampleFile())
	}
}

func TestResolver(t *testing.T) {
	t.Parallel()

	r := NewResolver(sampleFile())

	obj, err := r.Resolve("demo.Greeter.Greet")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if obj.Signature != "(name string) string" || obj.Path != "demo.Greeter.Greet" {
		t.Errorf("got %+v", obj)
	}

	_, err = r.Resolve("demo.Missing")
	var notFound *resolver.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if notFound.Path != "demo.Missing" {
		t.Errorf("path: %q", notFound.Path)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Open(filepath.Join(t.TempDir(), "nope.idx.zst")); err == nil {
		t.Fatal("expected error for missing index file")
	}
}
