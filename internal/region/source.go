package region

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
)

//go:embed data/regions.json
var bundled []byte

// Source loads a Dataset. Implementations are called once per controller.
type Source interface {
	Name() string
	Load(ctx context.Context) (*Dataset, error)
}

// EmbeddedSource serves the dataset bundled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return "bundled" }

func (EmbeddedSource) Load(context.Context) (*Dataset, error) {
	return Parse(bytes.NewReader(bundled))
}

// FileSource reads a JSON dataset from disk.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string { return f.Path }

func (f FileSource) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Parse(fh)
}

// ReaderSource parses a dataset from an arbitrary reader (once).
type ReaderSource struct {
	Label  string
	Reader io.Reader
}

func (r ReaderSource) Name() string {
	if r.Label == "" {
		return "reader"
	}
	return r.Label
}

func (r ReaderSource) Load(context.Context) (*Dataset, error) {
	if r.Reader == nil {
		return nil, fmt.Errorf("nil reader")
	}
	return Parse(r.Reader)
}

// SourceFor picks a FileSource for a non-empty path, the bundled data otherwise.
func SourceFor(path string) Source {
	if path == "" {
		return EmbeddedSource{}
	}
	return FileSource{Path: path}
}
