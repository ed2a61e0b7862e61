// Package jsonfile maps homogeneous lists of records to JSON array files.
//
// Record types describe their own wire form: saving requires an Encode method
// and loading takes the type's decode function. Paths ending in ".gz" are
// transparently gzip-compressed.
package jsonfile

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"github.com/moby/sys/atomicwriter"
)

const (
	indent   = 2
	filePerm = 0o644
)

// Encoder is implemented by records that can write themselves as JSON.
type Encoder interface {
	Encode(e *jx.Encoder)
}

// Load reads the JSON array at path and decodes every element with decode.
// A single bad element fails the whole load and no records are returned.
//
// Returns an error matching ErrNotFound when the file is absent and a
// *ParseError when the content is malformed or a record is rejected.
func Load[T any](path string, decode func(d *jx.Decoder) (T, error)) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}

	if isGzip(path) {
		if data, err = gunzip(data); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}

	items := make([]T, 0)
	d := jx.DecodeBytes(data)
	idx := 0
	if err := d.Arr(func(d *jx.Decoder) error {
		item, err := decode(d)
		if err != nil {
			return errors.Wrapf(err, "element %d", idx)
		}
		items = append(items, item)
		idx++
		return nil
	}); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if tt := d.Next(); tt != jx.Invalid {
		return nil, &ParseError{Path: path, Err: errors.Errorf("unexpected %s after array", tt)}
	}

	return items, nil
}

// Save writes items to path as a pretty-printed JSON array, replacing any
// existing file atomically. Returns a *WriteError on any I/O failure.
func Save[T Encoder](path string, items []T) error {
	e := &jx.Encoder{}
	e.SetIdent(indent)

	e.Arr(func(e *jx.Encoder) {
		for _, item := range items {
			item.Encode(e)
		}
	})

	data := append(e.Bytes(), '\n')
	if isGzip(path) {
		var err error
		if data, err = gzip(data); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}

	if err := atomicwriter.WriteFile(path, data, filePerm); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func isGzip(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

func gunzip(data []byte) ([]byte, error) {
	gz, err := pgzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "create gzip reader")
	}
	defer func() { _ = gz.Close() }()

	out, err := io.ReadAll(gz)
	if err != nil {
		return nil, errors.Wrap(err, "decompress")
	}
	return out, nil
}

func gzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := pgzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, errors.Wrap(err, "compress")
	}
	if err := gz.Close(); err != nil {
		return nil, errors.Wrap(err, "flush gzip writer")
	}
	return buf.Bytes(), nil
}
