// Package tempdir provides scoped temporary directories which remove
// themselves when closed.
package tempdir

import (
	"os"
	"path/filepath"

	xe "github.com/flowkit/flowkit/pkg/errors"
)

type Option func(*Dir)

// WithParent creates the directory under parent instead of the OS default.
func WithParent(parent string) Option {
	return func(d *Dir) { d.parent = parent }
}

// WithPrefix prepends "<prefix>_" to the generated directory name,
// to help identify temporary directories of this process.
func WithPrefix(prefix string) Option {
	return func(d *Dir) {
		if prefix != "" {
			d.prefix = prefix + "_"
		}
	}
}

// Keep disables removal on Close. The directory outlives its scope.
func Keep() Option {
	return func(d *Dir) { d.keep = true }
}

// Dir is a uniquely named temporary directory.
//
// It owns the directory's lifetime: New creates it, Close removes it
// (recursively) unless Keep was given. Typical use:
//
//	d, err := tempdir.New(tempdir.WithPrefix("render"))
//	if err != nil { ... }
//	defer d.Close()
type Dir struct {
	path   string
	parent string
	prefix string
	keep   bool
}

// New creates a temporary directory with a unique name.
func New(opts ...Option) (*Dir, error) {
	d := &Dir{}
	for _, opt := range opts {
		opt(d)
	}

	path, err := os.MkdirTemp(d.parent, d.prefix)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	d.path = path
	return d, nil
}

// Path is the absolute path of the directory. Empty after Close.
func (d *Dir) Path() string {
	return d.path
}

// List returns absolute filepaths of all immediate children.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	children := make([]string, len(entries))
	for nth, e := range entries {
		children[nth] = filepath.Join(d.path, e.Name())
	}
	return children, nil
}

// NamedFile computes the path of a named file inside the directory.
// The file itself is not created.
func (d *Dir) NamedFile(name string) string {
	return filepath.Join(d.path, name)
}

// Close removes the directory and everything in it.
//
// It is a no-op when Keep was given, when already closed, or when the
// directory has vanished in the meantime.
func (d *Dir) Close() error {
	if d.path == "" || d.keep {
		return nil
	}
	if _, err := os.Stat(d.path); os.IsNotExist(err) {
		d.path = ""
		return nil
	}
	if err := os.RemoveAll(d.path); err != nil {
		return xe.Wrap(err)
	}
	d.path = ""
	return nil
}
