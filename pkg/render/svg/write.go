package svg

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/tree"
)

// WriteFile lays out root, renders it and writes the document to path. The
// file is first written to a temporary sibling and renamed into place, so
// path is either fully written or untouched. Any unusable path, including
// an empty one or one naming a directory, fails with IO_ERROR.
func WriteFile(root *tree.Node, path string, opts ...Option) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return errors.New(errors.ErrCodeIO, "cannot write %q: %s", path, errors.UserMessage(err))
	}
	data, err := Document(root, opts...)
	if err != nil {
		return err
	}
	return WriteAtomic(path, data)
}

// WriteAtomic writes data to path through a temporary file in the same
// directory. Failures are reported as IO_ERROR.
func WriteAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "open %s for writing", path)
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
