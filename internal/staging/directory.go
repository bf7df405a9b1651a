package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/apk-packager/internal/logger"
)

const (
	// DirMode is used for every directory created inside the staging area.
	DirMode os.FileMode = 0o755

	// FileMode is used for generated files.
	FileMode os.FileMode = 0o644
)

var (
	// ErrEmptyPath is returned when no staging path is configured.
	ErrEmptyPath = errors.New("staging path is empty")
	// errEscapesRoot is returned for names that resolve outside the staging directory.
	errEscapesRoot = errors.New("path escapes the staging directory")
	// errNotDirectory is returned when a copy source is not a directory.
	errNotDirectory = errors.New("not a directory")
)

// Directory is an acquired staging directory.
type Directory struct {
	// path is the cleaned location of the directory.
	path string
}

// Acquire removes any stale directory at path and creates it anew.
func Acquire(ctx context.Context, path string) (*Directory, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}

	path = filepath.Clean(path)

	if _, err := os.Lstat(path); err == nil {
		logger.InfoKV(ctx, "Removing stale staging directory", "path", path)

		if err = os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("remove stale staging directory: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat staging directory: %w", err)
	}

	if err := os.MkdirAll(path, DirMode); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}

	logger.DebugKV(ctx, "Staging directory created", "path", path)

	return &Directory{path: path}, nil
}

// Path returns the location of the directory.
func (d *Directory) Path() string {
	return d.path
}

// CopyTree copies the directory tree at src into the subdirectory dst and
// returns the number of files copied. Symlinks to files are copied as
// regular files; symlinks to directories and special files are skipped.
func (d *Directory) CopyTree(ctx context.Context, src, dst string) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", src, err)
	}

	if !info.IsDir() {
		return 0, fmt.Errorf("%s: %w", src, errNotDirectory)
	}

	target, err := d.resolve(dst)
	if err != nil {
		return 0, err
	}

	var copied int

	err = filepath.WalkDir(src, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		destination := filepath.Join(target, rel)

		switch {
		case entry.IsDir():
			return os.MkdirAll(destination, DirMode)
		case entry.Type().IsRegular():
		case entry.Type()&fs.ModeSymlink != 0:
			resolved, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("resolve symlink %s: %w", path, err)
			}

			if !resolved.Mode().IsRegular() {
				logger.WarnKV(ctx, "Skipping symlink to a non-regular file", "path", path)
				return nil
			}
		default:
			logger.WarnKV(ctx, "Skipping special file", "path", path, "mode", entry.Type().String())
			return nil
		}

		if err = copyFile(path, destination); err != nil {
			return err
		}

		copied++

		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copy %s: %w", src, err)
	}

	logger.DebugKV(ctx, "Tree copied into staging directory", "source", src, "target", target, "files", copied)

	return copied, nil
}

// WriteFile writes data to name, relative to the staging directory.
func (d *Directory) WriteFile(name string, data []byte) error {
	target, err := d.resolve(name)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(target), DirMode); err != nil {
		return fmt.Errorf("create parent of %s: %w", name, err)
	}

	if err = os.WriteFile(target, data, FileMode); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return nil
}

// Release removes the directory and everything in it.
func (d *Directory) Release() error {
	if err := os.RemoveAll(d.path); err != nil {
		return fmt.Errorf("remove staging directory: %w", err)
	}

	return nil
}

// resolve joins name onto the directory, refusing names that leave it.
func (d *Directory) resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%s: %w", name, errEscapesRoot)
	}

	target := filepath.Join(d.path, name)

	rel, err := filepath.Rel(d.path, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", name, errEscapesRoot)
	}

	return target, nil
}

// copyFile copies a single file, keeping its permission bits.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}

	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(dst), DirMode); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}

	return nil
}
