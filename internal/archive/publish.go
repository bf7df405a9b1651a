package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/apk-packager/internal/logger"
)

// FileMode is the permission of the published archive.
const FileMode os.FileMode = 0o644

var (
	// errEmptyTarget is returned when no output path is configured.
	errEmptyTarget = errors.New("output path is empty")
	// errEmptyArchive is returned when publishing a nil archive.
	errEmptyArchive = errors.New("archive is empty")
	// errTargetIsDirectory is returned when the output path names an existing directory.
	errTargetIsDirectory = errors.New("output path is a directory")
)

// Publish atomically replaces target with the archive.
// The zip is written next to target and renamed over it, so target holds
// either its previous contents or the complete archive.
func Publish(ctx context.Context, archive *Archive, target string) (err error) {
	if archive == nil {
		return errEmptyArchive
	}

	if strings.TrimSpace(target) == "" {
		return errEmptyTarget
	}

	target = filepath.Clean(target)

	if err = os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// The swap renames the current target away first, so a placeholder is needed on the first run.
	created, err := ensureTarget(target)
	if err != nil {
		return err
	}

	defer func() {
		if err == nil {
			return
		}

		_ = os.Remove(hiddenSibling(target, "new"))

		if created {
			_ = os.Remove(target)
		}
	}()

	logger.DebugKV(ctx, "Applying archive", "path", target, "size", archive.Size())

	//nolint:exhaustruct // Checksum and signature verification are meant for downloaded payloads.
	options := goupdate.Options{
		TargetPath: target,
		TargetMode: FileMode,
	}

	if err = goupdate.Apply(bytes.NewReader(archive.Bytes()), options); err != nil {
		return fmt.Errorf("publish %s: %w", target, err)
	}

	// A leftover from a swap whose cleanup failed.
	oldPath := hiddenSibling(target, "old")
	if _, statErr := os.Stat(oldPath); statErr == nil {
		_ = os.Remove(oldPath)
	}

	return nil
}

// ensureTarget creates an empty file at target if nothing is there yet.
func ensureTarget(target string) (bool, error) {
	info, err := os.Lstat(target)
	if err == nil {
		if info.IsDir() {
			return false, fmt.Errorf("%s: %w", target, errTargetIsDirectory)
		}

		return false, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", target, err)
	}

	file, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, FileMode)
	if err != nil {
		return false, fmt.Errorf("create %s: %w", target, err)
	}

	if err = file.Close(); err != nil {
		_ = os.Remove(target)
		return false, fmt.Errorf("close %s: %w", target, err)
	}

	return true, nil
}

// hiddenSibling returns the temporary name the swap uses next to target.
func hiddenSibling(target, suffix string) string {
	return filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+"."+suffix)
}
