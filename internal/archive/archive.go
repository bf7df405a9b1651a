package archive

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/oshokin/apk-packager/internal/logger"
)

// entryModTime is stamped on every entry; 1980-01-01 is the earliest date zip can store.
//
//nolint:gochecknoglobals // Fixed timestamp shared by all entries.
var entryModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Entry describes one file stored in the archive.
type Entry struct {
	// Name is the slash-separated path relative to the archive root.
	Name string
	// Size is the uncompressed size in bytes.
	Size int64
	// SHA256 is the hex-encoded checksum of the uncompressed contents.
	SHA256 string
}

// Archive is a zip archive assembled in memory.
type Archive struct {
	// Entries lists the stored files in archive order.
	Entries []Entry
	// data holds the complete zip bytes.
	data []byte
}

// Create walks root and stores every regular file in a new deflate-compressed archive.
func Create(ctx context.Context, root string) (*Archive, error) {
	var (
		buffer  bytes.Buffer
		entries []Entry
	)

	writer := zip.NewWriter(&buffer)
	writer.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		stored, err := addFile(writer, path, filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("add %s: %w", rel, err)
		}

		logger.DebugKV(ctx, "Archive entry written", "name", stored.Name, "size", stored.Size)

		entries = append(entries, *stored)

		return nil
	})
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	return &Archive{
		Entries: entries,
		data:    buffer.Bytes(),
	}, nil
}

// Bytes returns the zip contents.
func (a *Archive) Bytes() []byte {
	return a.data
}

// Size returns the compressed size in bytes.
func (a *Archive) Size() int64 {
	return int64(len(a.data))
}

// UncompressedSize returns the sum of all entry sizes.
func (a *Archive) UncompressedSize() int64 {
	var total int64
	for _, entry := range a.Entries {
		total += entry.Size
	}

	return total
}

// addFile copies the file at path into a new entry called name.
func addFile(writer *zip.Writer, path, name string) (*Entry, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	//nolint:exhaustruct // Remaining header fields are computed by the writer.
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: entryModTime,
	}
	header.SetMode(info.Mode().Perm())

	target, err := writer.CreateHeader(header)
	if err != nil {
		return nil, err
	}

	hasher := sha256.New()

	size, err := io.Copy(io.MultiWriter(target, hasher), file)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Name:   name,
		Size:   size,
		SHA256: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}
