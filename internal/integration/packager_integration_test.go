package integration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/apk-packager/internal/config"
	"github.com/oshokin/apk-packager/internal/service/packager"
)

// TestPackager_DefaultLayout builds the package from client/build in the working directory
// and verifies the archive entries and the absence of the staging directory.
func TestPackager_DefaultLayout(t *testing.T) {
	// Setup test directory and change working directory.
	dir := t.TempDir()
	t.Chdir(dir)

	// Lay out the web bundle where the web build leaves it.
	writeBundle(t, map[string]string{
		"index.html":       "<!doctype html><div id=root></div>",
		"static/js/app.js": "console.log('jp hosting')",
	})

	// Run packager with timeout context.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	options := &packager.Options{
		ConfigPath: config.DefaultConfigFilename,
		Out:        io.Discard,
	}

	for range 2 {
		require.True(t, packager.BuildPackage(ctx, options))

		require.Equal(t, []string{
			"README.md",
			"capacitor.config.json",
			"package.json",
			"www/index.html",
			"www/static/js/app.js",
		}, archiveEntries(t, config.DefaultOutputPath))

		_, err := os.Stat(config.DefaultStagingDir)
		require.ErrorIs(t, err, os.ErrNotExist)
	}
}

// TestPackager_NoBundle reports failure and leaves the working directory untouched.
func TestPackager_NoBundle(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.False(t, packager.BuildPackage(context.Background(), &packager.Options{Out: io.Discard}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

// writeBundle creates the files of the web bundle under the default bundle directory.
func writeBundle(t *testing.T, files map[string]string) {
	t.Helper()

	for name, contents := range files {
		path := filepath.Join(config.DefaultBundleDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
}

// archiveEntries returns the sorted entry names of the zip at path.
func archiveEntries(t *testing.T, path string) []string {
	t.Helper()

	reader, err := zip.OpenReader(path)
	require.NoError(t, err)

	defer func() {
		_ = reader.Close()
	}()

	names := make([]string, 0, len(reader.File))
	for _, file := range reader.File {
		names = append(names, file.Name)
	}

	sort.Strings(names)

	return names
}
