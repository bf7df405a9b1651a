package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/apk-packager/internal/domain/apk"
)

// TestRootCmd_BuildsPackage runs the CLI against a bundle given by flags.
func TestRootCmd_BuildsPackage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bundle := filepath.Join(dir, "build")
	require.NoError(t, os.MkdirAll(bundle, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bundle, "index.html"), []byte("<html></html>"), 0o644))

	output := filepath.Join(dir, "out.zip")

	var out bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{
		"--config", filepath.Join(dir, "settings.yaml"),
		"--bundle", bundle,
		"--staging", filepath.Join(dir, "staging"),
		"--output", output,
	})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), output)

	_, err := os.Stat(output)
	require.NoError(t, err)
}

// TestRootCmd_MissingBundle returns the silent failure error.
func TestRootCmd_MissingBundle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{
		"--config", filepath.Join(dir, "settings.yaml"),
		"--bundle", filepath.Join(dir, "missing"),
		"--staging", filepath.Join(dir, "staging"),
		"--output", filepath.Join(dir, "out.zip"),
	})

	require.ErrorIs(t, root.Execute(), errPackagingFailed)
}

// TestReadmeCmd_Raw prints the README markdown.
func TestReadmeCmd_Raw(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"readme", "--raw"})

	require.NoError(t, root.Execute())
	require.Equal(t, apk.Readme(), out.String())
}
