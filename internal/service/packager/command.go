package packager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/oshokin/apk-packager/internal/archive"
	"github.com/oshokin/apk-packager/internal/config"
	"github.com/oshokin/apk-packager/internal/domain/apk"
	"github.com/oshokin/apk-packager/internal/logger"
	"github.com/oshokin/apk-packager/internal/staging"
)

// Options contains inputs for the packager entry point.
// Empty path fields fall back to the settings file, then to defaults.
type Options struct {
	// ConfigPath is an optional path to the settings file (defaults to apk-packager-settings.yaml).
	ConfigPath string
	// BundleDir overrides the location of the pre-built web bundle.
	BundleDir string
	// StagingDir overrides the name of the staging directory.
	StagingDir string
	// OutputPath overrides the path of the produced archive.
	OutputPath string
	// LogLevel overrides the configured log level.
	LogLevel string
	// SaveConfig persists the effective settings to ConfigPath before packaging.
	SaveConfig bool
	// Out receives the operator guidance; os.Stdout when nil.
	Out io.Writer
}

// Result describes a produced archive.
type Result struct {
	// ArchivePath is where the archive was written.
	ArchivePath string
	// Entries lists the archive contents in order.
	Entries []archive.Entry
	// BundleFiles is the number of files copied from the web bundle.
	BundleFiles int
	// UncompressedSize is the total size of all entries.
	UncompressedSize int64
	// CompressedSize is the size of the archive file.
	CompressedSize int64
}

// packager builds one archive from the resolved settings.
// It is unexported; callers use Run or BuildPackage.
type packager struct {
	// cfg holds the validated paths.
	cfg *config.Config
	// out receives the next-steps guidance.
	out io.Writer
}

var (
	// ErrBundleNotFound is returned when the web bundle directory does not exist.
	ErrBundleNotFound = errors.New("web bundle not found")
	// errBundleNotDirectory is returned when the web bundle path is a file.
	errBundleNotDirectory = errors.New("web bundle is not a directory")
	// errPackagerRunning indicates that another packager process is working on the same files.
	errPackagerRunning = errors.New("another packager is running now")
)

// BuildPackage runs the packaging workflow and reports whether it succeeded.
// Failures are logged, never propagated.
func BuildPackage(ctx context.Context, opts *Options) bool {
	if _, err := Run(ctx, opts); err != nil {
		logger.ErrorKV(ctx, "Unable to create APK package", "error", err)

		if errors.Is(err, ErrBundleNotFound) {
			logger.Error(ctx, "Build the web application first: cd client && npm run build")
		}

		return false
	}

	return true
}

// Run executes the packaging workflow.
func Run(ctx context.Context, opts *Options) (*Result, error) {
	if opts == nil {
		opts = new(Options)
	}

	ctx = logger.WithName(ctx, "apk-packager")

	runID, err := nanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}

	ctx = logger.WithKV(ctx, "run_id", runID)

	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok && level != logger.Level() {
		logger.SetLevel(level)
	}

	if opts.SaveConfig {
		configPath := opts.ConfigPath
		if configPath == "" {
			configPath = config.DefaultConfigFilename
		}

		if err = config.Save(configPath, cfg); err != nil {
			return nil, fmt.Errorf("save settings: %w", err)
		}

		logger.InfoKV(ctx, "Settings saved", "path", configPath)
	}

	pkg, err := newPackager(ctx, cfg, opts.Out)
	if err != nil {
		return nil, fmt.Errorf("initialize packager: %w", err)
	}

	result, err := pkg.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("packager failed: %w", err)
	}

	logger.Info(ctx, "Packager completed successfully")

	return result, nil
}

// resolveConfig layers option overrides on top of the settings file.
func resolveConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	overrides := []struct {
		value string
		field *string
	}{
		{opts.BundleDir, &cfg.BundleDir},
		{opts.StagingDir, &cfg.StagingDir},
		{opts.OutputPath, &cfg.OutputPath},
		{opts.LogLevel, &cfg.LogLevel},
	}

	for _, override := range overrides {
		if override.value != "" {
			*override.field = override.value
		}
	}

	if err = config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return cfg, nil
}

// newPackager creates a packager once no concurrent run is detected.
func newPackager(ctx context.Context, cfg *config.Config, out io.Writer) (*packager, error) {
	if isPackagerRunningNow(ctx) {
		return nil, errPackagerRunning
	}

	if out == nil {
		out = os.Stdout
	}

	return &packager{
		cfg: cfg,
		out: out,
	}, nil
}

// Run assembles, archives and publishes the package.
// The bundle is checked before anything is created on disk.
func (p *packager) Run(ctx context.Context) (*Result, error) {
	logger.InfoKV(ctx, "Creating APK package", "bundle", p.cfg.BundleDir, "output", p.cfg.OutputPath)

	if err := ensureBundle(p.cfg.BundleDir); err != nil {
		return nil, err
	}

	dir, err := staging.Acquire(ctx, p.cfg.StagingDir)
	if err != nil {
		return nil, err
	}

	defer releaseStaging(ctx, dir)

	copied, err := dir.CopyTree(ctx, p.cfg.BundleDir, apk.WebDir)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Web bundle copied", "files", copied)

	files, err := apk.GeneratedFiles()
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		if err = dir.WriteFile(file.Name, file.Contents); err != nil {
			return nil, err
		}
	}

	zipped, err := archive.Create(ctx, dir.Path())
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}

	if err = archive.Publish(ctx, zipped, p.cfg.OutputPath); err != nil {
		return nil, err
	}

	result := &Result{
		ArchivePath:      p.cfg.OutputPath,
		Entries:          zipped.Entries,
		BundleFiles:      copied,
		UncompressedSize: zipped.UncompressedSize(),
		CompressedSize:   zipped.Size(),
	}

	logger.InfoKV(ctx, "APK package created",
		"path", result.ArchivePath,
		"entries", len(result.Entries),
		"size", humanize.Bytes(uint64(result.CompressedSize)), //nolint:gosec // Sizes are never negative.
		"uncompressed", humanize.Bytes(uint64(result.UncompressedSize)), //nolint:gosec // Sizes are never negative.
	)

	p.printNextSteps(result)

	return result, nil
}

// stagingArea is the part of a staging directory needed for cleanup.
type stagingArea interface {
	Path() string
	Release() error
}

// releaseStaging removes the staging directory; a failure is logged and never fails the run.
func releaseStaging(ctx context.Context, dir stagingArea) {
	if err := dir.Release(); err != nil {
		logger.WarnKV(ctx, "Unable to remove staging directory", "path", dir.Path(), "error", err)
		return
	}

	logger.DebugKV(ctx, "Staging directory removed", "path", dir.Path())
}

// ensureBundle verifies the web bundle is an existing directory.
func ensureBundle(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrBundleNotFound)
	}

	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, errBundleNotDirectory)
	}

	return nil
}
