package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/apk-packager/internal/logger"
)

// Config holds the paths and options used by a packaging run.
type Config struct {
	// BundleDir is the pre-built web application copied into the package.
	BundleDir string `yaml:"bundle_dir"`
	// StagingDir is the ephemeral directory assembled and removed within one run.
	StagingDir string `yaml:"staging_dir"`
	// OutputPath is where the final zip archive is written.
	OutputPath string `yaml:"output_path"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for packager settings.
	DefaultConfigFilename = "apk-packager-settings.yaml"

	// DefaultBundleDir is where the web build step leaves its output.
	DefaultBundleDir = "client/build"

	// DefaultStagingDir is the name of the directory assembled before zipping.
	DefaultStagingDir = "jp-hosting-apk-package"

	// DefaultOutputPath is the archive produced by a successful run.
	DefaultOutputPath = DefaultStagingDir + ".zip"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for settings files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownLogLevel is returned for log levels zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
	// errStagingOverlapsBundle is returned when removing the staging directory would touch the bundle.
	errStagingOverlapsBundle = errors.New("staging directory overlaps the web bundle")
	// errOutputInsideStaging is returned when the archive would be removed together with the staging directory.
	errOutputInsideStaging = errors.New("output archive is inside the staging directory")
	// errOutputInsideBundle is returned when the archive would replace or be copied with the web bundle.
	errOutputInsideBundle = errors.New("output archive is inside the web bundle")
)

// Default returns settings populated with default values.
func Default() *Config {
	return &Config{
		BundleDir:  DefaultBundleDir,
		StagingDir: DefaultStagingDir,
		OutputPath: DefaultOutputPath,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns validated defaults when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		if err = Validate(cfg); err != nil {
			return nil, err
		}

		return cfg, nil
	}

	return cfg, err
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults, expands home directories and rejects layouts
// where cleaning up the staging directory would destroy inputs or outputs.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if strings.TrimSpace(cfg.BundleDir) == "" {
		cfg.BundleDir = DefaultBundleDir
	}

	if strings.TrimSpace(cfg.StagingDir) == "" {
		cfg.StagingDir = DefaultStagingDir
	}

	if strings.TrimSpace(cfg.OutputPath) == "" {
		cfg.OutputPath = DefaultOutputPath
	}

	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%q: %w", cfg.LogLevel, errUnknownLogLevel)
	}

	for _, field := range []*string{&cfg.BundleDir, &cfg.StagingDir, &cfg.OutputPath} {
		expanded, err := homedir.Expand(*field)
		if err != nil {
			return fmt.Errorf("expand %s: %w", *field, err)
		}

		*field = filepath.Clean(expanded)
	}

	if within(cfg.StagingDir, cfg.BundleDir) || within(cfg.BundleDir, cfg.StagingDir) {
		return fmt.Errorf("%s and %s: %w", cfg.StagingDir, cfg.BundleDir, errStagingOverlapsBundle)
	}

	if within(cfg.StagingDir, cfg.OutputPath) {
		return fmt.Errorf("%s: %w", cfg.OutputPath, errOutputInsideStaging)
	}

	if within(cfg.BundleDir, cfg.OutputPath) {
		return fmt.Errorf("%s: %w", cfg.OutputPath, errOutputInsideBundle)
	}

	return nil
}

// within reports whether path equals parent or lies below it.
func within(parent, path string) bool {
	parentAbs, err := filepath.Abs(parent)
	if err != nil {
		return false
	}

	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(parentAbs, pathAbs)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
