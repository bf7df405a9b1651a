package apk

import (
	"encoding/json"
	"fmt"
)

const (
	// WebDir is the package subdirectory holding the copied web bundle.
	WebDir = "www"

	// CapacitorConfigFilename is the Capacitor configuration file name.
	CapacitorConfigFilename = "capacitor.config.json"

	// PackageManifestFilename is the npm manifest file name.
	PackageManifestFilename = "package.json"

	// ReadmeFilename is the instructions file name.
	ReadmeFilename = "README.md"

	// capacitorVersionRange pins both Capacitor packages to the same major version.
	capacitorVersionRange = "^5.0.0"
)

// CapacitorConfig is the content of capacitor.config.json.
type CapacitorConfig struct {
	// AppID is the reverse-DNS application identifier.
	AppID string `json:"appId"`
	// AppName is the display name of the application.
	AppName string `json:"appName"`
	// WebDir is the directory, relative to the package root, with the web assets.
	WebDir string `json:"webDir"`
	// BundledWebRuntime tells Capacitor whether to ship its own runtime script.
	BundledWebRuntime bool `json:"bundledWebRuntime"`
	// Plugins holds per-plugin UI options.
	Plugins Plugins `json:"plugins"`
	// Server holds runtime options of the embedded web server.
	Server ServerOptions `json:"server"`
}

// Plugins groups the options of the plugins used by the app.
type Plugins struct {
	SplashScreen SplashScreen `json:"SplashScreen"`
	StatusBar    StatusBar    `json:"StatusBar"`
}

// SplashScreen configures the launch splash screen.
type SplashScreen struct {
	// LaunchShowDuration is in milliseconds.
	LaunchShowDuration int    `json:"launchShowDuration"`
	BackgroundColor    string `json:"backgroundColor"`
	ShowSpinner        bool   `json:"showSpinner"`
	SpinnerColor       string `json:"spinnerColor"`
}

// StatusBar configures the system status bar.
type StatusBar struct {
	Style string `json:"style"`
}

// ServerOptions configures the embedded web server.
type ServerOptions struct {
	AndroidScheme string `json:"androidScheme"`
}

// PackageManifest is the content of package.json.
type PackageManifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Description  string            `json:"description"`
	Main         string            `json:"main"`
	Dependencies map[string]string `json:"dependencies"`
}

// GeneratedFile is a document written into the package root.
type GeneratedFile struct {
	// Name is the file name relative to the package root.
	Name string
	// Contents is the serialized document.
	Contents []byte
}

// NewCapacitorConfig returns the Capacitor configuration of the JP Hosting app.
func NewCapacitorConfig() *CapacitorConfig {
	return &CapacitorConfig{
		AppID:             "com.jphosting.minecraft",
		AppName:           "JP Hosting",
		WebDir:            WebDir,
		BundledWebRuntime: false,
		Plugins: Plugins{
			SplashScreen: SplashScreen{
				LaunchShowDuration: 2000,
				BackgroundColor:    "#667eea",
				ShowSpinner:        true,
				SpinnerColor:       "#ffffff",
			},
			StatusBar: StatusBar{
				Style: "DARK",
			},
		},
		Server: ServerOptions{
			AndroidScheme: "https",
		},
	}
}

// NewPackageManifest returns the npm manifest declaring the Capacitor runtime.
func NewPackageManifest() *PackageManifest {
	return &PackageManifest{
		Name:        "jp-hosting",
		Version:     "1.0.0",
		Description: "Minecraft Server Hosting Platform - JP Hosting",
		Main:        "index.js",
		Dependencies: map[string]string{
			"@capacitor/core":    capacitorVersionRange,
			"@capacitor/android": capacitorVersionRange,
		},
	}
}

// Marshal serializes a document as two-space indented JSON ending with a newline.
// Map keys are sorted, so the output is stable across runs.
func Marshal(document any) ([]byte, error) {
	contents, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(contents, '\n'), nil
}

// GeneratedFiles returns every document written next to the web bundle, in archive order.
func GeneratedFiles() ([]GeneratedFile, error) {
	capacitorConfig, err := Marshal(NewCapacitorConfig())
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", CapacitorConfigFilename, err)
	}

	packageManifest, err := Marshal(NewPackageManifest())
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", PackageManifestFilename, err)
	}

	return []GeneratedFile{
		{Name: CapacitorConfigFilename, Contents: capacitorConfig},
		{Name: PackageManifestFilename, Contents: packageManifest},
		{Name: ReadmeFilename, Contents: []byte(Readme())},
	}, nil
}
