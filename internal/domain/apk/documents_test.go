package apk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCapacitorConfig_Fields decodes the serialized config generically and checks every fixed field.
func TestCapacitorConfig_Fields(t *testing.T) {
	t.Parallel()

	contents, err := Marshal(NewCapacitorConfig())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(contents, &doc))

	require.Equal(t, "com.jphosting.minecraft", doc["appId"])
	require.Equal(t, "JP Hosting", doc["appName"])
	require.Equal(t, "www", doc["webDir"])
	require.Equal(t, false, doc["bundledWebRuntime"])
	require.Equal(t, map[string]any{"androidScheme": "https"}, doc["server"])

	plugins, ok := doc["plugins"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, map[string]any{
		"launchShowDuration": float64(2000),
		"backgroundColor":    "#667eea",
		"showSpinner":        true,
		"spinnerColor":       "#ffffff",
	}, plugins["SplashScreen"])
	require.Equal(t, map[string]any{"style": "DARK"}, plugins["StatusBar"])
}

// TestPackageManifest_Fields checks the npm manifest fields and dependency ranges.
func TestPackageManifest_Fields(t *testing.T) {
	t.Parallel()

	contents, err := Marshal(NewPackageManifest())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(contents, &doc))

	require.Equal(t, "jp-hosting", doc["name"])
	require.Equal(t, "1.0.0", doc["version"])
	require.Equal(t, "Minecraft Server Hosting Platform - JP Hosting", doc["description"])
	require.Equal(t, "index.js", doc["main"])
	require.Equal(t, map[string]any{
		"@capacitor/core":    "^5.0.0",
		"@capacitor/android": "^5.0.0",
	}, doc["dependencies"])
}

// TestGeneratedFiles_Stable ensures the three documents are produced identically on every call.
func TestGeneratedFiles_Stable(t *testing.T) {
	t.Parallel()

	first, err := GeneratedFiles()
	require.NoError(t, err)

	second, err := GeneratedFiles()
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, first, 3)

	names := []string{first[0].Name, first[1].Name, first[2].Name}
	require.Equal(t, []string{CapacitorConfigFilename, PackageManifestFilename, ReadmeFilename}, names)
	require.Equal(t, Readme(), string(first[2].Contents))
	require.Contains(t, Readme(), "npx cap add android")
}
