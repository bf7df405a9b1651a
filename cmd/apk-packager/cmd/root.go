package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/apk-packager/internal/config"
	"github.com/oshokin/apk-packager/internal/service/packager"
	"github.com/oshokin/apk-packager/internal/version"
)

// errPackagingFailed is returned after the packager has already logged the cause.
var errPackagingFailed = errors.New("packaging failed")

// newRootCmd builds the command tree; flags are bound to the returned options.
func newRootCmd() *cobra.Command {
	options := new(packager.Options)

	rootCmd := &cobra.Command{
		Use:   "apk-packager",
		Short: "Package the built web app for an online APK build service",
		Long: `Copies the pre-built web application into a staging directory, adds the
Capacitor configuration, package.json and a README with build instructions,
zips everything into a single archive and removes the staging directory.

Upload the resulting archive to an online APK build service, or unzip it and
build locally with the Capacitor CLI and Android Studio.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options.Out = cmd.OutOrStdout()

			if !packager.BuildPackage(ctx, options) {
				return errPackagingFailed
			}

			return nil
		},
	}

	// Setup command flags with consistent naming and descriptions.
	flags := rootCmd.Flags()
	flags.StringVarP(&options.ConfigPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&options.BundleDir, "bundle", "b", "", "web bundle directory (default "+config.DefaultBundleDir+")")
	flags.StringVarP(&options.StagingDir, "staging", "s", "", "staging directory (default "+config.DefaultStagingDir+")")
	flags.StringVarP(&options.OutputPath, "output", "o", "", "output archive (default "+config.DefaultOutputPath+")")
	flags.StringVarP(&options.LogLevel, "log-level", "l", "", "log level: debug, info, warn or error")
	flags.BoolVar(&options.SaveConfig, "save-config", false, "persist the effective settings to the configuration file")

	rootCmd.AddCommand(newReadmeCmd())
	version.AttachCobraVersionCommand(rootCmd)

	return rootCmd
}

// Execute runs the apk-packager CLI and exits with non-zero status on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errPackagingFailed) {
			_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		}

		os.Exit(1)
	}
}
