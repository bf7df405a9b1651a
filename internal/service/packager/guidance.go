package packager

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// buildServiceURL is the online service the package is uploaded to.
const buildServiceURL = "https://build.phonegap.com"

//nolint:gochecknoglobals // Color printers are stateless and shared.
var (
	successPrinter = color.New(color.FgGreen, color.Bold)
	headingPrinter = color.New(color.FgCyan, color.Bold)
	hintPrinter    = color.New(color.FgYellow)
)

// printNextSteps writes human-readable guidance for uploading the created archive.
func (p *packager) printNextSteps(result *Result) {
	writeNextSteps(p.out, result)
}

// writeNextSteps renders the guidance; write errors on the operator's terminal are ignored.
func writeNextSteps(w io.Writer, result *Result) {
	_, _ = successPrinter.Fprintln(w, "✅ APK package created successfully!")
	_, _ = fmt.Fprintf(w, "📦 Package file: %s (%d files)\n", result.ArchivePath, len(result.Entries))
	_, _ = fmt.Fprintln(w)

	_, _ = headingPrinter.Fprintln(w, "🎯 Next Steps:")

	steps := []string{
		"Download " + result.ArchivePath,
		"Go to " + buildServiceURL,
		"Upload the ZIP file",
		"Build APK online",
		"Download your JP Hosting APK!",
	}
	for i, step := range steps {
		_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, step)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = hintPrinter.Fprintln(w, "📱 Alternative: Use Capacitor online build services")
	_, _ = hintPrinter.Fprintln(w, "🛠  Local build: unzip, then run npx cap add android && npx cap open android")
	_, _ = fmt.Fprintln(w, "📖 Run \"apk-packager readme\" to preview the instructions shipped in the package")
}
