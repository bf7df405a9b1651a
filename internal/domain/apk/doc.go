// Package apk contains the documents generated into every APK package:
// the Capacitor configuration, the npm package manifest and the README
// with build instructions.
//
// The documents are fixed: two runs always produce identical bytes.
// The README keeps the build instructions and feature list of the earlier
// packaging script but drops its payment account line and the third-party
// style reference in the control panel entry.
package apk
