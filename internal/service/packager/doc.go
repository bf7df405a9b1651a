// Package packager assembles the APK build package.
//
// It copies the pre-built web bundle into a fresh staging directory, adds
// the Capacitor configuration, the npm manifest and the README, zips the
// directory into the output archive and removes the staging directory on
// every exit path. The resulting zip is uploaded to an online APK build
// service by the operator.
package packager
