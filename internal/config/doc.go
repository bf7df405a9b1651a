// Package config defines the packager settings and provides helpers to
// load, validate and save them in YAML format.
//
// Settings hold the web bundle location, the staging directory name, the
// output archive path and the log level. A missing settings file is not an
// error: defaults apply.
package config
