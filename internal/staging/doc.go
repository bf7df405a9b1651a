// Package staging manages the ephemeral directory a package is assembled in.
//
// A Directory is acquired fresh (any stale directory with the same name is
// removed first), populated by copying trees and writing files, and released
// once the archive is written.
package staging
