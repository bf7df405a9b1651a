// Package archive turns a staging directory into a zip archive and publishes
// it to its final location.
//
// Entries are written in lexical order with pinned timestamps, so equal
// inputs yield equal archives. Publishing swaps the file into place
// atomically: the output path holds either the previous archive or the
// complete new one, never a partial write.
package archive
