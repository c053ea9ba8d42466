// Package storage holds media blobs. The interface is narrow on
// purpose so a bucket-backed implementation can replace the local one
// without touching the media service.
package storage

import "io"

type Store interface {
	// Save writes the blob under name and returns the byte count.
	Save(name string, r io.Reader) (int64, error)
	// Open returns a reader for the named blob.
	Open(name string) (io.ReadCloser, error)
	// Remove deletes the named blob. Removing a missing blob is not an
	// error.
	Remove(name string) error
}
