// Package filestore abstracts where attachment bytes live. The core
// only persists the reference a store hands back, it never inspects
// file contents.
package filestore

import "io"

type FileStore interface {
	// Store writes the content under a name and returns an opaque
	// reference to persist on the owning entity.
	Store(fileName string, content io.Reader) (reference string, err error)

	// GetUrlFromReference resolves a persisted reference back to a
	// client-fetchable url.
	GetUrlFromReference(reference string) string
}
