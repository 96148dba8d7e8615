package filestore

import "io"

// FakeFileStore is a test double that never touches storage.
type FakeFileStore struct{}

func (*FakeFileStore) Store(fileName string, content io.Reader) (string, error) {
	return fileName, nil
}

func (*FakeFileStore) GetUrlFromReference(reference string) string {
	return reference
}
