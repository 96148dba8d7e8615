package filestore

import (
	"io"
	"os"
	"path/filepath"
)

// LocalFileStore keeps attachments on local disk, for development runs
// without AWS credentials.
type LocalFileStore struct {
	dir string
}

func NewLocalFileStore(dir string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalFileStore{dir: dir}, nil
}

func (s *LocalFileStore) Store(fileName string, content io.Reader) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(fileName))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, content); err != nil {
		return "", err
	}
	return filepath.Base(fileName), nil
}

func (s *LocalFileStore) GetUrlFromReference(reference string) string {
	return "file://" + filepath.Join(s.dir, reference)
}
