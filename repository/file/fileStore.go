package filerepo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store persists uploaded cover images and hands back a reference path.
type Store interface {
	Save(data []byte, ownerID int64, ext string) (string, error)
}

type diskStore struct{ baseDir string }

func NewDisk(baseDir string) Store { return &diskStore{baseDir: baseDir} }

// Save writes the file under <base>/users/<ownerID>/ with a timestamped name
// and returns the relative path stored on the book.
func (s *diskStore) Save(data []byte, ownerID int64, ext string) (string, error) {
	dir := filepath.Join(s.baseDir, "users", fmt.Sprintf("%d", ownerID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if ext == "" {
		ext = ".bin"
	}
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
