package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"knowledgehub-backend/internal/models"
)

var unsafeNamePattern = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
var storedPrefixPattern = regexp.MustCompile(`^\d+_`)

// StorageService persists uploaded documents under a local directory.
// Files are write-once; nothing here ever mutates or deletes a stored file.
type StorageService struct {
	basePath string
}

func NewStorageService(basePath string) (*StorageService, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &StorageService{basePath: basePath}, nil
}

// Save writes the uploaded content to disk under a collision-resistant name
// and returns the stored filename and its absolute path.
func (s *StorageService) Save(originalName string, r io.Reader) (string, string, error) {
	safeName := unsafeNamePattern.ReplaceAllString(originalName, "_")
	storedName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), safeName)
	path := filepath.Join(s.basePath, storedName)

	f, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}

	return storedName, path, nil
}

// Path returns the on-disk location of a stored filename, rejecting any
// name that would escape the storage directory.
func (s *StorageService) Path(storedName string) (string, error) {
	if storedName != filepath.Base(storedName) {
		return "", fmt.Errorf("invalid stored filename: %s", storedName)
	}
	return filepath.Join(s.basePath, storedName), nil
}

// List returns the stored documents, newest first. The display name has the
// timestamp prefix stripped.
func (s *StorageService) List() ([]models.UploadedDocument, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.UploadedDocument{}, nil
		}
		return nil, err
	}

	docs := make([]models.UploadedDocument, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		docs = append(docs, models.UploadedDocument{
			ID:         entry.Name(),
			Name:       storedPrefixPattern.ReplaceAllString(entry.Name(), ""),
			Size:       info.Size(),
			Type:       strings.TrimPrefix(strings.ToLower(filepath.Ext(entry.Name())), "."),
			URL:        "/uploads/" + entry.Name(),
			UploadedAt: info.ModTime(),
		})
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})

	return docs, nil
}

// BasePath exposes the storage root for static file serving.
func (s *StorageService) BasePath() string {
	return s.basePath
}
