// ABOUTME: JSON file store, the default backend.
// ABOUTME: Reads the whole document at startup and rewrites the file on each save.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/harperreed/gym/internal/models"
	"go.uber.org/zap"
)

// DefaultFileName is the data file used when no path is configured.
const DefaultFileName = "gym_data.json"

// FileStore persists the document as indented JSON.
type FileStore struct {
	path string
	log  *zap.Logger
}

// Compile-time check that FileStore implements Store.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a store for the JSON file at path. The file need not exist.
func NewFileStore(path string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{path: path, log: log}
}

// Path returns the data file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the data file.
func (s *FileStore) Load() (*models.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("data file not found, starting fresh", zap.String("path", s.path))
			return models.NewDocument(), nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}

	s.log.Debug("loaded data file",
		zap.String("path", s.path),
		zap.Int("routines", doc.Routines.Len()),
		zap.Int("workouts", len(doc.Workouts)))
	return doc, nil
}

// Save encodes the document and overwrites the data file.
func (s *FileStore) Save(doc *models.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}

	s.log.Debug("saved data file", zap.String("path", s.path), zap.Int("bytes", len(data)))
	return nil
}

// Close is a no-op for FileStore.
func (s *FileStore) Close() error {
	return nil
}

// DecodeDocument parses the persisted JSON form.
func DecodeDocument(data []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeDocument renders the persisted JSON form with two-space indentation.
func EncodeDocument(doc *models.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return append(data, '\n'), nil
}
