// ABOUTME: Store interface for the gym data document.
// ABOUTME: Defines load/save persistence and the ParseError returned for malformed data.
package storage

import (
	"fmt"

	"github.com/harperreed/gym/internal/models"
)

// Store defines persistence for the gym Document.
// Implementations load the whole document once and rewrite it on every save.
type Store interface {
	// Load returns the persisted document, or an empty one if nothing is stored yet.
	Load() (*models.Document, error)
	// Save replaces the persisted document.
	Save(doc *models.Document) error
	// Path reports where the document lives.
	Path() string
	Close() error
}

// ParseError reports persisted content that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
