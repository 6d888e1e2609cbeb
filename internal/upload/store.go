// Package upload persists submitted document binaries and builds the
// Document records the session manager tracks. Type filtering happens here,
// at the upload boundary, not in the session.
package upload

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/titledesk/title-review/constants"
	"github.com/titledesk/title-review/internal/entity"
	"github.com/titledesk/title-review/internal/pdfutil"
)

// Store writes uploaded documents under a data directory, one file per
// document ID.
type Store struct {
	dir    string
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Save persists one uploaded file and returns its Document record. The page
// count is read from PDF content when possible; images count as one page;
// an unreadable PDF leaves the count unknown.
func (s *Store) Save(name string, data []byte) (entity.Document, error) {
	ext := constants.NormalizeExt(filepath.Ext(name))
	if !constants.IsAllowedExt(ext) {
		return entity.Document{}, fmt.Errorf("unsupported file type %q", ext)
	}

	doc := entity.Document{
		ID:     uuid.NewString(),
		Name:   name,
		Size:   int64(len(data)),
		Status: constants.DocumentPending,
	}

	if ext == "pdf" {
		if pages, err := pdfutil.PageCount(data); err != nil {
			s.logger.Warn("upload.pagecount.failed", "name", name, "err", err)
		} else {
			doc.PageCount = &pages
		}
	} else {
		one := 1
		doc.PageCount = &one
	}

	path := s.path(doc.ID, ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return entity.Document{}, fmt.Errorf("write upload: %w", err)
	}

	s.logger.Info("upload.saved", "id", doc.ID, "name", name, "bytes", doc.Size)
	return doc, nil
}

// Remove deletes the stored binary for a document. Missing files are not an
// error.
func (s *Store) Remove(doc entity.Document) error {
	ext := constants.NormalizeExt(filepath.Ext(doc.Name))
	err := os.Remove(s.path(doc.ID, ext))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

func (s *Store) path(id, ext string) string {
	return filepath.Join(s.dir, id+"."+ext)
}
