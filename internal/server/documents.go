package server

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/titledesk/title-review/internal/entity"
)

// handleUploadDocuments accepts one or more files (multipart field "files")
// and registers them with the session.
func (s *Server) handleUploadDocuments(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return NewBadRequestError("multipart form required", err)
	}
	files := form.File["files"]
	if len(files) == 0 {
		return NewValidationError("files")
	}

	var docs []entity.Document
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return NewInternalError("failed to open uploaded file", err)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return NewInternalError("failed to read uploaded file", err)
		}

		doc, err := s.uploads.Save(fh.Filename, data)
		if err != nil {
			return NewBadRequestError("rejected upload "+fh.Filename, err)
		}
		docs = append(docs, doc)
	}

	if err := s.session.AddDocuments(docs...); err != nil {
		// The binaries are already on disk; the session rejected the batch.
		for _, d := range docs {
			if rmErr := s.uploads.Remove(d); rmErr != nil {
				s.logger.Warn("upload cleanup failed", zap.String("id", d.ID), zap.Error(rmErr))
			}
		}
		return fromSessionError(err)
	}

	s.logger.Info("documents uploaded", zap.Int("count", len(docs)))
	return c.JSON(http.StatusCreated, docs)
}

func (s *Server) handleListDocuments(c echo.Context) error {
	return c.JSON(http.StatusOK, s.session.Documents())
}

func (s *Server) handleDeleteDocument(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	var removed *entity.Document
	for _, d := range s.session.Documents() {
		if d.ID == id {
			doc := d
			removed = &doc
			break
		}
	}

	if err := s.session.RemoveDocument(id); err != nil {
		return fromSessionError(err)
	}
	if removed != nil {
		if err := s.uploads.Remove(*removed); err != nil {
			s.logger.Warn("upload cleanup failed", zap.String("id", id), zap.Error(err))
		}
	}
	return c.NoContent(http.StatusNoContent)
}
