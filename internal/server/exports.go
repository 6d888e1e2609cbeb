package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/titledesk/title-review/internal/export"
)

// handleExportXLSX streams the review workbook as an attachment. Export
// failures are local: they never touch session state.
func (s *Server) handleExportXLSX(c echo.Context) error {
	result := s.session.Result()
	if result == nil {
		return NewNotFoundError("extraction result", "current")
	}

	data, err := s.export.ExportXLSX(result)
	if err != nil {
		s.logger.Error("xlsx export failed", zap.Error(err))
		return NewInternalError("export failed", err)
	}

	filename := export.WorkbookFilename(time.Now())
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
