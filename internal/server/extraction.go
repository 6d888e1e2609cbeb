package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// handleStartExtraction kicks off the pipeline in the background and returns
// immediately; clients poll GET /api/extraction for progress.
func (s *Server) handleStartExtraction(c echo.Context) error {
	snap := s.session.Snapshot()
	if snap.IsProcessing {
		return NewConflictError("extraction is in progress")
	}
	if len(snap.Documents) == 0 {
		return NewBadRequestError("no documents to extract", nil)
	}

	go func() {
		// Detached from the request context: the extraction outlives the
		// HTTP exchange that started it.
		if _, err := s.session.StartExtraction(context.Background()); err != nil {
			s.logger.Error("extraction failed", zap.Error(err))
		}
	}()

	return c.JSON(http.StatusAccepted, map[string]string{"status": "started"})
}

func (s *Server) handleGetExtraction(c echo.Context) error {
	return c.JSON(http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleResetExtraction(c echo.Context) error {
	docs := s.session.Documents()
	if err := s.session.Reset(); err != nil {
		return fromSessionError(err)
	}
	for _, d := range docs {
		if err := s.uploads.Remove(d); err != nil {
			s.logger.Warn("upload cleanup failed", zap.String("id", d.ID), zap.Error(err))
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleGetVehicle(c echo.Context) error {
	v, err := s.session.Vehicle(c.Param("vehicleId"))
	if err != nil {
		return fromSessionError(err)
	}
	return c.JSON(http.StatusOK, v)
}
