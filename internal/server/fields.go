package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/titledesk/title-review/internal/entity"
)

type updateFieldRequest struct {
	Value string `json:"value"`
}

// handleUpdateField sets a field's reviewed value. An empty value marks the
// field not found.
func (s *Server) handleUpdateField(c echo.Context) error {
	vehicleID := c.Param("vehicleId")
	fieldName := c.Param("fieldName")

	var req updateFieldRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := s.session.UpdateField(vehicleID, fieldName, req.Value); err != nil {
		return fromSessionError(err)
	}
	return c.JSON(http.StatusOK, s.session.Snapshot())
}

// handleRevertField restores a field to its originally extracted value.
func (s *Server) handleRevertField(c echo.Context) error {
	if err := s.session.RevertField(c.Param("vehicleId"), c.Param("fieldName")); err != nil {
		return fromSessionError(err)
	}
	return c.JSON(http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleOpenCitation(c echo.Context) error {
	var citation entity.Citation
	if err := c.Bind(&citation); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if citation.PageNumber < 1 {
		return NewValidationError("page_number")
	}
	s.session.OpenCitation(citation)
	return c.JSON(http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleCloseCitation(c echo.Context) error {
	s.session.CloseCitation()
	return c.JSON(http.StatusOK, s.session.Snapshot())
}
