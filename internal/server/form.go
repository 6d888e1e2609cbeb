package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/titledesk/title-review/internal/stateform"
)

// handleGetVehicleForm returns the jurisdiction form prefilled from the
// vehicle's extracted fields, for the client to present and complete.
func (s *Server) handleGetVehicleForm(c echo.Context) error {
	v, err := s.session.Vehicle(c.Param("vehicleId"))
	if err != nil {
		return fromSessionError(err)
	}
	return c.JSON(http.StatusOK, stateform.Prefill(v))
}

type renderFormRequest struct {
	Values map[string]string `json:"values"`
	Checks map[string]bool   `json:"checks"`
}

// handleRenderVehicleForm applies the user's entries on top of the prefill
// and returns the rendered artifact as a download.
func (s *Server) handleRenderVehicleForm(c echo.Context) error {
	v, err := s.session.Vehicle(c.Param("vehicleId"))
	if err != nil {
		return fromSessionError(err)
	}

	var req renderFormRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	filled := stateform.Prefill(v)
	for id, val := range req.Values {
		filled.SetValue(id, val)
	}
	for id, checked := range req.Checks {
		filled.SetCheck(id, checked)
	}

	if err := filled.Validate(); err != nil {
		return NewBadRequestError("form incomplete", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+filled.Filename()+`"`)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8",
		[]byte(filled.Render(time.Now())))
}
