package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleSaveReview(c echo.Context) error {
	if err := s.session.SaveReview(c.Request().Context()); err != nil {
		return fromSessionError(err)
	}
	return c.JSON(http.StatusOK, s.session.Snapshot())
}

func (s *Server) handlePush(c echo.Context) error {
	if err := s.session.PushToDownstream(c.Request().Context()); err != nil {
		return fromSessionError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "pushed"})
}
