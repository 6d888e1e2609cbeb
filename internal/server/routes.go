package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, s *Server) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health", s.handleHealth)

	docs := e.Group("/api/documents")
	docs.POST("", s.handleUploadDocuments)
	docs.GET("", s.handleListDocuments)
	docs.DELETE("/:id", s.handleDeleteDocument)

	ext := e.Group("/api/extraction")
	ext.POST("", s.handleStartExtraction)
	ext.GET("", s.handleGetExtraction)
	ext.DELETE("", s.handleResetExtraction)

	vehicles := e.Group("/api/vehicles")
	vehicles.GET("/:vehicleId", s.handleGetVehicle)
	vehicles.PUT("/:vehicleId/fields/:fieldName", s.handleUpdateField)
	vehicles.DELETE("/:vehicleId/fields/:fieldName/edit", s.handleRevertField)
	vehicles.GET("/:vehicleId/form", s.handleGetVehicleForm)
	vehicles.POST("/:vehicleId/form", s.handleRenderVehicleForm)

	e.POST("/api/review/save", s.handleSaveReview)
	e.POST("/api/push", s.handlePush)
	e.GET("/api/export/xlsx", s.handleExportXLSX)

	e.POST("/api/citation", s.handleOpenCitation)
	e.DELETE("/api/citation", s.handleCloseCitation)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}
