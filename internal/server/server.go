// Package server exposes one extraction review session over a JSON HTTP API.
package server

import (
	"go.uber.org/zap"

	"github.com/titledesk/title-review/internal/export"
	"github.com/titledesk/title-review/internal/session"
	"github.com/titledesk/title-review/internal/upload"
)

// Dependencies holds all handler dependencies.
type Dependencies struct {
	Session *session.Manager
	Uploads *upload.Store
	Export  *export.Service
	Logger  *zap.Logger
	Version string
}

// Server bundles the handlers for one review session.
type Server struct {
	session *session.Manager
	uploads *upload.Store
	export  *export.Service
	logger  *zap.Logger
	version string
}

func New(deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		session: deps.Session,
		uploads: deps.Uploads,
		export:  deps.Export,
		logger:  logger,
		version: deps.Version,
	}
}
