package session

import "errors"

// Session operation errors. Callers are expected to branch on these rather
// than on message text.
var (
	ErrNoDocuments     = errors.New("no documents to extract")
	ErrProcessing      = errors.New("extraction already in progress")
	ErrNoResult        = errors.New("no extraction result")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrFieldNotFound   = errors.New("field not found")
	ErrUnsavedChanges  = errors.New("review has unsaved changes")
)
