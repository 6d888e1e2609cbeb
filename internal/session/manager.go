// Package session owns the lifecycle of one extraction review session: the
// uploaded document list, the processing pipeline, the current extraction
// result with per-field edit provenance, and the unsaved-changes flag that
// gates downstream publication.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/titledesk/title-review/constants"
	"github.com/titledesk/title-review/internal/entity"
	"github.com/titledesk/title-review/internal/extract"
	"github.com/titledesk/title-review/internal/push"
	"github.com/titledesk/title-review/internal/review"
)

// Deps holds the collaborators a Manager is constructed with.
type Deps struct {
	Extractor extract.Extractor
	Reviews   review.Store
	Publisher push.Publisher
	Logger    *slog.Logger

	// StepDelay is the pause between pipeline stages before the backend call.
	StepDelay time.Duration
}

// Manager is the extraction session manager. One instance serves one logical
// session; all state is guarded by mu. The lock is released across the
// extractor, review-store and publisher calls, with the running phase acting
// as the guard that rejects structural mutation during the in-flight window.
type Manager struct {
	mu sync.Mutex

	extractor extract.Extractor
	reviews   review.Store
	publisher push.Publisher
	logger    *slog.Logger
	stepDelay time.Duration

	documents   []entity.Document
	result      *entity.ExtractionResult
	phase       constants.Phase
	steps       []entity.ProcessingStep
	currentStep int
	dirty       bool
	lastError   string

	activeCitation *entity.Citation
	viewerOpen     bool
}

func NewManager(deps Deps) *Manager {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		extractor: deps.Extractor,
		reviews:   deps.Reviews,
		publisher: deps.Publisher,
		logger:    logger,
		stepDelay: deps.StepDelay,
		phase:     constants.PhaseIdle,
	}
}

func newPipelineSteps() []entity.ProcessingStep {
	return []entity.ProcessingStep{
		{ID: "analyze", Label: "Analyzing documents", Status: constants.StepActive},
		{ID: "extract", Label: "Extracting title data", Status: constants.StepPending},
		{ID: "validate", Label: "Validating fields", Status: constants.StepPending},
	}
}

// AddDocuments appends uploaded documents to the session. Rejected while an
// extraction is in flight.
func (m *Manager) AddDocuments(docs ...entity.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == constants.PhaseRunning {
		return ErrProcessing
	}
	m.documents = append(m.documents, docs...)
	return nil
}

// RemoveDocument removes the document with the given ID. Removing an unknown
// ID is a no-op; removing during processing is an error so an in-flight batch
// cannot be corrupted.
func (m *Manager) RemoveDocument(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == constants.PhaseRunning {
		return ErrProcessing
	}
	for i := range m.documents {
		if m.documents[i].ID == id {
			m.documents = append(m.documents[:i], m.documents[i+1:]...)
			return nil
		}
	}
	return nil
}

// StartExtraction drives the pipeline from the current document list to a
// stored ExtractionResult. It is the session's single asynchronous boundary:
// at most one extraction runs at a time, and structural mutations are rejected
// until it settles. On backend failure the phase becomes failed, documents are
// marked errored, and the session stays retriable.
func (m *Manager) StartExtraction(ctx context.Context) (*entity.ExtractionResult, error) {
	m.mu.Lock()
	if m.phase == constants.PhaseRunning {
		m.mu.Unlock()
		return nil, ErrProcessing
	}
	if len(m.documents) == 0 {
		m.mu.Unlock()
		return nil, ErrNoDocuments
	}
	m.phase = constants.PhaseRunning
	m.lastError = ""
	m.steps = newPipelineSteps()
	m.currentStep = 0
	for i := range m.documents {
		m.documents[i].Status = constants.DocumentProcessing
	}
	docs := cloneDocuments(m.documents)
	m.mu.Unlock()

	m.logger.Info("session.extract.start", "documents", len(docs))

	// Two stage handoffs before the backend call; the final stage completes
	// together with the result.
	for next := 1; next <= 2; next++ {
		if err := m.pause(ctx); err != nil {
			return nil, m.failExtraction(err)
		}
		m.advanceStep(next)
	}

	result, err := m.extractor.Extract(ctx, docs)
	if err == nil {
		err = extract.ValidateResult(result)
	}
	if err != nil {
		return nil, m.failExtraction(err)
	}

	m.mu.Lock()
	m.result = result
	m.documents = cloneDocuments(result.Documents)
	for i := range m.steps {
		m.steps[i].Status = constants.StepCompleted
	}
	m.currentStep = len(m.steps) - 1
	m.phase = constants.PhaseSucceeded
	m.dirty = false
	out := result.Clone()
	m.mu.Unlock()

	m.logger.Info("session.extract.ok",
		"result_id", result.ID,
		"vehicles", len(result.VehicleTitles),
		"status", string(result.Status),
	)
	return &out, nil
}

func (m *Manager) pause(ctx context.Context) error {
	if m.stepDelay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.stepDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) advanceStep(next int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if next-1 >= 0 && next-1 < len(m.steps) {
		m.steps[next-1].Status = constants.StepCompleted
	}
	if next < len(m.steps) {
		m.steps[next].Status = constants.StepActive
		m.currentStep = next
	}
}

func (m *Manager) failExtraction(cause error) error {
	m.mu.Lock()
	m.phase = constants.PhaseFailed
	m.steps = nil
	m.currentStep = 0
	m.lastError = cause.Error()
	for i := range m.documents {
		m.documents[i].Status = constants.DocumentError
	}
	m.mu.Unlock()

	m.logger.Error("session.extract.failed", "err", cause)
	return fmt.Errorf("extraction failed: %w", cause)
}

// UpdateField sets a field's value. An empty value marks the field not found.
// The edit flag records provenance: it stays true even if the new value equals
// the original text.
func (m *Manager) UpdateField(vehicleID, fieldName, newValue string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.lookupField(vehicleID, fieldName)
	if err != nil {
		return err
	}
	if newValue == "" {
		f.ExtractedValue = nil
	} else {
		v := newValue
		f.ExtractedValue = &v
	}
	f.IsEdited = true
	now := time.Now().UTC()
	f.EditedAt = &now
	m.dirty = true
	return nil
}

// RevertField restores a field to its original extracted value and clears the
// edit flag. Reverting is itself an unsaved change relative to the last
// checkpoint.
func (m *Manager) RevertField(vehicleID, fieldName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.lookupField(vehicleID, fieldName)
	if err != nil {
		return err
	}
	if f.OriginalValue != nil {
		v := *f.OriginalValue
		f.ExtractedValue = &v
	} else {
		f.ExtractedValue = nil
	}
	f.IsEdited = false
	f.EditedAt = nil
	m.dirty = true
	return nil
}

func (m *Manager) lookupField(vehicleID, fieldName string) (*entity.ExtractedField, error) {
	if m.result == nil {
		return nil, ErrNoResult
	}
	v := m.result.Vehicle(vehicleID)
	if v == nil {
		return nil, fmt.Errorf("%w: %s", ErrVehicleNotFound, vehicleID)
	}
	f := v.Field(fieldName)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, fieldName)
	}
	return f, nil
}

// SaveReview persists the current field-level review state and clears the
// unsaved-changes flag. Idempotent: saving with nothing pending succeeds.
// This is the only operation that clears the flag.
func (m *Manager) SaveReview(ctx context.Context) error {
	m.mu.Lock()
	if m.result == nil {
		m.mu.Unlock()
		return nil
	}
	cp := buildCheckpoint(m.result)
	m.mu.Unlock()

	if err := m.reviews.SaveCheckpoint(ctx, cp); err != nil {
		m.logger.Error("session.review.failed", "result_id", cp.ResultID, "err", err)
		return fmt.Errorf("save review: %w", err)
	}

	m.mu.Lock()
	m.dirty = false
	m.mu.Unlock()

	m.logger.Info("session.review.saved", "result_id", cp.ResultID, "edited_fields", len(cp.Fields))
	return nil
}

func buildCheckpoint(r *entity.ExtractionResult) review.Checkpoint {
	cp := review.Checkpoint{
		ResultID: r.ID,
		SavedAt:  time.Now().UTC(),
	}
	for vi := range r.VehicleTitles {
		v := &r.VehicleTitles[vi]
		for fi := range v.Fields {
			f := &v.Fields[fi]
			if !f.IsEdited {
				continue
			}
			delta := review.FieldDelta{
				VehicleID: v.ID,
				FieldName: f.FieldName,
				Edited:    true,
			}
			if f.ExtractedValue != nil {
				val := *f.ExtractedValue
				delta.Value = &val
			}
			if f.EditedAt != nil {
				t := *f.EditedAt
				delta.EditedAt = &t
			}
			cp.Fields = append(cp.Fields, delta)
		}
	}
	return cp
}

// PushToDownstream publishes the reviewed result. The session refuses to push
// while the displayed state is out of sync with the last saved checkpoint.
// Success records no state change beyond the notification side effect.
func (m *Manager) PushToDownstream(ctx context.Context) error {
	m.mu.Lock()
	if m.result == nil {
		m.mu.Unlock()
		return ErrNoResult
	}
	if m.dirty {
		m.mu.Unlock()
		return ErrUnsavedChanges
	}
	snapshot := m.result.Clone()
	m.mu.Unlock()

	if err := m.publisher.Publish(ctx, &snapshot); err != nil {
		m.logger.Error("session.push.failed", "result_id", snapshot.ID, "err", err)
		return fmt.Errorf("push to downstream: %w", err)
	}
	m.logger.Info("session.push.ok", "result_id", snapshot.ID)
	return nil
}

// OpenCitation sets the active citation and opens the viewer.
func (m *Manager) OpenCitation(c entity.Citation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeCitation = &c
	m.viewerOpen = true
}

// CloseCitation closes the viewer and clears the active citation.
func (m *Manager) CloseCitation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeCitation = nil
	m.viewerOpen = false
}

// Reset clears the session back to its initial state. Rejected while an
// extraction is in flight.
func (m *Manager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == constants.PhaseRunning {
		return ErrProcessing
	}
	m.documents = nil
	m.result = nil
	m.steps = nil
	m.currentStep = 0
	m.dirty = false
	m.lastError = ""
	m.phase = constants.PhaseIdle
	m.activeCitation = nil
	m.viewerOpen = false
	return nil
}

func cloneDocuments(docs []entity.Document) []entity.Document {
	out := make([]entity.Document, len(docs))
	for i, d := range docs {
		out[i] = d
		if d.PageCount != nil {
			n := *d.PageCount
			out[i].PageCount = &n
		}
	}
	return out
}
