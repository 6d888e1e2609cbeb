package session

import (
	"github.com/titledesk/title-review/constants"
	"github.com/titledesk/title-review/internal/entity"
)

// Snapshot is a read-only view of the full session state. Views borrow copies
// only; mutation goes through the manager's operations.
type Snapshot struct {
	Documents               []entity.Document        `json:"documents"`
	Phase                   constants.Phase          `json:"phase"`
	IsProcessing            bool                     `json:"is_processing"`
	ProcessingSteps         []entity.ProcessingStep  `json:"processing_steps"`
	CurrentStepIndex        int                      `json:"current_step_index"`
	Result                  *entity.ExtractionResult `json:"result,omitempty"`
	HasUnsavedChanges       bool                     `json:"has_unsaved_changes"`
	EditedFieldCount        int                      `json:"edited_field_count"`
	LowConfidenceFieldCount int                      `json:"low_confidence_field_count"`
	LastError               string                   `json:"last_error,omitempty"`
	ActiveCitation          *entity.Citation         `json:"active_citation,omitempty"`
	ViewerOpen              bool                     `json:"viewer_open"`
}

// Snapshot returns a deep copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Documents:         cloneDocuments(m.documents),
		Phase:             m.phase,
		IsProcessing:      m.phase == constants.PhaseRunning,
		CurrentStepIndex:  m.currentStep,
		HasUnsavedChanges: m.dirty,
		LastError:         m.lastError,
		ViewerOpen:        m.viewerOpen,
	}
	if len(m.steps) > 0 {
		snap.ProcessingSteps = make([]entity.ProcessingStep, len(m.steps))
		copy(snap.ProcessingSteps, m.steps)
	}
	if m.result != nil {
		r := m.result.Clone()
		r.Status = m.result.DeriveStatus()
		snap.Result = &r
		snap.EditedFieldCount = m.result.EditedFieldCount()
		snap.LowConfidenceFieldCount = m.result.LowConfidenceFieldCount()
	}
	if m.activeCitation != nil {
		c := *m.activeCitation
		snap.ActiveCitation = &c
	}
	return snap
}

// Documents returns a copy of the uploaded document list.
func (m *Manager) Documents() []entity.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneDocuments(m.documents)
}

// Result returns a deep copy of the current extraction result, or nil.
func (m *Manager) Result() *entity.ExtractionResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.result == nil {
		return nil
	}
	r := m.result.Clone()
	return &r
}

// Vehicle returns a deep copy of one vehicle title from the current result.
func (m *Manager) Vehicle(id string) (*entity.VehicleTitle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.result == nil {
		return nil, ErrNoResult
	}
	v := m.result.Vehicle(id)
	if v == nil {
		return nil, ErrVehicleNotFound
	}
	out := v.Clone()
	return &out, nil
}

// Processing reports whether an extraction is in flight.
func (m *Manager) Processing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase == constants.PhaseRunning
}

// Phase returns the pipeline phase.
func (m *Manager) Phase() constants.Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// HasUnsavedChanges reports whether edits exist past the last checkpoint.
func (m *Manager) HasUnsavedChanges() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}
