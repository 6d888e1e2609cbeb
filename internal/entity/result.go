package entity

import (
	"time"

	"github.com/titledesk/title-review/constants"
)

// ExtractionResult is one completed extraction session. The result identity
// and document list are fixed once produced; fields inside its vehicle titles
// mutate in place through the session's edit operations.
type ExtractionResult struct {
	ID            string                 `json:"id"`
	Documents     []Document             `json:"documents"`
	VehicleTitles []VehicleTitle         `json:"vehicle_titles"`
	ExtractedAt   time.Time              `json:"extracted_at"`
	Status        constants.ResultStatus `json:"status"`
}

// Vehicle returns a pointer to the vehicle with the given ID, or nil.
func (r *ExtractionResult) Vehicle(id string) *VehicleTitle {
	for i := range r.VehicleTitles {
		if r.VehicleTitles[i].ID == id {
			return &r.VehicleTitles[i]
		}
	}
	return nil
}

// LowConfidenceFieldCount counts fields across all vehicles with a non-null
// value and confidence below the review threshold.
func (r *ExtractionResult) LowConfidenceFieldCount() int {
	n := 0
	for i := range r.VehicleTitles {
		for j := range r.VehicleTitles[i].Fields {
			f := &r.VehicleTitles[i].Fields[j]
			if f.ExtractedValue != nil && f.Confidence < constants.LowConfidenceThreshold {
				n++
			}
		}
	}
	return n
}

// EditedFieldCount counts edited fields across all vehicles.
func (r *ExtractionResult) EditedFieldCount() int {
	n := 0
	for i := range r.VehicleTitles {
		n += r.VehicleTitles[i].EditedFieldCount()
	}
	return n
}

// DeriveStatus recomputes the aggregate status from the current field values:
// completed_with_warnings iff at least one field has a non-null value with
// confidence below the threshold, else completed.
func (r *ExtractionResult) DeriveStatus() constants.ResultStatus {
	if r.LowConfidenceFieldCount() > 0 {
		return constants.ResultWithWarnings
	}
	return constants.ResultCompleted
}

// Clone returns a deep copy of the result.
func (r ExtractionResult) Clone() ExtractionResult {
	out := r
	out.Documents = make([]Document, len(r.Documents))
	for i, d := range r.Documents {
		out.Documents[i] = d
		if d.PageCount != nil {
			n := *d.PageCount
			out.Documents[i].PageCount = &n
		}
	}
	out.VehicleTitles = make([]VehicleTitle, len(r.VehicleTitles))
	for i, v := range r.VehicleTitles {
		out.VehicleTitles[i] = v.Clone()
	}
	return out
}
