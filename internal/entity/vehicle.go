package entity

import (
	"github.com/titledesk/title-review/constants"
)

// VehicleTitle is one detected vehicle on one or more source documents. It
// carries exactly the canonical field set, one ExtractedField per canonical
// name in canonical order. The title itself is never mutated directly; only
// its contained fields change through the session's edit operations.
type VehicleTitle struct {
	ID               string                 `json:"id"`
	VINEnding        string                 `json:"vin_ending"`
	FullVIN          *string                `json:"full_vin"`
	SourceDocumentID string                 `json:"source_document_id"`
	Fields           []ExtractedField       `json:"fields"`
	Status           constants.ResultStatus `json:"status"`
}

// Field returns a pointer to the named field, or nil when the name is not part
// of this vehicle's field set.
func (v *VehicleTitle) Field(name string) *ExtractedField {
	for i := range v.Fields {
		if v.Fields[i].FieldName == name {
			return &v.Fields[i]
		}
	}
	return nil
}

// FieldValue returns the current value of the named field, or "" when the
// field is absent or marked not found.
func (v *VehicleTitle) FieldValue(name string) string {
	f := v.Field(name)
	if f == nil || f.ExtractedValue == nil {
		return ""
	}
	return *f.ExtractedValue
}

// HasWarnings reports whether any field on this vehicle has a non-null value
// with confidence below the review threshold.
func (v *VehicleTitle) HasWarnings() bool {
	for i := range v.Fields {
		f := &v.Fields[i]
		if f.ExtractedValue != nil && f.Confidence < constants.LowConfidenceThreshold {
			return true
		}
	}
	return false
}

// EditedFieldCount counts fields currently flagged as edited.
func (v *VehicleTitle) EditedFieldCount() int {
	n := 0
	for i := range v.Fields {
		if v.Fields[i].IsEdited {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the vehicle title.
func (v VehicleTitle) Clone() VehicleTitle {
	out := v
	if v.FullVIN != nil {
		s := *v.FullVIN
		out.FullVIN = &s
	}
	out.Fields = make([]ExtractedField, len(v.Fields))
	for i, f := range v.Fields {
		out.Fields[i] = f.Clone()
	}
	return out
}
