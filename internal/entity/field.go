package entity

import "time"

// ExtractedField is one named attribute of a vehicle title.
//
// OriginalValue never changes after creation. IsEdited tracks edit provenance,
// not value equality: it is set true on edit and false on revert, so an edit
// that happens to restore the original text still counts as edited until
// explicitly reverted.
type ExtractedField struct {
	FieldName      string     `json:"field_name"`
	ExtractedValue *string    `json:"extracted_value"`
	Confidence     int        `json:"confidence"`
	Citation       *Citation  `json:"citation,omitempty"`
	IsEdited       bool       `json:"is_edited"`
	OriginalValue  *string    `json:"original_value"`
	EditedAt       *time.Time `json:"edited_at,omitempty"`
}

// Clone returns a deep copy of the field.
func (f ExtractedField) Clone() ExtractedField {
	out := f
	if f.ExtractedValue != nil {
		v := *f.ExtractedValue
		out.ExtractedValue = &v
	}
	if f.OriginalValue != nil {
		v := *f.OriginalValue
		out.OriginalValue = &v
	}
	if f.Citation != nil {
		c := *f.Citation
		out.Citation = &c
	}
	if f.EditedAt != nil {
		t := *f.EditedAt
		out.EditedAt = &t
	}
	return out
}
