package entity

import (
	"github.com/titledesk/title-review/constants"
)

// Document represents one uploaded source document for data transfer between
// layers. Immutable after creation except for Status, which is advanced by the
// processing pipeline.
type Document struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Size      int64                    `json:"size"`
	PageCount *int                     `json:"page_count,omitempty"`
	Status    constants.DocumentStatus `json:"status"`
}
