package entity

import "github.com/titledesk/title-review/constants"

// ProcessingStep is one stage of the extraction pipeline, surfaced to the
// client while processing is in flight.
type ProcessingStep struct {
	ID     string               `json:"id"`
	Label  string               `json:"label"`
	Status constants.StepStatus `json:"status"`
}
