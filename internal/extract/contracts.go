package extract

import (
	"context"

	"github.com/titledesk/title-review/internal/entity"
)

// Extractor is the extraction backend: documents in, one ExtractionResult out.
// Implementations must return a VehicleTitle per detected vehicle carrying the
// full canonical field set, with null values for fields that were not found.
type Extractor interface {
	Extract(ctx context.Context, docs []entity.Document) (*entity.ExtractionResult, error)
}
