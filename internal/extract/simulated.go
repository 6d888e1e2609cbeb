package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/titledesk/title-review/constants"
	"github.com/titledesk/title-review/internal/entity"
)

// sample holds one extracted attribute of a sample vehicle.
type sample struct {
	value      string
	confidence int
	page       int
}

// Simulated is a stand-in for the real extraction service. It waits a fixed
// delay and returns a hard-coded batch of three vehicle titles.
type Simulated struct {
	Delay  time.Duration
	Logger *slog.Logger
}

func NewSimulated(delay time.Duration, logger *slog.Logger) *Simulated {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulated{Delay: delay, Logger: logger}
}

// Extract implements Extractor. The delay is context-aware so an abandoned
// session does not hold the pipeline open.
func (s *Simulated) Extract(ctx context.Context, docs []entity.Document) (*entity.ExtractionResult, error) {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	resultDocs := make([]entity.Document, len(docs))
	copy(resultDocs, docs)
	for i := range resultDocs {
		resultDocs[i].Status = constants.DocumentCompleted
	}

	doc1ID := "doc1"
	if len(resultDocs) > 0 {
		doc1ID = resultDocs[0].ID
	}
	// The sample batch spans two documents. When only one was submitted the
	// backend reports the second one it "found" alongside it.
	if len(resultDocs) == 1 {
		pages := 5
		resultDocs = append(resultDocs, entity.Document{
			ID:        uuid.NewString(),
			Name:      "dealer_2.pdf",
			Size:      245000,
			PageCount: &pages,
			Status:    constants.DocumentCompleted,
		})
	}
	doc2ID := doc1ID
	if len(resultDocs) > 1 {
		doc2ID = resultDocs[1].ID
	}

	vehicles := []entity.VehicleTitle{
		buildVehicle(doc1ID, "1HGCM82633A001481", vehicle1Samples),
		buildVehicle(doc1ID, "5YJSA1DN5DFP19425", vehicle2Samples),
		buildVehicle(doc2ID, "2C3CDXCT8NH107782", vehicle3Samples),
	}

	result := &entity.ExtractionResult{
		ID:            "extraction-" + uuid.NewString(),
		Documents:     resultDocs,
		VehicleTitles: vehicles,
		ExtractedAt:   time.Now().UTC(),
	}
	result.Status = result.DeriveStatus()

	s.Logger.Info("extract.simulated.ok",
		"documents", len(resultDocs),
		"vehicles", len(vehicles),
		"status", string(result.Status),
	)
	return result, nil
}

// buildVehicle assembles the full canonical field set for one vehicle. Fields
// without a sample value are reported as not found; found fields get a
// synthetic citation laid out on a grid.
func buildVehicle(docID, vin string, samples map[string]sample) entity.VehicleTitle {
	fields := make([]entity.ExtractedField, 0, len(constants.TitleFields))
	for i, name := range constants.TitleFields {
		s, ok := samples[name]
		field := entity.ExtractedField{FieldName: name}
		if ok && s.value != "" {
			v := s.value
			orig := s.value
			field.ExtractedValue = &v
			field.OriginalValue = &orig
			field.Confidence = s.confidence
			field.Citation = &entity.Citation{
				PageNumber: s.page,
				BoundingBox: entity.BoundingBox{
					X:      float64(10 + (i%4)*20),
					Y:      float64(15 + (i/4)*8),
					Width:  35,
					Height: 5,
				},
			}
		}
		fields = append(fields, field)
	}

	fullVIN := vin
	v := entity.VehicleTitle{
		ID:               uuid.NewString(),
		VINEnding:        vin[len(vin)-4:],
		FullVIN:          &fullVIN,
		SourceDocumentID: docID,
		Fields:           fields,
	}
	if v.HasWarnings() {
		v.Status = constants.ResultWithWarnings
	} else {
		v.Status = constants.ResultCompleted
	}
	return v
}

var vehicle1Samples = map[string]sample{
	constants.FieldVIN:   {"1HGCM82633A001481", 98, 1},
	"Year":               {"2024", 95, 1},
	"Make":               {"Honda", 92, 1},
	"Model":              {"Accord", 91, 1},
	"Body Style":         {"Sedan", 88, 1},
	"Title Number":       {"TN-2024-123456", 96, 1},
	"Title State":        {"California", 94, 1},
	"Title Type":         {"Clean", 89, 1},
	"Title Status":       {"Active", 87, 1},
	"Issue Date":         {"01/15/2024", 93, 1},
	"Owner Name":         {"John Michael Smith", 85, 1},
	"Owner Address":      {"1234 Main Street, Anytown, CA 12345", 78, 1},
	"Lienholder Name":    {"First National Bank", 82, 1},
	"Lienholder Address": {"PO Box 12345, Finance City, FC 54321", 65, 1},
	"Lien Date":          {"01/15/2024", 79, 1},
	"Odometer Reading":   {"15,234", 72, 1},
	"Odometer Status":    {"Actual", 68, 1},
}

var vehicle2Samples = map[string]sample{
	constants.FieldVIN:      {"5YJSA1DN5DFP19425", 97, 2},
	"Year":                  {"2023", 94, 2},
	"Make":                  {"Tesla", 96, 2},
	"Model":                 {"Model S", 95, 2},
	"Body Style":            {"Hatchback", 91, 2},
	"Title Number":          {"TN-2023-789012", 93, 2},
	"Title State":           {"Nevada", 92, 2},
	"Title Type":            {"Clean", 90, 2},
	"Title Status":          {"Active", 89, 2},
	"Issue Date":            {"06/20/2023", 94, 2},
	"Owner Name":            {"Jane Elizabeth Doe", 88, 2},
	"Owner Address":         {"5678 Oak Avenue, Las Vegas, NV 89101", 85, 2},
	"Odometer Reading":      {"8,456", 86, 2},
	"Odometer Status":       {"Actual", 84, 2},
	"Previous Title Number": {"TN-2022-456789", 75, 2},
	"Previous Title State":  {"California", 73, 2},
}

var vehicle3Samples = map[string]sample{
	constants.FieldVIN:   {"2C3CDXCT8NH107782", 96, 1},
	"Year":               {"2022", 93, 1},
	"Make":               {"Dodge", 95, 1},
	"Model":              {"Challenger", 94, 1},
	"Body Style":         {"Coupe", 90, 1},
	"Title Number":       {"TN-2022-555444", 92, 1},
	"Title State":        {"Texas", 91, 1},
	"Title Type":         {"Clean", 88, 1},
	"Title Status":       {"Active", 86, 1},
	"Issue Date":         {"03/10/2022", 91, 1},
	"Owner Name":         {"Robert James Wilson", 87, 1},
	"Owner Address":      {"9012 Pine Road, Dallas, TX 75201", 82, 1},
	"Co-Owner Name":      {"Sarah Ann Wilson", 80, 1},
	"Lienholder Name":    {"Chase Auto Finance", 84, 1},
	"Lienholder Address": {"1111 Bank Street, Houston, TX 77001", 79, 1},
	"Lien Date":          {"03/10/2022", 83, 1},
	"Odometer Reading":   {"28,912", 85, 1},
	"Odometer Status":    {"Actual", 81, 1},
}
