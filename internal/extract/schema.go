package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/titledesk/title-review/constants"
	"github.com/titledesk/title-review/internal/entity"
)

// BuildResultJSONSchema returns the JSON-Schema (draft 2020-12 subset) that
// extraction results must satisfy, as a generic map. The backend contract:
// every vehicle carries all canonical fields (null for unfound values), each
// with a 0-100 confidence and an optional citation.
func BuildResultJSONSchema() map[string]any {
	boundingBox := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"x":      percentProp(),
			"y":      percentProp(),
			"width":  percentProp(),
			"height": percentProp(),
		},
		"required": []string{"x", "y", "width", "height"},
	}
	citation := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"page_number":  map[string]any{"type": "integer", "minimum": 1},
			"bounding_box": boundingBox,
		},
		"required": []string{"page_number", "bounding_box"},
	}
	field := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"field_name":      map[string]any{"type": "string", "enum": constants.TitleFields},
			"extracted_value": map[string]any{"type": []string{"string", "null"}},
			"original_value":  map[string]any{"type": []string{"string", "null"}},
			"confidence":      map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"citation":        citation,
			"is_edited":       map[string]any{"type": "boolean"},
		},
		"required": []string{"field_name", "extracted_value", "original_value", "confidence"},
	}
	vehicle := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":                 map[string]any{"type": "string", "minLength": 1},
			"vin_ending":         map[string]any{"type": "string", "minLength": 4, "maxLength": 4},
			"full_vin":           map[string]any{"type": []string{"string", "null"}},
			"source_document_id": map[string]any{"type": "string", "minLength": 1},
			"status": map[string]any{
				"type": "string",
				"enum": []string{"completed", "completed_with_warnings", "error"},
			},
			"fields": map[string]any{
				"type":     "array",
				"items":    field,
				"minItems": len(constants.TitleFields),
				"maxItems": len(constants.TitleFields),
			},
		},
		"required": []string{"id", "vin_ending", "source_document_id", "fields", "status"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{"type": "string", "minLength": 1},
			"documents": map[string]any{
				"type":     "array",
				"minItems": 1,
			},
			"vehicle_titles": map[string]any{
				"type":     "array",
				"items":    vehicle,
				"minItems": 1,
			},
			"status": map[string]any{
				"type": "string",
				"enum": []string{"completed", "completed_with_warnings", "error"},
			},
		},
		"required": []string{"id", "documents", "vehicle_titles", "status"},
	}
}

func percentProp() map[string]any {
	return map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0}
}

var resultSchema = mustCompileResultSchema()

func mustCompileResultSchema() *jsonschema.Schema {
	raw, err := json.Marshal(BuildResultJSONSchema())
	if err != nil {
		panic(err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("result.schema.json", strings.NewReader(string(raw))); err != nil {
		panic(err)
	}
	return c.MustCompile("result.schema.json")
}

// ValidateResult checks a backend result against the extraction contract:
// schema shape plus canonical field ordering. The session rejects results that
// fail here as backend failures.
func ValidateResult(r *entity.ExtractionResult) error {
	if r == nil {
		return fmt.Errorf("extraction result is nil")
	}

	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	if err := resultSchema.Validate(doc); err != nil {
		return fmt.Errorf("result schema: %w", err)
	}

	// The schema cannot express per-position names; check ordering here.
	for vi := range r.VehicleTitles {
		v := &r.VehicleTitles[vi]
		for fi := range v.Fields {
			if want := constants.TitleFields[fi]; v.Fields[fi].FieldName != want {
				return fmt.Errorf("vehicle %s: field %d is %q, want %q",
					v.ID, fi, v.Fields[fi].FieldName, want)
			}
		}
	}
	return nil
}
