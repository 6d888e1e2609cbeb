package entity

// BoundingBox is a normalized region of a page. All values are percentages of
// the page dimensions (0-100).
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Citation points at the page region of a source document that justifies an
// extracted value. Immutable once created.
type Citation struct {
	PageNumber  int         `json:"page_number"`
	BoundingBox BoundingBox `json:"bounding_box"`
}
