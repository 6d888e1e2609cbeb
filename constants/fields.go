package constants

// TitleFields is the canonical vocabulary of title attributes, in the order
// they appear on review screens and in exports. Every extracted vehicle
// carries exactly one field per name, in this order.
var TitleFields = []string{
	"VIN (Vehicle Identification Number)",
	"Year",
	"Make",
	"Model",
	"Body Style",
	"Title Number",
	"Title State",
	"Title Type",
	"Title Status",
	"Issue Date",
	"Owner Name",
	"Owner Address",
	"Co-Owner Name",
	"Lienholder Name",
	"Lienholder Address",
	"Lien Date",
	"Lien Release Date",
	"Odometer Reading",
	"Odometer Status",
	"Brand/Remarks",
	"Previous Title Number",
	"Previous Title State",
}

// Well-known field names referenced directly by the form filler.
const (
	FieldVIN               = "VIN (Vehicle Identification Number)"
	FieldYear              = "Year"
	FieldMake              = "Make"
	FieldModel             = "Model"
	FieldBodyStyle         = "Body Style"
	FieldTitleState        = "Title State"
	FieldOwnerName         = "Owner Name"
	FieldOwnerAddress      = "Owner Address"
	FieldCoOwnerName       = "Co-Owner Name"
	FieldLienholderName    = "Lienholder Name"
	FieldLienholderAddress = "Lienholder Address"
	FieldLienDate          = "Lien Date"
	FieldOdometerReading   = "Odometer Reading"
)

// LowConfidenceThreshold is the confidence score below which a non-empty
// field is flagged for reviewer attention.
const LowConfidenceThreshold = 70

var titleFieldIndex = func() map[string]int {
	m := make(map[string]int, len(TitleFields))
	for i, name := range TitleFields {
		m[name] = i
	}
	return m
}()

// IsTitleField reports whether name belongs to the canonical vocabulary.
func IsTitleField(name string) bool {
	_, ok := titleFieldIndex[name]
	return ok
}

// TitleFieldIndex returns the canonical position of name, or -1.
func TitleFieldIndex(name string) int {
	if i, ok := titleFieldIndex[name]; ok {
		return i
	}
	return -1
}
