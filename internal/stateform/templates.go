package stateform

import "github.com/titledesk/title-review/constants"

// FieldType describes how a form field is captured.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeCheckbox FieldType = "checkbox"
	TypeDate     FieldType = "date"
)

// FormField is one line of a duplicate-title application. MappedField names
// the canonical extraction field the value is prefilled from, when any.
type FormField struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	MappedField string    `json:"mapped_field,omitempty"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required,omitempty"`
}

// Template is one jurisdiction's duplicate-title application form.
type Template struct {
	State  string      `json:"state"`
	Name   string      `json:"name"`
	Fields []FormField `json:"fields"`
}

// stateForms maps a title's state to its form template. States without an
// entry fall back to the generic template.
var stateForms = map[string]Template{
	"California": {
		State: "California",
		Name:  "California Application for Duplicate Title (REG 227)",
		Fields: []FormField{
			{ID: "vehicleLicensePlate", Label: "Vehicle License Plate or Vessel CF Number", Type: TypeText},
			{ID: "vin", Label: "Vehicle/Hull Identification Number", MappedField: constants.FieldVIN, Type: TypeText, Required: true},
			{ID: "yearMake", Label: "Year/Make of Vehicle", Type: TypeText},
			{ID: "ownerName", Label: "True Full Name (Last, First, Middle, Suffix)", MappedField: constants.FieldOwnerName, Type: TypeText, Required: true},
			{ID: "driverLicense", Label: "Driver License/ID Card Number", Type: TypeText},
			{ID: "dlState", Label: "State", Type: TypeText},
			{ID: "coOwnerName", Label: "Co-Owner True Full Name", MappedField: constants.FieldCoOwnerName, Type: TypeText},
			{ID: "coOwnerDL", Label: "Co-Owner Driver License/ID Card Number", Type: TypeText},
			{ID: "physicalAddress", Label: "Physical Residence or Business Address", MappedField: constants.FieldOwnerAddress, Type: TypeText, Required: true},
			{ID: "city", Label: "City", Type: TypeText, Required: true},
			{ID: "state", Label: "State", Type: TypeText, Required: true},
			{ID: "zipCode", Label: "ZIP Code", Type: TypeText, Required: true},
			{ID: "county", Label: "County of Residence", Type: TypeText},
			{ID: "mailingAddress", Label: "Mailing Address (if different)", Type: TypeText},
			{ID: "lienholderName", Label: "Legal Owner (Bank, Finance Company)", MappedField: constants.FieldLienholderName, Type: TypeText},
			{ID: "lienholderAddress", Label: "Lienholder Business Address", MappedField: constants.FieldLienholderAddress, Type: TypeText},
			{ID: "reasonLost", Label: "Title is Lost", Type: TypeCheckbox},
			{ID: "reasonStolen", Label: "Title is Stolen", Type: TypeCheckbox},
			{ID: "reasonMutilated", Label: "Title is Illegible/Mutilated", Type: TypeCheckbox},
			{ID: "reasonNotReceived", Label: "Not Received from Prior Owner", Type: TypeCheckbox},
			{ID: "signatureDate", Label: "Date", Type: TypeDate, Required: true},
			{ID: "daytimePhone", Label: "Daytime Telephone Number", Type: TypeText},
		},
	},
	"Arizona": {
		State: "Arizona",
		Name:  "Arizona Title and Registration Application (96-0236)",
		Fields: []FormField{
			{ID: "vin", Label: "Vehicle Identification Number", MappedField: constants.FieldVIN, Type: TypeText, Required: true},
			{ID: "make", Label: "Make", MappedField: constants.FieldMake, Type: TypeText, Required: true},
			{ID: "model", Label: "Model", MappedField: constants.FieldModel, Type: TypeText},
			{ID: "year", Label: "Year", MappedField: constants.FieldYear, Type: TypeText, Required: true},
			{ID: "bodyStyle", Label: "Body Style", MappedField: constants.FieldBodyStyle, Type: TypeText},
			{ID: "plateNumber", Label: "Plate Number", Type: TypeText},
			{ID: "odometer", Label: "Odometer Reading", MappedField: constants.FieldOdometerReading, Type: TypeText},
			{ID: "lienholderName", Label: "Lienholder Name", MappedField: constants.FieldLienholderName, Type: TypeText},
			{ID: "lienDate", Label: "Lien Date", MappedField: constants.FieldLienDate, Type: TypeDate},
			{ID: "ownerName", Label: "Owner/Company Name", MappedField: constants.FieldOwnerName, Type: TypeText, Required: true},
			{ID: "driverLicense", Label: "Driver License or EIN", Type: TypeText},
			{ID: "dateOfBirth", Label: "Date of Birth", Type: TypeDate},
			{ID: "residentialAddress", Label: "Residential/Business Address", MappedField: constants.FieldOwnerAddress, Type: TypeText, Required: true},
			{ID: "city", Label: "City", Type: TypeText, Required: true},
			{ID: "state", Label: "State", Type: TypeText, Required: true},
			{ID: "zip", Label: "ZIP", Type: TypeText, Required: true},
			{ID: "county", Label: "County", Type: TypeText},
			{ID: "mailingAddress", Label: "Mailing Address (if different)", Type: TypeText},
			{ID: "phoneNumber", Label: "Phone Number", Type: TypeText},
			{ID: "email", Label: "Email Address", Type: TypeText},
			{ID: "duplicateTitle", Label: "Duplicate Title", Type: TypeCheckbox},
		},
	},
	"Michigan": {
		State: "Michigan",
		Name:  "Michigan Out-of-State Resident Duplicate Title Application",
		Fields: []FormField{
			{ID: "vehicleYear", Label: "Vehicle Year", MappedField: constants.FieldYear, Type: TypeText, Required: true},
			{ID: "make", Label: "Make", MappedField: constants.FieldMake, Type: TypeText, Required: true},
			{ID: "plateNumber", Label: "Plate Number", Type: TypeText},
			{ID: "vin", Label: "Vehicle Identification Number (VIN)", MappedField: constants.FieldVIN, Type: TypeText, Required: true},
			{ID: "ownerName", Label: "Owner Name (First, Middle, Last)", MappedField: constants.FieldOwnerName, Type: TypeText, Required: true},
			{ID: "streetAddress", Label: "Street Address (Michigan Residence)", Type: TypeText},
			{ID: "apartment", Label: "Apartment, Lot, or Suite #", Type: TypeText},
			{ID: "city", Label: "City", Type: TypeText, Required: true},
			{ID: "state", Label: "State", Type: TypeText, Required: true},
			{ID: "zip", Label: "ZIP", Type: TypeText, Required: true},
			{ID: "daytimePhone", Label: "Daytime Telephone Number", Type: TypeText},
			{ID: "faxNumber", Label: "Fax Number", Type: TypeText},
			{ID: "outOfStateAddress", Label: "Out-of-State Mailing Address", MappedField: constants.FieldOwnerAddress, Type: TypeText},
			{ID: "reasonLost", Label: "Lost", Type: TypeCheckbox},
			{ID: "reasonStolen", Label: "Stolen", Type: TypeCheckbox},
			{ID: "reasonMutilated", Label: "Mutilated", Type: TypeCheckbox},
			{ID: "firstSecuredParty", Label: "First Secured Party", MappedField: constants.FieldLienholderName, Type: TypeText},
			{ID: "filingDate", Label: "Filing Date", MappedField: constants.FieldLienDate, Type: TypeDate},
			{ID: "signatureDate", Label: "Date", Type: TypeDate, Required: true},
		},
	},
}

// defaultForm covers jurisdictions without a dedicated template.
var defaultForm = Template{
	State: "Generic",
	Name:  "Generic Duplicate Title Application",
	Fields: []FormField{
		{ID: "vin", Label: "Vehicle Identification Number (VIN)", MappedField: constants.FieldVIN, Type: TypeText, Required: true},
		{ID: "year", Label: "Year", MappedField: constants.FieldYear, Type: TypeText, Required: true},
		{ID: "make", Label: "Make", MappedField: constants.FieldMake, Type: TypeText, Required: true},
		{ID: "model", Label: "Model", MappedField: constants.FieldModel, Type: TypeText},
		{ID: "ownerName", Label: "Owner Name", MappedField: constants.FieldOwnerName, Type: TypeText, Required: true},
		{ID: "ownerAddress", Label: "Owner Address", MappedField: constants.FieldOwnerAddress, Type: TypeText},
		{ID: "lienholderName", Label: "Lienholder Name", MappedField: constants.FieldLienholderName, Type: TypeText},
	},
}

// FormFor returns the form template for a title state, falling back to the
// generic template for unknown states.
func FormFor(state string) Template {
	if t, ok := stateForms[state]; ok {
		return t
	}
	return defaultForm
}

// SupportedStates lists the jurisdictions with a dedicated template.
func SupportedStates() []string {
	out := make([]string, 0, len(stateForms))
	for s := range stateForms {
		out = append(out, s)
	}
	return out
}
