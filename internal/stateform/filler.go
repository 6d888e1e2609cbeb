package stateform

import (
	"fmt"
	"strings"
	"time"

	"github.com/titledesk/title-review/constants"
	"github.com/titledesk/title-review/internal/entity"
)

// Filled is one form instance populated from a vehicle's extracted fields,
// plus whatever the user typed in afterwards.
type Filled struct {
	Template  Template          `json:"template"`
	State     string            `json:"state"`
	VINEnding string            `json:"vin_ending"`
	Values    map[string]string `json:"values"`
	Checks    map[string]bool   `json:"checks"`
}

// Prefill selects the form for the vehicle's title state and maps extracted
// values onto it. California combines Year and Make into its yearMake line.
func Prefill(v *entity.VehicleTitle) *Filled {
	state := v.FieldValue(constants.FieldTitleState)
	if state == "" {
		state = "Unknown"
	}
	tpl := FormFor(state)

	f := &Filled{
		Template:  tpl,
		State:     state,
		VINEnding: v.VINEnding,
		Values:    make(map[string]string),
		Checks:    make(map[string]bool),
	}
	for _, field := range tpl.Fields {
		switch {
		case field.Type == TypeCheckbox:
			f.Checks[field.ID] = false
		case field.MappedField != "":
			f.Values[field.ID] = v.FieldValue(field.MappedField)
		default:
			f.Values[field.ID] = ""
		}
	}
	if state == "California" {
		year := v.FieldValue(constants.FieldYear)
		makeName := v.FieldValue(constants.FieldMake)
		f.Values["yearMake"] = strings.TrimSpace(year + " " + makeName)
	}
	return f
}

// SetValue records a user-entered value for a text or date field.
func (f *Filled) SetValue(fieldID, value string) {
	f.Values[fieldID] = value
}

// SetCheck records a checkbox state.
func (f *Filled) SetCheck(fieldID string, checked bool) {
	f.Checks[fieldID] = checked
}

// Validate reports the required fields that are still empty.
func (f *Filled) Validate() error {
	var missing []string
	for _, field := range f.Template.Fields {
		if !field.Required {
			continue
		}
		if field.Type == TypeCheckbox {
			if !f.Checks[field.ID] {
				missing = append(missing, field.Label)
			}
			continue
		}
		if f.Values[field.ID] == "" {
			missing = append(missing, field.Label)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required fields missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Render produces the downloadable plain-text form artifact.
func (f *Filled) Render(now time.Time) string {
	var b strings.Builder
	rule := strings.Repeat("=", 50)

	fmt.Fprintf(&b, "%s\n%s\n\n", f.Template.Name, rule)
	fmt.Fprintf(&b, "Vehicle: VIN ending %s\n", f.VINEnding)
	fmt.Fprintf(&b, "State: %s\n\n", f.State)
	fmt.Fprintf(&b, "FORM DATA:\n%s\n\n", strings.Repeat("-", 30))

	for _, field := range f.Template.Fields {
		if field.Type == TypeCheckbox {
			mark := "☐ No"
			if f.Checks[field.ID] {
				mark = "☑ Yes"
			}
			fmt.Fprintf(&b, "%s: %s\n", field.Label, mark)
			continue
		}
		value := f.Values[field.ID]
		if value == "" {
			value = "Not provided"
		}
		fmt.Fprintf(&b, "%s: %s\n", field.Label, value)
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("1/2/2006, 3:04:05 PM"))
	return b.String()
}

// Filename names the rendered artifact per jurisdiction and vehicle.
func (f *Filled) Filename() string {
	return fmt.Sprintf("%s_Duplicate_Title_%s.txt", f.State, f.VINEnding)
}
