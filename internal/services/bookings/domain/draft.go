package domain

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field labels in the order prompts list them.
const (
	FieldName     = "Name"
	FieldFacility = "Facility"
	FieldTime     = "Time"
	FieldDate     = "Date"
	FieldStatus   = "Status"
)

// Localization keys describing why a draft was rejected.
const (
	KeyRequiredFields = "error.required_fields"
	KeyInvalidDate    = "error.invalid_date"
	KeyInvalidStatus  = "error.invalid_status"
	KeyInvalidField   = "error.invalid_field"
)

var fieldOrder = map[string]int{
	FieldName:     0,
	FieldFacility: 1,
	FieldTime:     2,
	FieldDate:     3,
	FieldStatus:   4,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})
	return v
}

// Draft holds the editable fields of a booking as submitted by a client.
type Draft struct {
	Name     string `json:"name" label:"Name" validate:"required"`
	Date     string `json:"date" label:"Date" validate:"required"`
	Time     string `json:"time" label:"Time" validate:"required"`
	Facility string `json:"facility" label:"Facility" validate:"required"`
	Status   string `json:"status,omitempty" label:"Status" validate:"omitempty,oneof=APPROVED CANCELLED"`
}

// Input is a validated draft.
type Input struct {
	Name     string
	Date     Date
	Time     string
	Facility string
	// Status is empty when the draft did not carry one.
	Status Status
}

// Normalize trims surrounding whitespace from every field.
func (d Draft) Normalize() Draft {
	return Draft{
		Name:     strings.TrimSpace(d.Name),
		Date:     strings.TrimSpace(d.Date),
		Time:     strings.TrimSpace(d.Time),
		Facility: strings.TrimSpace(d.Facility),
		Status:   strings.ToUpper(strings.TrimSpace(d.Status)),
	}
}

// MissingFields returns the labels of blank required text fields
// (name, facility, time) in prompt order.
func (d Draft) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, FieldName)
	}
	if strings.TrimSpace(d.Facility) == "" {
		missing = append(missing, FieldFacility)
	}
	if strings.TrimSpace(d.Time) == "" {
		missing = append(missing, FieldTime)
	}
	return missing
}

// Validate checks every field of d and returns the parsed input.
func (d Draft) Validate() (Input, error) {
	d = d.Normalize()
	verr := &ValidationError{}
	if err := validate.Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Input{}, fmt.Errorf("validate booking: %w", err)
		}
		for _, fe := range fieldErrs {
			switch fe.Tag() {
			case "required":
				verr.Missing = append(verr.Missing, fe.Field())
			case "oneof":
				verr.invalid(fe.Field(), fmt.Sprintf("%s must be one of %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", ")))
			default:
				verr.invalid(fe.Field(), fmt.Sprintf("%s is invalid", fe.Field()))
			}
		}
	}

	var date Date
	if d.Date != "" {
		parsed, err := ParseDate(d.Date)
		if err != nil {
			verr.invalid(FieldDate, err.Error())
		}
		date = parsed
	}
	if verr.HasProblems() {
		sortFields(verr.Missing)
		sortFields(verr.InvalidFields)
		return Input{}, verr
	}
	return Input{
		Name:     d.Name,
		Date:     date,
		Time:     d.Time,
		Facility: d.Facility,
		Status:   Status(d.Status),
	}, nil
}

func sortFields(fields []string) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fieldOrder[fields[i]] < fieldOrder[fields[j]]
	})
}

// RequiredFieldsMessage formats the prompt shown when fields are blank.
func RequiredFieldsMessage(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, ", ") + " are required fields."
}

// ValidationError lists missing and malformed booking fields.
type ValidationError struct {
	Missing []string
	Invalid []string
	// InvalidFields names the malformed fields in prompt order.
	InvalidFields []string
}

func (e *ValidationError) invalid(field, problem string) {
	e.Invalid = append(e.Invalid, problem)
	e.InvalidFields = append(e.InvalidFields, field)
}

// Key returns the localization key that best describes the failure. Missing
// fields take precedence over malformed ones.
func (e *ValidationError) Key() string {
	if e == nil {
		return ""
	}
	if len(e.Missing) > 0 {
		return KeyRequiredFields
	}
	if len(e.InvalidFields) == 0 {
		return KeyInvalidField
	}
	switch e.InvalidFields[0] {
	case FieldDate:
		return KeyInvalidDate
	case FieldStatus:
		return KeyInvalidStatus
	default:
		return KeyInvalidField
	}
}

// HasProblems reports whether any field failed validation.
func (e *ValidationError) HasProblems() bool {
	return e != nil && (len(e.Missing) > 0 || len(e.Invalid) > 0)
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	parts := make([]string, 0, len(e.Invalid)+1)
	if msg := RequiredFieldsMessage(e.Missing); msg != "" {
		parts = append(parts, msg)
	}
	parts = append(parts, e.Invalid...)
	return strings.Join(parts, " ")
}

// Patch carries the fields supplied to an update; nil fields are left as-is.
type Patch struct {
	Name     *string `json:"name"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Facility *string `json:"facility"`
	Status   *string `json:"status"`
}

// IsEmpty reports whether p changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Date == nil && p.Time == nil && p.Facility == nil && p.Status == nil
}

// Apply merges p onto d.
func (p Patch) Apply(d Draft) Draft {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Date != nil {
		d.Date = *p.Date
	}
	if p.Time != nil {
		d.Time = *p.Time
	}
	if p.Facility != nil {
		d.Facility = *p.Facility
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	return d
}

// PatchFromDraft builds a patch that sets every field of d.
func PatchFromDraft(d Draft) Patch {
	p := Patch{
		Name:     &d.Name,
		Date:     &d.Date,
		Time:     &d.Time,
		Facility: &d.Facility,
	}
	if strings.TrimSpace(d.Status) != "" {
		p.Status = &d.Status
	}
	return p
}

// StatusPatch builds a patch that only changes the status.
func StatusPatch(status Status) Patch {
	value := string(status)
	return Patch{Status: &value}
}
