// Package intake validates and canonicalizes lost and found report
// submissions, and decides whether a found item is already too old to be
// listed as pending.
package intake

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

// Locations that take a free-text detail.
const (
	LocationRoom   = "Room"
	LocationOthers = "Others"
	CategoryOthers = "Others"
)

// Occupations accepted on the intake form.
var Occupations = []string{"Student", "Faculty", "Staff"}

// Locations accepted on the intake form.
var Locations = []string{"Room", "Hallway", "Bathroom", "Fire Exit", "Lobby", "Others"}

// Submission is a lost or found report as entered on the intake form.
type Submission struct {
	ItemName         string `json:"itemName" validate:"required,max=200"`
	PersonName       string `json:"personName" validate:"required,max=200"`
	Occupation       string `json:"occupation" validate:"required,oneof=Student Faculty Staff"`
	Category         string `json:"category" validate:"required,max=100"`
	SpecificCategory string `json:"specificCategory" validate:"required_if=Category Others,max=100"`
	Floor            string `json:"floor" validate:"required,max=50"`
	Location         string `json:"location" validate:"required,oneof=Room Hallway Bathroom 'Fire Exit' Lobby Others"`
	SpecificLocation string `json:"specificLocation" validate:"max=100"`
	Date             string `json:"date" validate:"required,datetime=2006-01-02"`
	Time             string `json:"time" validate:"required,datetime=15:04"`
	Description      string `json:"description" validate:"max=2000"`
	ContactNumber    string `json:"contactNumber" validate:"required,max=32"`
	ContactEmail     string `json:"contactEmail" validate:"required,email,max=254"`
	PhotoURL         string `json:"photoUrl" validate:"max=500"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a submission and returns a *model.ValidationError naming
// every offending field.
func Validate(s *Submission) error {
	trim(s)

	var fields []string
	var missing, invalid []string

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating submission: %w", err)
		}
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
			switch fe.Tag() {
			case "required", "required_if":
				missing = append(missing, fe.Field())
			default:
				invalid = append(invalid, describe(fe))
			}
		}
	}

	if needsLocationDetail(s.Location) && s.SpecificLocation == "" {
		fields = append(fields, "specificLocation")
		invalid = append(invalid, "please specify the exact location")
	}

	if len(fields) == 0 {
		return nil
	}

	var msg []string
	if len(missing) > 0 {
		msg = append(msg, "please fill in all required fields ("+strings.Join(missing, ", ")+")")
	}
	msg = append(msg, invalid...)
	return model.NewValidationError(strings.Join(msg, "; "), fields...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "please enter a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must use the format %s", fe.Field(), layoutHint(fe.Param()))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func layoutHint(layout string) string {
	switch layout {
	case "2006-01-02":
		return "YYYY-MM-DD"
	case "15:04":
		return "HH:MM"
	default:
		return layout
	}
}

func trim(s *Submission) {
	for _, p := range []*string{
		&s.ItemName, &s.PersonName, &s.Occupation, &s.Category, &s.SpecificCategory,
		&s.Floor, &s.Location, &s.SpecificLocation, &s.Date, &s.Time, &s.Description,
		&s.ContactNumber, &s.ContactEmail, &s.PhotoURL,
	} {
		*p = strings.TrimSpace(*p)
	}
}

func needsLocationDetail(location string) bool {
	return location == LocationRoom || location == LocationOthers
}

// Canonicalize folds the location and category details into the stored
// values ("Room: 1905", "Others: Lanyard") and returns the record details.
func Canonicalize(s Submission) model.Details {
	location := s.Location
	if needsLocationDetail(location) && s.SpecificLocation != "" {
		location = location + ": " + s.SpecificLocation
	}
	category := s.Category
	if category == CategoryOthers && s.SpecificCategory != "" {
		category = category + ": " + s.SpecificCategory
	}

	return model.Details{
		Name:          s.ItemName,
		Category:      category,
		Floor:         s.Floor,
		Location:      location,
		Description:   s.Description,
		ItemDate:      s.Date,
		ItemTime:      s.Time,
		PersonName:    s.PersonName,
		Occupation:    s.Occupation,
		ContactNumber: s.ContactNumber,
		ContactEmail:  s.ContactEmail,
		PhotoURL:      s.PhotoURL,
	}
}

// Prepare validates and canonicalizes a submission.
func Prepare(s Submission) (model.Details, error) {
	if err := Validate(&s); err != nil {
		return model.Details{}, err
	}
	return Canonicalize(s), nil
}
