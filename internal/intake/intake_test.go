package intake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

func validSubmission() Submission {
	return Submission{
		ItemName:         "Tumbler",
		PersonName:       "Maria Santos",
		Occupation:       "Student",
		Category:         "Water Bottles & Containers",
		Floor:            "19th Floor",
		Location:         "Room",
		SpecificLocation: "1905",
		Date:             "2026-06-10",
		Time:             "09:45",
		ContactNumber:    "09181234567",
		ContactEmail:     "maria@example.com",
	}
}

func TestPrepareCanonicalizesRoom(t *testing.T) {
	d, err := Prepare(validSubmission())
	require.NoError(t, err)
	assert.Equal(t, "Room: 1905", d.Location)
	assert.Equal(t, "Water Bottles & Containers", d.Category)
	assert.Equal(t, "Tumbler", d.Name)
	assert.Equal(t, "Maria Santos", d.PersonName)
}

func TestPrepareCanonicalizesOthers(t *testing.T) {
	s := validSubmission()
	s.Location = "Others"
	s.SpecificLocation = "Canteen"
	s.Category = "Others"
	s.SpecificCategory = "Lanyard"

	d, err := Prepare(s)
	require.NoError(t, err)
	assert.Equal(t, "Others: Canteen", d.Location)
	assert.Equal(t, "Others: Lanyard", d.Category)
}

func TestPrepareKeepsPlainLocation(t *testing.T) {
	s := validSubmission()
	s.Location = "Fire Exit"
	s.SpecificLocation = "ignored"

	d, err := Prepare(s)
	require.NoError(t, err)
	assert.Equal(t, "Fire Exit", d.Location)
}

func TestPrepareTrimsWhitespace(t *testing.T) {
	s := validSubmission()
	s.ItemName = "  Tumbler  "
	s.ContactEmail = " maria@example.com "

	d, err := Prepare(s)
	require.NoError(t, err)
	assert.Equal(t, "Tumbler", d.Name)
	assert.Equal(t, "maria@example.com", d.ContactEmail)
}

func TestValidateMissingFields(t *testing.T) {
	s := validSubmission()
	s.ItemName = ""
	s.ContactNumber = "   "

	_, err := Prepare(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"itemName", "contactNumber"}, verr.Fields)
	assert.Contains(t, verr.Message, "required")
}

func TestValidateLocationDetail(t *testing.T) {
	for _, location := range []string{"Room", "Others"} {
		s := validSubmission()
		s.Location = location
		s.SpecificLocation = ""

		_, err := Prepare(s)
		var verr *model.ValidationError
		require.True(t, errors.As(err, &verr), location)
		assert.Equal(t, []string{"specificLocation"}, verr.Fields, location)
	}
}

func TestValidateOthersCategoryNeedsDetail(t *testing.T) {
	s := validSubmission()
	s.Category = "Others"

	_, err := Prepare(s)
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"specificCategory"}, verr.Fields)
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Submission)
		field string
	}{
		{"bad email", func(s *Submission) { s.ContactEmail = "not-an-email" }, "contactEmail"},
		{"bad date", func(s *Submission) { s.Date = "06/10/2026" }, "date"},
		{"bad time", func(s *Submission) { s.Time = "9am" }, "time"},
		{"unknown occupation", func(s *Submission) { s.Occupation = "Visitor" }, "occupation"},
		{"unknown location", func(s *Submission) { s.Location = "Roof" }, "location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.edit(&s)

			_, err := Prepare(s)
			var verr *model.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}
