package utils

import (
	"fmt"
	"regexp"
	"strings"

	"dinepro-backend/models"
)

var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

const maxNoteLength = 500

// SubmissionInput is the raw body of a feedback submission.
type SubmissionInput struct {
	Name         string         `json:"name"`
	PhoneNumber  string         `json:"phoneNumber"`
	Location     string         `json:"location"`
	DineType     string         `json:"dineType"`
	Ratings      models.Ratings `json:"ratings"`
	Note         string         `json:"note"`
	StaffName    string         `json:"staffName"`
	StaffComment string         `json:"staffComment"`
}

// FieldError reports the first field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

// ValidateSubmission checks a submission in field order and reports the first
// failure. On success the input is normalized in place (trimmed name and
// location). Pure apart from that normalization: no I/O, no persistence.
func ValidateSubmission(in *SubmissionInput) *FieldError {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return &FieldError{Field: "name", Message: "Name is required"}
	}

	if !phoneRegex.MatchString(in.PhoneNumber) {
		return &FieldError{Field: "phoneNumber", Message: "Phone number must be exactly 10 digits"}
	}

	in.Location = strings.TrimSpace(in.Location)
	if in.Location == "" {
		return &FieldError{Field: "location", Message: "Location is required"}
	}

	if in.DineType != models.DineTypeDineIn && in.DineType != models.DineTypeTakeOut {
		return &FieldError{Field: "dineType", Message: "Dine type must be dine_in or take_out"}
	}

	values := in.Ratings.Values()
	for i, category := range models.RatingCategories {
		if values[i] < 1 || values[i] > 5 {
			return &FieldError{
				Field:   "ratings." + category,
				Message: fmt.Sprintf("Rating for %s must be between 1 and 5", category),
			}
		}
	}

	if len(in.Note) > maxNoteLength {
		return &FieldError{Field: "note", Message: "Note must be 500 characters or less"}
	}

	return nil
}
