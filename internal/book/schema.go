package book

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Validator normalizes a raw field value or rejects it.
type Validator func(value string) (string, error)

// Schema declares the shape of one book's records.
type Schema struct {
	Name           string
	Fields         []string
	Required       []string
	MultiValue     []string
	DuplicateCheck []string
	Validators     map[string]Validator
}

func (s *Schema) HasField(name string) bool {
	return s.isScalarField(name) || s.isMultiValueField(name)
}

func (s *Schema) isScalarField(name string) bool {
	for _, field := range s.Fields {
		if field == name {
			return true
		}
	}
	return false
}

func (s *Schema) isMultiValueField(name string) bool {
	for _, field := range s.MultiValue {
		if field == name {
			return true
		}
	}
	return false
}

func (s *Schema) duplicateCheckFields() []string {
	if len(s.DuplicateCheck) > 0 {
		return s.DuplicateCheck
	}
	return s.Required
}

// Validate runs the field's validator, if any.
func (s *Schema) Validate(field, value string) (string, error) {
	if validator, ok := s.Validators[field]; ok {
		return validator(value)
	}
	return value, nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateEmail(value string) (string, error) {
	value = strings.TrimSpace(value)
	if !emailPattern.MatchString(value) {
		return "", errors.New("please use correct email format: email@domain.com")
	}
	return value, nil
}

func validateBirthday(value string) (string, error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return "", errors.New("please use correct date format: YYYY-MM-DD")
	}
	return parsed.Format("2006-01-02"), nil
}

var nonDigits = regexp.MustCompile(`\D`)

// validatePhoneNumber reduces a phone number to the 12-digit 380XXYYYYYYY
// form, accepting local (0XXYYYYYYY) and full international notation.
func validatePhoneNumber(value string) (string, error) {
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(value), "")
	var normalized string
	switch {
	case strings.HasPrefix(digits, "380"):
		normalized = digits
	case strings.HasPrefix(digits, "0"):
		normalized = "38" + digits
	case strings.HasPrefix(digits, "38"):
		normalized = digits
	}
	if len(normalized) != 12 {
		return "", fmt.Errorf("please use phone number format 380XXYYYYYYY, got %q", value)
	}
	return normalized, nil
}

// ContactSchema describes the contact book.
func ContactSchema() *Schema {
	return &Schema{
		Name:       "contact",
		Fields:     []string{"firstname", "lastname", "address", "email", "birthday"},
		Required:   []string{"firstname", "lastname"},
		MultiValue: []string{"phone_number"},
		Validators: map[string]Validator{
			"email":        validateEmail,
			"birthday":     validateBirthday,
			"phone_number": validatePhoneNumber,
		},
	}
}

// NoteSchema describes the note book. Duplicates are detected on the
// title alone.
func NoteSchema() *Schema {
	return &Schema{
		Name:           "note",
		Fields:         []string{"title", "body"},
		Required:       []string{"title", "body"},
		MultiValue:     []string{"tag"},
		DuplicateCheck: []string{"title"},
	}
}
