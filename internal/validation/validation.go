// Package validation decides whether four raw form fields are well-formed
// enough to attempt persistence. It never touches the store.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-registration/internal/types"
)

var (
	// ErrEmptyField is returned when any field is empty after trimming.
	ErrEmptyField = errors.New("all fields must be filled out")

	// ErrInvalidEmail is returned when the email does not match emailPattern.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidRollNumber is returned when the roll number is not all digits.
	ErrInvalidRollNumber = errors.New("roll number must be numeric")
)

var (
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)
	rollNumberPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Error reports the first failing check. Kind is one of the sentinel
// errors above; Fields lists the offending candidate fields in form order.
type Error struct {
	Kind   error
	Fields []string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s (%s)", e.Kind, strings.Join(e.Fields, ", "))
}

func (e *Error) Unwrap() error { return e.Kind }

// formOrder is the order fields appear on the form.
var formOrder = []string{"Name", "RollNumber", "Course", "Email"}

// validate is safe for concurrent use and caches struct metadata, so one
// instance serves the whole process.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("student_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("roll_number", func(fl validator.FieldLevel) bool {
		return rollNumberPattern.MatchString(fl.Field().String())
	})

	return v
}

// Validate trims the four inputs and checks them in order: empty fields,
// then email format, then roll-number format. Only the first failing
// check is reported. On success the trimmed candidate is returned.
func Validate(name, roll, course, email string) (types.Candidate, error) {
	c := types.Candidate{
		Name:       strings.TrimSpace(name),
		RollNumber: strings.TrimSpace(roll),
		Course:     strings.TrimSpace(course),
		Email:      strings.TrimSpace(email),
	}

	err := validate.Struct(c)
	if err == nil {
		return c, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only InvalidValidationError lands here, which Candidate never triggers.
		return types.Candidate{}, fmt.Errorf("validation.Validate: %w", err)
	}

	return types.Candidate{}, classify(fieldErrs)
}

// classify reduces the validator's per-field errors to the first failing
// check. A field with a failing "required" tag never reaches its format
// tag, so format failures only appear on non-empty fields.
func classify(errs validator.ValidationErrors) *Error {
	failed := make(map[string]string, len(errs))
	for _, fe := range errs {
		failed[fe.StructField()] = fe.Tag()
	}

	var empty []string
	for _, field := range formOrder {
		if failed[field] == "required" {
			empty = append(empty, field)
		}
	}
	if len(empty) > 0 {
		return &Error{Kind: ErrEmptyField, Fields: empty}
	}

	if _, ok := failed["Email"]; ok {
		return &Error{Kind: ErrInvalidEmail, Fields: []string{"Email"}}
	}

	return &Error{Kind: ErrInvalidRollNumber, Fields: []string{"RollNumber"}}
}
