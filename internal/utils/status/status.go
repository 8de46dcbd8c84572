// Package status reduces a registration or listing result to the single
// message the presentation layer shows.
//
// Every outcome maps to exactly one Status, so every failure path
// produces exactly one user-visible message.
package status

import (
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/validation"
)

// Kind labels the outcome. Use these instead of raw string literals.
type Kind string

const (
	KindSuccess           Kind = "Success"
	KindEmptyField        Kind = "EmptyField"
	KindInvalidEmail      Kind = "InvalidEmail"
	KindInvalidRollNumber Kind = "InvalidRollNumber"
	KindDuplicateKey      Kind = "DuplicateKey"
	KindUnavailable       Kind = "Unavailable"
)

// Initial is shown before the first action.
const Initial = "Enter student details and click Register."

// Status is one user-visible outcome.
type Status struct {
	Kind    Kind
	Message string
	Err     error
}

// IsError reports whether the status describes a failure.
func (s Status) IsError() bool { return s.Kind != KindSuccess }

// Register describes the result of a registration attempt.
func Register(student types.Student, err error) Status {
	if err == nil {
		return Status{
			Kind:    KindSuccess,
			Message: fmt.Sprintf("Success: Student %s registered!", student.Name),
		}
	}

	var dup *storage.DuplicateKeyError
	switch {
	case errors.Is(err, validation.ErrEmptyField):
		return Status{Kind: KindEmptyField, Message: "Error: All fields must be filled out.", Err: err}
	case errors.Is(err, validation.ErrInvalidEmail):
		return Status{Kind: KindInvalidEmail, Message: "Error: Invalid email format.", Err: err}
	case errors.Is(err, validation.ErrInvalidRollNumber):
		return Status{Kind: KindInvalidRollNumber, Message: "Error: Roll Number must be numeric.", Err: err}
	case errors.As(err, &dup) && dup.Field != "":
		return Status{Kind: KindDuplicateKey, Message: fmt.Sprintf("Error: %s already exists.", fieldLabel(dup.Field)), Err: err}
	case errors.Is(err, storage.ErrDuplicateKey):
		return Status{Kind: KindDuplicateKey, Message: "Error: Roll Number or Email already exists.", Err: err}
	default:
		// Anything unrecognised is treated as the backend being unavailable.
		return Status{Kind: KindUnavailable, Message: "Database Error: " + err.Error(), Err: err}
	}
}

// List describes the result of a view-all request.
func List(students []types.Student, err error) Status {
	switch {
	case err != nil:
		return Status{Kind: KindUnavailable, Message: "Error listing students: " + err.Error(), Err: err}
	case len(students) == 0:
		return Status{Kind: KindSuccess, Message: "No students registered yet."}
	default:
		return Status{Kind: KindSuccess, Message: "Student list printed to console."}
	}
}

func fieldLabel(column string) string {
	switch column {
	case "roll_number":
		return "Roll Number"
	case "email":
		return "Email"
	default:
		return column
	}
}
