// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles:
// validation, storage, and the presentation layer can all import types
// without depending on each other.
package types

// Student is a persisted registration record.
//
// ID is assigned by the store on insert and never changes afterwards.
// The remaining fields are stored exactly as they were validated.
type Student struct {
	ID         int64  `json:"id"          yaml:"id"`
	Name       string `json:"name"        yaml:"name"`
	RollNumber string `json:"roll_number" yaml:"roll_number"`
	Course     string `json:"course"      yaml:"course"`
	Email      string `json:"email"       yaml:"email"`
}

// Candidate is a record that has not been persisted yet. It carries the
// four trimmed form fields; the store assigns the id.
//
// The validate tags are checked by the validation package. student_email
// and roll_number are custom rules registered there.
type Candidate struct {
	Name       string `validate:"required"`
	RollNumber string `validate:"required,roll_number"`
	Course     string `validate:"required"`
	Email      string `validate:"required,student_email"`
}

// Student returns the persisted form of c with the given id.
func (c Candidate) Student(id int64) Student {
	return Student{
		ID:         id,
		Name:       c.Name,
		RollNumber: c.RollNumber,
		Course:     c.Course,
		Email:      c.Email,
	}
}
