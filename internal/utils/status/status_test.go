package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/validation"
)

func TestRegister(t *testing.T) {
	driverErr := errors.New("disk I/O error")

	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "success",
			wantKind: KindSuccess,
			wantMsg:  "Success: Student Ada Lovelace registered!",
		},
		{
			name:     "empty field",
			err:      &validation.Error{Kind: validation.ErrEmptyField, Fields: []string{"Course"}},
			wantKind: KindEmptyField,
			wantMsg:  "Error: All fields must be filled out.",
		},
		{
			name:     "invalid email",
			err:      &validation.Error{Kind: validation.ErrInvalidEmail, Fields: []string{"Email"}},
			wantKind: KindInvalidEmail,
			wantMsg:  "Error: Invalid email format.",
		},
		{
			name:     "invalid roll number",
			err:      &validation.Error{Kind: validation.ErrInvalidRollNumber, Fields: []string{"RollNumber"}},
			wantKind: KindInvalidRollNumber,
			wantMsg:  "Error: Roll Number must be numeric.",
		},
		{
			name:     "duplicate without field",
			err:      fmt.Errorf("%w: Insert: exec: %w", storage.ErrDuplicateKey, driverErr),
			wantKind: KindDuplicateKey,
			wantMsg:  "Error: Roll Number or Email already exists.",
		},
		{
			name:     "duplicate email",
			err:      &storage.DuplicateKeyError{Field: "email", Err: driverErr},
			wantKind: KindDuplicateKey,
			wantMsg:  "Error: Email already exists.",
		},
		{
			name:     "duplicate roll number",
			err:      &storage.DuplicateKeyError{Field: "roll_number", Err: driverErr},
			wantKind: KindDuplicateKey,
			wantMsg:  "Error: Roll Number already exists.",
		},
		{
			name:     "unavailable",
			err:      fmt.Errorf("%w: Insert: exec: %w", storage.ErrUnavailable, driverErr),
			wantKind: KindUnavailable,
			wantMsg:  "Database Error: storage unavailable: Insert: exec: disk I/O error",
		},
		{
			name:     "unrecognised error",
			err:      driverErr,
			wantKind: KindUnavailable,
			wantMsg:  "Database Error: disk I/O error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Register(types.Student{ID: 1, Name: "Ada Lovelace"}, tt.err)

			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantMsg, got.Message)
			assert.Equal(t, tt.err != nil, got.IsError())
			assert.Equal(t, tt.err, got.Err)
		})
	}
}

func TestList(t *testing.T) {
	got := List([]types.Student{}, nil)
	assert.False(t, got.IsError())
	assert.Equal(t, "No students registered yet.", got.Message)

	got = List([]types.Student{{ID: 1}}, nil)
	assert.False(t, got.IsError())
	assert.Equal(t, "Student list printed to console.", got.Message)

	got = List(nil, storage.ErrUnavailable)
	assert.True(t, got.IsError())
	assert.Equal(t, KindUnavailable, got.Kind)
	assert.Equal(t, "Error listing students: storage unavailable", got.Message)
}
