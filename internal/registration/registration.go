// Package registration implements the validated-insert workflow:
// validate the form fields, attempt the insert, and hand back either the
// created record or a classified error.
package registration

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/validation"
)

// Service composes the validator and a record store. It holds no state of
// its own beyond its collaborators.
type Service struct {
	store storage.Storage
	log   *slog.Logger
}

// New returns a Service that persists to store and logs to log.
func New(store storage.Storage, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Register validates the four raw fields and, when they pass, inserts
// them. Validation failures never reach the store.
func (s *Service) Register(ctx context.Context, name, roll, course, email string) (types.Student, error) {
	candidate, err := validation.Validate(name, roll, course, email)
	if err != nil {
		s.log.Warn("registration rejected", slog.String("error", err.Error()))
		return types.Student{}, err
	}

	student, err := s.store.Insert(ctx, candidate)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrDuplicateKey):
		s.log.Warn("duplicate registration",
			slog.String("roll_number", candidate.RollNumber),
			slog.String("email", candidate.Email),
			slog.String("error", err.Error()))
		return types.Student{}, err
	default:
		s.log.Error("failed to insert student", slog.String("error", err.Error()))
		return types.Student{}, err
	}

	s.log.Info("student registered",
		slog.Int64("id", student.ID),
		slog.String("roll_number", student.RollNumber))

	return student, nil
}

// List returns every registered student.
func (s *Service) List(ctx context.Context) ([]types.Student, error) {
	students, err := s.store.ListAll(ctx)
	if err != nil {
		s.log.Error("failed to list students", slog.String("error", err.Error()))
		return nil, err
	}

	s.log.Debug("listed students", slog.Int("count", len(students)))
	return students, nil
}
