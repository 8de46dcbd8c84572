package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-registration/internal/config"
	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
)

var _ storage.Storage = (*SQLite)(nil)

func testConfig(path string) *config.Config {
	return &config.Config{
		Env:     "dev",
		Storage: config.Storage{Driver: config.DriverSQLite, Path: path},
	}
}

// createTestStore opens a store on a fresh file with the schema applied.
func createTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(testConfig(filepath.Join(t.TempDir(), "students.db")))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func ada() types.Candidate {
	return types.Candidate{
		Name:       "Ada Lovelace",
		RollNumber: "1001",
		Course:     "CS101",
		Email:      "ada@example.com",
	}
}

func TestNew_UnreachablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "students.db")

	s, err := New(testConfig(path))
	assert.Nil(t, s)
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.Insert(ctx, ada())
	require.NoError(t, err)

	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.EnsureSchema(ctx))

	var tables int
	err = s.Db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'students'",
	).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 1, tables)

	students, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestEnsureSchema_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "students.db")

	s1, err := New(testConfig(path))
	require.NoError(t, err)
	require.NoError(t, s1.EnsureSchema(ctx))
	_, err = s1.Insert(ctx, ada())
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := New(testConfig(path))
	require.NoError(t, err)
	defer s2.Close()
	require.NoError(t, s2.EnsureSchema(ctx))

	students, err := s2.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, ada().Student(students[0].ID), students[0])
}

func TestInsert_AssignsID(t *testing.T) {
	s := createTestStore(t)

	got, err := s.Insert(context.Background(), ada())
	require.NoError(t, err)

	assert.Positive(t, got.ID)
	assert.Equal(t, ada().Student(got.ID), got)
}

func TestInsert_DuplicateKey(t *testing.T) {
	tests := []struct {
		name   string
		second types.Candidate
	}{
		{
			name: "same roll number, different email",
			second: types.Candidate{
				Name: "Grace Hopper", RollNumber: "1001", Course: "CS102", Email: "grace@example.com",
			},
		},
		{
			name: "same email, different roll number",
			second: types.Candidate{
				Name: "Grace Hopper", RollNumber: "1002", Course: "CS102", Email: "ada@example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := createTestStore(t)

			_, err := s.Insert(ctx, ada())
			require.NoError(t, err)

			_, err = s.Insert(ctx, tt.second)
			require.Error(t, err)
			assert.ErrorIs(t, err, storage.ErrDuplicateKey)
			assert.NotErrorIs(t, err, storage.ErrUnavailable)

			// The driver error stays reachable for logging.
			var sqliteErr sqlite3.Error
			require.ErrorAs(t, err, &sqliteErr)
			assert.Equal(t, sqlite3.ErrConstraint, sqliteErr.Code)

			students, err := s.ListAll(ctx)
			require.NoError(t, err)
			assert.Len(t, students, 1, "failed insert must not add a row")
		})
	}
}

func TestInsert_IDsNotReused(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	first, err := s.Insert(ctx, ada())
	require.NoError(t, err)

	_, err = s.Insert(ctx, ada())
	require.ErrorIs(t, err, storage.ErrDuplicateKey)

	second, err := s.Insert(ctx, types.Candidate{
		Name: "Grace Hopper", RollNumber: "1002", Course: "CS102", Email: "grace@example.com",
	})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestInsert_ClosedStore(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.Insert(context.Background(), ada())
	assert.ErrorIs(t, err, storage.ErrUnavailable)
	assert.NotErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestListAll_Empty(t *testing.T) {
	s := createTestStore(t)

	students, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestListAll_ReturnsInsertedInOrder(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	const n = 5
	var want []types.Student
	for i := 0; i < n; i++ {
		got, err := s.Insert(ctx, types.Candidate{
			Name:       fmt.Sprintf("Student %d", i),
			RollNumber: fmt.Sprintf("%d", 2000+i),
			Course:     "CS101",
			Email:      fmt.Sprintf("student%d@example.com", i),
		})
		require.NoError(t, err)
		want = append(want, got)
	}

	students, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, students)
}

func TestListAll_ClosedStore(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.Close())

	students, err := s.ListAll(context.Background())
	assert.Nil(t, students)
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}
