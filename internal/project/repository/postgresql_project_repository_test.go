package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecollab/server/internal/project/domain"
	"github.com/codecollab/server/internal/testutil"
)

var (
	projectColumns = []string{"id", "name", "created_at", "updated_at"}
	memberColumns  = []string{"id", "email"}
	fixedTime      = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
)

func newPostgresMock(t *testing.T) (*PostgreSQLProjectRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewPostgreSQLProjectRepository(db), mock
}

func testProject() *domain.Project {
	return &domain.Project{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      "demo",
		CreatedAt: fixedTime,
		UpdatedAt: fixedTime,
	}
}

func TestPostgreSQLProjectRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		p := testProject()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO projects (id, name, created_at, updated_at)`)).
			WithArgs(p.ID, p.Name, p.CreatedAt, p.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, p))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO projects`)).
			WillReturnError(&pq.Error{Code: "23505"})

		assert.ErrorIs(t, repo.Create(ctx, testProject()), domain.ErrProjectAlreadyExists)
	})
}

func TestPostgreSQLProjectRepository_AddMembers(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.Must(uuid.NewV7())
	a, b := uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7())

	t.Run("Success_IgnoresExisting", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		for _, id := range []uuid.UUID{a, b} {
			mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (project_id, user_id) DO NOTHING`)).
				WithArgs(projectID, id, fixedTime).
				WillReturnResult(sqlmock.NewResult(0, 0))
		}

		require.NoError(t, repo.AddMembers(ctx, projectID, []uuid.UUID{a, b}, fixedTime))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_UnknownUser", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO project_users`)).
			WillReturnError(&pq.Error{Code: "23503"})

		err := repo.AddMembers(ctx, projectID, []uuid.UUID{a}, fixedTime)
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	})
}

func TestPostgreSQLProjectRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_WithMembers", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		p := testProject()
		member := uuid.Must(uuid.NewV7())
		mock.ExpectQuery(regexp.QuoteMeta(`FROM projects WHERE id = $1`)).
			WithArgs(p.ID).
			WillReturnRows(sqlmock.NewRows(projectColumns).AddRow(p.ID.String(), p.Name, p.CreatedAt, p.UpdatedAt))
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE pu.project_id = $1 ORDER BY u.email`)).
			WithArgs(p.ID).
			WillReturnRows(sqlmock.NewRows(memberColumns).AddRow(member.String(), "user@test.io"))

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, []domain.Member{{ID: member, Email: "user@test.io"}}, got.Members)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM projects WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows(projectColumns))

		_, err := repo.GetByID(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("Error_MembersQuery", func(t *testing.T) {
		repo, mock := newPostgresMock(t)
		p := testProject()
		mock.ExpectQuery(regexp.QuoteMeta(`FROM projects WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows(projectColumns).AddRow(p.ID.String(), p.Name, p.CreatedAt, p.UpdatedAt))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM project_users pu`)).WillReturnError(errors.New("timeout"))

		_, err := repo.GetByID(ctx, p.ID)
		assert.ErrorContains(t, err, "failed to list project members")
	})
}

func TestPostgreSQLProjectRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	repo, mock := newPostgresMock(t)
	userID := uuid.Must(uuid.NewV7())
	p := testProject()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE pu.user_id = $1 ORDER BY p.name LIMIT $2 OFFSET $3`)).
		WithArgs(userID, 50, 0).
		WillReturnRows(sqlmock.NewRows(projectColumns).AddRow(p.ID.String(), p.Name, p.CreatedAt, p.UpdatedAt))

	projects, err := repo.ListByUser(ctx, userID, 0, 50)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "demo", projects[0].Name)
}

func TestPostgreSQLProjectRepository_Integration(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLProjectRepository(db)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db, "postgres", "owner@test.io")
	guest := testutil.CreateTestUser(t, db, "postgres", "guest@test.io")

	p := testProject()
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.AddMembers(ctx, p.ID, []uuid.UUID{owner, guest}, fixedTime))
	require.NoError(t, repo.AddMembers(ctx, p.ID, []uuid.UUID{guest}, fixedTime))
	assert.ErrorIs(t, repo.AddMembers(ctx, p.ID, []uuid.UUID{uuid.Must(uuid.NewV7())}, fixedTime), domain.ErrMemberNotFound)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 2)
	assert.Equal(t, "guest@test.io", got.Members[0].Email)

	projects, err := repo.ListByUser(ctx, owner, 0, 10)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}
