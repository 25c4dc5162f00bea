// Package repository provides data persistence implementations for projects.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/codecollab/server/internal/database"
	apperrors "github.com/codecollab/server/internal/errors"
	"github.com/codecollab/server/internal/project/domain"
)

// PostgreSQLProjectRepository handles project persistence for PostgreSQL.
type PostgreSQLProjectRepository struct {
	db *sql.DB
}

// NewPostgreSQLProjectRepository creates a new PostgreSQLProjectRepository.
func NewPostgreSQLProjectRepository(db *sql.DB) *PostgreSQLProjectRepository {
	return &PostgreSQLProjectRepository{db: db}
}

// Create inserts a new project.
func (r *PostgreSQLProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO projects (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(ctx, query, project.ID, project.Name, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrProjectAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create project")
	}
	return nil
}

// AddMembers inserts memberships. Existing memberships are kept as they are.
func (r *PostgreSQLProjectRepository) AddMembers(
	ctx context.Context,
	projectID uuid.UUID,
	userIDs []uuid.UUID,
	now time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO project_users (project_id, user_id, created_at) VALUES ($1, $2, $3)
			  ON CONFLICT (project_id, user_id) DO NOTHING`

	for _, userID := range userIDs {
		if _, err := querier.ExecContext(ctx, query, projectID, userID, now); err != nil {
			if database.IsForeignKeyViolation(err) {
				return domain.ErrMemberNotFound
			}
			return apperrors.Wrap(err, "failed to add project member")
		}
	}
	return nil
}

// GetByID retrieves a project and its members ordered by email.
func (r *PostgreSQLProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	querier := database.GetTx(ctx, r.db)

	var project domain.Project
	err := querier.QueryRowContext(
		ctx,
		`SELECT id, name, created_at, updated_at FROM projects WHERE id = $1`,
		id,
	).Scan(&project.ID, &project.Name, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get project by id")
	}

	rows, err := querier.QueryContext(
		ctx,
		`SELECT u.id, u.email FROM project_users pu
		 JOIN users u ON u.id = pu.user_id
		 WHERE pu.project_id = $1 ORDER BY u.email`,
		id,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list project members")
	}
	defer func() {
		_ = rows.Close()
	}()

	project.Members = make([]domain.Member, 0)
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(&member.ID, &member.Email); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan project member")
		}
		project.Members = append(project.Members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate project members")
	}

	return &project, nil
}

// ListByUser retrieves the projects a user belongs to ordered by name.
func (r *PostgreSQLProjectRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Project, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT p.id, p.name, p.created_at, p.updated_at FROM projects p
			  JOIN project_users pu ON pu.project_id = p.id
			  WHERE pu.user_id = $1 ORDER BY p.name LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projects")
	}
	defer func() {
		_ = rows.Close()
	}()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(&project.ID, &project.Name, &project.CreatedAt, &project.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan project")
		}
		projects = append(projects, &project)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate projects")
	}

	return projects, nil
}
