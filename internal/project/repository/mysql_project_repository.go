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

// MySQLProjectRepository handles project persistence for MySQL. IDs are stored as BINARY(16).
type MySQLProjectRepository struct {
	db *sql.DB
}

// NewMySQLProjectRepository creates a new MySQLProjectRepository.
func NewMySQLProjectRepository(db *sql.DB) *MySQLProjectRepository {
	return &MySQLProjectRepository{db: db}
}

func unmarshalID(dst *uuid.UUID, raw []byte) error {
	if err := dst.UnmarshalBinary(raw); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	return nil
}

// Create inserts a new project.
func (r *MySQLProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	querier := database.GetTx(ctx, r.db)

	id, err := project.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		`INSERT INTO projects (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, project.Name, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrProjectAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create project")
	}
	return nil
}

// AddMembers inserts memberships. Existing memberships are kept as they are.
func (r *MySQLProjectRepository) AddMembers(
	ctx context.Context,
	projectID uuid.UUID,
	userIDs []uuid.UUID,
	now time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	pid, err := projectID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	// INSERT IGNORE would also swallow foreign key failures.
	query := `INSERT INTO project_users (project_id, user_id, created_at) VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE project_id = project_id`

	for _, userID := range userIDs {
		uid, err := userID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal UUID")
		}
		if _, err := querier.ExecContext(ctx, query, pid, uid, now); err != nil {
			if database.IsForeignKeyViolation(err) {
				return domain.ErrMemberNotFound
			}
			return apperrors.Wrap(err, "failed to add project member")
		}
	}
	return nil
}

// GetByID retrieves a project and its members ordered by email.
func (r *MySQLProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	querier := database.GetTx(ctx, r.db)

	pid, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	var project domain.Project
	var rawID []byte
	err = querier.QueryRowContext(
		ctx,
		`SELECT id, name, created_at, updated_at FROM projects WHERE id = ?`,
		pid,
	).Scan(&rawID, &project.Name, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get project by id")
	}
	if err := unmarshalID(&project.ID, rawID); err != nil {
		return nil, err
	}

	rows, err := querier.QueryContext(
		ctx,
		`SELECT u.id, u.email FROM project_users pu
		 JOIN users u ON u.id = pu.user_id
		 WHERE pu.project_id = ? ORDER BY u.email`,
		pid,
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
		var rawMemberID []byte
		if err := rows.Scan(&rawMemberID, &member.Email); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan project member")
		}
		if err := unmarshalID(&member.ID, rawMemberID); err != nil {
			return nil, err
		}
		project.Members = append(project.Members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate project members")
	}

	return &project, nil
}

// ListByUser retrieves the projects a user belongs to ordered by name.
func (r *MySQLProjectRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Project, error) {
	querier := database.GetTx(ctx, r.db)

	uid, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT p.id, p.name, p.created_at, p.updated_at FROM projects p
			  JOIN project_users pu ON pu.project_id = p.id
			  WHERE pu.user_id = ? ORDER BY p.name LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, uid, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projects")
	}
	defer func() {
		_ = rows.Close()
	}()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		var project domain.Project
		var rawID []byte
		if err := rows.Scan(&rawID, &project.Name, &project.CreatedAt, &project.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan project")
		}
		if err := unmarshalID(&project.ID, rawID); err != nil {
			return nil, err
		}
		projects = append(projects, &project)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate projects")
	}

	return projects, nil
}
