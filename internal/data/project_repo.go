// Package data provides pgx-backed repositories for the portfolio records.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gnwofoke/portfolio-api/internal/data/pgxutil"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

var (
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = errors.New("project not found")
	// ErrProjectTitleExists is returned when attempting to create/update a project with a duplicate title.
	ErrProjectTitleExists = errors.New("project title already exists")
)

const projectColumns = `id, title, description, tech, url, github_url, image_url, featured, created_at, updated_at`

// ProjectRepo provides database operations for projects.
type ProjectRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProjectRepo creates a new ProjectRepo with real time provider.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewProjectRepoWithTimeProvider creates a new ProjectRepo with a custom time provider (useful for tests).
func NewProjectRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ProjectRepo {
	return &ProjectRepo{DB: db, timeProvider: tp}
}

// Create inserts a new project.
func (r *ProjectRepo) Create(ctx context.Context, req *model.CreateProjectRequest) (*model.Project, error) {
	if req == nil {
		return nil, errors.New("create project request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Project
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO projects (
				title, description, tech, url, github_url, image_url, featured, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $8
			) RETURNING `+projectColumns,
			strings.TrimSpace(req.Title),
			req.Description,
			strings.TrimSpace(req.Tech),
			req.URL,
			req.GithubURL,
			req.ImageURL,
			req.Featured,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Project])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a project by ID.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	return r.getByQuery(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
}

// List retrieves all projects, newest first.
func (r *ProjectRepo) List(ctx context.Context) ([]*model.Project, error) {
	return r.listByQuery(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
}

// ListFeatured retrieves featured projects, newest first.
func (r *ProjectRepo) ListFeatured(ctx context.Context) ([]*model.Project, error) {
	return r.listByQuery(
		ctx,
		`SELECT `+projectColumns+` FROM projects WHERE featured ORDER BY created_at DESC`,
	)
}

// Update updates fields of a project.
func (r *ProjectRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateProjectRequest,
) (*model.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE projects SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + projectColumns

	var out model.Project
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Project])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a project based on the request.
func (r *ProjectRepo) buildUpdateClause(req model.UpdateProjectRequest) (string, []any) {
	setParts := make([]string, 0, 8)
	args := make([]any, 0, 8)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	if req.Tech != nil {
		setParts = append(setParts, fmt.Sprintf("tech = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Tech))
	}
	if req.URL != nil {
		setParts = append(setParts, fmt.Sprintf("url = $%d", nextIdx()))
		args = append(args, nullableText(*req.URL))
	}
	if req.GithubURL != nil {
		setParts = append(setParts, fmt.Sprintf("github_url = $%d", nextIdx()))
		args = append(args, nullableText(*req.GithubURL))
	}
	if req.ImageURL != nil {
		setParts = append(setParts, fmt.Sprintf("image_url = $%d", nextIdx()))
		args = append(args, nullableText(*req.ImageURL))
	}
	if req.Featured != nil {
		setParts = append(setParts, fmt.Sprintf("featured = $%d", nextIdx()))
		args = append(args, *req.Featured)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// Delete deletes a project by ID. Returns true when a row was removed.
func (r *ProjectRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	return rows > 0, nil
}

// Count returns the number of projects.
func (r *ProjectRepo) Count(ctx context.Context) (int, error) {
	return countByQuery(ctx, r.DB, `SELECT COUNT(*) FROM projects`)
}

// --- helpers ---

func (r *ProjectRepo) getByQuery(ctx context.Context, q string, args ...any) (*model.Project, error) {
	var project model.Project
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		project, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Project])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

func (r *ProjectRepo) listByQuery(ctx context.Context, q string, args ...any) ([]*model.Project, error) {
	var rowsOut []model.Project
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Project])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	res := make([]*model.Project, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func (r *ProjectRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrProjectNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrProjectTitleExists
	}
	return err
}

// nullableText maps an empty string to SQL NULL for optional text columns.
func nullableText(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// countByQuery runs a COUNT query shared by the repos' Count helpers.
func countByQuery(ctx context.Context, db *sql.DB, q string, args ...any) (int, error) {
	var count int
	if err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, q, args...).Scan(&count)
	}); err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}
	return count, nil
}
