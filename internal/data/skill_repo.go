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
	// ErrSkillNotFound is returned when a skill is not found.
	ErrSkillNotFound = errors.New("skill not found")
	// ErrSkillNameExists is returned when attempting to create/update a skill with a duplicate name.
	ErrSkillNameExists = errors.New("skill name already exists")
)

const skillColumns = `id, name, category, level, created_at, updated_at`

// SkillRepo provides database operations for skills.
type SkillRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSkillRepo creates a new SkillRepo with real time provider.
func NewSkillRepo(db *sql.DB) *SkillRepo {
	return &SkillRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSkillRepoWithTimeProvider creates a new SkillRepo with a custom time provider (useful for tests).
func NewSkillRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SkillRepo {
	return &SkillRepo{DB: db, timeProvider: tp}
}

// Create inserts a new skill.
func (r *SkillRepo) Create(ctx context.Context, req *model.CreateSkillRequest) (*model.Skill, error) {
	if req == nil {
		return nil, errors.New("create skill request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Skill
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO skills (name, category, level, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			RETURNING `+skillColumns,
			strings.TrimSpace(req.Name),
			strings.TrimSpace(req.Category),
			req.Level,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Skill])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a skill by ID.
func (r *SkillRepo) GetByID(ctx context.Context, id string) (*model.Skill, error) {
	var skill model.Skill
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		skill, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Skill])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSkillNotFound
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}
	return &skill, nil
}

// List retrieves all skills grouped by category then name.
func (r *SkillRepo) List(ctx context.Context) ([]*model.Skill, error) {
	var rowsOut []model.Skill
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY category, name`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Skill])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	res := make([]*model.Skill, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a skill.
func (r *SkillRepo) Update(ctx context.Context, id string, req model.UpdateSkillRequest) (*model.Skill, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 4)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Category != nil {
		setParts = append(setParts, fmt.Sprintf("category = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Category))
	}
	if req.Level != nil {
		setParts = append(setParts, fmt.Sprintf("level = $%d", nextIdx()))
		args = append(args, *req.Level)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE skills SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + skillColumns

	var out model.Skill
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Skill])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// Delete deletes a skill by ID. Returns true when a row was removed.
func (r *SkillRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete skill: %w", err)
	}
	return rows > 0, nil
}

// Count returns the number of skills.
func (r *SkillRepo) Count(ctx context.Context) (int, error) {
	return countByQuery(ctx, r.DB, `SELECT COUNT(*) FROM skills`)
}

func (r *SkillRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrSkillNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrSkillNameExists
	}
	return err
}
