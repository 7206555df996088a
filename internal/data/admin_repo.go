package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gnwofoke/portfolio-api/internal/data/pgxutil"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

var (
	// ErrAdminNotFound is returned when an admin is not found.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrAdminEmailExists is returned when creating an admin with a duplicate email.
	ErrAdminEmailExists = errors.New("admin email already exists")
)

const adminColumns = `id, display_name, email, password_hash, created_at`

// AdminRepo provides database operations for admin accounts.
type AdminRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAdminRepo creates a new AdminRepo with real time provider.
func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAdminRepoWithTimeProvider creates a new AdminRepo with a custom time provider (useful for tests).
func NewAdminRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AdminRepo {
	return &AdminRepo{DB: db, timeProvider: tp}
}

// Create inserts a new admin account with a pre-hashed password.
func (r *AdminRepo) Create(ctx context.Context, displayName, email, passwordHash string) (*model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("admin email is required")
	}
	if passwordHash == "" {
		return nil, errors.New("admin password hash is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Admin
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO admins (display_name, email, password_hash, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING `+adminColumns,
			strings.TrimSpace(displayName), email, passwordHash, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Admin])
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrAdminEmailExists
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &out, nil
}

// GetByEmail retrieves an admin by email (case-insensitive).
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var admin model.Admin
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = $1`, email)
		if err != nil {
			return err
		}
		defer rows.Close()
		admin, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Admin])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// GetByID retrieves an admin by ID.
func (r *AdminRepo) GetByID(ctx context.Context, id string) (*model.Admin, error) {
	var admin model.Admin
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		admin, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Admin])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// Count returns the number of admin accounts.
func (r *AdminRepo) Count(ctx context.Context) (int, error) {
	return countByQuery(ctx, r.DB, `SELECT COUNT(*) FROM admins`)
}
