package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/gnwofoke/portfolio-api/internal/data/pgxutil"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

// ErrMessageNotFound is returned when a contact message is not found.
var ErrMessageNotFound = errors.New("message not found")

// "read" needs quoting: reserved word in PostgreSQL.
const messageColumns = `id, name, email, subject, body, "read", created_at`

// MessageRepo provides database operations for contact messages.
type MessageRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewMessageRepo creates a new MessageRepo with real time provider.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewMessageRepoWithTimeProvider creates a new MessageRepo with a custom time provider (useful for tests).
func NewMessageRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *MessageRepo {
	return &MessageRepo{DB: db, timeProvider: tp}
}

// Create inserts a new contact message. Messages are created unread.
func (r *MessageRepo) Create(ctx context.Context, req *model.CreateMessageRequest) (*model.Message, error) {
	if req == nil {
		return nil, errors.New("create message request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Message
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO messages (name, email, subject, body, "read", created_at)
			VALUES ($1, $2, $3, $4, FALSE, $5)
			RETURNING `+messageColumns,
			strings.TrimSpace(req.Name),
			strings.TrimSpace(req.Email),
			strings.TrimSpace(req.Subject),
			req.Body,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Message])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return &out, nil
}

// List retrieves all messages, newest first.
func (r *MessageRepo) List(ctx context.Context) ([]*model.Message, error) {
	var rowsOut []model.Message
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+messageColumns+` FROM messages ORDER BY created_at DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Message])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	res := make([]*model.Message, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// MarkRead flips the read flag to true for the given message.
func (r *MessageRepo) MarkRead(ctx context.Context, id string) (*model.Message, error) {
	var out model.Message
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(
			ctx,
			`UPDATE messages SET "read" = TRUE WHERE id = $1 RETURNING `+messageColumns,
			id,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Message])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to mark message read: %w", err)
	}
	return &out, nil
}

// Delete deletes a message by ID. Returns true when a row was removed.
func (r *MessageRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete message: %w", err)
	}
	return rows > 0, nil
}

// Count returns total and unread message counts.
func (r *MessageRepo) Count(ctx context.Context) (total, unread int, err error) {
	err = pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(
			ctx,
			`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT "read") FROM messages`,
		).Scan(&total, &unread)
	})
	if err != nil {
		return 0, 0, fmt.Errorf("count messages: %w", err)
	}
	return total, unread, nil
}
