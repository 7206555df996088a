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
	// ErrPostNotFound is returned when a blog post is not found.
	ErrPostNotFound = errors.New("blog post not found")
	// ErrPostSlugExists is returned when a title derives a slug that already exists.
	ErrPostSlugExists = errors.New("a post with this slug already exists")
)

const postColumns = `id, title, slug, summary, content, image_url, published, published_at, created_at, updated_at`

// PostRepo provides database operations for blog posts. The slug is
// derived from the title here, never taken from the caller.
type PostRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPostRepo creates a new PostRepo with real time provider.
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPostRepoWithTimeProvider creates a new PostRepo with a custom time provider (useful for tests).
func NewPostRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PostRepo {
	return &PostRepo{DB: db, timeProvider: tp}
}

// Create inserts a new blog post. published_at is stamped when the post
// is created already published.
func (r *PostRepo) Create(ctx context.Context, req *model.CreateBlogPostRequest) (*model.BlogPost, error) {
	if req == nil {
		return nil, errors.New("create blog post request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	now := r.timeProvider.Now().UTC()
	var out model.BlogPost
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO blog_posts (
				title, slug, summary, content, image_url, published, published_at, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, CASE WHEN $6 THEN $7::timestamptz ELSE NULL END, $7, $7
			) RETURNING `+postColumns,
			title,
			model.Slugify(title),
			req.Summary,
			req.Content,
			req.ImageURL,
			req.Published,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a post by ID.
func (r *PostRepo) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	return r.getByQuery(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id)
}

// GetPublishedBySlug retrieves a published post by slug. Unpublished
// posts are invisible through this path.
func (r *PostRepo) GetPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return r.getByQuery(
		ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE slug = $1 AND published`,
		slug,
	)
}

// List retrieves all posts, newest first.
func (r *PostRepo) List(ctx context.Context) ([]*model.BlogPost, error) {
	return r.listByQuery(ctx, `SELECT `+postColumns+` FROM blog_posts ORDER BY created_at DESC`)
}

// ListPublished retrieves published posts, most recently published first.
func (r *PostRepo) ListPublished(ctx context.Context) ([]*model.BlogPost, error) {
	return r.listByQuery(
		ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE published ORDER BY published_at DESC NULLS LAST`,
	)
}

// Update updates fields of a post. A title change re-derives the slug;
// publishing stamps published_at once and keeps the original timestamp
// on later republishes.
func (r *PostRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateBlogPostRequest,
) (*model.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE blog_posts SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + postColumns

	var out model.BlogPost
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BlogPost])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

func (r *PostRepo) buildUpdateClause(req model.UpdateBlogPostRequest) (string, []any) {
	setParts := make([]string, 0, 8)
	args := make([]any, 0, 8)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, title)
		setParts = append(setParts, fmt.Sprintf("slug = $%d", nextIdx()))
		args = append(args, model.Slugify(title))
	}
	if req.Summary != nil {
		setParts = append(setParts, fmt.Sprintf("summary = $%d", nextIdx()))
		args = append(args, *req.Summary)
	}
	if req.Content != nil {
		setParts = append(setParts, fmt.Sprintf("content = $%d", nextIdx()))
		args = append(args, *req.Content)
	}
	if req.ImageURL != nil {
		setParts = append(setParts, fmt.Sprintf("image_url = $%d", nextIdx()))
		args = append(args, nullableText(*req.ImageURL))
	}
	if req.Published != nil {
		setParts = append(setParts, fmt.Sprintf("published = $%d", nextIdx()))
		args = append(args, *req.Published)
		if *req.Published {
			setParts = append(setParts, fmt.Sprintf("published_at = COALESCE(published_at, $%d)", nextIdx()))
			args = append(args, r.timeProvider.Now().UTC())
		}
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// Delete deletes a post by ID. Returns true when a row was removed.
func (r *PostRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete blog post: %w", err)
	}
	return rows > 0, nil
}

// Count returns total and published post counts.
func (r *PostRepo) Count(ctx context.Context) (total, published int, err error) {
	err = pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(
			ctx,
			`SELECT COUNT(*), COUNT(*) FILTER (WHERE published) FROM blog_posts`,
		).Scan(&total, &published)
	})
	if err != nil {
		return 0, 0, fmt.Errorf("count blog posts: %w", err)
	}
	return total, published, nil
}

// --- helpers ---

func (r *PostRepo) getByQuery(ctx context.Context, q string, args ...any) (*model.BlogPost, error) {
	var post model.BlogPost
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		post, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	return &post, nil
}

func (r *PostRepo) listByQuery(ctx context.Context, q string, args ...any) ([]*model.BlogPost, error) {
	var rowsOut []model.BlogPost
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	res := make([]*model.BlogPost, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func (r *PostRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrPostNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrPostSlugExists
	}
	return err
}
