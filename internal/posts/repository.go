package posts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veritas-cms/veritas-cms/internal/platform/db"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// RepositoryPort defines data access for posts.
type RepositoryPort interface {
	List(ctx context.Context, limit, offset int) ([]Post, int, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, id string, patch Patch) (*Post, error)
	Delete(ctx context.Context, id string) error
}

// Patch carries a partial post update; nil fields are untouched.
type Patch struct {
	Title    *string
	Slug     *string
	Content  *string
	ImageURL *string
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const columns = `id, title, slug, content, COALESCE(image_url, ''), created_at, updated_at`

func scan(row pgx.Row) (*Post, error) {
	var p Post
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns one page of posts, newest first, plus the total count.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Post, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+columns+` FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var records []Post
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *p)
	}
	return records, total, rows.Err()
}

// FindBySlug fetches one post by its unique slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	p, err := scan(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM posts WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("Post not found.")
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a new post. The slug unique constraint is authoritative.
func (r *Repository) Create(ctx context.Context, post *Post) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO posts (id, title, slug, content, image_url)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING created_at, updated_at`,
		post.ID, post.Title, post.Slug, post.Content, post.ImageURL,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.Conflict("A post with this slug already exists.")
		}
		return err
	}
	return nil
}

// Update applies a partial update and returns the updated record.
func (r *Repository) Update(ctx context.Context, id string, patch Patch) (*Post, error) {
	p, err := scan(r.pool.QueryRow(ctx, `
		UPDATE posts SET
			title = COALESCE($2, title),
			slug = COALESCE($3, slug),
			content = COALESCE($4, content),
			image_url = COALESCE(NULLIF($5, ''), image_url),
			updated_at = now()
		WHERE id = $1
		RETURNING `+columns,
		id, patch.Title, patch.Slug, patch.Content, derefOrEmpty(patch.ImageURL)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("Post not found.")
		}
		if db.IsUniqueViolation(err) {
			return nil, shared.Conflict("A post with this slug already exists.")
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a post.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Post not found.")
	}
	return nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ RepositoryPort = (*Repository)(nil)
