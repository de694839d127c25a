package news

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// RepositoryPort defines data access for news items.
type RepositoryPort interface {
	List(ctx context.Context) ([]Item, error)
	FindByID(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, id string, patch Patch) (*Item, error)
	Delete(ctx context.Context, id string) error
}

// Patch carries a partial news update; nil fields are untouched.
type Patch struct {
	Title       *string
	Link        *string
	Description *string
	ImageURL    *string
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const columns = `id, title, COALESCE(link, ''), COALESCE(description, ''), COALESCE(image_url, ''), published_at, updated_at`

func scan(row pgx.Row) (*Item, error) {
	var item Item
	if err := row.Scan(&item.ID, &item.Title, &item.Link, &item.Description, &item.ImageURL, &item.PublishedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns all news items, newest first.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM news ORDER BY published_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// FindByID fetches one news item.
func (r *Repository) FindByID(ctx context.Context, id string) (*Item, error) {
	item, err := scan(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM news WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("News not found.")
		}
		return nil, err
	}
	return item, nil
}

// Create inserts a new news item.
func (r *Repository) Create(ctx context.Context, item *Item) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO news (id, title, link, description, image_url)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		RETURNING published_at, updated_at`,
		item.ID, item.Title, item.Link, item.Description, item.ImageURL,
	).Scan(&item.PublishedAt, &item.UpdatedAt)
}

// Update applies a partial update and returns the updated record.
func (r *Repository) Update(ctx context.Context, id string, patch Patch) (*Item, error) {
	item, err := scan(r.pool.QueryRow(ctx, `
		UPDATE news SET
			title = COALESCE($2, title),
			link = COALESCE($3, link),
			description = COALESCE($4, description),
			image_url = COALESCE($5, image_url),
			updated_at = now()
		WHERE id = $1
		RETURNING `+columns,
		id, patch.Title, patch.Link, patch.Description, patch.ImageURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("News not found.")
		}
		return nil, err
	}
	return item, nil
}

// Delete removes a news item.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("News not found.")
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
