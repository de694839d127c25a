package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort defines data access for the settings singleton.
type RepositoryPort interface {
	Get(ctx context.Context) (*Settings, error)
	Upsert(ctx context.Context, patch Patch) (*Settings, error)
}

// Patch carries a partial settings update; nil fields are untouched.
type Patch struct {
	ShowTeam     *bool
	ShowNews     *bool
	ShowServices *bool
	ShowBlog     *bool
}

// Repository provides PostgreSQL backed persistence. The table holds at most
// one row, keyed by a constant id.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const singletonID = 1

// Get returns the stored settings, or the defaults when no row exists yet.
func (r *Repository) Get(ctx context.Context) (*Settings, error) {
	var s Settings
	err := r.pool.QueryRow(ctx, `
		SELECT show_team, show_news, show_services, show_blog, updated_at
		FROM site_settings WHERE id = $1`, singletonID,
	).Scan(&s.ShowTeam, &s.ShowNews, &s.ShowServices, &s.ShowBlog, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			defaults := Defaults()
			return &defaults, nil
		}
		return nil, err
	}
	return &s, nil
}

// Upsert creates or updates the singleton row and returns the result.
func (r *Repository) Upsert(ctx context.Context, patch Patch) (*Settings, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	next := *current
	if patch.ShowTeam != nil {
		next.ShowTeam = *patch.ShowTeam
	}
	if patch.ShowNews != nil {
		next.ShowNews = *patch.ShowNews
	}
	if patch.ShowServices != nil {
		next.ShowServices = *patch.ShowServices
	}
	if patch.ShowBlog != nil {
		next.ShowBlog = *patch.ShowBlog
	}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO site_settings (id, show_team, show_news, show_services, show_blog)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			show_team = EXCLUDED.show_team,
			show_news = EXCLUDED.show_news,
			show_services = EXCLUDED.show_services,
			show_blog = EXCLUDED.show_blog,
			updated_at = now()
		RETURNING updated_at`,
		singletonID, next.ShowTeam, next.ShowNews, next.ShowServices, next.ShowBlog,
	).Scan(&next.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &next, nil
}

var _ RepositoryPort = (*Repository)(nil)
