package subadmin

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veritas-cms/veritas-cms/internal/auth"
	"github.com/veritas-cms/veritas-cms/internal/platform/db"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// RepositoryPort defines persistence operations for sub-administrators.
type RepositoryPort interface {
	Create(ctx context.Context, record *SubAdmin) error
	List(ctx context.Context) ([]SubAdmin, error)
	FindByID(ctx context.Context, id string) (*SubAdmin, error)
	FindByEmail(ctx context.Context, email string) (*SubAdmin, error)
	UpdateCaps(ctx context.Context, id string, caps auth.CapabilitySet) (*SubAdmin, error)
	Delete(ctx context.Context, id string) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const columns = `id, email, name, password_hash, created_by,
	can_manage_enquiries, can_manage_lawyers, can_manage_services,
	can_manage_posts, can_manage_news, can_manage_settings,
	created_at, updated_at`

func capFlags(caps auth.CapabilitySet) []any {
	return []any{
		caps.Has(auth.CapEnquiries),
		caps.Has(auth.CapLawyers),
		caps.Has(auth.CapServices),
		caps.Has(auth.CapPosts),
		caps.Has(auth.CapNews),
		caps.Has(auth.CapSettings),
	}
}

func scan(row pgx.Row) (*SubAdmin, error) {
	var (
		record SubAdmin
		flags  [6]bool
	)
	if err := row.Scan(&record.ID, &record.Email, &record.Name, &record.PasswordHash, &record.CreatedBy,
		&flags[0], &flags[1], &flags[2], &flags[3], &flags[4], &flags[5],
		&record.CreatedAt, &record.UpdatedAt); err != nil {
		return nil, err
	}
	record.Caps = make(auth.CapabilitySet)
	for idx, c := range auth.AllCapabilities() {
		if flags[idx] {
			record.Caps[c] = true
		}
	}
	return &record, nil
}

// Create inserts a new sub-administrator. The unique constraint on email
// is the authority; violations surface as ConflictError.
func (r *Repository) Create(ctx context.Context, record *SubAdmin) error {
	args := append([]any{record.ID, record.Email, record.Name, record.PasswordHash, record.CreatedBy}, capFlags(record.Caps)...)
	err := r.pool.QueryRow(ctx, `
		INSERT INTO sub_admins (id, email, name, password_hash, created_by,
			can_manage_enquiries, can_manage_lawyers, can_manage_services,
			can_manage_posts, can_manage_news, can_manage_settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`, args...,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.Conflict("SubAdmin already exists.")
		}
		return err
	}
	return nil
}

// List returns all sub-administrators.
func (r *Repository) List(ctx context.Context) ([]SubAdmin, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM sub_admins ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []SubAdmin
	for rows.Next() {
		record, err := scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// FindByID fetches one sub-administrator.
func (r *Repository) FindByID(ctx context.Context, id string) (*SubAdmin, error) {
	record, err := scan(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM sub_admins WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("SubAdmin not found.")
		}
		return nil, err
	}
	return record, nil
}

// FindByEmail fetches one sub-administrator by normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*SubAdmin, error) {
	record, err := scan(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM sub_admins WHERE email = $1`, shared.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("SubAdmin not found.")
		}
		return nil, err
	}
	return record, nil
}

// UpdateCaps replaces the permission set wholesale and returns the
// updated record.
func (r *Repository) UpdateCaps(ctx context.Context, id string, caps auth.CapabilitySet) (*SubAdmin, error) {
	args := append([]any{id}, capFlags(caps)...)
	record, err := scan(r.pool.QueryRow(ctx, `
		UPDATE sub_admins SET
			can_manage_enquiries = $2, can_manage_lawyers = $3, can_manage_services = $4,
			can_manage_posts = $5, can_manage_news = $6, can_manage_settings = $7,
			updated_at = now()
		WHERE id = $1
		RETURNING `+columns, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("SubAdmin not found.")
		}
		return nil, err
	}
	return record, nil
}

// Delete removes a sub-administrator.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sub_admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("SubAdmin not found.")
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
