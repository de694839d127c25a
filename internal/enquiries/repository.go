package enquiries

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// RepositoryPort defines data access for enquiries.
type RepositoryPort interface {
	Create(ctx context.Context, enquiry *Enquiry) error
	List(ctx context.Context, opts ListOptions) ([]Enquiry, int, error)
	Delete(ctx context.Context, id string) error
}

// ListOptions controls pagination and ordering of the admin listing.
type ListOptions struct {
	Limit  int
	Offset int
	SortBy string
	Order  string
}

// sortColumns whitelists the sortable fields against their columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"firstName": "first_name",
	"email":     "email",
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new enquiry.
func (r *Repository) Create(ctx context.Context, enquiry *Enquiry) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO enquiries (id, first_name, last_name, email, phone, message, law_id, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
		RETURNING created_at`,
		enquiry.ID, enquiry.FirstName, enquiry.LastName, enquiry.Email,
		enquiry.Phone, enquiry.Message, enquiry.LawID, enquiry.ImageURL,
	).Scan(&enquiry.CreatedAt)
}

// List returns a page of enquiries plus the total count. The sort column is
// resolved against the whitelist; anything else falls back to created_at.
func (r *Repository) List(ctx context.Context, opts ListOptions) ([]Enquiry, int, error) {
	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = "created_at"
	}
	order := "DESC"
	if opts.Order == "asc" {
		order = "ASC"
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM enquiries`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, email, phone, message, law_id, COALESCE(image_url, ''), created_at
		FROM enquiries
		ORDER BY %s %s
		LIMIT $1 OFFSET $2`, column, order)
	rows, err := r.pool.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []Enquiry
	for rows.Next() {
		var e Enquiry
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Message, &e.LawID, &e.ImageURL, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		records = append(records, e)
	}
	return records, total, rows.Err()
}

// Delete removes an enquiry.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Enquiry not found.")
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
