package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// AdminStore is the credential issuer's and guard's view of the
// administrator principal store.
type AdminStore interface {
	FindAdminByEmail(ctx context.Context, email string) (*Admin, error)
	FindAdminByID(ctx context.Context, id string) (*Admin, error)
}

// SubAdminStore is the issuer's and guard's view of the disjoint
// sub-administrator principal store.
type SubAdminStore interface {
	FindSubAdminByEmail(ctx context.Context, email string) (*SubAdminAccount, error)
	FindSubAdminByID(ctx context.Context, id string) (*SubAdminAccount, error)
}

// PGRepository implements both principal store views on PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindAdminByEmail fetches an administrator by normalized email.
func (r *PGRepository) FindAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM admins WHERE email = $1`,
		shared.NormalizeEmail(email))
	return scanAdmin(row)
}

// FindAdminByID fetches an administrator by id.
func (r *PGRepository) FindAdminByID(ctx context.Context, id string) (*Admin, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM admins WHERE id = $1`, id)
	return scanAdmin(row)
}

func scanAdmin(row pgx.Row) (*Admin, error) {
	var admin Admin
	if err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("Admin not found.")
		}
		return nil, err
	}
	return &admin, nil
}

const subAdminAccountColumns = `id, email, name, password_hash,
	can_manage_enquiries, can_manage_lawyers, can_manage_services,
	can_manage_posts, can_manage_news, can_manage_settings`

// FindSubAdminByEmail fetches a sub-administrator account by email.
func (r *PGRepository) FindSubAdminByEmail(ctx context.Context, email string) (*SubAdminAccount, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+subAdminAccountColumns+` FROM sub_admins WHERE email = $1`,
		shared.NormalizeEmail(email))
	return scanSubAdminAccount(row)
}

// FindSubAdminByID fetches a sub-administrator account by id.
func (r *PGRepository) FindSubAdminByID(ctx context.Context, id string) (*SubAdminAccount, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+subAdminAccountColumns+` FROM sub_admins WHERE id = $1`, id)
	return scanSubAdminAccount(row)
}

func scanSubAdminAccount(row pgx.Row) (*SubAdminAccount, error) {
	var (
		account SubAdminAccount
		flags   [6]bool
	)
	if err := row.Scan(&account.ID, &account.Email, &account.Name, &account.PasswordHash,
		&flags[0], &flags[1], &flags[2], &flags[3], &flags[4], &flags[5]); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("SubAdmin not found.")
		}
		return nil, err
	}
	account.Caps = make(CapabilitySet)
	for idx, c := range AllCapabilities() {
		if flags[idx] {
			account.Caps[c] = true
		}
	}
	return &account, nil
}

var (
	_ AdminStore    = (*PGRepository)(nil)
	_ SubAdminStore = (*PGRepository)(nil)
)
