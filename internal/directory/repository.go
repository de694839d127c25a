package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veritas-cms/veritas-cms/internal/platform/db"
	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// RepositoryPort defines data access for the directory module.
type RepositoryPort interface {
	ListLawyers(ctx context.Context) ([]Lawyer, error)
	FindLawyer(ctx context.Context, id string) (*Lawyer, error)
	CreateLawyer(ctx context.Context, lawyer *Lawyer, serviceIDs []string) error
	UpdateLawyer(ctx context.Context, id string, patch LawyerPatch) (*Lawyer, error)
	DeleteLawyer(ctx context.Context, id string) error

	ListServices(ctx context.Context) ([]Service, error)
	FindServiceBySlug(ctx context.Context, slug string) (*Service, error)
	FindServiceByID(ctx context.Context, id string) (*Service, error)
	CreateService(ctx context.Context, service *Service, lawyerIDs []string) error
	UpdateService(ctx context.Context, id string, patch ServicePatch) (*Service, error)
	DeleteService(ctx context.Context, id string) error

	LawyersLinkedToService(ctx context.Context, serviceID string) ([]Lawyer, error)
	LawyersWithBioMatching(ctx context.Context, name string) ([]Lawyer, error)
}

// LawyerPatch carries a partial lawyer update. Nil fields are untouched;
// a non-nil ServiceIDs replaces every existing association.
type LawyerPatch struct {
	Name       *string
	Title      *string
	Bio        *string
	ImageURL   *string
	ServiceIDs *[]string
}

// ServicePatch carries a partial service update with the same replace
// semantics for LawyerIDs.
type ServicePatch struct {
	Name        *string
	Slug        *string
	Description *string
	ImageURL    *string
	LawyerIDs   *[]string
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const lawyerColumns = `id, name, title, bio, COALESCE(image_url, ''), created_at, updated_at`
const serviceColumns = `id, name, slug, description, COALESCE(image_url, ''), created_at, updated_at`

func scanLawyer(row pgx.Row) (*Lawyer, error) {
	var l Lawyer
	if err := row.Scan(&l.ID, &l.Name, &l.Title, &l.Bio, &l.ImageURL, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func scanService(row pgx.Row) (*Service, error) {
	var s Service
	if err := row.Scan(&s.ID, &s.Name, &s.Slug, &s.Description, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListLawyers returns all lawyers with their linked services attached.
func (r *Repository) ListLawyers(ctx context.Context) ([]Lawyer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+lawyerColumns+` FROM lawyers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lawyers []Lawyer
	index := make(map[string]int)
	for rows.Next() {
		l, err := scanLawyer(rows)
		if err != nil {
			return nil, err
		}
		index[l.ID] = len(lawyers)
		lawyers = append(lawyers, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	linkRows, err := r.pool.Query(ctx, `
		SELECT ls.lawyer_id, s.id, s.name, s.slug, s.description, COALESCE(s.image_url, ''), s.created_at, s.updated_at
		FROM lawyer_services ls
		JOIN services s ON s.id = ls.service_id
		ORDER BY s.name ASC`)
	if err != nil {
		return nil, err
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var (
			lawyerID string
			s        Service
		)
		if err := linkRows.Scan(&lawyerID, &s.ID, &s.Name, &s.Slug, &s.Description, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if idx, ok := index[lawyerID]; ok {
			lawyers[idx].Services = append(lawyers[idx].Services, s)
		}
	}
	return lawyers, linkRows.Err()
}

// FindLawyer fetches one lawyer with linked services.
func (r *Repository) FindLawyer(ctx context.Context, id string) (*Lawyer, error) {
	l, err := scanLawyer(r.pool.QueryRow(ctx, `SELECT `+lawyerColumns+` FROM lawyers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("Lawyer not found.")
		}
		return nil, err
	}
	services, err := r.servicesLinkedToLawyer(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Services = services
	return l, nil
}

func (r *Repository) servicesLinkedToLawyer(ctx context.Context, lawyerID string) ([]Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.name, s.slug, s.description, COALESCE(s.image_url, ''), s.created_at, s.updated_at
		FROM lawyer_services ls
		JOIN services s ON s.id = ls.service_id
		WHERE ls.lawyer_id = $1
		ORDER BY s.name ASC`, lawyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var services []Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *s)
	}
	return services, rows.Err()
}

// CreateLawyer inserts a lawyer and its service associations atomically.
func (r *Repository) CreateLawyer(ctx context.Context, lawyer *Lawyer, serviceIDs []string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO lawyers (id, name, title, bio, image_url)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			RETURNING created_at, updated_at`,
			lawyer.ID, lawyer.Name, lawyer.Title, lawyer.Bio, lawyer.ImageURL,
		).Scan(&lawyer.CreatedAt, &lawyer.UpdatedAt); err != nil {
			return err
		}
		return insertLawyerLinks(ctx, tx, lawyer.ID, serviceIDs)
	})
}

// UpdateLawyer applies a partial update; a non-nil ServiceIDs patch
// replaces the full association set.
func (r *Repository) UpdateLawyer(ctx context.Context, id string, patch LawyerPatch) (*Lawyer, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE lawyers SET
				name = COALESCE($2, name),
				title = COALESCE($3, title),
				bio = COALESCE($4, bio),
				image_url = COALESCE(NULLIF($5, ''), image_url),
				updated_at = now()
			WHERE id = $1`,
			id, patch.Name, patch.Title, patch.Bio, deref(patch.ImageURL))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.NotFound("Lawyer not found.")
		}
		if patch.ServiceIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM lawyer_services WHERE lawyer_id = $1`, id); err != nil {
				return err
			}
			if err := insertLawyerLinks(ctx, tx, id, *patch.ServiceIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindLawyer(ctx, id)
}

// DeleteLawyer removes a lawyer; join rows cascade.
func (r *Repository) DeleteLawyer(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lawyers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Lawyer not found.")
	}
	return nil
}

// ListServices returns all services ordered by name. Lawyer attachment
// is the service layer's concern.
func (r *Repository) ListServices(ctx context.Context) ([]Service, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var services []Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *s)
	}
	return services, rows.Err()
}

// FindServiceBySlug fetches one service by its unique slug.
func (r *Repository) FindServiceBySlug(ctx context.Context, slug string) (*Service, error) {
	s, err := scanService(r.pool.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("Service not found.")
		}
		return nil, err
	}
	return s, nil
}

// FindServiceByID fetches one service by id.
func (r *Repository) FindServiceByID(ctx context.Context, id string) (*Service, error) {
	s, err := scanService(r.pool.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("Service not found.")
		}
		return nil, err
	}
	return s, nil
}

// CreateService inserts a service and its lawyer associations. The slug
// unique constraint is authoritative; violations map to ConflictError.
func (r *Repository) CreateService(ctx context.Context, service *Service, lawyerIDs []string) error {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO services (id, name, slug, description, image_url)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			RETURNING created_at, updated_at`,
			service.ID, service.Name, service.Slug, service.Description, service.ImageURL,
		).Scan(&service.CreatedAt, &service.UpdatedAt); err != nil {
			return err
		}
		return insertServiceLinks(ctx, tx, service.ID, lawyerIDs)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.Conflict("A service with this slug already exists.")
		}
		return err
	}
	return nil
}

// UpdateService applies a partial update with full association replace.
func (r *Repository) UpdateService(ctx context.Context, id string, patch ServicePatch) (*Service, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE services SET
				name = COALESCE($2, name),
				slug = COALESCE($3, slug),
				description = COALESCE($4, description),
				image_url = COALESCE(NULLIF($5, ''), image_url),
				updated_at = now()
			WHERE id = $1`,
			id, patch.Name, patch.Slug, patch.Description, deref(patch.ImageURL))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.NotFound("Service not found.")
		}
		if patch.LawyerIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM lawyer_services WHERE service_id = $1`, id); err != nil {
				return err
			}
			if err := insertServiceLinks(ctx, tx, id, *patch.LawyerIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, shared.Conflict("A service with this slug already exists.")
		}
		return nil, err
	}
	return r.FindServiceByID(ctx, id)
}

// DeleteService removes a service; join rows cascade.
func (r *Repository) DeleteService(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Service not found.")
	}
	return nil
}

// LawyersLinkedToService returns lawyers explicitly associated with the
// service through the join table.
func (r *Repository) LawyersLinkedToService(ctx context.Context, serviceID string) ([]Lawyer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.name, l.title, l.bio, COALESCE(l.image_url, ''), l.created_at, l.updated_at
		FROM lawyer_services ls
		JOIN lawyers l ON l.id = ls.lawyer_id
		WHERE ls.service_id = $1
		ORDER BY l.name ASC`, serviceID)
	if err != nil {
		return nil, err
	}
	return collectLawyers(rows)
}

// LawyersWithBioMatching returns lawyers whose bio equals the given
// service name, case-insensitively. Legacy content linked lawyers to
// practice areas this way before the join table existed.
func (r *Repository) LawyersWithBioMatching(ctx context.Context, name string) ([]Lawyer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+lawyerColumns+` FROM lawyers WHERE lower(bio) = lower($1) ORDER BY name ASC`, name)
	if err != nil {
		return nil, err
	}
	return collectLawyers(rows)
}

func collectLawyers(rows pgx.Rows) ([]Lawyer, error) {
	defer rows.Close()
	var lawyers []Lawyer
	for rows.Next() {
		l, err := scanLawyer(rows)
		if err != nil {
			return nil, err
		}
		lawyers = append(lawyers, *l)
	}
	return lawyers, rows.Err()
}

func insertLawyerLinks(ctx context.Context, tx pgx.Tx, lawyerID string, serviceIDs []string) error {
	for _, serviceID := range serviceIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO lawyer_services (lawyer_id, service_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, lawyerID, serviceID); err != nil {
			return err
		}
	}
	return nil
}

func insertServiceLinks(ctx context.Context, tx pgx.Tx, serviceID string, lawyerIDs []string) error {
	for _, lawyerID := range lawyerIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO lawyer_services (lawyer_id, service_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, lawyerID, serviceID); err != nil {
			return err
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
