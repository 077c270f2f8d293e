package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"agendaja/internal/db"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CatalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepository(database *sql.DB) *CatalogRepository {
	return &CatalogRepository{DB: database}
}

func (r *CatalogRepository) CreateTenant(t *db.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, slug, niche, primary_color, logo_url, timezone, contact_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	return r.DB.QueryRow(query,
		t.ID, t.Name, t.Slug, t.Niche, t.PrimaryColor, t.LogoURL, t.Timezone, t.ContactEmail,
	).Scan(&t.CreatedAt)
}

func (r *CatalogRepository) GetTenantByID(id uuid.UUID) (*db.Tenant, error) {
	return r.getTenant(`WHERE id = $1`, id)
}

func (r *CatalogRepository) GetTenantBySlug(slug string) (*db.Tenant, error) {
	return r.getTenant(`WHERE slug = $1`, slug)
}

func (r *CatalogRepository) getTenant(where string, arg interface{}) (*db.Tenant, error) {
	var t db.Tenant
	query := `
		SELECT id, name, slug, niche, primary_color, logo_url, timezone, contact_email, created_at
		FROM tenants ` + where
	err := r.DB.QueryRow(query, arg).Scan(
		&t.ID, &t.Name, &t.Slug, &t.Niche, &t.PrimaryColor, &t.LogoURL, &t.Timezone, &t.ContactEmail, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying tenant: %w", err)
	}
	return &t, nil
}

func (r *CatalogRepository) GetService(id uuid.UUID) (*db.Service, error) {
	var s db.Service
	query := `
		SELECT id, tenant_id, name, description, duration_minutes, price_cents, is_active, created_at, updated_at
		FROM services WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&s.ID, &s.TenantID, &s.Name, &s.Description, &s.DurationMinutes, &s.PriceCents, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying service: %w", err)
	}
	return &s, nil
}

func (r *CatalogRepository) ListServices(tenantID uuid.UUID, activeOnly bool) ([]db.Service, error) {
	query := `
		SELECT id, tenant_id, name, description, duration_minutes, price_cents, is_active, created_at, updated_at
		FROM services WHERE tenant_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.DB.Query(query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error querying services: %w", err)
	}
	defer rows.Close()

	var services []db.Service
	for rows.Next() {
		var s db.Service
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.Description, &s.DurationMinutes, &s.PriceCents, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *CatalogRepository) CreateService(s *db.Service) error {
	query := `
		INSERT INTO services (id, tenant_id, name, description, duration_minutes, price_cents, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`
	return r.DB.QueryRow(query,
		s.ID, s.TenantID, s.Name, s.Description, s.DurationMinutes, s.PriceCents, s.IsActive,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *CatalogRepository) UpdateService(s *db.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, duration_minutes = $3, price_cents = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6 AND tenant_id = $7`
	result, err := r.DB.Exec(query, s.Name, s.Description, s.DurationMinutes, s.PriceCents, s.IsActive, s.ID, s.TenantID)
	if err != nil {
		return fmt.Errorf("error updating service: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CatalogRepository) GetProfessional(id uuid.UUID) (*db.Professional, error) {
	var p db.Professional
	query := `
		SELECT id, tenant_id, name, whatsapp, bio, avatar_url, is_active, created_at, updated_at
		FROM professionals WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.WhatsApp, &p.Bio, &p.AvatarURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying professional: %w", err)
	}

	p.ServiceIDs, err = r.serviceIDsFor(p.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) ListProfessionals(tenantID uuid.UUID, activeOnly bool) ([]db.Professional, error) {
	query := `
		SELECT id, tenant_id, name, whatsapp, bio, avatar_url, is_active, created_at, updated_at
		FROM professionals WHERE tenant_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.DB.Query(query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error querying professionals: %w", err)
	}
	defer rows.Close()

	var professionals []db.Professional
	for rows.Next() {
		var p db.Professional
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.WhatsApp, &p.Bio, &p.AvatarURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning professional: %w", err)
		}
		professionals = append(professionals, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range professionals {
		professionals[i].ServiceIDs, err = r.serviceIDsFor(professionals[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return professionals, nil
}

func (r *CatalogRepository) CreateProfessional(p *db.Professional) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO professionals (id, tenant_id, name, whatsapp, bio, avatar_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`
	err = tx.QueryRow(query, p.ID, p.TenantID, p.Name, p.WhatsApp, p.Bio, p.AvatarURL, p.IsActive).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting professional: %w", err)
	}

	if err := replaceServiceLinks(tx, p.ID, p.ServiceIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *CatalogRepository) UpdateProfessional(p *db.Professional) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE professionals
		SET name = $1, whatsapp = $2, bio = $3, avatar_url = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6 AND tenant_id = $7`
	result, err := tx.Exec(query, p.Name, p.WhatsApp, p.Bio, p.AvatarURL, p.IsActive, p.ID, p.TenantID)
	if err != nil {
		return fmt.Errorf("error updating professional: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	if err := replaceServiceLinks(tx, p.ID, p.ServiceIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *CatalogRepository) serviceIDsFor(professionalID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.DB.Query(`SELECT service_id FROM professional_services WHERE professional_id = $1`, professionalID)
	if err != nil {
		return nil, fmt.Errorf("error querying professional services: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func replaceServiceLinks(tx *sql.Tx, professionalID uuid.UUID, serviceIDs []uuid.UUID) error {
	if _, err := tx.Exec(`DELETE FROM professional_services WHERE professional_id = $1`, professionalID); err != nil {
		return fmt.Errorf("error clearing professional services: %w", err)
	}
	if len(serviceIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(`
		INSERT INTO professional_services (professional_id, service_id)
		SELECT $1, unnest($2::uuid[])`,
		professionalID, pq.Array(serviceIDs))
	if err != nil {
		return fmt.Errorf("error linking professional services: %w", err)
	}
	return nil
}
