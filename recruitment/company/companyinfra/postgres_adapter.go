package companyinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/txx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// unique index on companies.name; any other unique violation is the email
const nameConstraint = "companies_name_key"

// PostgresCompanyRepository implements company.Repository using PostgreSQL
type PostgresCompanyRepository struct {
	db *sqlx.DB
}

// NewPostgresCompanyRepository creates a new PostgreSQL company repository
func NewPostgresCompanyRepository(db *sqlx.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type companyModel struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Country      string    `db:"country"`
	Description  string    `db:"description"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (m *companyModel) toEntity() *company.Company {
	return &company.Company{
		ID:           kernel.CompanyID(m.ID),
		Name:         kernel.Slug(m.Name),
		Email:        kernel.Email(m.Email),
		Country:      kernel.Country(m.Country),
		Description:  kernel.CompanyDescription(m.Description),
		PasswordHash: kernel.PasswordHash(m.PasswordHash),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromEntity(c *company.Company) *companyModel {
	return &companyModel{
		ID:           c.ID.String(),
		Name:         c.Name.String(),
		Email:        c.Email.String(),
		Country:      string(c.Country),
		Description:  string(c.Description),
		PasswordHash: string(c.PasswordHash),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

const selectColumns = `
	SELECT id, name, email, country, description, password_hash, created_at, updated_at
	FROM companies
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new company
func (r *PostgresCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	query := `
		INSERT INTO companies (
			id, name, email, country, description, password_hash, created_at, updated_at
		) VALUES (
			:id, :name, :email, :country, :description, :password_hash, :created_at, :updated_at
		)
	`

	if _, err := sqlx.NamedExecContext(ctx, txx.Ext(ctx, r.db), query, fromEntity(c)); err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// GetByID retrieves a company by ID
func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	return r.getOne(ctx, selectColumns+`WHERE id = $1`, id.String())
}

// GetByEmail retrieves a company by exact email
func (r *PostgresCompanyRepository) GetByEmail(ctx context.Context, email kernel.Email) (*company.Company, error) {
	return r.getOne(ctx, selectColumns+`WHERE email = $1`, email.String())
}

// GetByName retrieves a company by canonical name
func (r *PostgresCompanyRepository) GetByName(ctx context.Context, name kernel.Slug) (*company.Company, error) {
	return r.getOne(ctx, selectColumns+`WHERE name = $1`, name.String())
}

// Find lists companies whose email contains the filter term
func (r *PostgresCompanyRepository) Find(ctx context.Context, filter company.Filter) ([]*company.Company, error) {
	query := selectColumns + `WHERE strpos(email, $1) > 0 ORDER BY created_at, id`

	var models []companyModel
	if err := sqlx.SelectContext(ctx, txx.Ext(ctx, r.db), &models, query, filter.Email); err != nil {
		return nil, fmt.Errorf("failed to find companies: %w", err)
	}

	companies := make([]*company.Company, 0, len(models))
	for i := range models {
		companies = append(companies, models[i].toEntity())
	}
	return companies, nil
}

// Update updates an existing company
func (r *PostgresCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	query := `
		UPDATE companies SET
			name = :name,
			email = :email,
			country = :country,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := sqlx.NamedExecContext(ctx, txx.Ext(ctx, r.db), query, fromEntity(c))
	if err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to update company: %w", err)
	}

	return expectOneRow(result)
}

// Delete deletes a company by ID
func (r *PostgresCompanyRepository) Delete(ctx context.Context, id kernel.CompanyID) error {
	result, err := txx.Ext(ctx, r.db).ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	return expectOneRow(result)
}

// ============================================================================
// Helpers
// ============================================================================

func (r *PostgresCompanyRepository) getOne(ctx context.Context, query string, arg any) (*company.Company, error) {
	var model companyModel
	if err := sqlx.GetContext(ctx, txx.Ext(ctx, r.db), &model, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrCompanyNotFound()
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return model.toEntity(), nil
}

func uniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}
	if pqErr.Constraint == nameConstraint {
		return company.ErrNameAlreadyExists()
	}
	return company.ErrEmailAlreadyExists()
}

func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return company.ErrCompanyNotFound()
	}
	return nil
}
