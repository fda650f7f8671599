package listinginfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/txx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/listing"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresListingRepository implements listing.Repository using PostgreSQL.
// Applicant emails live in three text[] columns.
type PostgresListingRepository struct {
	db *sqlx.DB
}

// NewPostgresListingRepository creates a new PostgreSQL listing repository
func NewPostgresListingRepository(db *sqlx.DB) *PostgresListingRepository {
	return &PostgresListingRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type listingModel struct {
	ID         string         `db:"id"`
	Title      string         `db:"title"`
	Company    string         `db:"company"`
	CompanyID  string         `db:"company_id"`
	Location   string         `db:"location"`
	Industry   string         `db:"industry"`
	Seniority  string         `db:"seniority"`
	Applicants pq.StringArray `db:"applicants"`
	Selected   pq.StringArray `db:"selected"`
	Rejected   pq.StringArray `db:"rejected"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (m *listingModel) toEntity() *listing.Listing {
	return &listing.Listing{
		ID:         kernel.ListingID(m.ID),
		Title:      kernel.Slug(m.Title),
		Company:    kernel.Slug(m.Company),
		CompanyID:  kernel.CompanyID(m.CompanyID),
		Location:   kernel.Slug(m.Location),
		Industry:   kernel.Slug(m.Industry),
		Seniority:  kernel.Slug(m.Seniority),
		Applicants: toEmails(m.Applicants),
		Selected:   toEmails(m.Selected),
		Rejected:   toEmails(m.Rejected),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func fromEntity(l *listing.Listing) *listingModel {
	return &listingModel{
		ID:         l.ID.String(),
		Title:      l.Title.String(),
		Company:    l.Company.String(),
		CompanyID:  l.CompanyID.String(),
		Location:   l.Location.String(),
		Industry:   l.Industry.String(),
		Seniority:  l.Seniority.String(),
		Applicants: fromEmails(l.Applicants),
		Selected:   fromEmails(l.Selected),
		Rejected:   fromEmails(l.Rejected),
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

const selectColumns = `
	SELECT id, title, company, company_id, location, industry, seniority,
		applicants, selected, rejected, created_at, updated_at
	FROM job_listings
`

var setColumns = map[listing.Set]string{
	listing.SetApplicants: "applicants",
	listing.SetSelected:   "selected",
	listing.SetRejected:   "rejected",
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new listing
func (r *PostgresListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	query := `
		INSERT INTO job_listings (
			id, title, company, company_id, location, industry, seniority,
			applicants, selected, rejected, created_at, updated_at
		) VALUES (
			:id, :title, :company, :company_id, :location, :industry, :seniority,
			:applicants, :selected, :rejected, :created_at, :updated_at
		)
	`

	if _, err := sqlx.NamedExecContext(ctx, txx.Ext(ctx, r.db), query, fromEntity(l)); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// GetByID retrieves a listing by ID
func (r *PostgresListingRepository) GetByID(ctx context.Context, id kernel.ListingID) (*listing.Listing, error) {
	var model listingModel
	if err := sqlx.GetContext(ctx, txx.Ext(ctx, r.db), &model, selectColumns+`WHERE id = $1`, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, listing.ErrListingNotFound()
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return model.toEntity(), nil
}

// Search matches every filter term as a substring; empty terms match all rows
func (r *PostgresListingRepository) Search(ctx context.Context, filter listing.CanonicalFilter) ([]*listing.Listing, error) {
	query := selectColumns + `
		WHERE strpos(title, $1) > 0
			AND strpos(company, $2) > 0
			AND strpos(location, $3) > 0
			AND strpos(industry, $4) > 0
			AND strpos(seniority, $5) > 0
		ORDER BY created_at, id
	`
	return r.selectMany(ctx, query,
		filter.Title.String(), filter.Company.String(), filter.Location.String(),
		filter.Industry.String(), filter.Seniority.String(),
	)
}

// ListByCompany returns the owner's listings, matching the name exactly only
// for rows that carry no owner id
func (r *PostgresListingRepository) ListByCompany(ctx context.Context, owner listing.Owner) ([]*listing.Listing, error) {
	query := selectColumns + `
		WHERE company_id = $1 OR (company_id = '' AND company = $2)
		ORDER BY created_at, id
	`
	return r.selectMany(ctx, query, owner.ID.String(), owner.Name.String())
}

// ListByApplicant returns the listings where email is pending
func (r *PostgresListingRepository) ListByApplicant(ctx context.Context, email kernel.Email) ([]*listing.Listing, error) {
	return r.selectMany(ctx, selectColumns+`WHERE $1 = ANY(applicants) ORDER BY created_at, id`, email.String())
}

// ListByMember returns the listings where email appears in any set
func (r *PostgresListingRepository) ListByMember(ctx context.Context, email kernel.Email) ([]*listing.Listing, error) {
	query := selectColumns + `
		WHERE $1 = ANY(applicants) OR $1 = ANY(selected) OR $1 = ANY(rejected)
		ORDER BY created_at, id
	`
	return r.selectMany(ctx, query, email.String())
}

// ListAll returns every listing
func (r *PostgresListingRepository) ListAll(ctx context.Context) ([]*listing.Listing, error) {
	return r.selectMany(ctx, selectColumns+`ORDER BY created_at, id`)
}

// UpdateDetails updates the descriptive columns
func (r *PostgresListingRepository) UpdateDetails(ctx context.Context, l *listing.Listing) error {
	query := `
		UPDATE job_listings SET
			title = :title,
			location = :location,
			industry = :industry,
			seniority = :seniority,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := sqlx.NamedExecContext(ctx, txx.Ext(ctx, r.db), query, fromEntity(l))
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	return expectOneRow(result)
}

// Delete deletes a listing
func (r *PostgresListingRepository) Delete(ctx context.Context, id kernel.ListingID) error {
	result, err := txx.Ext(ctx, r.db).ExecContext(ctx, `DELETE FROM job_listings WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	return expectOneRow(result)
}

// AddApplicant appends email to applicants only when no set holds it yet.
// The guard and the write are a single statement.
func (r *PostgresListingRepository) AddApplicant(ctx context.Context, id kernel.ListingID, email kernel.Email) (bool, error) {
	query := `
		UPDATE job_listings SET applicants = array_append(applicants, $2), updated_at = NOW()
		WHERE id = $1
			AND NOT ($2 = ANY(applicants) OR $2 = ANY(selected) OR $2 = ANY(rejected))
	`

	return r.conditional(ctx, "add applicant", id, query, id.String(), email.String())
}

// MoveApplicant moves email out of applicants only when it is pending there
func (r *PostgresListingRepository) MoveApplicant(ctx context.Context, id kernel.ListingID, email kernel.Email, to listing.Set) (bool, error) {
	if to != listing.SetSelected && to != listing.SetRejected {
		return false, listing.ErrInvalidSet().WithDetail("set", to)
	}
	col := setColumns[to]

	query := fmt.Sprintf(`
		UPDATE job_listings SET
			applicants = array_remove(applicants, $2),
			%[1]s = CASE WHEN $2 = ANY(%[1]s) THEN %[1]s ELSE array_append(%[1]s, $2) END,
			updated_at = NOW()
		WHERE id = $1 AND $2 = ANY(applicants)
	`, col)

	return r.conditional(ctx, "move applicant to "+col, id, query, id.String(), email.String())
}

// RemoveMember pulls email from all three sets
func (r *PostgresListingRepository) RemoveMember(ctx context.Context, id kernel.ListingID, email kernel.Email) error {
	query := `
		UPDATE job_listings SET
			applicants = array_remove(applicants, $2),
			selected = array_remove(selected, $2),
			rejected = array_remove(rejected, $2),
			updated_at = NOW()
		WHERE id = $1
	`

	return r.exec(ctx, "remove member", query, id.String(), email.String())
}

// RemoveFromSet pulls email from one set
func (r *PostgresListingRepository) RemoveFromSet(ctx context.Context, id kernel.ListingID, set listing.Set, email kernel.Email) error {
	col, ok := setColumns[set]
	if !ok {
		return listing.ErrInvalidSet().WithDetail("set", set)
	}

	query := fmt.Sprintf(`
		UPDATE job_listings SET %[1]s = array_remove(%[1]s, $2), updated_at = NOW()
		WHERE id = $1
	`, col)

	return r.exec(ctx, "remove from "+col, query, id.String(), email.String())
}

// ReplaceMember renames email in every set of the listing
func (r *PostgresListingRepository) ReplaceMember(ctx context.Context, id kernel.ListingID, from, to kernel.Email) error {
	query := `
		UPDATE job_listings SET
			applicants = array_replace(applicants, $2, $3),
			selected = array_replace(selected, $2, $3),
			rejected = array_replace(rejected, $2, $3),
			updated_at = NOW()
		WHERE id = $1
	`

	return r.exec(ctx, "replace member", query, id.String(), from.String(), to.String())
}

// RelabelCompany rewrites the company label on every listing owned by id
func (r *PostgresListingRepository) RelabelCompany(ctx context.Context, id kernel.CompanyID, name kernel.Slug) (int64, error) {
	query := `UPDATE job_listings SET company = $2, updated_at = NOW() WHERE company_id = $1 AND company <> $2`

	result, err := txx.Ext(ctx, r.db).ExecContext(ctx, query, id.String(), name.String())
	if err != nil {
		return 0, fmt.Errorf("failed to relabel listings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (r *PostgresListingRepository) selectMany(ctx context.Context, query string, args ...any) ([]*listing.Listing, error) {
	var models []listingModel
	if err := sqlx.SelectContext(ctx, txx.Ext(ctx, r.db), &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	listings := make([]*listing.Listing, 0, len(models))
	for i := range models {
		listings = append(listings, models[i].toEntity())
	}
	return listings, nil
}

func (r *PostgresListingRepository) exec(ctx context.Context, op, query string, args ...any) error {
	result, err := txx.Ext(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return expectOneRow(result)
}

// conditional runs a guarded update. Zero affected rows means either the
// guard failed or the listing is gone; the second case is NotFound.
func (r *PostgresListingRepository) conditional(ctx context.Context, op string, id kernel.ListingID, query string, args ...any) (bool, error) {
	ext := txx.Ext(ctx, r.db)

	result, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to %s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		return true, nil
	}

	var exists bool
	if err := sqlx.GetContext(ctx, ext, &exists, `SELECT EXISTS (SELECT 1 FROM job_listings WHERE id = $1)`, id.String()); err != nil {
		return false, fmt.Errorf("failed to check listing: %w", err)
	}
	if !exists {
		return false, listing.ErrListingNotFound()
	}
	return false, nil
}

func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return listing.ErrListingNotFound()
	}
	return nil
}

func toEmails(values []string) []kernel.Email {
	emails := make([]kernel.Email, 0, len(values))
	for _, v := range values {
		emails = append(emails, kernel.Email(v))
	}
	return emails
}

func fromEmails(emails []kernel.Email) pq.StringArray {
	values := make(pq.StringArray, 0, len(emails))
	for _, e := range emails {
		values = append(values, e.String())
	}
	return values
}
