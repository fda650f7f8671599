package seekerinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/txx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/seeker"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresSeekerRepository implements seeker.Repository using PostgreSQL.
// The three listing-id sets are text[] columns.
type PostgresSeekerRepository struct {
	db *sqlx.DB
}

// NewPostgresSeekerRepository creates a new PostgreSQL job seeker repository
func NewPostgresSeekerRepository(db *sqlx.DB) *PostgresSeekerRepository {
	return &PostgresSeekerRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type seekerModel struct {
	Email        string         `db:"email"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	Expertise    string         `db:"expertise"`
	Years        int            `db:"years_of_experience"`
	PasswordHash string         `db:"password_hash"`
	Applied      pq.StringArray `db:"applied"`
	Accepted     pq.StringArray `db:"accepted"`
	Rejected     pq.StringArray `db:"rejected"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (m *seekerModel) toEntity() *seeker.JobSeeker {
	return &seeker.JobSeeker{
		Email:        kernel.Email(m.Email),
		FirstName:    kernel.FirstName(m.FirstName),
		LastName:     kernel.LastName(m.LastName),
		Expertise:    kernel.Expertise(m.Expertise),
		Years:        kernel.YearsOfExperience(m.Years),
		PasswordHash: kernel.PasswordHash(m.PasswordHash),
		Applied:      toListingIDs(m.Applied),
		Accepted:     toListingIDs(m.Accepted),
		Rejected:     toListingIDs(m.Rejected),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromEntity(j *seeker.JobSeeker) *seekerModel {
	return &seekerModel{
		Email:        j.Email.String(),
		FirstName:    string(j.FirstName),
		LastName:     string(j.LastName),
		Expertise:    string(j.Expertise),
		Years:        int(j.Years),
		PasswordHash: string(j.PasswordHash),
		Applied:      fromListingIDs(j.Applied),
		Accepted:     fromListingIDs(j.Accepted),
		Rejected:     fromListingIDs(j.Rejected),
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

const selectColumns = `
	SELECT email, first_name, last_name, expertise, years_of_experience, password_hash,
		applied, accepted, rejected, created_at, updated_at
	FROM job_seekers
`

// setColumns whitelists the array columns a set name may address
var setColumns = map[seeker.Set]string{
	seeker.SetApplied:  "applied",
	seeker.SetAccepted: "accepted",
	seeker.SetRejected: "rejected",
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job seeker
func (r *PostgresSeekerRepository) Create(ctx context.Context, j *seeker.JobSeeker) error {
	query := `
		INSERT INTO job_seekers (
			email, first_name, last_name, expertise, years_of_experience, password_hash,
			applied, accepted, rejected, created_at, updated_at
		) VALUES (
			:email, :first_name, :last_name, :expertise, :years_of_experience, :password_hash,
			:applied, :accepted, :rejected, :created_at, :updated_at
		)
	`

	if _, err := sqlx.NamedExecContext(ctx, txx.Ext(ctx, r.db), query, fromEntity(j)); err != nil {
		if isUniqueViolation(err) {
			return seeker.ErrEmailAlreadyExists()
		}
		return fmt.Errorf("failed to create job seeker: %w", err)
	}

	return nil
}

// GetByEmail retrieves a job seeker by exact email
func (r *PostgresSeekerRepository) GetByEmail(ctx context.Context, email kernel.Email) (*seeker.JobSeeker, error) {
	var model seekerModel
	if err := sqlx.GetContext(ctx, txx.Ext(ctx, r.db), &model, selectColumns+`WHERE email = $1`, email.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, seeker.ErrSeekerNotFound()
		}
		return nil, fmt.Errorf("failed to get job seeker: %w", err)
	}
	return model.toEntity(), nil
}

// Find lists job seekers whose email contains the filter term
func (r *PostgresSeekerRepository) Find(ctx context.Context, filter seeker.Filter) ([]*seeker.JobSeeker, error) {
	return r.selectMany(ctx, selectColumns+`WHERE strpos(email, $1) > 0 ORDER BY created_at, email`, filter.Email)
}

// ListAll returns every job seeker
func (r *PostgresSeekerRepository) ListAll(ctx context.Context) ([]*seeker.JobSeeker, error) {
	return r.selectMany(ctx, selectColumns+`ORDER BY created_at, email`)
}

// Update updates the profile columns, including a new email
func (r *PostgresSeekerRepository) Update(ctx context.Context, email kernel.Email, j *seeker.JobSeeker) error {
	query := `
		UPDATE job_seekers SET
			email = $2,
			first_name = $3,
			last_name = $4,
			expertise = $5,
			years_of_experience = $6,
			updated_at = $7
		WHERE email = $1
	`

	result, err := txx.Ext(ctx, r.db).ExecContext(ctx, query,
		email.String(), j.Email.String(), string(j.FirstName), string(j.LastName),
		string(j.Expertise), int(j.Years), j.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return seeker.ErrEmailAlreadyExists()
		}
		return fmt.Errorf("failed to update job seeker: %w", err)
	}

	return expectOneRow(result)
}

// Delete deletes a job seeker
func (r *PostgresSeekerRepository) Delete(ctx context.Context, email kernel.Email) error {
	result, err := txx.Ext(ctx, r.db).ExecContext(ctx, `DELETE FROM job_seekers WHERE email = $1`, email.String())
	if err != nil {
		return fmt.Errorf("failed to delete job seeker: %w", err)
	}

	return expectOneRow(result)
}

// AddToSet appends id to the set column unless it is already present
func (r *PostgresSeekerRepository) AddToSet(ctx context.Context, email kernel.Email, set seeker.Set, id kernel.ListingID) error {
	col, ok := setColumns[set]
	if !ok {
		return seeker.ErrInvalidSet().WithDetail("set", set)
	}

	query := fmt.Sprintf(`
		UPDATE job_seekers SET
			%[1]s = CASE WHEN $2 = ANY(%[1]s) THEN %[1]s ELSE array_append(%[1]s, $2) END,
			updated_at = NOW()
		WHERE email = $1
	`, col)

	return r.exec(ctx, "add to "+col, query, email.String(), id.String())
}

// RemoveFromSet pulls id from the set column
func (r *PostgresSeekerRepository) RemoveFromSet(ctx context.Context, email kernel.Email, set seeker.Set, id kernel.ListingID) error {
	col, ok := setColumns[set]
	if !ok {
		return seeker.ErrInvalidSet().WithDetail("set", set)
	}

	query := fmt.Sprintf(`
		UPDATE job_seekers SET %[1]s = array_remove(%[1]s, $2), updated_at = NOW()
		WHERE email = $1
	`, col)

	return r.exec(ctx, "remove from "+col, query, email.String(), id.String())
}

// MoveApplied pulls id from applied and adds it to the target set in one statement
func (r *PostgresSeekerRepository) MoveApplied(ctx context.Context, email kernel.Email, id kernel.ListingID, to seeker.Set) error {
	if to != seeker.SetAccepted && to != seeker.SetRejected {
		return seeker.ErrInvalidSet().WithDetail("set", to)
	}
	col := setColumns[to]

	query := fmt.Sprintf(`
		UPDATE job_seekers SET
			applied = array_remove(applied, $2),
			%[1]s = CASE WHEN $2 = ANY(%[1]s) THEN %[1]s ELSE array_append(%[1]s, $2) END,
			updated_at = NOW()
		WHERE email = $1
	`, col)

	return r.exec(ctx, "move to "+col, query, email.String(), id.String())
}

// RemoveListing pulls id from all three sets
func (r *PostgresSeekerRepository) RemoveListing(ctx context.Context, email kernel.Email, id kernel.ListingID) error {
	query := `
		UPDATE job_seekers SET
			applied = array_remove(applied, $2),
			accepted = array_remove(accepted, $2),
			rejected = array_remove(rejected, $2),
			updated_at = NOW()
		WHERE email = $1
	`

	return r.exec(ctx, "remove listing", query, email.String(), id.String())
}

// ============================================================================
// Helpers
// ============================================================================

func (r *PostgresSeekerRepository) selectMany(ctx context.Context, query string, args ...any) ([]*seeker.JobSeeker, error) {
	var models []seekerModel
	if err := sqlx.SelectContext(ctx, txx.Ext(ctx, r.db), &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list job seekers: %w", err)
	}

	seekers := make([]*seeker.JobSeeker, 0, len(models))
	for i := range models {
		seekers = append(seekers, models[i].toEntity())
	}
	return seekers, nil
}

func (r *PostgresSeekerRepository) exec(ctx context.Context, op, query string, args ...any) error {
	result, err := txx.Ext(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return expectOneRow(result)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return seeker.ErrSeekerNotFound()
	}
	return nil
}

func toListingIDs(values []string) []kernel.ListingID {
	ids := make([]kernel.ListingID, 0, len(values))
	for _, v := range values {
		ids = append(ids, kernel.ListingID(v))
	}
	return ids
}

func fromListingIDs(ids []kernel.ListingID) pq.StringArray {
	values := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}
	return values
}
