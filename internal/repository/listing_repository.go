package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campusbridge/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrListingNotFound = errors.New("listing not found")

// ListingSnapshot is the immutable per-request view of a project listing.
type ListingSnapshot struct {
	ID uuid.UUID

	RequiredSkills []string
	Category       string
	Compensation   string

	HoursPerWeek *int

	StartDate   *time.Time
	EndDate     *time.Time
	PublishedAt *time.Time

	ApplicantCount int
	MaxApplicants  int

	SponsorCompletionRate *float64
	SponsorAffiliations   []string
}

type ListingRepository interface {
	FindSnapshotByID(ctx context.Context, id uuid.UUID) (ListingSnapshot, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	// ListEligibleForStudent returns published, unexpired, non-full listings
	// the student has not applied to. The engine never filters; it scores
	// exactly what this returns.
	ListEligibleForStudent(ctx context.Context, studentID uuid.UUID) ([]ListingSnapshot, error)
	PoolVersionForStudent(ctx context.Context, studentID uuid.UUID) (string, error)
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error
}

const listingSnapshotColumns = `
	l.id,
	COALESCE(array_agg(DISTINCT sk.name) FILTER (WHERE sk.name IS NOT NULL), '{}'),
	COALESCE(l.category, ''),
	COALESCE(l.compensation, ''),
	l.hours_per_week,
	l.start_date,
	l.end_date,
	l.published_at,
	COALESCE(l.applicant_count, 0),
	COALESCE(l.max_applicants, 0),
	o.completion_rate,
	COALESCE(o.affiliations, '{}')`

const listingSnapshotJoins = `
	 FROM listings l
	 JOIN organizations o ON o.id = l.organization_id
	 LEFT JOIN listing_skills ls ON ls.listing_id = l.id
	 LEFT JOIN skills sk ON sk.id = ls.skill_id`

const eligibleListingFilter = `
	   l.status = 'published'
	   AND (l.end_date IS NULL OR l.end_date >= NOW())
	   AND (l.max_applicants IS NULL OR l.max_applicants = 0 OR l.applicant_count < l.max_applicants)
	   AND NOT EXISTS (
		SELECT 1 FROM applications a
		WHERE a.listing_id = l.id AND a.student_id = $1
	   )`

type PostgresListingRepository struct {
	db database.DB
}

func NewPostgresListingRepository(db database.DB) *PostgresListingRepository {
	return &PostgresListingRepository{db: db}
}

func (r *PostgresListingRepository) FindSnapshotByID(ctx context.Context, id uuid.UUID) (ListingSnapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+listingSnapshotColumns+listingSnapshotJoins+`
		 WHERE l.id = $1
		 GROUP BY l.id, o.completion_rate, o.affiliations`,
		id,
	)

	snap, err := scanListingSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return ListingSnapshot{}, ErrListingNotFound
		}
		return ListingSnapshot{}, err
	}
	return snap, nil
}

func (r *PostgresListingRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM listings WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresListingRepository) ListEligibleForStudent(ctx context.Context, studentID uuid.UUID) ([]ListingSnapshot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+listingSnapshotColumns+listingSnapshotJoins+`
		 WHERE `+eligibleListingFilter+`
		 GROUP BY l.id, o.completion_rate, o.affiliations
		 ORDER BY l.id`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ListingSnapshot, 0)
	for rows.Next() {
		snap, err := scanListingSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresListingRepository) PoolVersionForStudent(ctx context.Context, studentID uuid.UUID) (string, error) {
	var count int64
	var maxUpdated time.Time
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(MAX(l.updated_at), 'epoch'::timestamptz)
		 FROM listings l
		 WHERE `+eligibleListingFilter,
		studentID,
	)
	if err := row.Scan(&count, &maxUpdated); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d:%d", count, maxUpdated.UTC().UnixNano()), nil
}

func (r *PostgresListingRepository) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE listings
		 SET status = 'published', published_at = $2, updated_at = $2
		 WHERE id = $1`,
		id, at.UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func scanListingSnapshot(row database.Row) (ListingSnapshot, error) {
	var snap ListingSnapshot
	err := row.Scan(
		&snap.ID,
		&snap.RequiredSkills,
		&snap.Category,
		&snap.Compensation,
		&snap.HoursPerWeek,
		&snap.StartDate,
		&snap.EndDate,
		&snap.PublishedAt,
		&snap.ApplicantCount,
		&snap.MaxApplicants,
		&snap.SponsorCompletionRate,
		&snap.SponsorAffiliations,
	)
	if err != nil {
		return ListingSnapshot{}, err
	}
	return snap, nil
}
