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

var ErrStudentNotFound = errors.New("student not found")

// StudentSnapshot is the immutable per-request view of a student. Nullable
// columns surface as pointers so the engine can tell "never declared" apart
// from a zero value.
type StudentSnapshot struct {
	ID uuid.UUID

	Skills []string

	AvailableFrom  *time.Time
	AvailableUntil *time.Time
	WeeklyHours    *int
	GraduationYear *int

	CompletedProjects int
	ActiveProjects    int
	DroppedProjects   int

	Institution     string
	CategoryHistory []string

	UpdatedAt time.Time
}

type StudentRepository interface {
	FindSnapshotByID(ctx context.Context, id uuid.UUID) (StudentSnapshot, error)
	// ListEligibleForListing returns students who have not yet applied to the
	// listing. Eligibility filtering happens here, before the engine runs.
	ListEligibleForListing(ctx context.Context, listingID uuid.UUID) ([]StudentSnapshot, error)
	// PoolVersionForListing is an opaque token that changes whenever the
	// eligible pool changes; callers use it to key recommendation caches.
	PoolVersionForListing(ctx context.Context, listingID uuid.UUID) (string, error)
}

const studentSnapshotColumns = `
	s.id,
	COALESCE(array_agg(DISTINCT sk.name) FILTER (WHERE sk.name IS NOT NULL), '{}'),
	s.available_from,
	s.available_until,
	s.weekly_hours_capacity,
	s.graduation_year,
	COALESCE(s.completed_projects, 0),
	COALESCE(s.active_projects, 0),
	COALESCE(s.dropped_projects, 0),
	COALESCE(s.institution, ''),
	COALESCE((
		SELECT array_agg(DISTINCT l.category)
		FROM applications a
		JOIN listings l ON l.id = a.listing_id
		WHERE a.student_id = s.id AND l.category IS NOT NULL
	), '{}'),
	s.updated_at`

type PostgresStudentRepository struct {
	db database.DB
}

func NewPostgresStudentRepository(db database.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

func (r *PostgresStudentRepository) FindSnapshotByID(ctx context.Context, id uuid.UUID) (StudentSnapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+studentSnapshotColumns+`
		 FROM students s
		 LEFT JOIN student_skills ss ON ss.student_id = s.id
		 LEFT JOIN skills sk ON sk.id = ss.skill_id
		 WHERE s.id = $1
		 GROUP BY s.id`,
		id,
	)

	snap, err := scanStudentSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return StudentSnapshot{}, ErrStudentNotFound
		}
		return StudentSnapshot{}, err
	}
	return snap, nil
}

func (r *PostgresStudentRepository) ListEligibleForListing(ctx context.Context, listingID uuid.UUID) ([]StudentSnapshot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+studentSnapshotColumns+`
		 FROM students s
		 LEFT JOIN student_skills ss ON ss.student_id = s.id
		 LEFT JOIN skills sk ON sk.id = ss.skill_id
		 WHERE s.status = 'active'
		   AND NOT EXISTS (
			SELECT 1 FROM applications a
			WHERE a.student_id = s.id AND a.listing_id = $1
		   )
		 GROUP BY s.id
		 ORDER BY s.id`,
		listingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StudentSnapshot, 0)
	for rows.Next() {
		snap, err := scanStudentSnapshot(rows)
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

func (r *PostgresStudentRepository) PoolVersionForListing(ctx context.Context, listingID uuid.UUID) (string, error) {
	var count int64
	var maxUpdated time.Time
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(MAX(s.updated_at), 'epoch'::timestamptz)
		 FROM students s
		 WHERE s.status = 'active'
		   AND NOT EXISTS (
			SELECT 1 FROM applications a
			WHERE a.student_id = s.id AND a.listing_id = $1
		   )`,
		listingID,
	)
	if err := row.Scan(&count, &maxUpdated); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d:%d", count, maxUpdated.UTC().UnixNano()), nil
}

func scanStudentSnapshot(row database.Row) (StudentSnapshot, error) {
	var snap StudentSnapshot
	err := row.Scan(
		&snap.ID,
		&snap.Skills,
		&snap.AvailableFrom,
		&snap.AvailableUntil,
		&snap.WeeklyHours,
		&snap.GraduationYear,
		&snap.CompletedProjects,
		&snap.ActiveProjects,
		&snap.DroppedProjects,
		&snap.Institution,
		&snap.CategoryHistory,
		&snap.UpdatedAt,
	)
	if err != nil {
		return StudentSnapshot{}, err
	}
	return snap, nil
}
