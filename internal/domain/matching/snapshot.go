package matching

import (
	"time"

	"github.com/google/uuid"
)

// StudentProfile is the engine's read-only view of a student. Optional
// attributes are pointers: nil means the student never declared the value,
// and the owning extractor substitutes its documented neutral default.
type StudentProfile struct {
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

// ProjectListing is the engine's read-only view of a published listing.
type ProjectListing struct {
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
