package matching

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(v int) *int              { return &v }

func TestSkillsAlignment_PartialOverlap(t *testing.T) {
	s := StudentProfile{Skills: []string{"Python", "SQL"}}
	l := ProjectListing{RequiredSkills: []string{"python", "sql", "react"}}

	res := SkillsAlignment(s, l, time.Now())
	if !almostEqual(res.Score, 2.0/3.0) {
		t.Fatalf("expected score 2/3, got %v", res.Score)
	}
	if len(res.MatchedSkills) != 2 {
		t.Fatalf("expected 2 matched skills, got %v", res.MatchedSkills)
	}
	if len(res.MissingSkills) != 1 || res.MissingSkills[0] != "react" {
		t.Fatalf("expected missing [react], got %v", res.MissingSkills)
	}
}

func TestSkillsAlignment_CaseAndWhitespaceInsensitive(t *testing.T) {
	s := StudentProfile{Skills: []string{"  Machine   Learning "}}
	l := ProjectListing{RequiredSkills: []string{"machine learning"}}

	res := SkillsAlignment(s, l, time.Now())
	if res.Score != 1.0 {
		t.Fatalf("expected score 1.0, got %v", res.Score)
	}
}

func TestSkillsAlignment_NoRequirements(t *testing.T) {
	res := SkillsAlignment(StudentProfile{}, ProjectListing{}, time.Now())
	if res.Score != 1.0 {
		t.Fatalf("expected trivially satisfied score 1.0, got %v", res.Score)
	}
	if res.MatchedSkills == nil || res.MissingSkills == nil {
		t.Fatalf("expected non-nil evidence slices")
	}
}

func TestSkillsAlignment_StudentWithoutSkills(t *testing.T) {
	l := ProjectListing{RequiredSkills: []string{"go", "sql"}}
	res := SkillsAlignment(StudentProfile{}, l, time.Now())
	if res.Score != 0.0 {
		t.Fatalf("expected score 0.0, got %v", res.Score)
	}
	if len(res.MissingSkills) != 2 {
		t.Fatalf("expected 2 missing skills, got %v", res.MissingSkills)
	}
}

func TestTemporalFit_FullContainment(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := StudentProfile{
		AvailableFrom:  timePtr(base),
		AvailableUntil: timePtr(base.AddDate(0, 6, 0)),
	}
	l := ProjectListing{
		StartDate: timePtr(base.AddDate(0, 1, 0)),
		EndDate:   timePtr(base.AddDate(0, 3, 0)),
	}

	res := TemporalFit(s, l, time.Now())
	if res.Score != 1.0 {
		t.Fatalf("expected score 1.0 for full containment, got %v", res.Score)
	}
}

func TestTemporalFit_PartialOverlap(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// Listing runs 100 days; student covers the first 25.
	s := StudentProfile{
		AvailableFrom:  timePtr(base.AddDate(0, 0, -30)),
		AvailableUntil: timePtr(base.AddDate(0, 0, 25)),
	}
	l := ProjectListing{
		StartDate: timePtr(base),
		EndDate:   timePtr(base.AddDate(0, 0, 100)),
	}

	res := TemporalFit(s, l, time.Now())
	if !almostEqual(res.Score, 0.25) {
		t.Fatalf("expected score 0.25, got %v", res.Score)
	}
}

func TestTemporalFit_NoOverlap(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := StudentProfile{
		AvailableFrom:  timePtr(base),
		AvailableUntil: timePtr(base.AddDate(0, 0, 10)),
	}
	l := ProjectListing{
		StartDate: timePtr(base.AddDate(0, 2, 0)),
		EndDate:   timePtr(base.AddDate(0, 3, 0)),
	}

	res := TemporalFit(s, l, time.Now())
	if res.Score != 0.0 {
		t.Fatalf("expected score 0.0 for disjoint windows, got %v", res.Score)
	}
}

func TestTemporalFit_MissingDatesNeutral(t *testing.T) {
	res := TemporalFit(StudentProfile{}, ProjectListing{}, time.Now())
	if res.Score != 0.5 {
		t.Fatalf("expected neutral 0.5, got %v", res.Score)
	}

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	inverted := ProjectListing{
		StartDate: timePtr(base.AddDate(0, 1, 0)),
		EndDate:   timePtr(base),
	}
	s := StudentProfile{AvailableFrom: timePtr(base), AvailableUntil: timePtr(base.AddDate(1, 0, 0))}
	res = TemporalFit(s, inverted, time.Now())
	if res.Score != 0.5 {
		t.Fatalf("expected neutral 0.5 for inverted listing window, got %v", res.Score)
	}
}

func TestSustainability_ExactFormula(t *testing.T) {
	s := StudentProfile{WeeklyHours: intPtr(10)}
	l := ProjectListing{HoursPerWeek: intPtr(20)}

	res := Sustainability(s, l, time.Now())
	if !almostEqual(res.Score, 0.5) {
		t.Fatalf("expected 1-|10-20|/20 = 0.5, got %v", res.Score)
	}

	same := Sustainability(StudentProfile{WeeklyHours: intPtr(15)}, ProjectListing{HoursPerWeek: intPtr(15)}, time.Now())
	if same.Score != 1.0 {
		t.Fatalf("expected 1.0 for equal hours, got %v", same.Score)
	}
}

func TestSustainability_MissingHoursNeutral(t *testing.T) {
	res := Sustainability(StudentProfile{}, ProjectListing{HoursPerWeek: intPtr(20)}, time.Now())
	if res.Score != 0.5 {
		t.Fatalf("expected neutral 0.5, got %v", res.Score)
	}
	res = Sustainability(StudentProfile{WeeklyHours: intPtr(20)}, ProjectListing{}, time.Now())
	if res.Score != 0.5 {
		t.Fatalf("expected neutral 0.5, got %v", res.Score)
	}
}

func TestGrowthTrajectory_LinearDecay(t *testing.T) {
	at := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	fresh := GrowthTrajectory(StudentProfile{}, ProjectListing{PublishedAt: timePtr(at)}, at)
	if fresh.Score != 1.0 {
		t.Fatalf("expected 1.0 for just-published, got %v", fresh.Score)
	}

	half := GrowthTrajectory(StudentProfile{}, ProjectListing{PublishedAt: timePtr(at.Add(-45 * 24 * time.Hour))}, at)
	if !almostEqual(half.Score, 0.5) {
		t.Fatalf("expected 0.5 at half the lookback, got %v", half.Score)
	}

	stale := GrowthTrajectory(StudentProfile{}, ProjectListing{PublishedAt: timePtr(at.Add(-120 * 24 * time.Hour))}, at)
	if stale.Score != 0.0 {
		t.Fatalf("expected 0.0 beyond the lookback, got %v", stale.Score)
	}
}

func TestGrowthTrajectory_MissingPublishedAtNeutral(t *testing.T) {
	res := GrowthTrajectory(StudentProfile{}, ProjectListing{}, time.Now())
	if res.Score != 0.5 {
		t.Fatalf("expected neutral 0.5, got %v", res.Score)
	}
}

func TestTrustReliability_CompletionRatio(t *testing.T) {
	s := StudentProfile{CompletedProjects: 3, DroppedProjects: 1}
	res := TrustReliability(s, ProjectListing{}, time.Now())
	if !almostEqual(res.Score, 0.75) {
		t.Fatalf("expected 0.75, got %v", res.Score)
	}
}

func TestTrustReliability_ColdStartNeutral(t *testing.T) {
	res := TrustReliability(StudentProfile{}, ProjectListing{}, time.Now())
	if res.Score != 0.5 {
		t.Fatalf("expected cold start 0.5, got %v", res.Score)
	}
}

func TestNetworkAffinity_Grades(t *testing.T) {
	s := StudentProfile{
		Institution:     "State University",
		CategoryHistory: []string{"Web Development"},
	}

	category := NetworkAffinity(s, ProjectListing{Category: "web development"}, time.Now())
	if category.Score != 1.0 {
		t.Fatalf("expected 1.0 for category overlap, got %v", category.Score)
	}

	affiliation := NetworkAffinity(s, ProjectListing{
		Category:            "data science",
		SponsorAffiliations: []string{"state university"},
	}, time.Now())
	if affiliation.Score != 0.5 {
		t.Fatalf("expected 0.5 for institutional affiliation, got %v", affiliation.Score)
	}

	none := NetworkAffinity(StudentProfile{}, ProjectListing{Category: "robotics"}, time.Now())
	if none.Score != 0.0 {
		t.Fatalf("expected 0.0 with no affinity signal, got %v", none.Score)
	}
}

func TestExtractors_ZeroValuesNeverPanic(t *testing.T) {
	reg, err := NewDefaultRegistry()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	for _, sig := range reg.Signals() {
		res := sig.Evaluate(StudentProfile{ID: uuid.New()}, ProjectListing{ID: uuid.New()}, time.Now())
		if res.Score < 0 || res.Score > 1 {
			t.Fatalf("signal %s: score %v outside [0,1]", sig.Name, res.Score)
		}
	}
}
