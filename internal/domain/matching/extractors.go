package matching

import (
	"math"
	"sort"
	"strings"
	"time"
)

// neutralScore is returned whenever an extractor cannot evaluate its inputs
// (missing or malformed data). Candidates are never excluded for missing
// fields; they score the documented default instead.
const neutralScore = 0.5

// growthLookback is the window over which a listing's recency boost decays
// linearly to zero.
const growthLookback = 90 * 24 * time.Hour

// NormalizeSkillTag lowercases a tag and collapses internal whitespace so
// "  Machine Learning " and "machine learning" compare equal.
func NormalizeSkillTag(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

func normalizeTagSet(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = NormalizeSkillTag(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// SkillsAlignment scores the fraction of the listing's required skills the
// student holds. A listing with no requirements is trivially satisfied.
func SkillsAlignment(s StudentProfile, l ProjectListing, _ time.Time) SignalResult {
	required := normalizeTagSet(l.RequiredSkills)
	if len(required) == 0 {
		return SignalResult{Score: 1.0, MatchedSkills: []string{}, MissingSkills: []string{}}
	}

	held := make(map[string]bool, len(s.Skills))
	for _, t := range normalizeTagSet(s.Skills) {
		held[t] = true
	}

	matched := make([]string, 0, len(required))
	missing := make([]string, 0)
	for _, t := range required {
		if held[t] {
			matched = append(matched, t)
		} else {
			missing = append(missing, t)
		}
	}

	return SignalResult{
		Score:         float64(len(matched)) / float64(len(required)),
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}

// TemporalFit scores how much of the listing's run the student is available
// for: 1.0 for full containment, the overlapping-day fraction for partial
// overlap, 0.0 for none. Missing or inverted dates score neutral.
func TemporalFit(s StudentProfile, l ProjectListing, _ time.Time) SignalResult {
	if s.AvailableFrom == nil || s.AvailableUntil == nil || l.StartDate == nil || l.EndDate == nil {
		return SignalResult{Score: neutralScore}
	}

	duration := l.EndDate.Sub(*l.StartDate)
	if duration <= 0 {
		return SignalResult{Score: neutralScore}
	}

	overlapStart := *l.StartDate
	if s.AvailableFrom.After(overlapStart) {
		overlapStart = *s.AvailableFrom
	}
	overlapEnd := *l.EndDate
	if s.AvailableUntil.Before(overlapEnd) {
		overlapEnd = *s.AvailableUntil
	}

	overlap := overlapEnd.Sub(overlapStart)
	if overlap <= 0 {
		return SignalResult{Score: 0.0}
	}

	return SignalResult{Score: clamp01(float64(overlap) / float64(duration))}
}

// Sustainability penalizes the gap between the student's weekly capacity and
// the listing's weekly demand.
func Sustainability(s StudentProfile, l ProjectListing, _ time.Time) SignalResult {
	if s.WeeklyHours == nil || l.HoursPerWeek == nil {
		return SignalResult{Score: neutralScore}
	}

	sh := float64(*s.WeeklyHours)
	lh := float64(*l.HoursPerWeek)
	denom := math.Max(math.Max(sh, lh), 1)

	score := 1 - math.Abs(sh-lh)/denom
	return SignalResult{Score: clamp01(score)}
}

// GrowthTrajectory boosts newer listings, decaying linearly to zero over the
// lookback window. Listings older than the window score 0; a listing with no
// publication timestamp scores neutral.
func GrowthTrajectory(_ StudentProfile, l ProjectListing, at time.Time) SignalResult {
	if l.PublishedAt == nil || l.PublishedAt.IsZero() {
		return SignalResult{Score: neutralScore}
	}

	age := at.Sub(*l.PublishedAt)
	if age < 0 {
		age = 0
	}

	return SignalResult{Score: clamp01(1 - float64(age)/float64(growthLookback))}
}

// TrustReliability is the student's historical completion ratio. A student
// with no finished or dropped projects is a cold start and scores neutral
// rather than being penalized.
func TrustReliability(s StudentProfile, _ ProjectListing, _ time.Time) SignalResult {
	attempts := s.CompletedProjects + s.DroppedProjects
	if attempts <= 0 {
		return SignalResult{Score: neutralScore}
	}

	return SignalResult{Score: clamp01(float64(s.CompletedProjects) / float64(attempts))}
}

// NetworkAffinity grades the overlap between the student's category history
// and institutional affiliation and the listing's sponsor: 1.0 for a category
// the student has worked in, 0.5 for a sponsor affiliated with the student's
// institution, 0.0 when there is no signal at all.
func NetworkAffinity(s StudentProfile, l ProjectListing, _ time.Time) SignalResult {
	category := NormalizeSkillTag(l.Category)
	if category != "" {
		for _, c := range s.CategoryHistory {
			if NormalizeSkillTag(c) == category {
				return SignalResult{Score: 1.0}
			}
		}
	}

	institution := NormalizeSkillTag(s.Institution)
	if institution != "" {
		for _, a := range l.SponsorAffiliations {
			if NormalizeSkillTag(a) == institution {
				return SignalResult{Score: 0.5}
			}
		}
	}

	return SignalResult{Score: 0.0}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
