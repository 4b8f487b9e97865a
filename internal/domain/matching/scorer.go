package matching

import "time"

// SignalScore is one entry of a composite score's breakdown.
type SignalScore struct {
	Name   SignalName
	Score  float64
	Weight float64
}

// CompositeScore is the weighted aggregate of all registered signals for one
// (student, listing) pair, on a 0-100 scale. Breakdown preserves registry
// order; MatchedSkills/MissingSkills come from the skills-alignment evidence.
type CompositeScore struct {
	Value         float64
	Breakdown     []SignalScore
	MatchedSkills []string
	MissingSkills []string
}

// Score evaluates every registered signal for the pair at the given time.
// Each signal score is clamped to [0,1] before weighting so a misbehaving
// extractor cannot push the composite outside [0,100].
func (r *Registry) Score(s StudentProfile, l ProjectListing, at time.Time) CompositeScore {
	breakdown := make([]SignalScore, 0, len(r.signals))
	matched := []string{}
	missing := []string{}

	total := 0.0
	for _, sig := range r.signals {
		res := sig.Evaluate(s, l, at)
		score := clamp01(res.Score)
		total += sig.Weight * score

		breakdown = append(breakdown, SignalScore{Name: sig.Name, Score: score, Weight: sig.Weight})

		if sig.Name == SignalSkillsAlignment {
			if res.MatchedSkills != nil {
				matched = res.MatchedSkills
			}
			if res.MissingSkills != nil {
				missing = res.MissingSkills
			}
		}
	}

	value := 100 * total
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	return CompositeScore{
		Value:         value,
		Breakdown:     breakdown,
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}
