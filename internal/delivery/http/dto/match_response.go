package dto

import "campusbridge/internal/usecase"

type MatchResultResponse struct {
	CompositeScore float64                  `json:"composite_score"`
	MatchedSkills  []string                 `json:"matched_skills"`
	MissingSkills  []string                 `json:"missing_skills"`
	Breakdown      []BreakdownEntryResponse `json:"breakdown"`
}

func NewMatchResultResponse(res usecase.MatchResult) MatchResultResponse {
	breakdown := make([]BreakdownEntryResponse, 0, len(res.Breakdown))
	for _, entry := range res.Breakdown {
		breakdown = append(breakdown, BreakdownEntryResponse{
			Signal: entry.Signal,
			Score:  entry.Score,
			Weight: entry.Weight,
		})
	}

	matched := res.MatchedSkills
	if matched == nil {
		matched = []string{}
	}
	missing := res.MissingSkills
	if missing == nil {
		missing = []string{}
	}

	return MatchResultResponse{
		CompositeScore: res.CompositeScore,
		MatchedSkills:  matched,
		MissingSkills:  missing,
		Breakdown:      breakdown,
	}
}
