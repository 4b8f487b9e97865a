package dto

import (
	"campusbridge/internal/usecase"

	"github.com/google/uuid"
)

// BreakdownEntryResponse is one per-signal line of the explainability
// breakdown the UI renders next to each score.
type BreakdownEntryResponse struct {
	Signal string  `json:"signal"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

type RecommendationResponse struct {
	CandidateID    uuid.UUID                `json:"candidate_id"`
	CompositeScore float64                  `json:"composite_score"`
	MatchedSkills  []string                 `json:"matched_skills"`
	MissingSkills  []string                 `json:"missing_skills"`
	Breakdown      []BreakdownEntryResponse `json:"breakdown"`
}

type RecommendationListResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
	Total           int                      `json:"total"`
	Partial         bool                     `json:"partial"`
}

// NewRecommendationListResponse projects a ranked page into the external
// contract: every registered signal appears in every breakdown, and the
// evidence skill sets are never null.
func NewRecommendationListResponse(page usecase.RecommendationPage) RecommendationListResponse {
	out := RecommendationListResponse{
		Recommendations: make([]RecommendationResponse, 0, len(page.Items)),
		Total:           page.Total,
		Partial:         page.Partial,
	}
	for _, item := range page.Items {
		out.Recommendations = append(out.Recommendations, newRecommendationResponse(item))
	}
	return out
}

func newRecommendationResponse(item usecase.RecommendationItem) RecommendationResponse {
	breakdown := make([]BreakdownEntryResponse, 0, len(item.Breakdown))
	for _, entry := range item.Breakdown {
		breakdown = append(breakdown, BreakdownEntryResponse{
			Signal: entry.Signal,
			Score:  entry.Score,
			Weight: entry.Weight,
		})
	}

	matched := item.MatchedSkills
	if matched == nil {
		matched = []string{}
	}
	missing := item.MissingSkills
	if missing == nil {
		missing = []string{}
	}

	return RecommendationResponse{
		CandidateID:    item.CandidateID,
		CompositeScore: item.CompositeScore,
		MatchedSkills:  matched,
		MissingSkills:  missing,
		Breakdown:      breakdown,
	}
}
