package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"
)

const (
	subjectTypeStudent = "student"
	subjectTypeListing = "listing"

	recommendationKeyPrefix = "rec:"
)

type recommendationCacheKeyInput struct {
	SubjectType string `json:"subject_type"`
	SubjectID   string `json:"subject_id"`
	Profile     string `json:"profile"`
	PoolVersion string `json:"pool_version"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
}

// recommendationCacheKey derives a stable key from everything the ranking is
// a pure function of: subject, scoring profile, pool version, pagination.
func recommendationCacheKey(subjectType string, subjectID uuid.UUID, profile, poolVersion string, params RecommendationParams) string {
	in := recommendationCacheKeyInput{
		SubjectType: subjectType,
		SubjectID:   subjectID.String(),
		Profile:     profile,
		PoolVersion: poolVersion,
		Limit:       params.Limit,
		Offset:      params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return recommendationKeyPrefix + subjectType + ":" + hex.EncodeToString(sum[:])
}

// RecommendationCachePattern matches every cached recommendation page, used
// for eager invalidation when the listing corpus changes.
func RecommendationCachePattern() string {
	return recommendationKeyPrefix + "*"
}
