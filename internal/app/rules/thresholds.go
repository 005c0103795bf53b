package rules

import (
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
)

// Score thresholds for deriving a certification status from an audit score.
const (
	VerifiedThreshold    = 75
	ConditionalThreshold = 60
)

// StatusForScore maps a 0-100 audit score to the certification status it
// suggests. The suggestion is applied only if it is a legal transition from
// the company's current status.
func StatusForScore(score int) model.CompanyStatus {
	switch {
	case score >= VerifiedThreshold:
		return model.StatusVerified
	case score >= ConditionalThreshold:
		return model.StatusConditional
	default:
		return model.StatusDidNotPass
	}
}

// StarRating maps a 0-100 review score to a 1-5 star rating.
func StarRating(score int) int {
	switch {
	case score >= 80:
		return 5
	case score >= 60:
		return 4
	case score >= 40:
		return 3
	case score >= 20:
		return 2
	default:
		return 1
	}
}

// SeverityForScore derives an issue severity from the triggering review's
// 0-100 score. Lower-scoring reviews describe worse conduct and produce more
// severe issues.
func SeverityForScore(score int) model.IssueSeverity {
	switch {
	case score >= 80:
		return model.SeverityLow
	case score >= 60:
		return model.SeverityMedium
	case score >= 40:
		return model.SeverityHigh
	default:
		return model.SeverityCritical
	}
}

// SeverityForRating is the fallback when a review carries no numeric score:
// the 1-5 star rating is projected onto the score scale.
func SeverityForRating(rating int) model.IssueSeverity {
	return SeverityForScore(rating * 20)
}
