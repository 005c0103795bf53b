// Package scoring implements the deterministic trust-scoring engine for
// applicant questionnaires and stakeholder reviews. Every function here is
// pure: identical answers and rule tables always produce identical scores.
package scoring

import (
	"errors"
	"math"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/rules"
)

var ErrUnknownRole = errors.New("unknown stakeholder role")

// Review answer values.
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
	AnswerNA  = "na"
)

// ReviewScore is the result of scoring one stakeholder review.
type ReviewScore struct {
	SectionScores model.ScoreMap
	TotalScore    int // 0-100
	StarRating    int // 1-5
}

// ScoreReview scores a stakeholder review for the submitter's role. Per
// section, the sub-score is the share of yes answers over answered (yes+no)
// questions; na answers are excluded from both sides, and a section with no
// yes/no answers scores 0.
func ScoreReview(role model.ReviewerRole, answers model.AnswerMap) (*ReviewScore, error) {
	sections, ok := rules.SectionsForRole(role)
	if !ok {
		return nil, ErrUnknownRole
	}

	sectionScores := make(model.ScoreMap, len(sections))
	total := 0.0

	for _, section := range sections {
		sub := scoreReviewSection(role, section.ID, answers)
		sectionScores[section.ID] = sub
		total += float64(sub) * section.Weight
	}

	totalScore := clampScore(int(math.Round(total)))

	return &ReviewScore{
		SectionScores: sectionScores,
		TotalScore:    totalScore,
		StarRating:    rules.StarRating(totalScore),
	}, nil
}

func scoreReviewSection(role model.ReviewerRole, sectionID string, answers model.AnswerMap) int {
	yes, answered := 0, 0

	for _, questionID := range rules.QuestionsForSection(role, sectionID) {
		switch reviewAnswer(answers, questionID) {
		case AnswerYes:
			yes++
			answered++
		case AnswerNo:
			answered++
		}
	}

	if answered == 0 {
		return 0
	}
	return int(math.Round(float64(yes) / float64(answered) * 100))
}

// reviewAnswer normalizes one answer value; anything other than yes/no is
// treated as na and excluded from scoring.
func reviewAnswer(answers model.AnswerMap, questionID string) string {
	raw, ok := answers[questionID]
	if !ok {
		return AnswerNA
	}
	s, ok := raw.(string)
	if !ok {
		return AnswerNA
	}
	switch s {
	case AnswerYes, AnswerNo:
		return s
	}
	return AnswerNA
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
