package scoring

import (
	"testing"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreReview_UnknownRole(t *testing.T) {
	score, err := ScoreReview(model.ReviewerRole("regulator"), model.AnswerMap{})
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.Nil(t, score)
}

func TestScoreReview_NAAnswersExcluded(t *testing.T) {
	// Two yes, one no, one na in one section: 2/3 answered yes -> 67.
	// Every other section is unanswered and scores 0.
	answers := model.AnswerMap{
		"fairWagesBenefits":      "yes",
		"hasDeiPrograms":         "yes",
		"protectsFromHarassment": "no",
		"hasMentalHealthSupport": "na",
	}

	score, err := ScoreReview(model.ReviewerEmployee, answers)
	require.NoError(t, err)

	assert.Equal(t, 67, score.SectionScores["employeeRightsWorkplaceCulture"])
	assert.Equal(t, 0, score.SectionScores["fairCompensationJobSecurity"])

	// 67 * 0.30 weight, remaining sections contribute nothing.
	assert.Equal(t, 20, score.TotalScore)
	assert.Equal(t, 2, score.StarRating)
}

func TestScoreReview_AllYes(t *testing.T) {
	answers := model.AnswerMap{}
	sections, _ := rules.SectionsForRole(model.ReviewerCustomer)
	for _, section := range sections {
		for _, q := range rules.QuestionsForSection(model.ReviewerCustomer, section.ID) {
			answers[q] = "yes"
		}
	}

	score, err := ScoreReview(model.ReviewerCustomer, answers)
	require.NoError(t, err)
	assert.Equal(t, 100, score.TotalScore)
	assert.Equal(t, 5, score.StarRating)
	for _, section := range sections {
		assert.Equal(t, 100, score.SectionScores[section.ID])
	}
}

func TestScoreReview_NoAnswers(t *testing.T) {
	score, err := ScoreReview(model.ReviewerSupplier, model.AnswerMap{})
	require.NoError(t, err)
	assert.Equal(t, 0, score.TotalScore)
	assert.Equal(t, 1, score.StarRating)
}

func TestScoreReview_NonStringAnswersTreatedAsNA(t *testing.T) {
	answers := model.AnswerMap{
		"fairWagesBenefits": true, // wrong type, ignored
		"hasDeiPrograms":    "yes",
	}

	score, err := ScoreReview(model.ReviewerEmployee, answers)
	require.NoError(t, err)
	assert.Equal(t, 100, score.SectionScores["employeeRightsWorkplaceCulture"])
}

func TestScoreReview_Deterministic(t *testing.T) {
	answers := model.AnswerMap{
		"deliversAsPromised":      "yes",
		"productsSafeReliable":    "no",
		"handlesComplaintsFairly": "yes",
		"advertisingTruthful":     "yes",
		"pricingTransparent":      "no",
	}

	first, err := ScoreReview(model.ReviewerCustomer, answers)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := ScoreReview(model.ReviewerCustomer, answers)
		require.NoError(t, err)
		assert.Equal(t, first.TotalScore, again.TotalScore)
		assert.Equal(t, first.StarRating, again.StarRating)
		assert.Equal(t, first.SectionScores, again.SectionScores)
	}
}
