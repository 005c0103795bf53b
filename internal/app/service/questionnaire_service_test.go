package service

import (
	"testing"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/repository"
	"github.com/peaceseal/peaceseal-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupQuestionnaireServiceTest(t *testing.T) (QuestionnaireService, *model.Company) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	questionnaireRepo := repository.NewQuestionnaireRepository(testDB)
	companyRepo := repository.NewCompanyRepository(testDB)
	questionnaireService := NewQuestionnaireService(questionnaireRepo, companyRepo)

	company := &model.Company{
		Name: "Applicant Co", Slug: "applicant-co", Country: "Ireland",
		EmployeeCount: 40, Status: model.StatusDraft,
	}
	require.NoError(t, testDB.Create(company).Error)

	return questionnaireService, company
}

func TestQuestionnaireService_SaveAnswers_CreatesAndMerges(t *testing.T) {
	questionnaireService, company := setupQuestionnaireServiceTest(t)

	first, err := questionnaireService.SaveAnswers(company.ID, model.AnswerMap{
		"hasCodeOfEthics": true,
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Greater(t, first.Progress, 0)

	// A later save merges into the same questionnaire.
	second, err := questionnaireService.SaveAnswers(company.ID, model.AnswerMap{
		"noChildOrForcedLabor": true,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, true, second.Answers["hasCodeOfEthics"])
	assert.Equal(t, true, second.Answers["noChildOrForcedLabor"])
	assert.Greater(t, second.Progress, first.Progress)
}

func TestQuestionnaireService_SaveAnswers_CompanyNotFound(t *testing.T) {
	questionnaireService, _ := setupQuestionnaireServiceTest(t)

	_, err := questionnaireService.SaveAnswers(9999, model.AnswerMap{})
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestQuestionnaireService_Complete_FreezesAnswers(t *testing.T) {
	questionnaireService, company := setupQuestionnaireServiceTest(t)

	_, err := questionnaireService.SaveAnswers(company.ID, model.AnswerMap{
		"hasCodeOfEthics": true,
	})
	require.NoError(t, err)

	completed, err := questionnaireService.Complete(company.ID)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)

	_, err = questionnaireService.Complete(company.ID)
	assert.ErrorIs(t, err, ErrQuestionnaireCompleted)

	_, err = questionnaireService.SaveAnswers(company.ID, model.AnswerMap{
		"hasEthicsTraining": true,
	})
	assert.ErrorIs(t, err, ErrQuestionnaireCompleted)
}

func TestQuestionnaireService_Get_NotFound(t *testing.T) {
	questionnaireService, company := setupQuestionnaireServiceTest(t)

	_, err := questionnaireService.Get(company.ID)
	assert.ErrorIs(t, err, ErrQuestionnaireNotFound)
}

func TestQuestionnaireService_AttachDocument(t *testing.T) {
	questionnaireService, company := setupQuestionnaireServiceTest(t)

	_, err := questionnaireService.SaveAnswers(company.ID, model.AnswerMap{
		"hasCodeOfEthics": true,
	})
	require.NoError(t, err)

	q, err := questionnaireService.AttachDocument(company.ID, "https://cdn.example.org/evidence/policy.pdf")
	require.NoError(t, err)
	require.Len(t, q.DocumentURLs, 1)

	q, err = questionnaireService.AttachDocument(company.ID, "https://cdn.example.org/evidence/audit.pdf")
	require.NoError(t, err)
	assert.Len(t, q.DocumentURLs, 2)
}

func TestQuestionnaireService_Assess(t *testing.T) {
	questionnaireService, company := setupQuestionnaireServiceTest(t)

	_, err := questionnaireService.SaveAnswers(company.ID, model.AnswerMap{
		"hasCodeOfEthics":   true,
		"hasEthicsTraining": true,
	})
	require.NoError(t, err)

	assessment, err := questionnaireService.Assess(company.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, assessment.SectionScores["governanceEthics"])
	assert.Greater(t, assessment.Progress, 0)
	// 50 governance points at its 0.09 weight.
	assert.Equal(t, 5, assessment.TotalScore)
}
