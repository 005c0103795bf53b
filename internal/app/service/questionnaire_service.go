package service

import (
	"errors"
	"time"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/repository"
	"github.com/peaceseal/peaceseal-backend/internal/app/scoring"
	"github.com/peaceseal/peaceseal-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrQuestionnaireNotFound  = errors.New("questionnaire not found")
	ErrQuestionnaireCompleted = errors.New("questionnaire already completed")
)

// SelfAssessment is the advisory preview computed from a company's own
// answers. It is never the official audit score.
type SelfAssessment struct {
	TotalScore    int            `json:"total_score"`
	SectionScores model.ScoreMap `json:"section_scores"`
	Progress      int            `json:"progress"`
}

type QuestionnaireService interface {
	SaveAnswers(companyID uint, answers model.AnswerMap) (*model.Questionnaire, error)
	Get(companyID uint) (*model.Questionnaire, error)
	Complete(companyID uint) (*model.Questionnaire, error)
	AttachDocument(companyID uint, url string) (*model.Questionnaire, error)
	Assess(companyID uint) (*SelfAssessment, error)
}

type questionnaireService struct {
	questionnaireRepo *repository.QuestionnaireRepository
	companyRepo       repository.CompanyRepository
}

func NewQuestionnaireService(
	questionnaireRepo *repository.QuestionnaireRepository,
	companyRepo repository.CompanyRepository,
) QuestionnaireService {
	return &questionnaireService{
		questionnaireRepo: questionnaireRepo,
		companyRepo:       companyRepo,
	}
}

// SaveAnswers merges the submitted answers into the company's questionnaire,
// creating it on first save. Progress is recomputed on every save.
func (s *questionnaireService) SaveAnswers(companyID uint, answers model.AnswerMap) (*model.Questionnaire, error) {
	if _, err := s.companyRepo.FindByID(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	q, err := s.questionnaireRepo.FindByCompanyID(companyID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		q = &model.Questionnaire{
			CompanyID: companyID,
			Answers:   model.AnswerMap{},
		}
		if err := s.questionnaireRepo.Create(q); err != nil {
			return nil, err
		}
	}

	if q.CompletedAt != nil {
		return nil, ErrQuestionnaireCompleted
	}

	if q.Answers == nil {
		q.Answers = model.AnswerMap{}
	}
	for k, v := range answers {
		q.Answers[k] = v
	}
	q.Progress = scoring.Progress(q.Answers)

	if err := s.questionnaireRepo.Update(q); err != nil {
		return nil, err
	}

	logger.Debug("Questionnaire answers saved", map[string]interface{}{
		"company_id": companyID,
		"progress":   q.Progress,
	})
	return q, nil
}

func (s *questionnaireService) Get(companyID uint) (*model.Questionnaire, error) {
	q, err := s.questionnaireRepo.FindByCompanyID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionnaireNotFound
		}
		return nil, err
	}
	return q, nil
}

// Complete freezes the questionnaire for audit. Answers cannot change after
// completion.
func (s *questionnaireService) Complete(companyID uint) (*model.Questionnaire, error) {
	q, err := s.Get(companyID)
	if err != nil {
		return nil, err
	}
	if q.CompletedAt != nil {
		return nil, ErrQuestionnaireCompleted
	}

	now := time.Now()
	q.CompletedAt = &now
	if err := s.questionnaireRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *questionnaireService) AttachDocument(companyID uint, url string) (*model.Questionnaire, error) {
	q, err := s.Get(companyID)
	if err != nil {
		return nil, err
	}

	q.DocumentURLs = append(q.DocumentURLs, url)
	if err := s.questionnaireRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *questionnaireService) Assess(companyID uint) (*SelfAssessment, error) {
	q, err := s.Get(companyID)
	if err != nil {
		return nil, err
	}

	return &SelfAssessment{
		TotalScore:    scoring.ScoreQuestionnaire(q.Answers),
		SectionScores: scoring.SectionScores(q.Answers),
		Progress:      q.Progress,
	}, nil
}
