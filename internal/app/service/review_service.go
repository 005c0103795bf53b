package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/repository"
	"github.com/peaceseal/peaceseal-backend/internal/app/scoring"
	"github.com/peaceseal/peaceseal-backend/pkg/logger"
	"github.com/peaceseal/peaceseal-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound       = errors.New("review not found")
	ErrInvalidReviewerRole  = errors.New("unknown reviewer role")
	ErrReviewTokenInvalid   = errors.New("verification token not recognized")
	ErrReviewAlreadyHandled = errors.New("review verification already decided")
)

// SubmitReviewInput is an anonymous stakeholder review submission.
type SubmitReviewInput struct {
	CompanyID     uint
	Role          model.ReviewerRole
	Answers       model.AnswerMap
	ReviewerName  string
	ReviewerEmail string
}

type ReviewService interface {
	Submit(input SubmitReviewInput) (*model.StakeholderReview, error)
	GetByID(id uint) (*model.StakeholderReview, error)
	ConfirmByToken(token string) (*model.StakeholderReview, error)
	AdminVerify(p model.Principal, reviewID uint) (*model.StakeholderReview, error)
	AdminDismiss(p model.Principal, reviewID uint) (*model.StakeholderReview, error)
	ListByCompany(companyID uint, status model.VerificationStatus, offset, limit int) ([]model.StakeholderReview, int64, error)
	RecomputeAggregates(companyID uint) error
}

// ReviewNotifier is the slice of the mailer this service needs.
type ReviewNotifier interface {
	SendReviewVerification(toEmail, companyName, token string) error
}

type reviewService struct {
	reviewRepo  *repository.ReviewRepository
	companyRepo repository.CompanyRepository
	mail        ReviewNotifier
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	companyRepo repository.CompanyRepository,
	mail ReviewNotifier,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		companyRepo: companyRepo,
		mail:        mail,
	}
}

// Submit scores and stores a stakeholder review. The review enters the
// pipeline as pending; it only affects published ratings once verified.
func (s *reviewService) Submit(input SubmitReviewInput) (*model.StakeholderReview, error) {
	if !input.Role.IsValid() {
		return nil, ErrInvalidReviewerRole
	}

	company, err := s.companyRepo.FindByID(input.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	score, err := scoring.ScoreReview(input.Role, input.Answers)
	if err != nil {
		return nil, err
	}

	review := &model.StakeholderReview{
		CompanyID:          input.CompanyID,
		Role:               input.Role,
		Answers:            input.Answers,
		SectionScores:      score.SectionScores,
		TotalScore:         score.TotalScore,
		StarRating:         score.StarRating,
		VerificationStatus: model.VerificationPending,
		VerificationToken:  uuid.NewString(),
		ReviewerName:       input.ReviewerName,
		ReviewerEmail:      input.ReviewerEmail,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		logger.Error("Failed to store review", err, map[string]interface{}{
			"company_id": input.CompanyID,
			"role":       input.Role,
		})
		return nil, err
	}

	if s.mail != nil && input.ReviewerEmail != "" {
		if err := s.mail.SendReviewVerification(input.ReviewerEmail, company.Name, review.VerificationToken); err != nil {
			logger.Warn("Review verification mail failed", map[string]interface{}{
				"review_id": review.ID,
			})
		}
	}

	logger.Info("Stakeholder review submitted", map[string]interface{}{
		"review_id":  review.ID,
		"company_id": input.CompanyID,
		"role":       input.Role,
		"score":      review.TotalScore,
	})
	return review, nil
}

func (s *reviewService) GetByID(id uint) (*model.StakeholderReview, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// ConfirmByToken records the reviewer's email confirmation. Verification
// itself stays with the advisor pipeline; confirming twice is harmless.
func (s *reviewService) ConfirmByToken(token string) (*model.StakeholderReview, error) {
	review, err := s.reviewRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewTokenInvalid
		}
		return nil, err
	}

	if review.EmailConfirmedAt == nil {
		now := time.Now()
		review.EmailConfirmedAt = &now
		if err := s.reviewRepo.Update(review); err != nil {
			return nil, err
		}
	}
	return review, nil
}

// AdminVerify marks a review verified without an advisor evaluation. Used by
// program admins for moderation.
func (s *reviewService) AdminVerify(p model.Principal, reviewID uint) (*model.StakeholderReview, error) {
	return s.decide(reviewID, model.VerificationVerified)
}

// AdminDismiss marks a review unverified so it never counts toward ratings.
func (s *reviewService) AdminDismiss(p model.Principal, reviewID uint) (*model.StakeholderReview, error) {
	return s.decide(reviewID, model.VerificationUnverified)
}

func (s *reviewService) decide(reviewID uint, status model.VerificationStatus) (*model.StakeholderReview, error) {
	review, err := s.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review.VerificationStatus == status {
		return review, nil
	}

	review.VerificationStatus = status
	if status == model.VerificationVerified {
		now := time.Now()
		review.VerifiedAt = &now
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	if err := s.RecomputeAggregates(review.CompanyID); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListByCompany(companyID uint, status model.VerificationStatus, offset, limit int) ([]model.StakeholderReview, int64, error) {
	return s.reviewRepo.ListByCompanyID(companyID, status, offset, limit)
}

// RecomputeAggregates rebuilds the company's published rating averages from
// the full verified review set. Called after every verification change; a
// review dropping out of the verified set pulls the averages back down.
func (s *reviewService) RecomputeAggregates(companyID uint) error {
	reviews, err := s.reviewRepo.FindVerifiedByCompanyID(companyID)
	if err != nil {
		return err
	}

	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		return err
	}

	var overallSum, overallCount, employeeSum, employeeCount int
	for _, review := range reviews {
		overallSum += review.StarRating
		overallCount++
		if review.Role == model.ReviewerEmployee {
			employeeSum += review.StarRating
			employeeCount++
		}
	}

	company.OverallRatingCount = overallCount
	company.OverallRatingAvg = ratingAverage(overallSum, overallCount)
	company.EmployeeRatingCount = employeeCount
	company.EmployeeRatingAvg = ratingAverage(employeeSum, employeeCount)

	if err := s.companyRepo.Update(company); err != nil {
		return err
	}

	// Cached directory pages carry the aggregates that just changed.
	if err := redis.InvalidatePrefix(context.Background(), directoryCachePrefix); err != nil {
		logger.Warn("Failed to invalidate directory cache", nil)
	}
	return nil
}

func ratingAverage(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}
