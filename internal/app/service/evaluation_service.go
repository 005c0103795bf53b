package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/repository"
	"github.com/peaceseal/peaceseal-backend/internal/app/rules"
	"github.com/peaceseal/peaceseal-backend/pkg/logger"
	"github.com/peaceseal/peaceseal-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrEvaluationNotFound      = errors.New("evaluation not found")
	ErrInvalidEvaluationStatus = errors.New("invalid evaluation status")
	ErrResponseNotExpected     = errors.New("evaluation does not await a company response")
	ErrResponseDeadlinePassed  = errors.New("response deadline has passed")
	ErrResponseNotSubmitted    = errors.New("no company response to decide on")
)

// ResponseDeadlineDays is how long a company has to answer a flagged review.
const ResponseDeadlineDays = 30

// RatingAggregator recomputes published rating averages after a review's
// verification status changes.
type RatingAggregator interface {
	RecomputeAggregates(companyID uint) error
}

// ResponseNotifier is the slice of the mailer this service needs.
type ResponseNotifier interface {
	SendResponseRequested(toEmail, companyName string, deadlineDays int) error
}

type EvaluationService interface {
	Evaluate(p model.Principal, reviewID, advisorID uint, status model.EvaluationStatus, notes string) (*model.ReviewEvaluation, error)
	GetByID(id uint) (*model.ReviewEvaluation, error)
	SubmitCompanyResponse(p model.Principal, evaluationID uint, response string) (*model.ReviewEvaluation, error)
	ApproveResponse(p model.Principal, evaluationID uint, resolution string) (*model.ReviewEvaluation, error)
	RejectResponse(p model.Principal, evaluationID uint, notes string) (*model.ReviewEvaluation, error)
	RecomputeIssueState(companyID uint) error
	ProcessOverdueResponses(now time.Time) (int, error)
}

type evaluationService struct {
	evaluationRepo repository.EvaluationRepository
	reviewRepo     *repository.ReviewRepository
	issueRepo      repository.IssueRepository
	companyRepo    repository.CompanyRepository
	historyRepo    *repository.HistoryRepository
	userRepo       repository.UserRepository
	aggregator     RatingAggregator
	mail           ResponseNotifier
}

func NewEvaluationService(
	evaluationRepo repository.EvaluationRepository,
	reviewRepo *repository.ReviewRepository,
	issueRepo repository.IssueRepository,
	companyRepo repository.CompanyRepository,
	historyRepo *repository.HistoryRepository,
	userRepo repository.UserRepository,
	aggregator RatingAggregator,
	mail ResponseNotifier,
) EvaluationService {
	return &evaluationService{
		evaluationRepo: evaluationRepo,
		reviewRepo:     reviewRepo,
		issueRepo:      issueRepo,
		companyRepo:    companyRepo,
		historyRepo:    historyRepo,
		userRepo:       userRepo,
		aggregator:     aggregator,
		mail:           mail,
	}
}

// Evaluate records an advisor's judgment of a review. A review has at most
// one evaluation; evaluating again overwrites the previous judgment and
// replays the side effects for the new status.
func (s *evaluationService) Evaluate(p model.Principal, reviewID, advisorID uint, status model.EvaluationStatus, notes string) (*model.ReviewEvaluation, error) {
	switch status {
	case model.EvaluationValid, model.EvaluationInvalid, model.EvaluationRequiresResponse:
	default:
		return nil, ErrInvalidEvaluationStatus
	}

	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	eval := &model.ReviewEvaluation{
		ReviewID:  reviewID,
		AdvisorID: advisorID,
		Status:    status,
		Notes:     notes,
	}

	previous, err := s.evaluationRepo.FindByReviewID(reviewID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if previous != nil {
		// Carry the response thread; a re-evaluation is not a fresh case.
		eval.CompanyResponse = previous.CompanyResponse
		eval.RespondedAt = previous.RespondedAt
		eval.FinalResolution = previous.FinalResolution
		if previous.Status == model.EvaluationRequiresResponse && status == model.EvaluationRequiresResponse {
			eval.ResponseDeadline = previous.ResponseDeadline
		}
	}

	if status == model.EvaluationRequiresResponse && eval.ResponseDeadline == nil {
		deadline := time.Now().Add(ResponseDeadlineDays * 24 * time.Hour)
		eval.ResponseDeadline = &deadline
	}

	outcome, err := s.evaluationRepo.Upsert(eval)
	if err != nil {
		return nil, err
	}

	logger.Info("Review evaluated", map[string]interface{}{
		"review_id":  reviewID,
		"advisor_id": advisorID,
		"status":     status,
		"created":    outcome == repository.UpsertCreated,
	})

	switch status {
	case model.EvaluationValid:
		if err := s.setReviewVerification(review, model.VerificationVerified); err != nil {
			return nil, err
		}
		if err := s.closeIssueIfOpen(eval.ID, review.CompanyID); err != nil {
			return nil, err
		}
	case model.EvaluationInvalid:
		if err := s.setReviewVerification(review, model.VerificationUnverified); err != nil {
			return nil, err
		}
		if err := s.closeIssueIfOpen(eval.ID, review.CompanyID); err != nil {
			return nil, err
		}
	case model.EvaluationRequiresResponse:
		if err := s.openIssue(eval, review); err != nil {
			return nil, err
		}
		s.notifyCompany(review.CompanyID)
	}

	return eval, nil
}

func (s *evaluationService) GetByID(id uint) (*model.ReviewEvaluation, error) {
	eval, err := s.evaluationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		return nil, err
	}
	return eval, nil
}

func (s *evaluationService) setReviewVerification(review *model.StakeholderReview, status model.VerificationStatus) error {
	if review.VerificationStatus == status {
		return nil
	}
	review.VerificationStatus = status
	if status == model.VerificationVerified {
		now := time.Now()
		review.VerifiedAt = &now
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return err
	}
	return s.aggregator.RecomputeAggregates(review.CompanyID)
}

// openIssue creates the issue for a flagged evaluation, or reactivates the
// existing one. Severity is fixed at creation and survives reactivation.
func (s *evaluationService) openIssue(eval *model.ReviewEvaluation, review *model.StakeholderReview) error {
	issue, err := s.issueRepo.FindByEvaluationID(eval.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		issue = &model.CompanyIssue{
			EvaluationID: eval.ID,
			CompanyID:    review.CompanyID,
			Severity:     issueSeverity(review),
			Status:       model.IssueActive,
		}
		if err := s.issueRepo.Create(issue); err != nil {
			return err
		}
	} else if issue.Status != model.IssueActive {
		issue.Status = model.IssueActive
		issue.ResolvedAt = nil
		if err := s.issueRepo.Update(issue); err != nil {
			return err
		}
	}

	return s.RecomputeIssueState(review.CompanyID)
}

func issueSeverity(review *model.StakeholderReview) model.IssueSeverity {
	if review.TotalScore > 0 {
		return rules.SeverityForScore(review.TotalScore)
	}
	return rules.SeverityForRating(review.StarRating)
}

// closeIssueIfOpen dismisses the evaluation's issue when the advisor walks
// back a flag.
func (s *evaluationService) closeIssueIfOpen(evaluationID, companyID uint) error {
	issue, err := s.issueRepo.FindByEvaluationID(evaluationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if issue.Status == model.IssueDismissed || issue.Status == model.IssueResolved {
		return nil
	}

	issue.Status = model.IssueDismissed
	if err := s.issueRepo.Update(issue); err != nil {
		return err
	}
	return s.RecomputeIssueState(companyID)
}

// SubmitCompanyResponse records the company's answer to a flagged review and
// parks the issue for advisor review. Late responses are refused and the
// evaluation is closed as unresolved.
func (s *evaluationService) SubmitCompanyResponse(p model.Principal, evaluationID uint, response string) (*model.ReviewEvaluation, error) {
	eval, err := s.GetByID(evaluationID)
	if err != nil {
		return nil, err
	}
	if eval.Status != model.EvaluationRequiresResponse {
		return nil, ErrResponseNotExpected
	}

	if eval.ResponseDeadline != nil && time.Now().After(*eval.ResponseDeadline) {
		if err := s.markUnresolved(eval); err != nil {
			return nil, err
		}
		return nil, ErrResponseDeadlinePassed
	}

	now := time.Now()
	eval.CompanyResponse = response
	eval.RespondedAt = &now
	if err := s.evaluationRepo.Update(eval); err != nil {
		return nil, err
	}

	issue, err := s.issueRepo.FindByEvaluationID(evaluationID)
	if err == nil && issue.Status == model.IssueActive {
		issue.Status = model.IssuePendingReview
		if err := s.issueRepo.Update(issue); err != nil {
			return nil, err
		}
		if err := s.RecomputeIssueState(issue.CompanyID); err != nil {
			return nil, err
		}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return eval, nil
}

// ApproveResponse accepts the company's response: the evaluation and its
// issue both close as resolved.
func (s *evaluationService) ApproveResponse(p model.Principal, evaluationID uint, resolution string) (*model.ReviewEvaluation, error) {
	eval, err := s.GetByID(evaluationID)
	if err != nil {
		return nil, err
	}
	if eval.Status != model.EvaluationRequiresResponse {
		return nil, ErrResponseNotExpected
	}
	if eval.RespondedAt == nil {
		return nil, ErrResponseNotSubmitted
	}

	eval.Status = model.EvaluationResolved
	eval.FinalResolution = resolution
	if err := s.evaluationRepo.Update(eval); err != nil {
		return nil, err
	}

	issue, err := s.issueRepo.FindByEvaluationID(evaluationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return eval, nil
		}
		return nil, err
	}

	now := time.Now()
	issue.Status = model.IssueResolved
	issue.ResolvedAt = &now
	if err := s.issueRepo.Update(issue); err != nil {
		return nil, err
	}
	if err := s.RecomputeIssueState(issue.CompanyID); err != nil {
		return nil, err
	}
	return eval, nil
}

// RejectResponse sends the case back to the company. The issue reactivates,
// the response is cleared for a new attempt, and the original deadline keeps
// running.
func (s *evaluationService) RejectResponse(p model.Principal, evaluationID uint, notes string) (*model.ReviewEvaluation, error) {
	eval, err := s.GetByID(evaluationID)
	if err != nil {
		return nil, err
	}
	if eval.Status != model.EvaluationRequiresResponse {
		return nil, ErrResponseNotExpected
	}
	if eval.RespondedAt == nil {
		return nil, ErrResponseNotSubmitted
	}

	eval.CompanyResponse = ""
	eval.RespondedAt = nil
	if notes != "" {
		eval.Notes = notes
	}
	if err := s.evaluationRepo.Update(eval); err != nil {
		return nil, err
	}

	issue, err := s.issueRepo.FindByEvaluationID(evaluationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return eval, nil
		}
		return nil, err
	}

	issue.Status = model.IssueActive
	issue.ResolvedAt = nil
	if err := s.issueRepo.Update(issue); err != nil {
		return nil, err
	}
	if err := s.RecomputeIssueState(issue.CompanyID); err != nil {
		return nil, err
	}
	return eval, nil
}

func (s *evaluationService) markUnresolved(eval *model.ReviewEvaluation) error {
	eval.Status = model.EvaluationUnresolved
	if err := s.evaluationRepo.Update(eval); err != nil {
		return err
	}
	logger.Warn("Evaluation closed as unresolved", map[string]interface{}{
		"evaluation_id": eval.ID,
	})
	return nil
}

// RecomputeIssueState rebuilds the derived issue fields: the active issue
// count and the seal status it implies. A seal change is logged to the
// company's history under the system principal.
func (s *evaluationService) RecomputeIssueState(companyID uint) error {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		return err
	}

	active, err := s.issueRepo.CountActiveByCompany(companyID)
	if err != nil {
		return err
	}

	company.UnresolvedIssuesCount = int(active)

	next, changed := rules.NextSealStatus(company.SealStatus, int(active))
	if changed {
		company.SealStatus = next
	}

	// Persist first so the history never records a seal change that failed
	// to commit.
	if err := s.companyRepo.Update(company); err != nil {
		return err
	}

	if changed {
		entry := model.NewHistoryEntry(companyID, company.Status, company.Score,
			fmt.Sprintf("seal %s, %d active issues", next, active), model.SystemPrincipal())
		if err := s.historyRepo.Append(entry); err != nil {
			return err
		}
		logger.Info("Seal status changed", map[string]interface{}{
			"company_id":    companyID,
			"seal_status":   next,
			"active_issues": active,
		})

		// The directory shows the seal, so cached pages are stale now.
		if err := redis.InvalidatePrefix(context.Background(), directoryCachePrefix); err != nil {
			logger.Warn("Failed to invalidate directory cache", nil)
		}
	}
	return nil
}

// ProcessOverdueResponses closes every flagged evaluation whose response
// window has lapsed without an answer. Run daily by the scheduler.
func (s *evaluationService) ProcessOverdueResponses(now time.Time) (int, error) {
	open, err := s.evaluationRepo.ListByStatus(model.EvaluationRequiresResponse)
	if err != nil {
		return 0, err
	}

	closed := 0
	for i := range open {
		eval := &open[i]
		if eval.ResponseDeadline == nil || !now.After(*eval.ResponseDeadline) {
			continue
		}
		if eval.RespondedAt != nil {
			continue
		}
		if err := s.markUnresolved(eval); err != nil {
			logger.Error("Failed to close overdue evaluation", err, map[string]interface{}{
				"evaluation_id": eval.ID,
			})
			continue
		}
		closed++
	}
	return closed, nil
}

func (s *evaluationService) notifyCompany(companyID uint) {
	if s.mail == nil {
		return
	}
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		return
	}
	users, err := s.userRepo.FindByCompanyID(companyID)
	if err != nil || len(users) == 0 {
		return
	}
	if err := s.mail.SendResponseRequested(users[0].Email, company.Name, ResponseDeadlineDays); err != nil {
		logger.Warn("Response request mail failed", map[string]interface{}{
			"company_id": companyID,
		})
	}
}
