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
	"github.com/peaceseal/peaceseal-backend/pkg/mailer"
	"github.com/peaceseal/peaceseal-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrInvalidScore       = errors.New("score must be between 0 and 100")
	ErrQuoteRequired      = errors.New("company size requires a custom quote")
	ErrQuoteNotApplicable = errors.New("company size has a fixed fee")
	ErrPaymentRequired    = errors.New("certification fee has not been paid")
	ErrPaymentMismatch    = errors.New("payment amount does not match the fee for this company size")
	ErrSealNotRevoked     = errors.New("seal is not revoked")
	ErrSealIssuesRemain   = errors.New("seal cannot be reactivated while issues are active")
)

// MaxActiveAssignments caps how many concurrent audits one advisor carries.
const MaxActiveAssignments = 10

// CertificationValidity is how long a first-time verification lasts.
const CertificationValidity = 365 * 24 * time.Hour

// CreateCompanyInput is the application intake payload.
type CreateCompanyInput struct {
	Name          string
	Country       string
	Industry      string
	EmployeeCount int
	Website       string
}

type CompanyService interface {
	Create(p model.Principal, input CreateCompanyInput) (*model.Company, error)
	GetByID(id uint) (*model.Company, error)
	GetBySlug(slug string) (*model.Company, error)
	Transition(p model.Principal, companyID uint, next model.CompanyStatus, notes string) (*model.Company, error)
	SetScore(p model.Principal, companyID uint, score int, notes string) (*model.Company, error)
	ConfirmPayment(p model.Principal, companyID uint, transactionID string, amountCents int64) (*model.Company, error)
	RequestQuote(p model.Principal, companyID uint) (*model.Company, error)
	ReactivateSeal(p model.Principal, companyID uint, notes string) (*model.Company, error)
	History(companyID uint) ([]model.StatusHistoryEntry, error)
	ListByAdvisor(advisorID uint) ([]model.Company, error)
	ProcessExpirations(now time.Time) (int, error)
	SendExpiryWarnings(now time.Time, daysAhead int) (int, error)
}

type companyService struct {
	companyRepo repository.CompanyRepository
	historyRepo *repository.HistoryRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	mail        mailer.Mailer
}

func NewCompanyService(
	companyRepo repository.CompanyRepository,
	historyRepo *repository.HistoryRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	mail mailer.Mailer,
) CompanyService {
	return &companyService{
		companyRepo: companyRepo,
		historyRepo: historyRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		mail:        mail,
	}
}

func (s *companyService) Create(p model.Principal, input CreateCompanyInput) (*model.Company, error) {
	company := &model.Company{
		Name:          input.Name,
		Country:       input.Country,
		Industry:      input.Industry,
		EmployeeCount: input.EmployeeCount,
		Website:       input.Website,
		Status:        model.StatusDraft,
		PaymentStatus: model.PaymentStatusUnpaid,
		SealStatus:    model.SealActive,
	}

	if err := s.companyRepo.Create(company); err != nil {
		logger.Error("Failed to create company", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	entry := model.NewHistoryEntry(company.ID, model.StatusDraft, nil, "application created", p)
	if err := s.historyRepo.Append(entry); err != nil {
		return nil, err
	}

	logger.Info("Company created", map[string]interface{}{
		"company_id": company.ID,
		"slug":       company.Slug,
	})
	return company, nil
}

func (s *companyService) GetByID(id uint) (*model.Company, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetBySlug(slug string) (*model.Company, error) {
	company, err := s.companyRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

// Transition moves a company to the requested status if the transition graph
// allows it, stamps verification dates on first verification, and appends the
// audit entry. All status changes, manual or automatic, go through here.
func (s *companyService) Transition(p model.Principal, companyID uint, next model.CompanyStatus, notes string) (*model.Company, error) {
	company, err := s.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	return s.transition(p, company, next, company.Score, notes)
}

func (s *companyService) transition(p model.Principal, company *model.Company, next model.CompanyStatus, score *int, notes string) (*model.Company, error) {
	if !rules.IsKnownStatus(next) || !rules.CanTransition(company.Status, next) {
		logger.Warn("Rejected status transition", map[string]interface{}{
			"company_id": company.ID,
			"from":       company.Status,
			"to":         next,
		})
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, company.Status, next)
	}

	// An application cannot leave draft until the certification fee is on
	// file, no matter who asks.
	if company.Status == model.StatusDraft && next != model.StatusDraft &&
		company.PaymentStatus != model.PaymentStatusPaid {
		logger.Warn("Rejected status transition for unpaid company", map[string]interface{}{
			"company_id": company.ID,
			"to":         next,
		})
		return nil, ErrPaymentRequired
	}

	company.Status = next
	company.Score = score

	// The certification window is stamped once, on the first verification.
	// Later transitions through verified keep the original window.
	if next == model.StatusVerified && company.VerifiedAt == nil {
		now := time.Now()
		expires := now.Add(CertificationValidity)
		company.VerifiedAt = &now
		company.ExpiresAt = &expires
	}

	if err := s.companyRepo.Update(company); err != nil {
		return nil, err
	}

	entry := model.NewHistoryEntry(company.ID, next, score, notes, p)
	if err := s.historyRepo.Append(entry); err != nil {
		return nil, err
	}

	logger.Info("Company status changed", map[string]interface{}{
		"company_id": company.ID,
		"status":     next,
	})

	// The public directory renders status, so cached pages are stale now.
	if err := redis.InvalidatePrefix(context.Background(), directoryCachePrefix); err != nil {
		logger.Warn("Failed to invalidate directory cache", nil)
	}
	return company, nil
}

// SetScore records an audit score and applies the status it implies, but only
// when that status is reachable from the current one. An unreachable derived
// status records the score without moving the company.
func (s *companyService) SetScore(p model.Principal, companyID uint, score int, notes string) (*model.Company, error) {
	if score < 0 || score > 100 {
		return nil, ErrInvalidScore
	}

	company, err := s.GetByID(companyID)
	if err != nil {
		return nil, err
	}

	// Audits only happen on paid applications.
	if company.PaymentStatus != model.PaymentStatusPaid {
		return nil, ErrPaymentRequired
	}

	derived := rules.StatusForScore(score)
	if rules.CanTransition(company.Status, derived) {
		return s.transition(p, company, derived, &score, notes)
	}

	company.Score = &score
	if err := s.companyRepo.Update(company); err != nil {
		return nil, err
	}

	entry := model.NewHistoryEntry(company.ID, company.Status, &score, notes, p)
	if err := s.historyRepo.Append(entry); err != nil {
		return nil, err
	}

	logger.Info("Score recorded without status change", map[string]interface{}{
		"company_id": companyID,
		"score":      score,
		"status":     company.Status,
	})
	return company, nil
}

// ConfirmPayment records a certification-fee payment and advances the
// application. Confirming an already-paid company is a no-op success, so the
// client callback and the webhook can both fire.
func (s *companyService) ConfirmPayment(p model.Principal, companyID uint, transactionID string, amountCents int64) (*model.Company, error) {
	company, err := s.GetByID(companyID)
	if err != nil {
		return nil, err
	}

	if company.PaymentStatus == model.PaymentStatusPaid {
		logger.Info("Payment already confirmed, ignoring", map[string]interface{}{
			"company_id":     companyID,
			"transaction_id": transactionID,
		})
		return company, nil
	}

	if existing, err := s.paymentRepo.FindByTransactionID(transactionID); err == nil && existing != nil {
		logger.Info("Duplicate payment confirmation ignored", map[string]interface{}{
			"company_id":     companyID,
			"transaction_id": transactionID,
		})
		return company, nil
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	amount, ok := rules.FeeForEmployeeCount(company.EmployeeCount)
	if !ok {
		return nil, ErrQuoteRequired
	}
	if amountCents != amount {
		logger.Warn("Payment amount does not match the fee tier", map[string]interface{}{
			"company_id": companyID,
			"expected":   amount,
			"received":   amountCents,
		})
		return nil, ErrPaymentMismatch
	}

	record := &model.PaymentRecord{
		CompanyID:     companyID,
		TransactionID: transactionID,
		AmountCents:   amount,
		ConfirmedAt:   time.Now(),
	}
	if err := s.paymentRepo.Create(record); err != nil {
		return nil, err
	}

	company.PaymentStatus = model.PaymentStatusPaid
	if err := s.companyRepo.Update(company); err != nil {
		return nil, err
	}

	if company.Status == model.StatusDraft {
		company, err = s.transition(p, company, model.StatusApplicationSubmitted, nil, "payment confirmed")
		if err != nil {
			return nil, err
		}
	}

	return s.assignAdvisor(company)
}

// assignAdvisor picks the advisor with the fewest active audits, ties broken
// by lowest count then lowest id. With every advisor at capacity the company
// stays submitted and the queueing is recorded in the history.
func (s *companyService) assignAdvisor(company *model.Company) (*model.Company, error) {
	advisors, err := s.userRepo.FindAdvisors()
	if err != nil {
		return nil, err
	}

	var chosen *model.User
	var chosenLoad int64
	for i := range advisors {
		load, err := s.companyRepo.CountActiveAssignments(advisors[i].ID)
		if err != nil {
			return nil, err
		}
		if load >= MaxActiveAssignments {
			continue
		}
		if chosen == nil || load < chosenLoad {
			chosen = &advisors[i]
			chosenLoad = load
		}
	}

	if chosen == nil {
		entry := model.NewHistoryEntry(company.ID, company.Status, company.Score,
			"queued, no advisor available", model.SystemPrincipal())
		if err := s.historyRepo.Append(entry); err != nil {
			return nil, err
		}
		logger.Warn("No advisor available, application queued", map[string]interface{}{
			"company_id": company.ID,
		})
		return company, nil
	}

	company.AdvisorID = &chosen.ID
	if err := s.companyRepo.Update(company); err != nil {
		return nil, err
	}

	company, err = s.transition(model.SystemPrincipal(), company, model.StatusAuditInProgress, nil,
		fmt.Sprintf("advisor %s assigned", chosen.Name))
	if err != nil {
		return nil, err
	}

	if s.mail != nil {
		if err := s.mail.SendAdvisorAssigned(chosen.Email, company.Name, chosen.Name); err != nil {
			logger.Warn("Advisor assignment mail failed", map[string]interface{}{
				"company_id": company.ID,
			})
		}
	}

	return company, nil
}

// RequestQuote marks an above-band company as awaiting a custom quote.
func (s *companyService) RequestQuote(p model.Principal, companyID uint) (*model.Company, error) {
	company, err := s.GetByID(companyID)
	if err != nil {
		return nil, err
	}

	if _, ok := rules.FeeForEmployeeCount(company.EmployeeCount); ok {
		return nil, ErrQuoteNotApplicable
	}

	company.PaymentStatus = model.PaymentStatusQuoteRequest
	if err := s.companyRepo.Update(company); err != nil {
		return nil, err
	}

	entry := model.NewHistoryEntry(company.ID, company.Status, company.Score, "quote requested", p)
	if err := s.historyRepo.Append(entry); err != nil {
		return nil, err
	}
	return company, nil
}

// ReactivateSeal is the admin-only recovery path for a revoked seal. It never
// fires automatically and requires every issue to be off the active list.
func (s *companyService) ReactivateSeal(p model.Principal, companyID uint, notes string) (*model.Company, error) {
	company, err := s.GetByID(companyID)
	if err != nil {
		return nil, err
	}

	if company.SealStatus != model.SealRevoked {
		return nil, ErrSealNotRevoked
	}
	if company.UnresolvedIssuesCount > 0 {
		return nil, ErrSealIssuesRemain
	}

	company.SealStatus = model.SealActive
	if err := s.companyRepo.Update(company); err != nil {
		return nil, err
	}

	if notes == "" {
		notes = "seal manually reactivated"
	}
	entry := model.NewHistoryEntry(company.ID, company.Status, company.Score, notes, p)
	if err := s.historyRepo.Append(entry); err != nil {
		return nil, err
	}

	logger.Info("Seal reactivated", map[string]interface{}{
		"company_id": companyID,
	})
	return company, nil
}

func (s *companyService) History(companyID uint) ([]model.StatusHistoryEntry, error) {
	if _, err := s.GetByID(companyID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByCompanyID(companyID)
}

func (s *companyService) ListByAdvisor(advisorID uint) ([]model.Company, error) {
	return s.companyRepo.ListByAdvisor(advisorID)
}

// ProcessExpirations moves verified companies whose window has closed into
// under_review. Run daily by the scheduler.
func (s *companyService) ProcessExpirations(now time.Time) (int, error) {
	expired, err := s.companyRepo.ListExpiringBetween(time.Time{}, now)
	if err != nil {
		return 0, err
	}

	moved := 0
	for i := range expired {
		if _, err := s.transition(model.SystemPrincipal(), &expired[i], model.StatusUnderReview,
			expired[i].Score, "certification expired"); err != nil {
			logger.Error("Failed to expire certification", err, map[string]interface{}{
				"company_id": expired[i].ID,
			})
			continue
		}
		moved++
	}
	return moved, nil
}

// SendExpiryWarnings notifies companies whose certification expires within
// the given number of days.
func (s *companyService) SendExpiryWarnings(now time.Time, daysAhead int) (int, error) {
	window := now.Add(time.Duration(daysAhead) * 24 * time.Hour)
	expiring, err := s.companyRepo.ListExpiringBetween(now, window)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range expiring {
		company := &expiring[i]
		if company.ExpiresAt == nil || s.mail == nil {
			continue
		}
		daysLeft := int(company.ExpiresAt.Sub(now).Hours() / 24)
		contact := s.companyContact(company)
		if contact == "" {
			continue
		}
		if err := s.mail.SendExpiryWarning(contact, company.Name, daysLeft); err != nil {
			logger.Warn("Expiry warning mail failed", map[string]interface{}{
				"company_id": company.ID,
			})
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *companyService) companyContact(company *model.Company) string {
	users, err := s.userRepo.FindByCompanyID(company.ID)
	if err != nil || len(users) == 0 {
		return ""
	}
	return users[0].Email
}
