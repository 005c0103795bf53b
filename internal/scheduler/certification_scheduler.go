package scheduler

import (
	"time"

	"github.com/peaceseal/peaceseal-backend/internal/app/service"
	"github.com/peaceseal/peaceseal-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// expiryWarningDays is how far ahead of expiry companies get warned.
const expiryWarningDays = 30

// CertificationScheduler runs the daily certification maintenance jobs:
// expiring stale certifications, warning companies ahead of expiry, and
// closing overdue response windows.
type CertificationScheduler struct {
	cron              *cron.Cron
	companyService    service.CompanyService
	evaluationService service.EvaluationService
}

func NewCertificationScheduler(
	companyService service.CompanyService,
	evaluationService service.EvaluationService,
) *CertificationScheduler {
	return &CertificationScheduler{
		cron:              cron.New(),
		companyService:    companyService,
		evaluationService: evaluationService,
	}
}

// Start registers the daily job at 06:00 server time.
func (s *CertificationScheduler) Start() error {
	_, err := s.cron.AddFunc("0 6 * * *", s.runDaily)
	if err != nil {
		logger.Error("Failed to register certification cron job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Certification scheduler started (daily at 6:00 AM)", nil)
	return nil
}

func (s *CertificationScheduler) runDaily() {
	now := time.Now()

	expired, err := s.companyService.ProcessExpirations(now)
	if err != nil {
		logger.Error("Certification expiry pass failed", err)
	} else if expired > 0 {
		logger.Info("Expired certifications moved to review", map[string]interface{}{
			"count": expired,
		})
	}

	warned, err := s.companyService.SendExpiryWarnings(now, expiryWarningDays)
	if err != nil {
		logger.Error("Expiry warning pass failed", err)
	} else if warned > 0 {
		logger.Info("Expiry warnings sent", map[string]interface{}{
			"count": warned,
		})
	}

	closed, err := s.evaluationService.ProcessOverdueResponses(now)
	if err != nil {
		logger.Error("Overdue response pass failed", err)
	} else if closed > 0 {
		logger.Info("Overdue evaluations closed as unresolved", map[string]interface{}{
			"count": closed,
		})
	}
}

// Stop stops the scheduler.
func (s *CertificationScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Certification scheduler stopped", nil)
}
