package service

import (
	"testing"
	"time"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/repository"
	"github.com/peaceseal/peaceseal-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCompanyServiceTest(t *testing.T) (CompanyService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	companyRepo := repository.NewCompanyRepository(testDB)
	historyRepo := repository.NewHistoryRepository(testDB)
	paymentRepo := repository.NewPaymentRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)

	return NewCompanyService(companyRepo, historyRepo, paymentRepo, userRepo, nil), testDB
}

func createAdvisor(t *testing.T, testDB *gorm.DB, email string) *model.User {
	advisor := &model.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Advisor " + email,
		Role:         model.RoleAdvisor,
	}
	require.NoError(t, testDB.Create(advisor).Error)
	return advisor
}

func TestCompanyService_Create(t *testing.T) {
	companyService, testDB := setupCompanyServiceTest(t)

	company, err := companyService.Create(model.UserPrincipal(1, model.RoleCompany), CreateCompanyInput{
		Name:          "Arcadia Foods",
		Country:       "Netherlands",
		Industry:      "Food",
		EmployeeCount: 120,
	})
	require.NoError(t, err)
	assert.NotZero(t, company.ID)
	assert.NotEmpty(t, company.Slug)
	assert.Equal(t, model.StatusDraft, company.Status)
	assert.Equal(t, model.SealActive, company.SealStatus)

	var entries []model.StatusHistoryEntry
	testDB.Where("company_id = ?", company.ID).Find(&entries)
	require.Len(t, entries, 1)
	assert.Equal(t, model.StatusDraft, entries[0].Status)
}

func TestCompanyService_Transition_RejectsIllegalMove(t *testing.T) {
	companyService, _ := setupCompanyServiceTest(t)

	company, err := companyService.Create(model.SystemPrincipal(), CreateCompanyInput{
		Name: "Draft Co", Country: "Ireland", EmployeeCount: 5,
	})
	require.NoError(t, err)

	_, err = companyService.Transition(model.SystemPrincipal(), company.ID, model.StatusVerified, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The company did not move.
	reloaded, err := companyService.GetByID(company.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, reloaded.Status)
}

func TestCompanyService_Transition_RejectsUnpaidDraft(t *testing.T) {
	companyService, _ := setupCompanyServiceTest(t)

	company, err := companyService.Create(model.UserPrincipal(1, model.RoleCompany), CreateCompanyInput{
		Name: "Unpaid Co", Country: "Ireland", EmployeeCount: 8,
	})
	require.NoError(t, err)

	// The move itself is legal, but the fee has not been confirmed.
	_, err = companyService.Transition(model.UserPrincipal(2, model.RoleAdmin), company.ID, model.StatusApplicationSubmitted, "")
	assert.ErrorIs(t, err, ErrPaymentRequired)

	reloaded, err := companyService.GetByID(company.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, reloaded.Status)
}

func TestCompanyService_SetScore_RejectsUnpaidCompany(t *testing.T) {
	companyService, _ := setupCompanyServiceTest(t)

	company, err := companyService.Create(model.SystemPrincipal(), CreateCompanyInput{
		Name: "Unscored Co", Country: "Ireland", EmployeeCount: 8,
	})
	require.NoError(t, err)

	_, err = companyService.SetScore(model.UserPrincipal(7, model.RoleAdvisor), company.ID, 80, "")
	assert.ErrorIs(t, err, ErrPaymentRequired)
}

func TestCompanyService_Transition_NotFound(t *testing.T) {
	companyService, _ := setupCompanyServiceTest(t)

	_, err := companyService.Transition(model.SystemPrincipal(), 9999, model.StatusApplicationSubmitted, "")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestCompanyService_SetScore_DerivesStatusAndStampsWindow(t *testing.T) {
	companyService, testDB := setupCompanyServiceTest(t)

	company, err := companyService.Create(model.SystemPrincipal(), CreateCompanyInput{
		Name: "Audit Co", Country: "Ireland", EmployeeCount: 40,
	})
	require.NoError(t, err)

	testDB.Model(&model.Company{}).Where("id = ?", company.ID).
		Updates(map[string]interface{}{
			"status":         model.StatusAuditInProgress,
			"payment_status": model.PaymentStatusPaid,
		})

	scored, err := companyService.SetScore(model.UserPrincipal(7, model.RoleAdvisor), company.ID, 82, "final audit")
	require.NoError(t, err)
	assert.Equal(t, model.StatusVerified, scored.Status)
	require.NotNil(t, scored.Score)
	assert.Equal(t, 82, *scored.Score)
	require.NotNil(t, scored.VerifiedAt)
	require.NotNil(t, scored.ExpiresAt)
	assert.WithinDuration(t, scored.VerifiedAt.Add(CertificationValidity), *scored.ExpiresAt, time.Second)
}

func TestCompanyService_SetScore_KeepsWindowOnRescore(t *testing.T) {
	companyService, testDB := setupCompanyServiceTest(t)

	company, err := companyService.Create(model.SystemPrincipal(), CreateCompanyInput{
		Name: "Rescore Co", Country: "Ireland", EmployeeCount: 40,
	})
	require.NoError(t, err)
	testDB.Model(&model.Company{}).Where("id = ?", company.ID).
		Updates(map[string]interface{}{
			"status":         model.StatusAuditInProgress,
			"payment_status": model.PaymentStatusPaid,
		})

	first, err := companyService.SetScore(model.SystemPrincipal(), company.ID, 80, "")
	require.NoError(t, err)
	firstExpiry := *first.ExpiresAt

	// verified -> verified is not a legal transition, so a later score is
	// recorded without moving the company or touching the window.
	second, err := companyService.SetScore(model.SystemPrincipal(), company.ID, 95, "follow-up")
	require.NoError(t, err)
	assert.Equal(t, model.StatusVerified, second.Status)
	assert.Equal(t, 95, *second.Score)
	assert.True(t, firstExpiry.Equal(*second.ExpiresAt))
}

func TestCompanyService_SetScore_RejectsOutOfRange(t *testing.T) {
	companyService, _ := setupCompanyServiceTest(t)

	_, err := companyService.SetScore(model.SystemPrincipal(), 1, -1, "")
	assert.ErrorIs(t, err, ErrInvalidScore)
	_, err = companyService.SetScore(model.SystemPrincipal(), 1, 101, "")
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestCompanyService_ConfirmPayment_AdvancesAndAssignsAdvisor(t *testing.T) {
	companyService, testDB := setupCompanyServiceTest(t)
	advisor := createAdvisor(t, testDB, "advisor@peaceseal.org")

	company, err := companyService.Create(model.UserPrincipal(1, model.RoleCompany), CreateCompanyInput{
		Name: "Payer Co", Country: "Ireland", EmployeeCount: 30,
	})
	require.NoError(t, err)

	paid, err := companyService.ConfirmPayment(model.UserPrincipal(1, model.RoleCompany), company.ID, "txn-001", 50_000)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, model.StatusAuditInProgress, paid.Status)
	require.NotNil(t, paid.AdvisorID)
	assert.Equal(t, advisor.ID, *paid.AdvisorID)

	var payments []model.PaymentRecord
	testDB.Where("company_id = ?", company.ID).Find(&payments)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(50_000), payments[0].AmountCents)
}

func TestCompanyService_ConfirmPayment_DuplicateTransactionIsNoop(t *testing.T) {
	companyService, testDB := setupCompanyServiceTest(t)
	createAdvisor(t, testDB, "advisor@peaceseal.org")

	company, err := companyService.Create(model.UserPrincipal(1, model.RoleCompany), CreateCompanyInput{
		Name: "Retry Co", Country: "Ireland", EmployeeCount: 8,
	})
	require.NoError(t, err)

	_, err = companyService.ConfirmPayment(model.UserPrincipal(1, model.RoleCompany), company.ID, "txn-dup", 25_000)
	require.NoError(t, err)

	var historyBefore int64
	testDB.Model(&model.StatusHistoryEntry{}).Where("company_id = ?", company.ID).Count(&historyBefore)

	// The webhook fires after the client callback already confirmed.
	again, err := companyService.ConfirmPayment(model.UserPrincipal(1, model.RoleCompany), company.ID, "txn-dup", 25_000)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAuditInProgress, again.Status)

	var payments int64
	testDB.Model(&model.PaymentRecord{}).Where("company_id = ?", company.ID).Count(&payments)
	assert.Equal(t, int64(1), payments)

	var historyAfter int64
	testDB.Model(&model.StatusHistoryEntry{}).Where("company_id = ?", company.ID).Count(&historyAfter)
	assert.Equal(t, historyBefore, historyAfter)
}

func TestCompanyService_ConfirmPayment_AlreadyPaidIsNoop(t *testing.T) {
	companyService, testDB := setupCompanyServiceTest(t)
	advisor := createAdvisor(t, testDB, "advisor@peaceseal.org")

	company, err := companyService.Create(model.UserPrincipal(1, model.RoleCompany), CreateCompanyInput{
		Name: "Double Pay Co", Country: "Ireland", EmployeeCount: 8,
	})
	require.NoError(t, err)

	_, err = companyService.ConfirmPayment(model.UserPrincipal(1, model.RoleCompany), company.ID, "txn-a", 25_000)
	require.NoError(t, err)

	var historyBefore int64
	testDB.Model(&model.StatusHistoryEntry{}).Where("company_id = ?", company.ID).Count(&historyBefore)

	// A second confirmation under a fresh transaction id changes nothing.
	again, err := companyService.ConfirmPayment(model.UserPrincipal(1, model.RoleCompany), company.ID, "txn-b", 25_000)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAuditInProgress, again.Status)
	require.NotNil(t, again.AdvisorID)
	assert.Equal(t, advisor.ID, *again.AdvisorID)

	var payments int64
	testDB.Model(&model.PaymentRecord{}).Where("company_id = ?", company.ID).Count(&payments)
	assert.Equal(t, int64(1), payments)

	var historyAfter int64
	testDB.Model(&model.StatusHistoryEntry{}).Where("company_id = ?", company.ID).Count(&historyAfter)
	assert.Equal(t, historyBefore, historyAfter)
}

func TestCompanyService_ConfirmPayment_WrongAmountRejected(t *testing.T) {
	companyService, testDB := setupCompanyServiceTest(t)
	createAdvisor(t, testDB, "advisor@peaceseal.org")

	company, err := companyService.Create(model.UserPrincipal(1, model.RoleCompany), CreateCompanyInput{
		Name: "Short Pay Co", Country: "Ireland", EmployeeCount: 30,
	})
	require.NoError(t, err)

	// The 11-50 band costs 50_000 cents.
	_, err = companyService.ConfirmPayment(model.UserPrincipal(1, model.RoleCompany), company.ID, "txn-short", 25_000)
	assert.ErrorIs(t, err, ErrPaymentMismatch)

	reloaded, err := companyService.GetByID(company.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, reloaded.Status)
	assert.Equal(t, model.PaymentStatusUnpaid, reloaded.PaymentStatus)

	var payments int64
	testDB.Model(&model.PaymentRecord{}).Where("company_id = ?", company.ID).Count(&payments)
	assert.Equal(t, int64(0), payments)
}

func TestCompanyService_ConfirmPayment_QuoteBandRejected(t *testing.T) {
	companyService, _ := setupCompanyServiceTest(t)

	company, err := companyService.Create(model.SystemPrincipal(), CreateCompanyInput{
		Name: "Mega Co", Country: "Germany", EmployeeCount: 12_000,
	})
	require.NoError(t, err)

	_, err = companyService.ConfirmPayment(model.SystemPrincipal(), company.ID, "txn-big", 500_000)
	assert.ErrorIs(t, err, ErrQuoteRequired)
}

func TestCompanyService_ConfirmPayment_QueuesWithoutAdvisor(t *testing.T) {
	companyService, testDB := setupCompanyServiceTest(t)

	company, err := companyService.Create(model.UserPrincipal(1, model.RoleCompany), CreateCompanyInput{
		Name: "Queued Co", Country: "Ireland", EmployeeCount: 8,
	})
	require.NoError(t, err)

	paid, err := companyService.ConfirmPayment(model.UserPrincipal(1, model.RoleCompany), company.ID, "txn-q", 25_000)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApplicationSubmitted, paid.Status)
	assert.Nil(t, paid.AdvisorID)

	var entries []model.StatusHistoryEntry
	testDB.Where("company_id = ?", company.ID).Order("id ASC").Find(&entries)
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "queued, no advisor available", last.Notes)
	assert.Equal(t, model.PrincipalKindSystem, last.ActorKind)
}

func TestCompanyService_AdvisorAssignment_PicksLeastLoaded(t *testing.T) {
	companyService, testDB := setupCompanyServiceTest(t)
	busy := createAdvisor(t, testDB, "busy@peaceseal.org")
	free := createAdvisor(t, testDB, "free@peaceseal.org")

	// The first advisor already carries an active audit.
	require.NoError(t, testDB.Create(&model.Company{
		Name: "Existing", Slug: "existing", Country: "Ireland", EmployeeCount: 10,
		Status: model.StatusAuditInProgress, AdvisorID: &busy.ID,
	}).Error)

	company, err := companyService.Create(model.UserPrincipal(1, model.RoleCompany), CreateCompanyInput{
		Name: "Balance Co", Country: "Ireland", EmployeeCount: 8,
	})
	require.NoError(t, err)

	paid, err := companyService.ConfirmPayment(model.UserPrincipal(1, model.RoleCompany), company.ID, "txn-lb", 25_000)
	require.NoError(t, err)
	require.NotNil(t, paid.AdvisorID)
	assert.Equal(t, free.ID, *paid.AdvisorID)
}

func TestCompanyService_AdvisorAssignment_TieBreaksByLowestID(t *testing.T) {
	companyService, testDB := setupCompanyServiceTest(t)
	first := createAdvisor(t, testDB, "first@peaceseal.org")
	createAdvisor(t, testDB, "second@peaceseal.org")

	company, err := companyService.Create(model.UserPrincipal(1, model.RoleCompany), CreateCompanyInput{
		Name: "Tie Co", Country: "Ireland", EmployeeCount: 8,
	})
	require.NoError(t, err)

	paid, err := companyService.ConfirmPayment(model.UserPrincipal(1, model.RoleCompany), company.ID, "txn-tie", 25_000)
	require.NoError(t, err)
	require.NotNil(t, paid.AdvisorID)
	assert.Equal(t, first.ID, *paid.AdvisorID)
}

func TestCompanyService_RequestQuote(t *testing.T) {
	companyService, _ := setupCompanyServiceTest(t)

	small, err := companyService.Create(model.SystemPrincipal(), CreateCompanyInput{
		Name: "Small Co", Country: "Ireland", EmployeeCount: 20,
	})
	require.NoError(t, err)
	_, err = companyService.RequestQuote(model.SystemPrincipal(), small.ID)
	assert.ErrorIs(t, err, ErrQuoteNotApplicable)

	big, err := companyService.Create(model.SystemPrincipal(), CreateCompanyInput{
		Name: "Big Co", Country: "Ireland", EmployeeCount: 9000,
	})
	require.NoError(t, err)
	quoted, err := companyService.RequestQuote(model.SystemPrincipal(), big.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusQuoteRequest, quoted.PaymentStatus)
}

func TestCompanyService_ReactivateSeal(t *testing.T) {
	companyService, testDB := setupCompanyServiceTest(t)

	company, err := companyService.Create(model.SystemPrincipal(), CreateCompanyInput{
		Name: "Seal Co", Country: "Ireland", EmployeeCount: 20,
	})
	require.NoError(t, err)

	admin := model.UserPrincipal(9, model.RoleAdmin)

	_, err = companyService.ReactivateSeal(admin, company.ID, "")
	assert.ErrorIs(t, err, ErrSealNotRevoked)

	testDB.Model(&model.Company{}).Where("id = ?", company.ID).
		Updates(map[string]interface{}{"seal_status": model.SealRevoked, "unresolved_issues_count": 2})
	_, err = companyService.ReactivateSeal(admin, company.ID, "")
	assert.ErrorIs(t, err, ErrSealIssuesRemain)

	testDB.Model(&model.Company{}).Where("id = ?", company.ID).
		Update("unresolved_issues_count", 0)
	reactivated, err := companyService.ReactivateSeal(admin, company.ID, "issues cleared after re-audit")
	require.NoError(t, err)
	assert.Equal(t, model.SealActive, reactivated.SealStatus)
}

func TestCompanyService_ProcessExpirations(t *testing.T) {
	companyService, testDB := setupCompanyServiceTest(t)

	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(30 * 24 * time.Hour)

	require.NoError(t, testDB.Create(&model.Company{
		Name: "Expired", Slug: "expired", Country: "Ireland", EmployeeCount: 10,
		Status: model.StatusVerified, VerifiedAt: &past, ExpiresAt: &past,
	}).Error)
	require.NoError(t, testDB.Create(&model.Company{
		Name: "Current", Slug: "current", Country: "Ireland", EmployeeCount: 10,
		Status: model.StatusVerified, VerifiedAt: &past, ExpiresAt: &future,
	}).Error)

	moved, err := companyService.ProcessExpirations(now)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	var expired model.Company
	testDB.Where("slug = ?", "expired").First(&expired)
	assert.Equal(t, model.StatusUnderReview, expired.Status)

	var current model.Company
	testDB.Where("slug = ?", "current").First(&current)
	assert.Equal(t, model.StatusVerified, current.Status)
}
