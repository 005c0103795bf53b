package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/rules"
	"github.com/peaceseal/peaceseal-backend/internal/app/service"
	apperrors "github.com/peaceseal/peaceseal-backend/internal/errors"
	"github.com/peaceseal/peaceseal-backend/internal/middleware"
)

type CompanyController struct {
	companyService       service.CompanyService
	questionnaireService service.QuestionnaireService
	authService          service.AuthService
}

func NewCompanyController(
	companyService service.CompanyService,
	questionnaireService service.QuestionnaireService,
	authService service.AuthService,
) *CompanyController {
	return &CompanyController{
		companyService:       companyService,
		questionnaireService: questionnaireService,
		authService:          authService,
	}
}

// Create registers a new certification application
// @Summary Create a company application
// @Tags Companies
// @Accept json
// @Produce json
// @Router /companies [post]
func (ctrl *CompanyController) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var input struct {
		Name          string `json:"name" binding:"required"`
		Country       string `json:"country" binding:"required"`
		Industry      string `json:"industry" binding:"required"`
		EmployeeCount int    `json:"employee_count" binding:"required,min=1"`
		Website       string `json:"website"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid company input")
		return
	}

	company, err := ctrl.companyService.Create(principal, service.CreateCompanyInput{
		Name:          input.Name,
		Country:       input.Country,
		Industry:      input.Industry,
		EmployeeCount: input.EmployeeCount,
		Website:       input.Website,
	})
	if err != nil {
		info := apperrors.ParseError(err, "company")
		apperrors.BadRequest(c, info.Code, info.Message)
		return
	}

	if principal.UserID != nil {
		if _, err := ctrl.authService.LinkCompany(*principal.UserID, company.ID); err != nil {
			apperrors.InternalError(c, "failed to link company to account")
			return
		}
	}

	c.JSON(http.StatusCreated, company)
}

// Get returns a company with advisor and questionnaire preloaded.
func (ctrl *CompanyController) Get(c *gin.Context) {
	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	company, err := ctrl.companyService.GetByID(companyID)
	if err != nil {
		apperrors.NotFound(c, apperrors.CertCompanyNotFound, "company not found")
		return
	}

	c.JSON(http.StatusOK, company)
}

// Transition moves a company to a new certification status
// @Summary Change certification status
// @Tags Companies
// @Router /companies/{id}/status [put]
func (ctrl *CompanyController) Transition(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input struct {
		Status model.CompanyStatus `json:"status" binding:"required"`
		Notes  string              `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid status input")
		return
	}

	company, err := ctrl.companyService.Transition(principal, companyID, input.Status, input.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTransition):
			apperrors.Conflict(c, apperrors.CertInvalidTransition, err.Error())
		case errors.Is(err, service.ErrPaymentRequired):
			apperrors.PreconditionFailed(c, apperrors.CertPaymentRequired, "certification fee must be paid first")
		case errors.Is(err, service.ErrCompanyNotFound):
			apperrors.NotFound(c, apperrors.CertCompanyNotFound, "company not found")
		default:
			apperrors.InternalError(c, "status change failed")
		}
		return
	}

	c.JSON(http.StatusOK, company)
}

// SetScore records the advisor's audit score
// @Summary Record audit score
// @Tags Companies
// @Router /companies/{id}/score [put]
func (ctrl *CompanyController) SetScore(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input struct {
		Score int    `json:"score" binding:"min=0,max=100"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid score input")
		return
	}

	company, err := ctrl.companyService.SetScore(principal, companyID, input.Score, input.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidScore):
			apperrors.BadRequest(c, apperrors.CertInvalidScore, "score must be between 0 and 100")
		case errors.Is(err, service.ErrPaymentRequired):
			apperrors.PreconditionFailed(c, apperrors.CertPaymentRequired, "certification fee must be paid first")
		case errors.Is(err, service.ErrCompanyNotFound):
			apperrors.NotFound(c, apperrors.CertCompanyNotFound, "company not found")
		default:
			apperrors.InternalError(c, "score update failed")
		}
		return
	}

	c.JSON(http.StatusOK, company)
}

// ConfirmPayment records a certification fee payment. Confirming an
// already-paid company is a no-op.
func (ctrl *CompanyController) ConfirmPayment(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input struct {
		TransactionID string `json:"transaction_id" binding:"required"`
		AmountCents   int64  `json:"amount_cents" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "transaction id and amount required")
		return
	}

	company, err := ctrl.companyService.ConfirmPayment(principal, companyID, input.TransactionID, input.AmountCents)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuoteRequired):
			apperrors.BadRequest(c, apperrors.CertQuoteRequired, "company size requires a custom quote")
		case errors.Is(err, service.ErrPaymentMismatch):
			apperrors.BadRequest(c, apperrors.CertPaymentMismatch, "amount does not match the fee for this company size")
		case errors.Is(err, service.ErrCompanyNotFound):
			apperrors.NotFound(c, apperrors.CertCompanyNotFound, "company not found")
		default:
			apperrors.InternalError(c, "payment confirmation failed")
		}
		return
	}

	c.JSON(http.StatusOK, company)
}

// RequestQuote marks an above-band company as awaiting a custom quote.
func (ctrl *CompanyController) RequestQuote(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	company, err := ctrl.companyService.RequestQuote(principal, companyID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuoteNotApplicable):
			apperrors.BadRequest(c, apperrors.CertQuoteNotApplicable, "company size has a fixed fee")
		case errors.Is(err, service.ErrCompanyNotFound):
			apperrors.NotFound(c, apperrors.CertCompanyNotFound, "company not found")
		default:
			apperrors.InternalError(c, "quote request failed")
		}
		return
	}

	c.JSON(http.StatusOK, company)
}

// PaymentTiers returns the fee table.
func (ctrl *CompanyController) PaymentTiers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tiers": rules.PaymentTiers()})
}

// History returns the company's append-only status history.
func (ctrl *CompanyController) History(c *gin.Context) {
	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	entries, err := ctrl.companyService.History(companyID)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CertCompanyNotFound, "company not found")
			return
		}
		apperrors.InternalError(c, "failed to load history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// SaveQuestionnaire merges submitted answers into the questionnaire.
func (ctrl *CompanyController) SaveQuestionnaire(c *gin.Context) {
	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input struct {
		Answers model.AnswerMap `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid answers payload")
		return
	}

	q, err := ctrl.questionnaireService.SaveAnswers(companyID, input.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionnaireCompleted):
			apperrors.Conflict(c, apperrors.QuestionnaireCompleted, "questionnaire is already completed")
		case errors.Is(err, service.ErrCompanyNotFound):
			apperrors.NotFound(c, apperrors.CertCompanyNotFound, "company not found")
		default:
			apperrors.InternalError(c, "failed to save answers")
		}
		return
	}

	c.JSON(http.StatusOK, q)
}

// GetQuestionnaire returns the company's questionnaire.
func (ctrl *CompanyController) GetQuestionnaire(c *gin.Context) {
	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	q, err := ctrl.questionnaireService.Get(companyID)
	if err != nil {
		apperrors.NotFound(c, apperrors.QuestionnaireNotFound, "questionnaire not found")
		return
	}

	c.JSON(http.StatusOK, q)
}

// CompleteQuestionnaire freezes the questionnaire for audit.
func (ctrl *CompanyController) CompleteQuestionnaire(c *gin.Context) {
	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	q, err := ctrl.questionnaireService.Complete(companyID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionnaireCompleted):
			apperrors.Conflict(c, apperrors.QuestionnaireCompleted, "questionnaire is already completed")
		case errors.Is(err, service.ErrQuestionnaireNotFound):
			apperrors.NotFound(c, apperrors.QuestionnaireNotFound, "questionnaire not found")
		default:
			apperrors.InternalError(c, "failed to complete questionnaire")
		}
		return
	}

	c.JSON(http.StatusOK, q)
}

// Assessment returns the advisory self-assessment preview.
func (ctrl *CompanyController) Assessment(c *gin.Context) {
	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	assessment, err := ctrl.questionnaireService.Assess(companyID)
	if err != nil {
		apperrors.NotFound(c, apperrors.QuestionnaireNotFound, "questionnaire not found")
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// ReactivateSeal is the admin-only recovery path for a revoked seal.
func (ctrl *CompanyController) ReactivateSeal(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input struct {
		Notes string `json:"notes"`
	}
	// Body is optional here.
	_ = c.ShouldBindJSON(&input)

	company, err := ctrl.companyService.ReactivateSeal(principal, companyID, input.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSealNotRevoked):
			apperrors.Conflict(c, apperrors.CertSealNotRevoked, "seal is not revoked")
		case errors.Is(err, service.ErrSealIssuesRemain):
			apperrors.Conflict(c, apperrors.CertSealIssuesRemain, "active issues must be cleared first")
		case errors.Is(err, service.ErrCompanyNotFound):
			apperrors.NotFound(c, apperrors.CertCompanyNotFound, "company not found")
		default:
			apperrors.InternalError(c, "seal reactivation failed")
		}
		return
	}

	c.JSON(http.StatusOK, company)
}

// parseIDParam reads a uint path parameter, responding with 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid id")
		return 0, err
	}
	return uint(id), nil
}
