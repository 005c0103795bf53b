package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/service"
	apperrors "github.com/peaceseal/peaceseal-backend/internal/errors"
	"github.com/peaceseal/peaceseal-backend/internal/middleware"
)

type EvaluationController struct {
	evaluationService service.EvaluationService
	companyService    service.CompanyService
}

func NewEvaluationController(
	evaluationService service.EvaluationService,
	companyService service.CompanyService,
) *EvaluationController {
	return &EvaluationController{
		evaluationService: evaluationService,
		companyService:    companyService,
	}
}

// Evaluate records the advisor's judgment of a review
// @Summary Evaluate a stakeholder review
// @Tags Evaluations
// @Accept json
// @Produce json
// @Router /reviews/{id}/evaluation [put]
func (ctrl *EvaluationController) Evaluate(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.UserID == nil {
		apperrors.Unauthorized(c, "")
		return
	}

	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input struct {
		Status model.EvaluationStatus `json:"status" binding:"required"`
		Notes  string                 `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid evaluation payload")
		return
	}

	eval, err := ctrl.evaluationService.Evaluate(principal, reviewID, *principal.UserID, input.Status, input.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEvaluationStatus):
			apperrors.BadRequest(c, apperrors.EvaluationInvalidStatus, "invalid evaluation status")
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "review not found")
		default:
			apperrors.InternalError(c, "evaluation failed")
		}
		return
	}

	c.JSON(http.StatusOK, eval)
}

// Get returns one evaluation.
func (ctrl *EvaluationController) Get(c *gin.Context) {
	evaluationID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	eval, err := ctrl.evaluationService.GetByID(evaluationID)
	if err != nil {
		apperrors.NotFound(c, apperrors.EvaluationNotFound, "evaluation not found")
		return
	}

	c.JSON(http.StatusOK, eval)
}

// SubmitResponse records the company's answer to a flagged review.
func (ctrl *EvaluationController) SubmitResponse(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	evaluationID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input struct {
		Response string `json:"response" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "response text is required")
		return
	}

	eval, err := ctrl.evaluationService.SubmitCompanyResponse(principal, evaluationID, input.Response)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResponseNotExpected):
			apperrors.Conflict(c, apperrors.EvaluationNotAwaiting, "evaluation does not await a response")
		case errors.Is(err, service.ErrResponseDeadlinePassed):
			apperrors.Conflict(c, apperrors.EvaluationDeadlinePassed, "response deadline has passed")
		case errors.Is(err, service.ErrEvaluationNotFound):
			apperrors.NotFound(c, apperrors.EvaluationNotFound, "evaluation not found")
		default:
			apperrors.InternalError(c, "response submission failed")
		}
		return
	}

	c.JSON(http.StatusOK, eval)
}

// ApproveResponse closes the case as resolved.
func (ctrl *EvaluationController) ApproveResponse(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	evaluationID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input struct {
		Resolution string `json:"resolution"`
	}
	_ = c.ShouldBindJSON(&input)

	eval, err := ctrl.evaluationService.ApproveResponse(principal, evaluationID, input.Resolution)
	if err != nil {
		ctrl.respondResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, eval)
}

// RejectResponse sends the case back to the company.
func (ctrl *EvaluationController) RejectResponse(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	evaluationID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&input)

	eval, err := ctrl.evaluationService.RejectResponse(principal, evaluationID, input.Notes)
	if err != nil {
		ctrl.respondResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, eval)
}

// AssignedCompanies lists the advisor's current portfolio.
func (ctrl *EvaluationController) AssignedCompanies(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	companies, err := ctrl.companyService.ListByAdvisor(userID)
	if err != nil {
		apperrors.InternalError(c, "failed to load assigned companies")
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (ctrl *EvaluationController) respondResponseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrResponseNotExpected):
		apperrors.Conflict(c, apperrors.EvaluationNotAwaiting, "evaluation does not await a response")
	case errors.Is(err, service.ErrResponseNotSubmitted):
		apperrors.Conflict(c, apperrors.EvaluationNoResponse, "no company response to decide on")
	case errors.Is(err, service.ErrEvaluationNotFound):
		apperrors.NotFound(c, apperrors.EvaluationNotFound, "evaluation not found")
	default:
		apperrors.InternalError(c, "evaluation update failed")
	}
}
