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

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// Submit accepts an anonymous stakeholder review
// @Summary Submit a stakeholder review
// @Tags Reviews
// @Accept json
// @Produce json
// @Router /companies/{id}/reviews [post]
func (ctrl *ReviewController) Submit(c *gin.Context) {
	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input struct {
		Role          model.ReviewerRole `json:"role" binding:"required"`
		Answers       model.AnswerMap    `json:"answers" binding:"required"`
		ReviewerName  string             `json:"reviewer_name"`
		ReviewerEmail string             `json:"reviewer_email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid review payload")
		return
	}

	review, err := ctrl.reviewService.Submit(service.SubmitReviewInput{
		CompanyID:     companyID,
		Role:          input.Role,
		Answers:       input.Answers,
		ReviewerName:  input.ReviewerName,
		ReviewerEmail: input.ReviewerEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReviewerRole):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRole, "unknown reviewer role")
		case errors.Is(err, service.ErrCompanyNotFound):
			apperrors.NotFound(c, apperrors.CertCompanyNotFound, "company not found")
		default:
			apperrors.InternalError(c, "review submission failed")
		}
		return
	}

	c.JSON(http.StatusCreated, review)
}

// Confirm handles the email confirmation link.
func (ctrl *ReviewController) Confirm(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "token is required")
		return
	}

	review, err := ctrl.reviewService.ConfirmByToken(token)
	if err != nil {
		if errors.Is(err, service.ErrReviewTokenInvalid) {
			apperrors.NotFound(c, apperrors.ReviewTokenInvalid, "verification token not recognized")
			return
		}
		apperrors.InternalError(c, "review confirmation failed")
		return
	}

	c.JSON(http.StatusOK, review)
}

// List returns a company's reviews, optionally filtered by verification
// status. Staff see all statuses; the public listing is verified-only.
func (ctrl *ReviewController) List(c *gin.Context) {
	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	status := model.VerificationVerified
	if role, ok := middleware.GetUserRole(c); ok && role.IsStaff() {
		status = model.VerificationStatus(c.Query("status"))
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reviews, total, err := ctrl.reviewService.ListByCompany(companyID, status, offset, limit)
	if err != nil {
		apperrors.InternalError(c, "failed to load reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   reviews,
		"total":  total,
		"offset": offset,
		"limit":  limit,
	})
}

// Questions returns the question catalog for a stakeholder role.
func (ctrl *ReviewController) Questions(c *gin.Context) {
	role := model.ReviewerRole(c.Param("role"))
	if !role.IsValid() {
		apperrors.BadRequest(c, apperrors.ReviewInvalidRole, "unknown reviewer role")
		return
	}

	sections, _ := rules.SectionsForRole(role)
	catalog := make([]gin.H, 0, len(sections))
	for _, section := range sections {
		catalog = append(catalog, gin.H{
			"section":   section.ID,
			"weight":    section.Weight,
			"questions": rules.QuestionsForSection(role, section.ID),
		})
	}

	c.JSON(http.StatusOK, gin.H{"role": role, "sections": catalog})
}

// AdminVerify force-verifies a review.
func (ctrl *ReviewController) AdminVerify(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	review, err := ctrl.reviewService.AdminVerify(principal, reviewID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "review not found")
			return
		}
		apperrors.InternalError(c, "review verification failed")
		return
	}

	c.JSON(http.StatusOK, review)
}

// AdminDismiss marks a review unverified.
func (ctrl *ReviewController) AdminDismiss(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	review, err := ctrl.reviewService.AdminDismiss(principal, reviewID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "review not found")
			return
		}
		apperrors.InternalError(c, "review dismissal failed")
		return
	}

	c.JSON(http.StatusOK, review)
}
