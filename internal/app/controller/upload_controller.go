package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peaceseal/peaceseal-backend/internal/app/service"
	apperrors "github.com/peaceseal/peaceseal-backend/internal/errors"
	"github.com/peaceseal/peaceseal-backend/internal/storage"
)

// Evidence uploads are capped at 20 MB and limited to document formats.
const maxEvidenceSize = 20 * 1024 * 1024

var allowedEvidenceTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type UploadController struct {
	storage              *storage.S3Storage
	questionnaireService service.QuestionnaireService
}

func NewUploadController(s3 *storage.S3Storage, questionnaireService service.QuestionnaireService) *UploadController {
	return &UploadController{
		storage:              s3,
		questionnaireService: questionnaireService,
	}
}

// PresignEvidence hands out a pre-signed URL for uploading a questionnaire
// evidence document, and records the final file URL on the questionnaire.
func (ctrl *UploadController) PresignEvidence(c *gin.Context) {
	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var input struct {
		Filename    string `json:"filename" binding:"required"`
		ContentType string `json:"content_type" binding:"required"`
		Size        int64  `json:"size" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid upload request")
		return
	}

	if err := ctrl.storage.ValidateFileSize(input.Size, maxEvidenceSize); err != nil {
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "file exceeds the 20MB limit")
		return
	}
	if err := ctrl.storage.ValidateContentType(input.ContentType, allowedEvidenceTypes); err != nil {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "file type not allowed")
		return
	}

	presigned, err := ctrl.storage.GeneratePresignedURL(input.Filename, input.ContentType, "evidence")
	if err != nil {
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "failed to prepare upload")
		return
	}

	if _, err := ctrl.questionnaireService.AttachDocument(companyID, presigned.FileURL); err != nil {
		apperrors.NotFound(c, apperrors.QuestionnaireNotFound, "questionnaire not found")
		return
	}

	c.JSON(http.StatusOK, presigned)
}
