package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/peaceseal/peaceseal-backend/internal/app/service"
	apperrors "github.com/peaceseal/peaceseal-backend/internal/errors"
)

type DirectoryController struct {
	directoryService service.DirectoryService
}

func NewDirectoryController(directoryService service.DirectoryService) *DirectoryController {
	return &DirectoryController{
		directoryService: directoryService,
	}
}

// List returns the public certified-company directory
// @Summary Public directory
// @Tags Directory
// @Produce json
// @Router /directory [get]
func (ctrl *DirectoryController) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	page, err := ctrl.directoryService.List(c.Request.Context(),
		c.Query("country"), c.Query("industry"), offset, limit)
	if err != nil {
		apperrors.InternalError(c, "failed to load directory")
		return
	}

	c.JSON(http.StatusOK, page)
}

// Profile returns one company's public profile by slug.
func (ctrl *DirectoryController) Profile(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "slug is required")
		return
	}

	entry, err := ctrl.directoryService.PublicProfile(c.Request.Context(), slug)
	if err != nil {
		apperrors.NotFound(c, apperrors.CertCompanyNotFound, "company not found")
		return
	}

	c.JSON(http.StatusOK, entry)
}
