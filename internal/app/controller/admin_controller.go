package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peaceseal/peaceseal-backend/internal/app/service"
	apperrors "github.com/peaceseal/peaceseal-backend/internal/errors"
)

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// ListCompanies returns every company regardless of status.
func (ctrl *AdminController) ListCompanies(c *gin.Context) {
	companies, err := ctrl.adminService.ListCompanies()
	if err != nil {
		apperrors.InternalError(c, "failed to load companies")
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

// ListIssues returns a company's full issue list, closed ones included.
func (ctrl *AdminController) ListIssues(c *gin.Context) {
	companyID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	issues, err := ctrl.adminService.ListIssues(companyID)
	if err != nil {
		apperrors.InternalError(c, "failed to load issues")
		return
	}

	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

// ExportCompanies streams the certification report as an XLSX download.
func (ctrl *AdminController) ExportCompanies(c *gin.Context) {
	f, err := ctrl.adminService.ExportCompaniesXLSX()
	if err != nil {
		apperrors.InternalError(c, "export failed")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("companies-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		apperrors.InternalError(c, "export failed")
		return
	}
}
