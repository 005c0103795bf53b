package service

import (
	"fmt"
	"time"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/repository"
	"github.com/peaceseal/peaceseal-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type AdminService interface {
	ListCompanies() ([]model.Company, error)
	ListIssues(companyID uint) ([]model.CompanyIssue, error)
	ExportCompaniesXLSX() (*excelize.File, error)
}

type adminService struct {
	companyRepo repository.CompanyRepository
	issueRepo   repository.IssueRepository
}

func NewAdminService(companyRepo repository.CompanyRepository, issueRepo repository.IssueRepository) AdminService {
	return &adminService{companyRepo: companyRepo, issueRepo: issueRepo}
}

func (s *adminService) ListCompanies() ([]model.Company, error) {
	return s.companyRepo.ListAll()
}

func (s *adminService) ListIssues(companyID uint) ([]model.CompanyIssue, error) {
	return s.issueRepo.ListByCompany(companyID)
}

// ExportCompaniesXLSX builds the program-wide certification report used by
// the admin dashboard download.
func (s *adminService) ExportCompaniesXLSX() (*excelize.File, error) {
	companies, err := s.companyRepo.ListAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"ID", "Name", "Slug", "Country", "Industry", "Employees",
		"Status", "Score", "Payment", "Seal", "Active Issues",
		"Overall Rating", "Verified At", "Expires At",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, c := range companies {
		values := []interface{}{
			c.ID, c.Name, c.Slug, c.Country, c.Industry, c.EmployeeCount,
			string(c.Status), scoreCell(c.Score), string(c.PaymentStatus),
			string(c.SealStatus), c.UnresolvedIssuesCount,
			fmt.Sprintf("%d (%d)", c.OverallRatingAvg, c.OverallRatingCount),
			timeCell(c.VerifiedAt), timeCell(c.ExpiresAt),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("Companies report exported", map[string]interface{}{
		"count": len(companies),
	})
	return f, nil
}

func scoreCell(score *int) interface{} {
	if score == nil {
		return ""
	}
	return *score
}

func timeCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
