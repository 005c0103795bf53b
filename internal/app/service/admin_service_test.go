package service

import (
	"testing"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/repository"
	"github.com/peaceseal/peaceseal-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAdminServiceTest(t *testing.T) (AdminService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	companyRepo := repository.NewCompanyRepository(testDB)
	issueRepo := repository.NewIssueRepository(testDB)
	return NewAdminService(companyRepo, issueRepo), testDB
}

func TestAdminService_ListCompanies_IncludesAllStatuses(t *testing.T) {
	adminService, testDB := setupAdminServiceTest(t)

	for _, c := range []model.Company{
		{Name: "A", Slug: "a", Country: "Ireland", EmployeeCount: 5, Status: model.StatusDraft},
		{Name: "B", Slug: "b", Country: "Ireland", EmployeeCount: 5, Status: model.StatusDidNotPass},
	} {
		company := c
		require.NoError(t, testDB.Create(&company).Error)
	}

	companies, err := adminService.ListCompanies()
	require.NoError(t, err)
	assert.Len(t, companies, 2)
}

func TestAdminService_ExportCompaniesXLSX(t *testing.T) {
	adminService, testDB := setupAdminServiceTest(t)

	score := 82
	require.NoError(t, testDB.Create(&model.Company{
		Name: "Export Co", Slug: "export-co", Country: "Ireland", Industry: "Textiles",
		EmployeeCount: 75, Status: model.StatusVerified, Score: &score,
	}).Error)

	f, err := adminService.ExportCompaniesXLSX()
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Export Co", rows[1][1])
	assert.Equal(t, "verified", rows[1][6])
	assert.Equal(t, "82", rows[1][7])
}
