package service

import (
	"context"
	"testing"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/repository"
	"github.com/peaceseal/peaceseal-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDirectoryServiceTest(t *testing.T) (DirectoryService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	companyRepo := repository.NewCompanyRepository(testDB)
	return NewDirectoryService(companyRepo), testDB
}

func seedDirectoryCompany(t *testing.T, testDB *gorm.DB, name, slug, country string, status model.CompanyStatus) {
	require.NoError(t, testDB.Create(&model.Company{
		Name: name, Slug: slug, Country: country, Industry: "Manufacturing",
		EmployeeCount: 100, Status: status,
	}).Error)
}

func TestDirectoryService_List_OnlyPublicStatuses(t *testing.T) {
	directoryService, testDB := setupDirectoryServiceTest(t)

	seedDirectoryCompany(t, testDB, "Verified Co", "verified-co", "Ireland", model.StatusVerified)
	seedDirectoryCompany(t, testDB, "Conditional Co", "conditional-co", "Ireland", model.StatusConditional)
	seedDirectoryCompany(t, testDB, "Reviewed Co", "reviewed-co", "Ireland", model.StatusUnderReview)
	seedDirectoryCompany(t, testDB, "Draft Co", "draft-co", "Ireland", model.StatusDraft)
	seedDirectoryCompany(t, testDB, "Failed Co", "failed-co", "Ireland", model.StatusDidNotPass)

	page, err := directoryService.List(context.Background(), "", "", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)

	slugs := make([]string, 0, len(page.Entries))
	for _, entry := range page.Entries {
		slugs = append(slugs, entry.Slug)
	}
	assert.ElementsMatch(t, []string{"verified-co", "conditional-co", "reviewed-co"}, slugs)
}

func TestDirectoryService_List_CountryFilterAndPaging(t *testing.T) {
	directoryService, testDB := setupDirectoryServiceTest(t)

	seedDirectoryCompany(t, testDB, "Dublin Co", "dublin-co", "Ireland", model.StatusVerified)
	seedDirectoryCompany(t, testDB, "Berlin Co", "berlin-co", "Germany", model.StatusVerified)
	seedDirectoryCompany(t, testDB, "Cork Co", "cork-co", "Ireland", model.StatusVerified)

	page, err := directoryService.List(context.Background(), "Ireland", "", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Entries, 1)
	assert.Equal(t, "Ireland", page.Entries[0].Country)
}

func TestDirectoryService_PublicProfile(t *testing.T) {
	directoryService, testDB := setupDirectoryServiceTest(t)

	seedDirectoryCompany(t, testDB, "Profile Co", "profile-co", "Ireland", model.StatusVerified)

	entry, err := directoryService.PublicProfile(context.Background(), "profile-co")
	require.NoError(t, err)
	assert.Equal(t, "Profile Co", entry.Name)
	assert.Equal(t, model.StatusVerified, entry.Status)

	_, err = directoryService.PublicProfile(context.Background(), "no-such-slug")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestDirectoryService_PublicProfile_HidesNonPublicStatuses(t *testing.T) {
	directoryService, testDB := setupDirectoryServiceTest(t)

	score := 42
	require.NoError(t, testDB.Create(&model.Company{
		Name: "Hidden Co", Slug: "hidden-co", Country: "Ireland", Industry: "Manufacturing",
		EmployeeCount: 100, Status: model.StatusDraft, Score: &score,
	}).Error)
	seedDirectoryCompany(t, testDB, "Failed Co", "failed-co", "Ireland", model.StatusDidNotPass)

	// In-flight applications and failed audits are not resolvable by slug.
	_, err := directoryService.PublicProfile(context.Background(), "hidden-co")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
	_, err = directoryService.PublicProfile(context.Background(), "failed-co")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}
