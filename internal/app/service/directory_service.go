package service

import (
	"context"
	"fmt"
	"time"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/repository"
	"github.com/peaceseal/peaceseal-backend/pkg/logger"
	"github.com/peaceseal/peaceseal-backend/pkg/redis"
)

// directoryCacheTTL bounds how stale the public directory may get.
const directoryCacheTTL = 5 * time.Minute

const directoryCachePrefix = "directory:"

// DirectoryEntry is the public projection of a certified company. No internal
// scores or reviewer data leave through this type.
type DirectoryEntry struct {
	Name                string              `json:"name"`
	Slug                string              `json:"slug"`
	Country             string              `json:"country"`
	Industry            string              `json:"industry"`
	Status              model.CompanyStatus `json:"status"`
	SealStatus          model.SealStatus    `json:"seal_status"`
	Score               *int                `json:"score,omitempty"`
	EmployeeRatingAvg   int                 `json:"employee_rating_avg"`
	EmployeeRatingCount int                 `json:"employee_rating_count"`
	OverallRatingAvg    int                 `json:"overall_rating_avg"`
	OverallRatingCount  int                 `json:"overall_rating_count"`
	VerifiedAt          *time.Time          `json:"verified_at,omitempty"`
	ExpiresAt           *time.Time          `json:"expires_at,omitempty"`
}

// DirectoryPage is one page of the public directory.
type DirectoryPage struct {
	Entries []DirectoryEntry `json:"entries"`
	Total   int64            `json:"total"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}

type DirectoryService interface {
	List(ctx context.Context, country, industry string, offset, limit int) (*DirectoryPage, error)
	PublicProfile(ctx context.Context, slug string) (*DirectoryEntry, error)
}

type directoryService struct {
	companyRepo repository.CompanyRepository
}

func NewDirectoryService(companyRepo repository.CompanyRepository) DirectoryService {
	return &directoryService{companyRepo: companyRepo}
}

// publicStatuses are the certification outcomes shown in the directory.
// Applications still in flight stay private.
var publicStatuses = []model.CompanyStatus{
	model.StatusVerified,
	model.StatusConditional,
	model.StatusUnderReview,
}

func isPublicStatus(status model.CompanyStatus) bool {
	for _, s := range publicStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// List returns a page of the public directory, served from cache when fresh.
func (s *directoryService) List(ctx context.Context, country, industry string, offset, limit int) (*DirectoryPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	cacheKey := fmt.Sprintf("%slist:%s:%s:%d:%d", directoryCachePrefix, country, industry, offset, limit)
	var cached DirectoryPage
	if err := redis.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	companies, total, err := s.companyRepo.ListDirectory(repository.DirectoryFilter{
		Country:  country,
		Industry: industry,
		Statuses: publicStatuses,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	page := &DirectoryPage{
		Entries: make([]DirectoryEntry, 0, len(companies)),
		Total:   total,
		Offset:  offset,
		Limit:   limit,
	}
	for i := range companies {
		page.Entries = append(page.Entries, publicEntry(&companies[i]))
	}

	if err := redis.SetJSON(ctx, cacheKey, page, directoryCacheTTL); err != nil {
		logger.Warn("Failed to cache directory page", map[string]interface{}{
			"key": cacheKey,
		})
	}
	return page, nil
}

// PublicProfile returns one company's public entry by directory slug.
func (s *directoryService) PublicProfile(ctx context.Context, slug string) (*DirectoryEntry, error) {
	cacheKey := directoryCachePrefix + "profile:" + slug
	var cached DirectoryEntry
	if err := redis.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	company, err := s.companyRepo.FindBySlug(slug)
	if err != nil {
		return nil, ErrCompanyNotFound
	}

	// Applications still in flight are not publicly resolvable, same gate
	// as the listing.
	if !isPublicStatus(company.Status) {
		return nil, ErrCompanyNotFound
	}

	entry := publicEntry(company)
	if err := redis.SetJSON(ctx, cacheKey, entry, directoryCacheTTL); err != nil {
		logger.Warn("Failed to cache company profile", map[string]interface{}{
			"slug": slug,
		})
	}
	return &entry, nil
}

func publicEntry(c *model.Company) DirectoryEntry {
	return DirectoryEntry{
		Name:                c.Name,
		Slug:                c.Slug,
		Country:             c.Country,
		Industry:            c.Industry,
		Status:              c.Status,
		SealStatus:          c.SealStatus,
		Score:               c.Score,
		EmployeeRatingAvg:   c.EmployeeRatingAvg,
		EmployeeRatingCount: c.EmployeeRatingCount,
		OverallRatingAvg:    c.OverallRatingAvg,
		OverallRatingCount:  c.OverallRatingCount,
		VerifiedAt:          c.VerifiedAt,
		ExpiresAt:           c.ExpiresAt,
	}
}
