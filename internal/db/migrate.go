package db

import (
	"errors"
	"os"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/pkg/logger"
	"github.com/peaceseal/peaceseal-backend/pkg/util"
	"gorm.io/gorm"
)

// Migrate runs database migrations and seeds the bootstrap admin account.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Company{},
		&model.Questionnaire{},
		&model.StatusHistoryEntry{},
		&model.PaymentRecord{},
		&model.StakeholderReview{},
		&model.ReviewEvaluation{},
		&model.CompanyIssue{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedAdminAccount(); err != nil {
		logger.Error("Failed to seed admin account", err)
		return err
	}

	logger.Info("Database migrations completed", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// seedAdminAccount creates the initial super admin when no staff exists.
// Credentials come from SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD; without them
// the seed is skipped so production never gets a default password.
func seedAdminAccount() error {
	var existing model.User
	err := DB.Where("role IN ?", []model.UserRole{model.RoleAdmin, model.RoleSuperAdmin}).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Warn("No admin account exists and SEED_ADMIN_* not set, skipping seed")
		return nil
	}

	hashed, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: hashed,
		Name:         "Program Administrator",
		Role:         model.RoleSuperAdmin,
	}
	if err := DB.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Bootstrap admin account created", map[string]interface{}{
		"email": email,
	})
	return nil
}
