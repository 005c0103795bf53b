package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/peaceseal/peaceseal-backend/config"
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/app/repository"
	"github.com/peaceseal/peaceseal-backend/internal/db"
	"github.com/peaceseal/peaceseal-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Imports companies (and optionally advisor accounts) from an XLSX workbook.
//
// Sheet 1 ("Companies"): name, country, industry, employee_count, website
// Sheet "Advisors" (optional): email, name, password
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	companyRepo := repository.NewCompanyRepository(db.GetDB())
	userRepo := repository.NewUserRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX:", err)
	}
	defer f.Close()

	companies, err := readCompanies(f)
	if err != nil {
		log.Fatal("Failed to read companies:", err)
	}
	advisors, err := readAdvisors(f)
	if err != nil {
		log.Fatal("Failed to read advisors:", err)
	}

	fmt.Printf("Companies to import: %d, advisors to import: %d\n", len(companies), len(advisors))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for i := range companies {
		if err := companyRepo.Create(&companies[i]); err != nil {
			fmt.Printf("Skipping %q: %v\n", companies[i].Name, err)
			continue
		}
		imported++
	}
	fmt.Printf("Companies imported: %d\n", imported)

	created := 0
	for i := range advisors {
		if err := userRepo.Create(&advisors[i]); err != nil {
			fmt.Printf("Skipping advisor %q: %v\n", advisors[i].Email, err)
			continue
		}
		created++
	}
	fmt.Printf("Advisor accounts created: %d\n", created)
}

func readCompanies(f *excelize.File) ([]model.Company, error) {
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet %q", sheetName)
	}

	var companies []model.Company
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 4 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		country := strings.TrimSpace(row[1])
		industry := strings.TrimSpace(row[2])
		employeesStr := strings.TrimSpace(row[3])
		website := ""
		if len(row) > 4 {
			website = strings.TrimSpace(row[4])
		}

		if name == "" || country == "" {
			skipped++
			continue
		}

		employees, err := strconv.Atoi(employeesStr)
		if err != nil || employees <= 0 {
			skipped++
			continue
		}

		key := fmt.Sprintf("%s|%s", strings.ToLower(name), strings.ToLower(country))
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		companies = append(companies, model.Company{
			Name:          name,
			Country:       country,
			Industry:      industry,
			EmployeeCount: employees,
			Website:       website,
			Status:        model.StatusDraft,
			PaymentStatus: model.PaymentStatusUnpaid,
			SealStatus:    model.SealActive,
		})
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d company rows\n", skipped)
	}
	return companies, nil
}

func readAdvisors(f *excelize.File) ([]model.User, error) {
	if idx, _ := f.GetSheetIndex("Advisors"); idx < 0 {
		return nil, nil
	}

	rows, err := f.GetRows("Advisors")
	if err != nil {
		return nil, fmt.Errorf("failed to read advisors: %w", err)
	}

	var advisors []model.User
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}

		email := strings.ToLower(strings.TrimSpace(row[0]))
		name := strings.TrimSpace(row[1])
		password := strings.TrimSpace(row[2])
		if email == "" || password == "" {
			continue
		}

		hash, err := util.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", email, err)
		}

		advisors = append(advisors, model.User{
			Email:        email,
			PasswordHash: hash,
			Name:         name,
			Role:         model.RoleAdvisor,
		})
	}
	return advisors, nil
}
