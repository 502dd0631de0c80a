package main

import (
	"context"
	"log"
	"time"

	"nexus-ems-be/internal/config"
	"nexus-ems-be/internal/entity"
	"nexus-ems-be/internal/repository/specification"
	"nexus-ems-be/internal/repository/unitofwork"
	"nexus-ems-be/pkg/database"

	"github.com/fatih/color"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)

	color.Cyan("Seeding administrator account...")
	if err := seedAdmin(ctx, uowFactory, cfg.Seed); err != nil {
		color.Red("Failed: %v", err)
	}

	color.Cyan("Seeding sample employees...")
	seedEmployees(ctx, uowFactory)

	color.Green("Seeding completed!")
}

func seedAdmin(ctx context.Context, uowFactory unitofwork.RepositoryFactory, cfg config.SeedConfig) error {
	repo := uowFactory.NewUnitOfWork(ctx).UserRepository()

	existing, err := repo.FindOne(ctx, specification.ByEmail{Email: cfg.AdminEmail})
	if err != nil {
		return err
	}
	if existing != nil {
		color.Yellow("Admin '%s' already exists, skipping...", cfg.AdminEmail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)

	admin := &entity.User{
		Email:        cfg.AdminEmail,
		PasswordHash: &hashStr,
		FullName:     "Administrator",
		Role:         entity.UserRoleAdmin,
		Status:       entity.UserStatusActive,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	color.Green("Created admin: %s (%s)", admin.Email, admin.Id)
	return nil
}

func date(s string) time.Time {
	t, err := time.Parse(entity.JoinDateLayout, s)
	if err != nil {
		log.Fatalf("bad seed date %q: %v", s, err)
	}
	return t
}

// seedEmployees inserts the demo roster once. Rows are matched by email.
func seedEmployees(ctx context.Context, uowFactory unitofwork.RepositoryFactory) {
	employees := []entity.Employee{
		{FullName: "Alicia Hartono", Email: "alicia.hartono@nexus.local", Role: "Staff Engineer", Department: entity.DepartmentEngineering, JoinDate: date("2019-04-15"), Salary: 185000, Status: entity.EmployeeStatusActive},
		{FullName: "Bima Prasetyo", Email: "bima.prasetyo@nexus.local", Role: "Backend Engineer", Department: entity.DepartmentEngineering, JoinDate: date("2021-08-02"), Salary: 132000, Status: entity.EmployeeStatusActive},
		{FullName: "Citra Lestari", Email: "citra.lestari@nexus.local", Role: "HR Business Partner", Department: entity.DepartmentHR, JoinDate: date("2020-01-20"), Salary: 98000, Status: entity.EmployeeStatusActive},
		{FullName: "Dimas Saputra", Email: "dimas.saputra@nexus.local", Role: "Account Executive", Department: entity.DepartmentSales, JoinDate: date("2022-03-07"), Salary: 87000, Status: entity.EmployeeStatusActive},
		{FullName: "Eka Wulandari", Email: "eka.wulandari@nexus.local", Role: "Content Strategist", Department: entity.DepartmentMarketing, JoinDate: date("2021-11-29"), Salary: 76000, Status: entity.EmployeeStatusInactive},
		{FullName: "Farhan Nugroho", Email: "farhan.nugroho@nexus.local", Role: "Financial Analyst", Department: entity.DepartmentFinance, JoinDate: date("2018-06-11"), Salary: 112000, Status: entity.EmployeeStatusActive},
		{FullName: "Gita Maharani", Email: "gita.maharani@nexus.local", Role: "Corporate Counsel", Department: entity.DepartmentLegal, JoinDate: date("2017-09-25"), Salary: 165000, Status: entity.EmployeeStatusActive},
		{FullName: "Hendra Wijaya", Email: "hendra.wijaya@nexus.local", Role: "Sales Manager", Department: entity.DepartmentSales, JoinDate: date("2016-02-01"), Salary: 143000, Status: entity.EmployeeStatusActive},
		{FullName: "Indah Permata", Email: "indah.permata@nexus.local", Role: "Recruiter", Department: entity.DepartmentHR, JoinDate: date("2023-05-15"), Salary: 69000, Status: entity.EmployeeStatusActive},
		{FullName: "Joko Santoso", Email: "joko.santoso@nexus.local", Role: "QA Engineer", Department: entity.DepartmentEngineering, JoinDate: date("2022-10-10"), Salary: 94000, Status: entity.EmployeeStatusInactive},
		{FullName: "Kartika Sari", Email: "kartika.sari@nexus.local", Role: "Growth Marketer", Department: entity.DepartmentMarketing, JoinDate: date("2020-07-13"), Salary: 88000, Status: entity.EmployeeStatusActive},
		{FullName: "Lukas Tanuwijaya", Email: "lukas.tanuwijaya@nexus.local", Role: "Controller", Department: entity.DepartmentFinance, JoinDate: date("2015-12-01"), Salary: 158000, Status: entity.EmployeeStatusActive},
	}

	repo := uowFactory.NewUnitOfWork(ctx).EmployeeRepository()
	for i := range employees {
		e := &employees[i]
		existing, err := repo.FindOne(ctx, specification.ByEmail{Email: e.Email})
		if err != nil {
			color.Red("Error checking employee '%s': %v", e.Email, err)
			continue
		}
		if existing != nil {
			color.Yellow("Employee '%s' already exists, skipping...", e.Email)
			continue
		}

		if err := repo.Create(ctx, e); err != nil {
			color.Red("Error creating employee '%s': %v", e.Email, err)
		} else {
			color.Green("Created employee: %s (%s)", e.FullName, e.Department)
		}
	}
}
