package main

import (
	"log"

	"nexus-ems-be/internal/config"
	"nexus-ems-be/internal/model"
	"nexus-ems-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	// gen_random_uuid() backs every primary key default.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.User{},
		&model.UserRefreshToken{},
		&model.Employee{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Adding constraints...")
	postMigrationSQL := []string{
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'employees_department_check') THEN
		    ALTER TABLE employees ADD CONSTRAINT employees_department_check
		      CHECK (department IN ('Engineering', 'HR', 'Sales', 'Marketing', 'Finance', 'Legal'));
		  END IF;
		END $$;`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'employees_status_check') THEN
		    ALTER TABLE employees ADD CONSTRAINT employees_status_check CHECK (status IN ('Active', 'Inactive'));
		  END IF;
		END $$;`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'employees_salary_check') THEN
		    ALTER TABLE employees ADD CONSTRAINT employees_salary_check CHECK (salary >= 0);
		  END IF;
		END $$;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed.")
}
