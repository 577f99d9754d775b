package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/app/repositories"
	"github.com/edusphere/eduadmin/internal/config"
)

// CreateDefaultData seeds the catalog and the default admin account on first
// start. Every insert is idempotent; errors are collected rather than
// aborting the whole pass.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	if err := seedCatalog(ctx, dbPool); err != nil {
		lgr.Error().Err(err).Msg("Error seeding catalog")
		finalErr = errors.Join(finalErr, err)
	}

	// Default admin account
	exists, err := userRepo.ExistsByEmail(ctx, cfg.Admin.Email)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		if cfg.Admin.Password == "" {
			lgr.Warn().Msg("Admin password not configured, skipping admin creation")
		} else {
			lgr.Info().Msg("Creating default admin user...")

			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
			if err != nil {
				lgr.Error().Err(err).Msg("Error hashing admin password")
				finalErr = errors.Join(finalErr, err)
			} else {
				admin := &models.User{
					Email:     cfg.Admin.Email,
					Password:  string(hashedPassword),
					FirstName: "System",
					LastName:  "Administrator",
					RoleType:  models.RoleAdmin,
					IsActive:  true,
					CreatedAt: time.Now(),
					UpdatedAt: time.Now(),
				}

				if err := userRepo.Create(ctx, admin); err != nil {
					lgr.Error().Err(err).Msg("Error creating admin user")
					finalErr = errors.Join(finalErr, err)
				} else {
					lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
				}
			}
		}
	} else {
		lgr.Info().Msg("Admin user already exists, skipping creation")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

// seedCatalog inserts the baseline boards, classes, subjects and packages
func seedCatalog(ctx context.Context, dbPool *pgxpool.Pool) error {
	var finalErr error

	for _, board := range []string{"CBSE", "ICSE", "State Board"} {
		if _, err := dbPool.Exec(ctx,
			`INSERT INTO boards (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, board); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	classes := []struct {
		name  string
		level string
	}{
		{"Class 8", "middle"},
		{"Class 9", "secondary"},
		{"Class 10", "secondary"},
		{"Class 11", "senior secondary"},
		{"Class 12", "senior secondary"},
	}
	for _, class := range classes {
		if _, err := dbPool.Exec(ctx,
			`INSERT INTO classes (name, level) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			class.name, class.level); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	subjects := []struct {
		name string
		code string
	}{
		{"Mathematics", "MATH"},
		{"Physics", "PHY"},
		{"Chemistry", "CHEM"},
		{"Biology", "BIO"},
		{"English", "ENG"},
	}
	for _, subject := range subjects {
		if _, err := dbPool.Exec(ctx,
			`INSERT INTO subjects (name, code) VALUES ($1, $2) ON CONFLICT (code) DO NOTHING`,
			subject.name, subject.code); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Prices in paise
	packages := []struct {
		name     string
		price    int64
		subjects []string
	}{
		{"Science Combo", 499900, []string{"PHY", "CHEM", "BIO"}},
		{"Maths and Science", 599900, []string{"MATH", "PHY", "CHEM"}},
		{"All Subjects", 799900, []string{"MATH", "PHY", "CHEM", "BIO", "ENG"}},
	}
	for _, pkg := range packages {
		var packageID int64
		err := dbPool.QueryRow(ctx, `
			INSERT INTO packages (name, price) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price
			RETURNING id`, pkg.name, pkg.price).Scan(&packageID)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}

		for _, code := range pkg.subjects {
			if _, err := dbPool.Exec(ctx, `
				INSERT INTO package_subjects (package_id, subject_id)
				SELECT $1, id FROM subjects WHERE code = $2
				ON CONFLICT DO NOTHING`, packageID, code); err != nil {
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	return finalErr
}
