package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
)

// CatalogRepository handles read access to the classes/subjects/boards/packages
// catalog. The catalog is owned by external collaborators; the core only
// consults it to validate references and fetch denormalized display fields.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetClassByID retrieves a class by ID
func (r *CatalogRepository) GetClassByID(ctx context.Context, id int64) (*models.Class, error) {
	var class models.Class
	err := r.db.QueryRow(ctx,
		`SELECT id, name, level FROM classes WHERE id = $1`, id).
		Scan(&class.ID, &class.Name, &class.Level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}
	return &class, nil
}

// GetSubjectByID retrieves a subject by ID
func (r *CatalogRepository) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	var subject models.Subject
	err := r.db.QueryRow(ctx,
		`SELECT id, name, code FROM subjects WHERE id = $1`, id).
		Scan(&subject.ID, &subject.Name, &subject.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return &subject, nil
}

// GetAllClasses retrieves the full class catalog
func (r *CatalogRepository) GetAllClasses(ctx context.Context) ([]models.Class, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, level FROM classes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(&class.ID, &class.Name, &class.Level); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

// GetAllSubjects retrieves the full subject catalog
func (r *CatalogRepository) GetAllSubjects(ctx context.Context) ([]models.Subject, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, code FROM subjects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Code); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// GetAllPackages retrieves all packages with their subject membership resolved
func (r *CatalogRepository) GetAllPackages(ctx context.Context) ([]models.Package, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, price FROM packages ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []models.Package
	for rows.Next() {
		var pkg models.Package
		if err := rows.Scan(&pkg.ID, &pkg.Name, &pkg.Price); err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range packages {
		subjects, err := r.getPackageSubjects(ctx, packages[i].ID)
		if err != nil {
			return nil, err
		}
		packages[i].Subjects = subjects
	}

	return packages, nil
}

func (r *CatalogRepository) getPackageSubjects(ctx context.Context, packageID int64) ([]models.Subject, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.name, s.code
		FROM subjects s
		JOIN package_subjects ps ON ps.subject_id = s.id
		WHERE ps.package_id = $1
		ORDER BY s.id`, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Code); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// GetPackageIDsBySubject returns the ids of all packages that include the
// subject. The eligibility query filters students by membership in this set.
func (r *CatalogRepository) GetPackageIDsBySubject(ctx context.Context, subjectID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT package_id FROM package_subjects WHERE subject_id = $1`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving packages for subject: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
