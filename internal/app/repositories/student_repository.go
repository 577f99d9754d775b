package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
)

// studentSelect is the shared projection for resolved student reads: the
// student row plus its user profile and the denormalized board/package names.
const studentSelect = `
	SELECT s.id, s.auth_id, s.student_id, s.role, s.user_id,
	       s.class_id, s.class_name, s.class_level,
	       s.board_id, s.subscribed_package_id, s.is_paid,
	       s.payment_id, s.subscription_id, s.phone_number,
	       s.last_online, s.created_at,
	       u.id, u.email, u.first_name, u.last_name, u.phone, u.role_type, u.is_active,
	       b.name, p.name
	FROM students s
	JOIN users u ON s.user_id = u.id
	LEFT JOIN boards b ON s.board_id = b.id
	LEFT JOIN packages p ON s.subscribed_package_id = p.id`

// StudentRepository handles database operations for the student directory
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// scanStudent scans one row of the studentSelect projection
func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	var u models.User
	var boardName, packageName *string

	err := row.Scan(
		&s.ID, &s.AuthID, &s.StudentID, &s.Role, &s.UserID,
		&s.ClassID, &s.ClassName, &s.ClassLevel,
		&s.BoardID, &s.SubscribedPackageID, &s.IsPaid,
		&s.PaymentID, &s.SubscriptionID, &s.PhoneNumber,
		&s.LastOnline, &s.CreatedAt,
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.RoleType, &u.IsActive,
		&boardName, &packageName,
	)
	if err != nil {
		return nil, err
	}

	s.User = &u
	if s.BoardID != nil && boardName != nil {
		s.Board = &models.Board{ID: *s.BoardID, Name: *boardName}
	}
	if s.SubscribedPackageID != nil && packageName != nil {
		s.Package = &models.Package{ID: *s.SubscribedPackageID, Name: *packageName}
	}

	return &s, nil
}

// Create inserts a new directory record and sets its generated ID.
// The caller performs the combined auth_id/student_id existence check first;
// the check and this insert are two separate operations with no uniqueness
// constraint between them, so concurrent creates can still race (known gap).
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (auth_id, student_id, role, user_id, class_id, class_name, class_level,
		                      board_id, subscribed_package_id, is_paid, payment_id,
		                      subscription_id, phone_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		student.AuthID, student.StudentID, student.Role, student.UserID,
		student.ClassID, student.ClassName, student.ClassLevel,
		student.BoardID, student.SubscribedPackageID, student.IsPaid,
		student.PaymentID, student.SubscriptionID, student.PhoneNumber, now,
	).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	student.CreatedAt = now
	return nil
}

// ExistsByAuthOrStudentID performs the single combined existence query used
// to reject duplicate external identifiers before insert.
func (r *StudentRepository) ExistsByAuthOrStudentID(ctx context.Context, authID, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE auth_id = $1 OR student_id = $2)`,
		authID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// GetByID retrieves a student by primary key with profile, board, package,
// subjects and markers resolved
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if err := r.resolveRelations(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetByAuthID retrieves a student by its external auth identifier
func (r *StudentRepository) GetByAuthID(ctx context.Context, authID string) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.auth_id = $1`, authID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by auth id: %w", err)
	}

	if err := r.resolveRelations(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetAll retrieves every directory record with profile and references
// resolved. The listing is unpaginated.
func (r *StudentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	return r.queryStudents(ctx, studentSelect+` ORDER BY s.id`)
}

// GetByClass retrieves students whose class snapshot references the class
func (r *StudentRepository) GetByClass(ctx context.Context, classID int64) ([]models.Student, error) {
	return r.queryStudents(ctx, studentSelect+` WHERE s.class_id = $1 ORDER BY s.id`, classID)
}

// GetBySubjectAndClass retrieves students in a class that carry the subject
func (r *StudentRepository) GetBySubjectAndClass(ctx context.Context, subjectID, classID int64) ([]models.Student, error) {
	query := studentSelect + `
	WHERE s.class_id = $1
	  AND EXISTS (SELECT 1 FROM student_subjects ss WHERE ss.student_id = s.id AND ss.subject_id = $2)
	ORDER BY s.id`
	return r.queryStudents(ctx, query, classID, subjectID)
}

// GetEligibleForSubject selects paid students whose subscribed package is in
// the given set and who carry no true-status marker for the subject. A stale
// false-status marker does not block eligibility.
func (r *StudentRepository) GetEligibleForSubject(ctx context.Context, subjectID int64, packageIDs []int64) ([]models.Student, error) {
	query := studentSelect + `
	WHERE s.subscribed_package_id = ANY($1)
	  AND s.is_paid = TRUE
	  AND NOT EXISTS (
		SELECT 1 FROM batch_markers m
		WHERE m.student_id = s.id AND m.subject_id = $2 AND m.status = TRUE
	  )
	ORDER BY s.id`
	return r.queryStudents(ctx, query, packageIDs, subjectID)
}

// Update writes the mutable directory fields of an existing record
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET class_id = $1, class_name = $2, class_level = $3,
		    board_id = $4, subscribed_package_id = $5, is_paid = $6,
		    payment_id = $7, subscription_id = $8, phone_number = $9,
		    last_online = $10
		WHERE id = $11
	`

	tag, err := r.db.Exec(ctx, query,
		student.ClassID, student.ClassName, student.ClassLevel,
		student.BoardID, student.SubscribedPackageID, student.IsPaid,
		student.PaymentID, student.SubscriptionID, student.PhoneNumber,
		student.LastOnline, student.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetSubjects replaces the student's subject set
func (r *StudentRepository) SetSubjects(ctx context.Context, studentID int64, subjectIDs []int64) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM student_subjects WHERE student_id = $1`, studentID); err != nil {
		return fmt.Errorf("error clearing student subjects: %w", err)
	}

	for _, subjectID := range subjectIDs {
		if _, err := r.db.Exec(ctx,
			`INSERT INTO student_subjects (student_id, subject_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			studentID, subjectID); err != nil {
			return fmt.Errorf("error adding student subject: %w", err)
		}
	}
	return nil
}

// Delete removes a directory record. Batch rosters referencing the student
// are left untouched, so they retain dangling references (no cascade).
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// CountByIDs counts how many of the given ids resolve to existing records.
// Batch creation compares this count to the roster length; a mismatch means
// at least one id is invalid, without identifying which.
func (r *StudentRepository) CountByIDs(ctx context.Context, ids []int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT id) FROM students WHERE id = ANY($1)`, ids).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// SubscriptionStats tallies paid vs unpaid records
func (r *StudentRepository) SubscriptionStats(ctx context.Context) (dto.SubscriptionStats, error) {
	var stats dto.SubscriptionStats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE is_paid),
		       COUNT(*) FILTER (WHERE NOT is_paid),
		       COUNT(*)
		FROM students`).Scan(&stats.Paid, &stats.Unpaid, &stats.Total)
	if err != nil {
		return stats, fmt.Errorf("error computing subscription stats: %w", err)
	}
	return stats, nil
}

// ClassDistribution counts students per class snapshot
func (r *StudentRepository) ClassDistribution(ctx context.Context) ([]dto.ClassDistribution, error) {
	rows, err := r.db.Query(ctx, `
		SELECT class_id, class_name, COUNT(*)
		FROM students
		WHERE class_id IS NOT NULL
		GROUP BY class_id, class_name
		ORDER BY class_id`)
	if err != nil {
		return nil, fmt.Errorf("error computing class distribution: %w", err)
	}
	defer rows.Close()

	var result []dto.ClassDistribution
	for rows.Next() {
		var d dto.ClassDistribution
		if err := rows.Scan(&d.ClassID, &d.ClassName, &d.Count); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// RegistrationsByDay counts directory creations per day over the last N days
func (r *StudentRepository) RegistrationsByDay(ctx context.Context, days int) ([]dto.RegistrationPoint, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(created_at::date, 'YYYY-MM-DD'), COUNT(*)
		FROM students
		WHERE created_at >= NOW() - ($1 || ' days')::interval
		GROUP BY created_at::date
		ORDER BY created_at::date`, days)
	if err != nil {
		return nil, fmt.Errorf("error computing registrations: %w", err)
	}
	defer rows.Close()

	var result []dto.RegistrationPoint
	for rows.Next() {
		var p dto.RegistrationPoint
		if err := rows.Scan(&p.Day, &p.Count); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// queryStudents runs a studentSelect query and resolves relations per row
func (r *StudentRepository) queryStudents(ctx context.Context, query string, args ...interface{}) ([]models.Student, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *student)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range students {
		if err := r.resolveRelations(ctx, &students[i]); err != nil {
			return nil, err
		}
	}

	return students, nil
}

// resolveRelations loads the student's subject set and marker entries
func (r *StudentRepository) resolveRelations(ctx context.Context, student *models.Student) error {
	subjects, err := r.loadSubjects(ctx, student.ID)
	if err != nil {
		return err
	}
	student.Subjects = subjects

	markers, err := r.loadMarkers(ctx, student.ID)
	if err != nil {
		return err
	}
	student.Markers = markers

	return nil
}

func (r *StudentRepository) loadSubjects(ctx context.Context, studentID int64) ([]models.Subject, error) {
	rows, err := r.db.Query(ctx, `
		SELECT sub.id, sub.name, sub.code
		FROM subjects sub
		JOIN student_subjects ss ON ss.subject_id = sub.id
		WHERE ss.student_id = $1
		ORDER BY sub.id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error loading student subjects: %w", err)
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

func (r *StudentRepository) loadMarkers(ctx context.Context, studentID int64) ([]models.BatchMarker, error) {
	rows, err := r.db.Query(ctx, `
		SELECT student_id, subject_id, status
		FROM batch_markers
		WHERE student_id = $1
		ORDER BY subject_id, status`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error loading batch markers: %w", err)
	}
	defer rows.Close()

	var markers []models.BatchMarker
	for rows.Next() {
		var m models.BatchMarker
		if err := rows.Scan(&m.StudentID, &m.SubjectID, &m.Status); err != nil {
			return nil, err
		}
		markers = append(markers, m)
	}
	return markers, rows.Err()
}
