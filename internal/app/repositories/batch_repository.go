package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/db"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
	"github.com/edusphere/eduadmin/internal/pkg/dberrors"
	"github.com/edusphere/eduadmin/internal/pkg/logger"
)

// BatchRepository handles database operations for the batch registry. Batch
// creation and the per-student marker propagation run inside one transaction;
// a batch is never visible unless every roster student's marker write also
// committed, and vice versa.
type BatchRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(database *db.PostgresDB) *BatchRepository {
	return &BatchRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateWithRoster inserts the batch, its roster rows and one
// {subject, status:true} marker per roster student, atomically. Marker
// inserts use add-if-absent semantics on the (student, subject, status)
// triple: re-adding an identical entry is a no-op, while a leftover
// {subject, false} entry is left in place alongside the new true one.
func (r *BatchRepository) CreateWithRoster(ctx context.Context, batch *models.Batch, roster []int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		now := time.Now()
		err := tx.QueryRow(ctx, `
			INSERT INTO batches (batch_name, batch_image, subject_id, class_id, teacher_id,
			                     date, start_date, type_of_batch, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			batch.BatchName, batch.BatchImage, batch.SubjectID, batch.ClassID,
			batch.TeacherID, batch.Date, batch.StartDate, batch.TypeOfBatch, now,
		).Scan(&batch.ID)
		if err != nil {
			return fmt.Errorf("error inserting batch: %w", err)
		}
		batch.CreatedAt = now

		for _, studentID := range roster {
			if _, err := tx.Exec(ctx,
				`INSERT INTO batch_students (batch_id, student_id) VALUES ($1, $2)`,
				batch.ID, studentID); err != nil {
				// A duplicate roster id trips the composite primary key
				if dberrors.IsUniqueViolation(err) {
					return apperrors.ErrInvalidRoster
				}
				return fmt.Errorf("error inserting roster entry: %w", err)
			}

			if _, err := tx.Exec(ctx, `
				INSERT INTO batch_markers (student_id, subject_id, status)
				VALUES ($1, $2, TRUE)
				ON CONFLICT (student_id, subject_id, status) DO NOTHING`,
				studentID, batch.SubjectID); err != nil {
				return fmt.Errorf("error inserting batch marker: %w", err)
			}
		}

		return nil
	})
}

// buildBatchListQuery builds the filtered, sorted, paginated listing query.
// The roster size is derived per row as studentcount; it is never stored.
func buildBatchListQuery(sb squirrel.StatementBuilderType, filter models.BatchFilter, offset uint64, limit int) (string, []interface{}, error) {
	query := sb.Select(
		"b.id", "b.batch_name", "b.batch_image", "b.subject_id", "b.class_id",
		"b.teacher_id", "b.date", "b.start_date", "b.type_of_batch", "b.created_at",
		"(SELECT COUNT(*) FROM batch_students bs WHERE bs.batch_id = b.id) AS studentcount",
	).From("batches b")

	query = applyBatchFilters(query, filter)

	switch filter.Sort {
	case models.SortOldest:
		query = query.OrderBy("b.date ASC")
	case models.SortStartDateAsc:
		query = query.OrderBy("b.start_date ASC NULLS LAST")
	case models.SortStartDateDesc:
		query = query.OrderBy("b.start_date DESC NULLS LAST")
	case models.SortNewest:
		fallthrough
	default:
		query = query.OrderBy("b.date DESC")
	}

	return query.Offset(offset).Limit(uint64(limit)).ToSql()
}

// buildBatchCountQuery builds the matching total-count query
func buildBatchCountQuery(sb squirrel.StatementBuilderType, filter models.BatchFilter) (string, []interface{}, error) {
	query := sb.Select("COUNT(*)").From("batches b")
	query = applyBatchFilters(query, filter)
	return query.ToSql()
}

// applyBatchFilters adds the optional date-range, teacher and roster
// membership conditions. From/To are independent, so half-open ranges work.
func applyBatchFilters(query squirrel.SelectBuilder, filter models.BatchFilter) squirrel.SelectBuilder {
	if filter.StartDateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.start_date": *filter.StartDateFrom})
	}
	if filter.StartDateTo != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_date": *filter.StartDateTo})
	}
	if filter.TeacherID != nil {
		query = query.Where(squirrel.Eq{"b.teacher_id": *filter.TeacherID})
	}
	if filter.StudentID != nil {
		query = query.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM batch_students bs WHERE bs.batch_id = b.id AND bs.student_id = ?)",
			*filter.StudentID))
	}
	return query
}

// GetAll retrieves a page of batches matching the filter, plus the total
// number of matches for pagination metadata
func (r *BatchRepository) GetAll(ctx context.Context, filter models.BatchFilter, offset uint64, limit int) ([]models.Batch, int64, error) {
	countSql, countArgs, err := buildBatchCountQuery(r.sb, filter)
	if err != nil {
		logger.Error().Err(err).Msg("Error building batch count SQL")
		return nil, 0, fmt.Errorf("failed to build batch count query: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting batches: %w", err)
	}

	listSql, listArgs, err := buildBatchListQuery(r.sb, filter, offset, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error building batch list SQL")
		return nil, 0, fmt.Errorf("failed to build batch list query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, listSql, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying batches: %w", err)
	}
	defer rows.Close()

	var batches []models.Batch
	for rows.Next() {
		var b models.Batch
		if err := rows.Scan(
			&b.ID, &b.BatchName, &b.BatchImage, &b.SubjectID, &b.ClassID,
			&b.TeacherID, &b.Date, &b.StartDate, &b.TypeOfBatch, &b.CreatedAt,
			&b.StudentCount,
		); err != nil {
			return nil, 0, err
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return batches, total, nil
}

// GetByID retrieves one batch with teacher, subject, class and roster
// students (each with profile) resolved
func (r *BatchRepository) GetByID(ctx context.Context, id int64) (*models.Batch, error) {
	var b models.Batch
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, batch_name, batch_image, subject_id, class_id, teacher_id,
		       date, start_date, type_of_batch, created_at
		FROM batches
		WHERE id = $1`, id).Scan(
		&b.ID, &b.BatchName, &b.BatchImage, &b.SubjectID, &b.ClassID,
		&b.TeacherID, &b.Date, &b.StartDate, &b.TypeOfBatch, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBatchNotFound
		}
		return nil, fmt.Errorf("error retrieving batch: %w", err)
	}

	if err := r.resolveBatch(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByTeacher retrieves all batches assigned to a teacher, resolved
func (r *BatchRepository) GetByTeacher(ctx context.Context, teacherID int64) ([]models.Batch, error) {
	return r.queryResolvedBatches(ctx, `
		SELECT id, batch_name, batch_image, subject_id, class_id, teacher_id,
		       date, start_date, type_of_batch, created_at
		FROM batches
		WHERE teacher_id = $1
		ORDER BY date DESC`, teacherID)
}

// GetByStudent retrieves all batches whose roster contains the student,
// resolved. An empty result is not an error on this path.
func (r *BatchRepository) GetByStudent(ctx context.Context, studentID int64) ([]models.Batch, error) {
	return r.queryResolvedBatches(ctx, `
		SELECT b.id, b.batch_name, b.batch_image, b.subject_id, b.class_id, b.teacher_id,
		       b.date, b.start_date, b.type_of_batch, b.created_at
		FROM batches b
		JOIN batch_students bs ON bs.batch_id = b.id
		WHERE bs.student_id = $1
		ORDER BY b.date DESC`, studentID)
}

func (r *BatchRepository) queryResolvedBatches(ctx context.Context, query string, args ...interface{}) ([]models.Batch, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying batches: %w", err)
	}
	defer rows.Close()

	var batches []models.Batch
	for rows.Next() {
		var b models.Batch
		if err := rows.Scan(
			&b.ID, &b.BatchName, &b.BatchImage, &b.SubjectID, &b.ClassID,
			&b.TeacherID, &b.Date, &b.StartDate, &b.TypeOfBatch, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range batches {
		if err := r.resolveBatch(ctx, &batches[i]); err != nil {
			return nil, err
		}
	}

	return batches, nil
}

// resolveBatch loads the teacher profile, subject, class and roster. Roster
// entries whose student record was deleted are skipped silently: deletion
// does not cascade, so dangling references are expected.
func (r *BatchRepository) resolveBatch(ctx context.Context, batch *models.Batch) error {
	var teacher models.User
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, email, first_name, last_name, phone, role_type, is_active
		FROM users WHERE id = $1`, batch.TeacherID).Scan(
		&teacher.ID, &teacher.Email, &teacher.FirstName, &teacher.LastName,
		&teacher.Phone, &teacher.RoleType, &teacher.IsActive,
	)
	if err == nil {
		batch.Teacher = &teacher
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("error resolving batch teacher: %w", err)
	}

	var subject models.Subject
	err = r.db.Pool.QueryRow(ctx,
		`SELECT id, name, code FROM subjects WHERE id = $1`, batch.SubjectID).
		Scan(&subject.ID, &subject.Name, &subject.Code)
	if err == nil {
		batch.Subject = &subject
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("error resolving batch subject: %w", err)
	}

	var class models.Class
	err = r.db.Pool.QueryRow(ctx,
		`SELECT id, name, level FROM classes WHERE id = $1`, batch.ClassID).
		Scan(&class.ID, &class.Name, &class.Level)
	if err == nil {
		batch.Class = &class
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("error resolving batch class: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, studentSelect+`
	JOIN batch_students bs ON bs.student_id = s.id
	WHERE bs.batch_id = $1
	ORDER BY s.id`, batch.ID)
	if err != nil {
		return fmt.Errorf("error resolving batch roster: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return err
		}
		students = append(students, *student)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	batch.Students = students
	batch.StudentCount = len(students)
	return nil
}
