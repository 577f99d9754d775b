package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
	"github.com/edusphere/eduadmin/internal/pkg/validation"
)

// StudentService handles student directory operations
type StudentService struct {
	studentStore StudentStore
	catalogStore CatalogStore
}

// NewStudentService creates a new student service instance
func NewStudentService(studentStore StudentStore, catalogStore CatalogStore) *StudentService {
	return &StudentService{
		studentStore: studentStore,
		catalogStore: catalogStore,
	}
}

// CreateStudent registers a new directory record. The duplicate check is one
// combined query on auth_id OR student_id; the check and the insert are
// separate operations, so concurrent creates can still slip through (known
// gap carried from the original design).
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if !validation.IsRecognizedRole(role) {
		return nil, apperrors.NewValidationError("role must be one of: " + strings.Join(validation.RecognizedRoles, ", "))
	}

	if !validation.IsValidStudentID(req.StudentID) {
		return nil, apperrors.NewValidationError("invalid student id format")
	}

	if !validation.IsValidAuthID(req.AuthID) {
		return nil, apperrors.NewValidationError("invalid auth id format")
	}

	exists, err := s.studentStore.ExistsByAuthOrStudentID(ctx, req.AuthID, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("error checking student existence: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("student with this auth id or student id already exists")
	}

	student := &models.Student{
		AuthID:    req.AuthID,
		StudentID: req.StudentID,
		Role:      role,
		UserID:    req.UserID,
	}

	if err := s.studentStore.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	return student, nil
}

// GetStudentByID retrieves one record with profile, class, subjects and
// board resolved
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid student id")
	}

	student, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewNotFoundError("student not found")
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetStudentByAuthID retrieves one record keyed by the external auth
// identifier. A missing identifier is the caller's fault, not a lookup miss.
func (s *StudentService) GetStudentByAuthID(ctx context.Context, authID string) (*models.Student, error) {
	if strings.TrimSpace(authID) == "" {
		return nil, apperrors.NewBadRequestError("auth_id header is required")
	}

	student, err := s.studentStore.GetByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewNotFoundError("student not found")
		}
		return nil, fmt.Errorf("error retrieving student by auth id: %w", err)
	}

	return student, nil
}

// GetAllStudents returns every directory record, resolved. The listing is
// unpaginated.
func (s *StudentService) GetAllStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.studentStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// UpdateStudent applies a partial update keyed by the student's primary key.
// Omitted fields keep their prior value; pointer fields carry explicit
// zero values (IsPaid=false is applied, IsPaid absent is not). When class_id
// is provided the class snapshot is re-resolved from the catalog.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid student id")
	}

	student, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewNotFoundError("student not found")
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if req.ClassID != nil {
		class, err := s.catalogStore.GetClassByID(ctx, *req.ClassID)
		if err != nil {
			if errors.Is(err, apperrors.ErrClassNotFound) {
				return nil, apperrors.NewNotFoundError("class not found")
			}
			return nil, fmt.Errorf("error resolving class: %w", err)
		}
		student.ClassID = &class.ID
		student.ClassName = class.Name
		student.ClassLevel = class.Level
	}

	if req.BoardID != nil {
		student.BoardID = req.BoardID
	}
	if req.SubscribedPackageID != nil {
		student.SubscribedPackageID = req.SubscribedPackageID
	}
	if req.IsPaid != nil {
		student.IsPaid = *req.IsPaid
	}
	if req.PaymentID != nil {
		student.PaymentID = req.PaymentID
	}
	if req.SubscriptionID != nil {
		student.SubscriptionID = req.SubscriptionID
	}
	if req.PhoneNumber != nil {
		if !validation.IsValidPhone(*req.PhoneNumber) {
			return nil, apperrors.NewValidationError("invalid phone number format")
		}
		student.PhoneNumber = *req.PhoneNumber
	}
	if req.LastOnline != nil {
		student.LastOnline = req.LastOnline
	}

	if err := s.studentStore.Update(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewNotFoundError("student not found")
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	if req.SubjectIDs != nil {
		if err := s.studentStore.SetSubjects(ctx, student.ID, *req.SubjectIDs); err != nil {
			return nil, fmt.Errorf("error updating student subjects: %w", err)
		}
	}

	return s.studentStore.GetByID(ctx, id)
}

// DeleteStudent removes a record unconditionally. Batches that still
// reference the student keep a dangling roster entry; there is no cascade.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid student id")
	}

	err := s.studentStore.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return apperrors.NewNotFoundError("student not found")
		}
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}

// GetStudentsByClass lists students whose class snapshot references the
// class. An empty result is returned as an empty list, not an error.
func (s *StudentService) GetStudentsByClass(ctx context.Context, classID int64) ([]models.Student, error) {
	if classID <= 0 {
		return nil, apperrors.NewValidationError("invalid class id")
	}

	students, err := s.studentStore.GetByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students by class: %w", err)
	}
	return students, nil
}

// GetStudentsBySubjectAndClass lists students in a class carrying a subject.
// An empty result is returned as an empty list, not an error.
func (s *StudentService) GetStudentsBySubjectAndClass(ctx context.Context, subjectID, classID int64) ([]models.Student, error) {
	if subjectID <= 0 || classID <= 0 {
		return nil, apperrors.NewValidationError("invalid subject or class id")
	}

	students, err := s.studentStore.GetBySubjectAndClass(ctx, subjectID, classID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students by subject and class: %w", err)
	}
	return students, nil
}
