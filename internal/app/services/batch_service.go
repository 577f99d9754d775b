package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
	"github.com/edusphere/eduadmin/internal/pkg/logger"
)

// BatchService handles the batch registry: the transactional creation write
// path and the batch lookup read paths
type BatchService struct {
	batchStore   BatchStore
	studentStore StudentStore
}

// NewBatchService creates a new batch service instance
func NewBatchService(batchStore BatchStore, studentStore StudentStore) *BatchService {
	return &BatchService{
		batchStore:   batchStore,
		studentStore: studentStore,
	}
}

// CreateBatch validates the request, verifies the roster with a single
// count query, and then runs the batch insert plus per-student marker
// propagation inside one transaction. On any failure nothing persists:
// neither the batch nor any marker. There are no retries; a failed
// transaction aborts once and surfaces the error.
func (s *BatchService) CreateBatch(ctx context.Context, req *dto.CreateBatchRequest) (*models.Batch, error) {
	if strings.TrimSpace(req.BatchName) == "" {
		return nil, apperrors.NewValidationError("batch name is required")
	}
	if req.SubjectID <= 0 || req.ClassID <= 0 || req.TeacherID <= 0 {
		return nil, apperrors.NewValidationError("subject, class and teacher are required")
	}
	if strings.TrimSpace(req.TypeOfBatch) == "" {
		return nil, apperrors.NewValidationError("type of batch is required")
	}
	if req.Date.IsZero() {
		return nil, apperrors.NewValidationError("date is required")
	}
	if len(req.Students) == 0 {
		return nil, apperrors.NewValidationError("batch requires at least one student")
	}

	// One existence-count query over the whole roster. A mismatch means at
	// least one id is invalid; the count cannot say which one.
	count, err := s.studentStore.CountByIDs(ctx, req.Students)
	if err != nil {
		return nil, fmt.Errorf("error validating roster: %w", err)
	}
	if count != len(req.Students) {
		return nil, apperrors.NewValidationError("invalid student id")
	}

	batch := &models.Batch{
		BatchName:   req.BatchName,
		BatchImage:  req.BatchImage,
		SubjectID:   req.SubjectID,
		ClassID:     req.ClassID,
		TeacherID:   req.TeacherID,
		Date:        req.Date,
		StartDate:   req.StartDate,
		TypeOfBatch: req.TypeOfBatch,
	}

	if err := s.batchStore.CreateWithRoster(ctx, batch, req.Students); err != nil {
		logger.Error().Err(err).Str("batch", req.BatchName).Msg("Batch creation transaction failed")
		return nil, fmt.Errorf("error creating batch: %w", err)
	}

	batch.StudentCount = len(req.Students)
	return batch, nil
}

// GetAllBatches returns one page of the filtered batch listing plus
// pagination metadata
func (s *BatchService) GetAllBatches(ctx context.Context, filter models.BatchFilter, offset uint64, limit int) ([]models.Batch, int64, error) {
	batches, total, err := s.batchStore.GetAll(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving batches: %w", err)
	}
	return batches, total, nil
}

// GetBatchByID retrieves one batch with nested relations resolved
func (s *BatchService) GetBatchByID(ctx context.Context, id int64) (*models.Batch, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid batch id")
	}

	batch, err := s.batchStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrBatchNotFound) {
			return nil, apperrors.NewNotFoundError("batch not found")
		}
		return nil, fmt.Errorf("error retrieving batch: %w", err)
	}
	return batch, nil
}

// GetBatchesByTeacher retrieves a teacher's batches. The operation is gated:
// the caller must itself hold the teacher role. An empty result is an error
// on this path.
func (s *BatchService) GetBatchesByTeacher(ctx context.Context, teacherID int64, callerRole string) ([]models.Batch, error) {
	if teacherID <= 0 {
		return nil, apperrors.NewValidationError("invalid teacher id")
	}

	if !strings.EqualFold(callerRole, string(models.RoleTeacher)) {
		return nil, apperrors.NewForbiddenError("only teachers can access teacher batches")
	}

	batches, err := s.batchStore.GetByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teacher batches: %w", err)
	}
	if len(batches) == 0 {
		return nil, apperrors.NewNotFoundError("no batches found for teacher")
	}
	return batches, nil
}

// GetBatchesByStudent retrieves the batches whose roster contains the
// student. Unlike the by-teacher path, an empty set is a valid result here.
func (s *BatchService) GetBatchesByStudent(ctx context.Context, studentID int64) ([]models.Batch, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("invalid student id")
	}

	batches, err := s.batchStore.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student batches: %w", err)
	}
	return batches, nil
}
