package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
)

// EligibilityService is the read-side complement of the batch registry's
// marker writes: it derives, per subject, the paid and subscribed students
// not yet placed into a batch for that subject.
type EligibilityService struct {
	studentStore StudentStore
	catalogStore CatalogStore
}

// NewEligibilityService creates a new eligibility service instance
func NewEligibilityService(studentStore StudentStore, catalogStore CatalogStore) *EligibilityService {
	return &EligibilityService{
		studentStore: studentStore,
		catalogStore: catalogStore,
	}
}

// StudentsEligibleForBatch resolves the subject, collects every package that
// bundles it, and selects paid students subscribed to one of those packages
// with no true-status marker for the subject. A stale false-status marker
// left over from a status flip does not block eligibility.
func (s *EligibilityService) StudentsEligibleForBatch(ctx context.Context, subjectID int64) ([]models.Student, error) {
	if subjectID <= 0 {
		return nil, apperrors.NewValidationError("invalid subject id")
	}

	if _, err := s.catalogStore.GetSubjectByID(ctx, subjectID); err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, apperrors.NewNotFoundError("subject not found")
		}
		return nil, fmt.Errorf("error resolving subject: %w", err)
	}

	packageIDs, err := s.catalogStore.GetPackageIDsBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error resolving packages for subject: %w", err)
	}
	if len(packageIDs) == 0 {
		return nil, apperrors.NewNotFoundError("no package includes this subject")
	}

	students, err := s.studentStore.GetEligibleForSubject(ctx, subjectID, packageIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying eligible students: %w", err)
	}
	if len(students) == 0 {
		return nil, apperrors.NewNotFoundError("no eligible students")
	}

	return students, nil
}
