package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
)

func newBatchServiceForTest() (*BatchService, *fakeBatchStore, *fakeStudentStore) {
	studentStore := newFakeStudentStore()
	batchStore := newFakeBatchStore(studentStore)
	return NewBatchService(batchStore, studentStore), batchStore, studentStore
}

func validBatchRequest(roster ...int64) *dto.CreateBatchRequest {
	return &dto.CreateBatchRequest{
		BatchName:   "Physics Evening A",
		SubjectID:   3,
		ClassID:     1,
		TeacherID:   7,
		Students:    roster,
		Date:        time.Now(),
		TypeOfBatch: "regular",
	}
}

func seedRoster(studentStore *fakeStudentStore, n int) []int64 {
	var ids []int64
	for i := 0; i < n; i++ {
		s := studentStore.add(models.Student{
			AuthID: "auth0|r", StudentID: "STU-0000", Role: "student", UserID: int64(i + 1),
		})
		ids = append(ids, s.ID)
	}
	return ids
}

func TestCreateBatch_PropagatesMarkersToRoster(t *testing.T) {
	service, batchStore, studentStore := newBatchServiceForTest()
	ctx := context.Background()

	roster := seedRoster(studentStore, 3)

	batch, err := service.CreateBatch(ctx, validBatchRequest(roster...))
	require.NoError(t, err)
	require.NotZero(t, batch.ID)
	assert.Equal(t, 3, batch.StudentCount)

	for _, id := range roster {
		assert.True(t, studentStore.hasTrueMarker(id, 3), "student %d should carry a marker", id)
	}
	assert.Len(t, batchStore.rosters[batch.ID], 3)
}

func TestCreateBatch_MarkerAddIsIdempotentAcrossBatches(t *testing.T) {
	service, _, studentStore := newBatchServiceForTest()
	ctx := context.Background()

	roster := seedRoster(studentStore, 2)

	_, err := service.CreateBatch(ctx, validBatchRequest(roster...))
	require.NoError(t, err)
	_, err = service.CreateBatch(ctx, validBatchRequest(roster...))
	require.NoError(t, err)

	// One true marker per (student, subject) regardless of how many batches
	// placed them
	assert.Len(t, studentStore.markers, 2)
}

func TestCreateBatch_EmptyRoster(t *testing.T) {
	service, _, _ := newBatchServiceForTest()

	_, err := service.CreateBatch(context.Background(), validBatchRequest())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateBatch_UnknownRosterStudent(t *testing.T) {
	service, batchStore, studentStore := newBatchServiceForTest()
	ctx := context.Background()

	roster := seedRoster(studentStore, 2)

	_, err := service.CreateBatch(ctx, validBatchRequest(append(roster, 999)...))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Nothing persisted, not even for the valid roster entries
	assert.Empty(t, batchStore.batches)
	assert.Empty(t, studentStore.markers)
}

func TestCreateBatch_FailedWriteLeavesNothingBehind(t *testing.T) {
	service, batchStore, studentStore := newBatchServiceForTest()
	ctx := context.Background()

	roster := seedRoster(studentStore, 2)
	batchStore.createErr = errStoreDown

	_, err := service.CreateBatch(ctx, validBatchRequest(roster...))
	require.Error(t, err)

	assert.Empty(t, batchStore.batches)
	assert.Empty(t, studentStore.markers)

	// A later retry with a healthy store succeeds from a clean slate
	batchStore.createErr = nil
	batch, err := service.CreateBatch(ctx, validBatchRequest(roster...))
	require.NoError(t, err)
	assert.Len(t, batchStore.rosters[batch.ID], 2)
}

func TestCreateBatch_MissingFields(t *testing.T) {
	service, _, studentStore := newBatchServiceForTest()
	ctx := context.Background()
	roster := seedRoster(studentStore, 1)

	tests := []struct {
		name   string
		mutate func(*dto.CreateBatchRequest)
	}{
		{"empty name", func(r *dto.CreateBatchRequest) { r.BatchName = "  " }},
		{"missing subject", func(r *dto.CreateBatchRequest) { r.SubjectID = 0 }},
		{"missing teacher", func(r *dto.CreateBatchRequest) { r.TeacherID = 0 }},
		{"missing type", func(r *dto.CreateBatchRequest) { r.TypeOfBatch = "" }},
		{"zero date", func(r *dto.CreateBatchRequest) { r.Date = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBatchRequest(roster...)
			tt.mutate(req)
			_, err := service.CreateBatch(ctx, req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestGetBatchByID_NotFound(t *testing.T) {
	service, _, _ := newBatchServiceForTest()

	_, err := service.GetBatchByID(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGetBatchesByTeacher_RequiresTeacherRole(t *testing.T) {
	service, _, studentStore := newBatchServiceForTest()
	ctx := context.Background()

	roster := seedRoster(studentStore, 1)
	_, err := service.CreateBatch(ctx, validBatchRequest(roster...))
	require.NoError(t, err)

	_, err = service.GetBatchesByTeacher(ctx, 7, "STUDENT")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	batches, err := service.GetBatchesByTeacher(ctx, 7, "TEACHER")
	require.NoError(t, err)
	assert.Len(t, batches, 1)
}

func TestGetBatchesByTeacher_EmptyIsNotFound(t *testing.T) {
	service, _, _ := newBatchServiceForTest()

	_, err := service.GetBatchesByTeacher(context.Background(), 7, "TEACHER")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGetBatchesByStudent_EmptyIsValid(t *testing.T) {
	service, _, studentStore := newBatchServiceForTest()
	ctx := context.Background()

	roster := seedRoster(studentStore, 2)
	_, err := service.CreateBatch(ctx, validBatchRequest(roster[0]))
	require.NoError(t, err)

	batches, err := service.GetBatchesByStudent(ctx, roster[0])
	require.NoError(t, err)
	assert.Len(t, batches, 1)

	batches, err = service.GetBatchesByStudent(ctx, roster[1])
	require.NoError(t, err)
	assert.Empty(t, batches)
}
