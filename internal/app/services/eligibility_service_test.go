package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
)

const (
	subjMath = int64(3)
	pkgFull  = int64(10)
	pkgOther = int64(11)
)

func newEligibilityFixture() (*EligibilityService, *fakeStudentStore, *fakeCatalogStore) {
	studentStore := newFakeStudentStore()
	catalogStore := newFakeCatalogStore()
	catalogStore.subjects[subjMath] = models.Subject{ID: subjMath, Name: "Mathematics", Code: "MATH"}
	catalogStore.subjectPackages[subjMath] = []int64{pkgFull}
	return NewEligibilityService(studentStore, catalogStore), studentStore, catalogStore
}

func addDirectoryStudent(store *fakeStudentStore, packageID *int64, paid bool) *models.Student {
	return store.add(models.Student{
		AuthID: "auth0|x", StudentID: "STU-0000", Role: "student", UserID: 1,
		SubscribedPackageID: packageID, IsPaid: paid,
	})
}

func TestEligibility_UnknownSubject(t *testing.T) {
	service, _, _ := newEligibilityFixture()

	_, err := service.StudentsEligibleForBatch(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestEligibility_NoPackageBundlesSubject(t *testing.T) {
	service, _, catalogStore := newEligibilityFixture()
	catalogStore.subjects[5] = models.Subject{ID: 5, Name: "Economics", Code: "ECO"}

	_, err := service.StudentsEligibleForBatch(context.Background(), 5)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestEligibility_FiltersUnpaidAndWrongPackage(t *testing.T) {
	service, studentStore, _ := newEligibilityFixture()
	ctx := context.Background()

	full, other := pkgFull, pkgOther
	eligible := addDirectoryStudent(studentStore, &full, true)
	addDirectoryStudent(studentStore, &full, false)  // unpaid
	addDirectoryStudent(studentStore, &other, true)  // package without the subject
	addDirectoryStudent(studentStore, nil, true)     // no subscription at all

	students, err := service.StudentsEligibleForBatch(ctx, subjMath)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, eligible.ID, students[0].ID)
}

func TestEligibility_TrueMarkerExcludes(t *testing.T) {
	service, studentStore, _ := newEligibilityFixture()
	ctx := context.Background()

	full := pkgFull
	placed := addDirectoryStudent(studentStore, &full, true)
	free := addDirectoryStudent(studentStore, &full, true)

	studentStore.markers = append(studentStore.markers, models.BatchMarker{
		StudentID: placed.ID, SubjectID: subjMath, Status: true,
	})

	students, err := service.StudentsEligibleForBatch(ctx, subjMath)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, free.ID, students[0].ID)
}

func TestEligibility_StaleFalseMarkerDoesNotBlock(t *testing.T) {
	service, studentStore, _ := newEligibilityFixture()
	ctx := context.Background()

	full := pkgFull
	student := addDirectoryStudent(studentStore, &full, true)
	studentStore.markers = append(studentStore.markers, models.BatchMarker{
		StudentID: student.ID, SubjectID: subjMath, Status: false,
	})

	students, err := service.StudentsEligibleForBatch(ctx, subjMath)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, student.ID, students[0].ID)
}

func TestEligibility_EmptyResultIsNotFound(t *testing.T) {
	service, studentStore, _ := newEligibilityFixture()

	full := pkgFull
	addDirectoryStudent(studentStore, &full, false)

	_, err := service.StudentsEligibleForBatch(context.Background(), subjMath)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

// Placing students into a batch removes them from the eligible set for that
// subject, and only that subject.
func TestEligibility_ShrinksAfterBatchCreation(t *testing.T) {
	service, studentStore, catalogStore := newEligibilityFixture()
	batchService := NewBatchService(newFakeBatchStore(studentStore), studentStore)
	ctx := context.Background()

	subjPhysics := int64(4)
	catalogStore.subjects[subjPhysics] = models.Subject{ID: subjPhysics, Name: "Physics", Code: "PHY"}
	catalogStore.subjectPackages[subjPhysics] = []int64{pkgFull}

	full := pkgFull
	a := addDirectoryStudent(studentStore, &full, true)
	b := addDirectoryStudent(studentStore, &full, true)

	before, err := service.StudentsEligibleForBatch(ctx, subjMath)
	require.NoError(t, err)
	require.Len(t, before, 2)

	req := validBatchRequest(a.ID)
	req.SubjectID = subjMath
	_, err = batchService.CreateBatch(ctx, req)
	require.NoError(t, err)

	after, err := service.StudentsEligibleForBatch(ctx, subjMath)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, b.ID, after[0].ID)

	// The placement is per subject; both remain eligible for physics
	physics, err := service.StudentsEligibleForBatch(ctx, subjPhysics)
	require.NoError(t, err)
	assert.Len(t, physics, 2)
}
