package services

import (
	"context"
	"errors"
	"time"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
)

// In-memory fakes for the store interfaces. The batch fake shares the student
// fake so marker propagation and eligibility can be exercised end to end.

type fakeStudentStore struct {
	students map[int64]*models.Student
	markers  []models.BatchMarker
	nextID   int64

	createErr error
	updateErr error
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student)}
}

func (f *fakeStudentStore) add(s models.Student) *models.Student {
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	f.students[s.ID] = &s
	return f.students[s.ID]
}

func (f *fakeStudentStore) hasTrueMarker(studentID, subjectID int64) bool {
	for _, m := range f.markers {
		if m.StudentID == studentID && m.SubjectID == subjectID && m.Status {
			return true
		}
	}
	return false
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	student.ID = f.nextID
	student.CreatedAt = time.Now()
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) ExistsByAuthOrStudentID(_ context.Context, authID, studentID string) (bool, error) {
	for _, s := range f.students {
		if s.AuthID == authID || s.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStudentStore) GetByAuthID(_ context.Context, authID string) (*models.Student, error) {
	for _, s := range f.students {
		if s.AuthID == authID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) GetAll(_ context.Context) ([]models.Student, error) {
	var out []models.Student
	for id := int64(1); id <= f.nextID; id++ {
		if s, ok := f.students[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) GetByClass(_ context.Context, classID int64) ([]models.Student, error) {
	var out []models.Student
	for id := int64(1); id <= f.nextID; id++ {
		s, ok := f.students[id]
		if ok && s.ClassID != nil && *s.ClassID == classID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) GetBySubjectAndClass(_ context.Context, subjectID, classID int64) ([]models.Student, error) {
	var out []models.Student
	for id := int64(1); id <= f.nextID; id++ {
		s, ok := f.students[id]
		if !ok || s.ClassID == nil || *s.ClassID != classID {
			continue
		}
		for _, subject := range s.Subjects {
			if subject.ID == subjectID {
				out = append(out, *s)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStudentStore) GetEligibleForSubject(_ context.Context, subjectID int64, packageIDs []int64) ([]models.Student, error) {
	inSet := func(id int64) bool {
		for _, p := range packageIDs {
			if p == id {
				return true
			}
		}
		return false
	}

	var out []models.Student
	for id := int64(1); id <= f.nextID; id++ {
		s, ok := f.students[id]
		if !ok || !s.IsPaid || s.SubscribedPackageID == nil || !inSet(*s.SubscribedPackageID) {
			continue
		}
		if f.hasTrueMarker(s.ID, subjectID) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) SetSubjects(_ context.Context, studentID int64, subjectIDs []int64) error {
	s, ok := f.students[studentID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.Subjects = nil
	for _, id := range subjectIDs {
		s.Subjects = append(s.Subjects, models.Subject{ID: id})
	}
	return nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentStore) CountByIDs(_ context.Context, ids []int64) (int, error) {
	seen := make(map[int64]bool)
	for _, id := range ids {
		if _, ok := f.students[id]; ok {
			seen[id] = true
		}
	}
	return len(seen), nil
}

func (f *fakeStudentStore) SubscriptionStats(_ context.Context) (dto.SubscriptionStats, error) {
	var stats dto.SubscriptionStats
	for _, s := range f.students {
		if s.IsPaid {
			stats.Paid++
		} else {
			stats.Unpaid++
		}
		stats.Total++
	}
	return stats, nil
}

func (f *fakeStudentStore) ClassDistribution(_ context.Context) ([]dto.ClassDistribution, error) {
	counts := make(map[int64]*dto.ClassDistribution)
	for _, s := range f.students {
		if s.ClassID == nil {
			continue
		}
		d, ok := counts[*s.ClassID]
		if !ok {
			d = &dto.ClassDistribution{ClassID: *s.ClassID, ClassName: s.ClassName}
			counts[*s.ClassID] = d
		}
		d.Count++
	}
	var out []dto.ClassDistribution
	for _, d := range counts {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeStudentStore) RegistrationsByDay(_ context.Context, _ int) ([]dto.RegistrationPoint, error) {
	counts := make(map[string]int64)
	for _, s := range f.students {
		counts[s.CreatedAt.Format("2006-01-02")]++
	}
	var out []dto.RegistrationPoint
	for day, count := range counts {
		out = append(out, dto.RegistrationPoint{Day: day, Count: count})
	}
	return out, nil
}

type fakeBatchStore struct {
	studentStore *fakeStudentStore
	batches      map[int64]*models.Batch
	rosters      map[int64][]int64
	nextID       int64

	createErr error
}

func newFakeBatchStore(studentStore *fakeStudentStore) *fakeBatchStore {
	return &fakeBatchStore{
		studentStore: studentStore,
		batches:      make(map[int64]*models.Batch),
		rosters:      make(map[int64][]int64),
	}
}

// CreateWithRoster mirrors the transactional contract: on error nothing is
// recorded, on success the batch, its roster and one true marker per student
// all land together. Marker insertion is add-if-absent on the full triple.
func (f *fakeBatchStore) CreateWithRoster(_ context.Context, batch *models.Batch, roster []int64) error {
	if f.createErr != nil {
		return f.createErr
	}

	f.nextID++
	batch.ID = f.nextID
	batch.CreatedAt = time.Now()
	copied := *batch
	f.batches[batch.ID] = &copied
	f.rosters[batch.ID] = append([]int64(nil), roster...)

	for _, studentID := range roster {
		if !f.studentStore.hasTrueMarker(studentID, batch.SubjectID) {
			f.studentStore.markers = append(f.studentStore.markers, models.BatchMarker{
				StudentID: studentID,
				SubjectID: batch.SubjectID,
				Status:    true,
			})
		}
	}
	return nil
}

func (f *fakeBatchStore) GetAll(_ context.Context, _ models.BatchFilter, offset uint64, limit int) ([]models.Batch, int64, error) {
	var all []models.Batch
	for id := int64(1); id <= f.nextID; id++ {
		if b, ok := f.batches[id]; ok {
			all = append(all, *b)
		}
	}
	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return nil, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeBatchStore) GetByID(_ context.Context, id int64) (*models.Batch, error) {
	b, ok := f.batches[id]
	if !ok {
		return nil, apperrors.ErrBatchNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBatchStore) GetByTeacher(_ context.Context, teacherID int64) ([]models.Batch, error) {
	var out []models.Batch
	for id := int64(1); id <= f.nextID; id++ {
		if b, ok := f.batches[id]; ok && b.TeacherID == teacherID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBatchStore) GetByStudent(_ context.Context, studentID int64) ([]models.Batch, error) {
	var out []models.Batch
	for id := int64(1); id <= f.nextID; id++ {
		b, ok := f.batches[id]
		if !ok {
			continue
		}
		for _, member := range f.rosters[id] {
			if member == studentID {
				out = append(out, *b)
				break
			}
		}
	}
	return out, nil
}

type fakeCatalogStore struct {
	classes         map[int64]models.Class
	subjects        map[int64]models.Subject
	packages        map[int64]models.Package
	subjectPackages map[int64][]int64 // subject id -> package ids bundling it
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{
		classes:         make(map[int64]models.Class),
		subjects:        make(map[int64]models.Subject),
		packages:        make(map[int64]models.Package),
		subjectPackages: make(map[int64][]int64),
	}
}

func (f *fakeCatalogStore) GetClassByID(_ context.Context, id int64) (*models.Class, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	return &c, nil
}

func (f *fakeCatalogStore) GetSubjectByID(_ context.Context, id int64) (*models.Subject, error) {
	s, ok := f.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return &s, nil
}

func (f *fakeCatalogStore) GetAllClasses(_ context.Context) ([]models.Class, error) {
	var out []models.Class
	for _, c := range f.classes {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCatalogStore) GetAllSubjects(_ context.Context) ([]models.Subject, error) {
	var out []models.Subject
	for _, s := range f.subjects {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCatalogStore) GetAllPackages(_ context.Context) ([]models.Package, error) {
	var out []models.Package
	for _, p := range f.packages {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalogStore) GetPackageIDsBySubject(_ context.Context, subjectID int64) ([]int64, error) {
	return f.subjectPackages[subjectID], nil
}

type fakeUserStore struct {
	users       map[int64]*models.User
	lastLoginID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	f.lastLoginID = id
	return nil
}

var errStoreDown = errors.New("store unavailable")
