package services

import (
	"context"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/app/models/dto"
)

// Services defined in this package:
// - AuthService: login and token issuance
// - StudentService: student directory operations
// - BatchService: transactional batch creation and batch lookups
// - EligibilityService: per-subject assignable-student queries
// - StatsService: dashboard aggregations
//
// Each service depends on a narrow store interface satisfied by the concrete
// repositories; the interfaces below are the full surface the services need.

// StudentStore is the directory persistence surface
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	ExistsByAuthOrStudentID(ctx context.Context, authID, studentID string) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByAuthID(ctx context.Context, authID string) (*models.Student, error)
	GetAll(ctx context.Context) ([]models.Student, error)
	GetByClass(ctx context.Context, classID int64) ([]models.Student, error)
	GetBySubjectAndClass(ctx context.Context, subjectID, classID int64) ([]models.Student, error)
	GetEligibleForSubject(ctx context.Context, subjectID int64, packageIDs []int64) ([]models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	SetSubjects(ctx context.Context, studentID int64, subjectIDs []int64) error
	Delete(ctx context.Context, id int64) error
	CountByIDs(ctx context.Context, ids []int64) (int, error)
	SubscriptionStats(ctx context.Context) (dto.SubscriptionStats, error)
	ClassDistribution(ctx context.Context) ([]dto.ClassDistribution, error)
	RegistrationsByDay(ctx context.Context, days int) ([]dto.RegistrationPoint, error)
}

// BatchStore is the batch registry persistence surface
type BatchStore interface {
	CreateWithRoster(ctx context.Context, batch *models.Batch, roster []int64) error
	GetAll(ctx context.Context, filter models.BatchFilter, offset uint64, limit int) ([]models.Batch, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Batch, error)
	GetByTeacher(ctx context.Context, teacherID int64) ([]models.Batch, error)
	GetByStudent(ctx context.Context, studentID int64) ([]models.Batch, error)
}

// CatalogStore is the read-only catalog surface consulted by the core
type CatalogStore interface {
	GetClassByID(ctx context.Context, id int64) (*models.Class, error)
	GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error)
	GetAllClasses(ctx context.Context) ([]models.Class, error)
	GetAllSubjects(ctx context.Context) ([]models.Subject, error)
	GetAllPackages(ctx context.Context) ([]models.Package, error)
	GetPackageIDsBySubject(ctx context.Context, subjectID int64) ([]int64, error)
}

// UserStore is the user profile surface used by authentication
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}
