package repositories

import (
	"github.com/edusphere/eduadmin/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	StudentRepository *StudentRepository
	BatchRepository   *BatchRepository
	CatalogRepository *CatalogRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(database.Pool),
		StudentRepository: NewStudentRepository(database.Pool),
		BatchRepository:   NewBatchRepository(database),
		CatalogRepository: NewCatalogRepository(database.Pool),
	}
}
