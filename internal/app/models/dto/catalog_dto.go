package dto

import (
	"github.com/edusphere/eduadmin/internal/app/models"
)

// ClassListResponse wraps the class catalog
type ClassListResponse struct {
	Message string         `json:"message" example:"classes retrieved"`
	Classes []models.Class `json:"classes"`
}

// SubjectListResponse wraps the subject catalog
type SubjectListResponse struct {
	Message  string           `json:"message" example:"subjects retrieved"`
	Subjects []models.Subject `json:"subjects"`
}

// PackageListResponse wraps the package catalog with subject membership
type PackageListResponse struct {
	Message  string           `json:"message" example:"packages retrieved"`
	Packages []models.Package `json:"packages"`
}
