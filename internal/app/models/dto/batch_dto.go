package dto

import (
	"time"

	"github.com/edusphere/eduadmin/internal/app/models"
)

// CreateBatchRequest represents the transactional batch creation payload
type CreateBatchRequest struct {
	BatchName   string     `json:"batchName" binding:"required" example:"Physics Evening A"`
	BatchImage  string     `json:"batchImage,omitempty"`
	SubjectID   int64      `json:"subjectId" binding:"required" example:"3"`
	ClassID     int64      `json:"classId" binding:"required" example:"1"`
	TeacherID   int64      `json:"teacherId" binding:"required" example:"7"`
	Students    []int64    `json:"students" binding:"required"`
	Date        time.Time  `json:"date" binding:"required"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	TypeOfBatch string     `json:"typeOfBatch" binding:"required" example:"regular"`
}

// BatchResponse wraps a single batch with its resolved relations
type BatchResponse struct {
	Message string        `json:"message" example:"batch retrieved"`
	Batch   *models.Batch `json:"batch"`
}

// BatchListResponse wraps a set of batches
type BatchListResponse struct {
	Message string         `json:"message" example:"batches retrieved"`
	Batches []models.Batch `json:"batches"`
}

// PagedBatchListResponse wraps the filtered, paginated batch listing
type PagedBatchListResponse struct {
	Message string         `json:"message" example:"batches retrieved"`
	Batches []models.Batch `json:"batches"`
	PaginationInfo
}
