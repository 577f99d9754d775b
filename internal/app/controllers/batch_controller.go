package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/app/services"
	"github.com/edusphere/eduadmin/internal/middleware"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
	"github.com/edusphere/eduadmin/internal/pkg/helpers"
)

// BatchController handles the batch registry endpoints
type BatchController struct {
	batchService *services.BatchService
}

// NewBatchController creates a new batch controller instance
func NewBatchController(batchService *services.BatchService) *BatchController {
	return &BatchController{batchService: batchService}
}

// CreateBatch godoc
// @Summary Create a batch
// @Description Creates the batch and propagates a placement marker to every roster student in one transaction
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBatchRequest true "Batch data"
// @Success 201 {object} dto.BatchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /batches [post]
func (bc *BatchController) CreateBatch(c *gin.Context) {
	var req dto.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid batch payload", "validation failed"))
		return
	}

	batch, err := bc.batchService.CreateBatch(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.BatchResponse{
		Message: "batch created",
		Batch:   batch,
	})
}

// GetAllBatches godoc
// @Summary List batches
// @Description Filtered, sorted, paginated listing with teacher, subject, class and roster count resolved
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sort query string false "Sort order" Enums(newest, oldest, start_date_asc, start_date_desc)
// @Param startDateFrom query string false "Start date lower bound (RFC 3339)"
// @Param startDateTo query string false "Start date upper bound (RFC 3339)"
// @Param teacherId query int false "Filter by teacher"
// @Param studentId query int false "Filter by roster membership"
// @Success 200 {object} dto.PagedBatchListResponse
// @Router /batches [get]
func (bc *BatchController) GetAllBatches(c *gin.Context) {
	filter, err := parseBatchFilter(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	page, size := helpers.ParsePaginationParams(c)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	batches, total, err := bc.batchService.GetAllBatches(c.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PagedBatchListResponse{
		Message:        "batches retrieved",
		Batches:        batches,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	})
}

// GetBatchByID godoc
// @Summary Get a batch
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /batches/{id} [get]
func (bc *BatchController) GetBatchByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("invalid batch id"))
		return
	}

	batch, err := bc.batchService.GetBatchByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BatchResponse{
		Message: "batch retrieved",
		Batch:   batch,
	})
}

// GetBatchesByTeacher godoc
// @Summary List a teacher's batches
// @Description Only callers holding the teacher role may access this listing
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param teacherId path int true "Teacher ID"
// @Success 200 {object} dto.BatchListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /batches/teacher/{teacherId} [get]
func (bc *BatchController) GetBatchesByTeacher(c *gin.Context) {
	teacherID, err := strconv.ParseInt(c.Param("teacherId"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("invalid teacher id"))
		return
	}

	batches, err := bc.batchService.GetBatchesByTeacher(c.Request.Context(), teacherID, middleware.CallerRole(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BatchListResponse{
		Message: "batches retrieved",
		Batches: batches,
	})
}

// GetBatchesByStudent godoc
// @Summary List a student's batches
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.BatchListResponse
// @Router /batches/student/{studentId} [get]
func (bc *BatchController) GetBatchesByStudent(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("invalid student id"))
		return
	}

	batches, err := bc.batchService.GetBatchesByStudent(c.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BatchListResponse{
		Message: "batches retrieved",
		Batches: batches,
	})
}

// parseBatchFilter extracts the optional listing filters from query params.
// An unrecognized sort value falls back to newest first rather than erroring.
func parseBatchFilter(c *gin.Context) (models.BatchFilter, error) {
	var filter models.BatchFilter

	if v := c.Query("startDateFrom"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid startDateFrom, expected RFC 3339")
		}
		filter.StartDateFrom = &t
	}
	if v := c.Query("startDateTo"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid startDateTo, expected RFC 3339")
		}
		filter.StartDateTo = &t
	}
	if v := c.Query("teacherId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return filter, apperrors.NewValidationError("invalid teacherId")
		}
		filter.TeacherID = &id
	}
	if v := c.Query("studentId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return filter, apperrors.NewValidationError("invalid studentId")
		}
		filter.StudentID = &id
	}

	switch models.BatchSortKey(c.Query("sort")) {
	case models.SortOldest:
		filter.Sort = models.SortOldest
	case models.SortStartDateAsc:
		filter.Sort = models.SortStartDateAsc
	case models.SortStartDateDesc:
		filter.Sort = models.SortStartDateDesc
	default:
		filter.Sort = models.SortNewest
	}

	return filter, nil
}
