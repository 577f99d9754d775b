package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/app/services"
	"github.com/edusphere/eduadmin/internal/middleware"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
)

// StudentController handles the student directory endpoints
type StudentController struct {
	studentService     *services.StudentService
	eligibilityService *services.EligibilityService
	statsService       *services.StatsService
}

// NewStudentController creates a new student controller instance
func NewStudentController(
	studentService *services.StudentService,
	eligibilityService *services.EligibilityService,
	statsService *services.StatsService,
) *StudentController {
	return &StudentController{
		studentService:     studentService,
		eligibilityService: eligibilityService,
		statsService:       statsService,
	}
}

// CreateStudent godoc
// @Summary Register a student
// @Description Creates a new directory record keyed by external auth id and human-readable student id
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student data"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /students [post]
func (sc *StudentController) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid student payload", "validation failed"))
		return
	}

	student, err := sc.studentService.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.StudentResponse{
		Message: "student created",
		Student: student,
	})
}

// GetAllStudents godoc
// @Summary List all students
// @Description Returns every directory record with profile, class, board, package and subjects resolved
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StudentListResponse
// @Router /students [get]
func (sc *StudentController) GetAllStudents(c *gin.Context) {
	students, err := sc.studentService.GetAllStudents(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StudentListResponse{
		Message:  "students retrieved",
		Students: students,
	})
}

// GetStudentByID godoc
// @Summary Get a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/{id} [get]
func (sc *StudentController) GetStudentByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("invalid student id"))
		return
	}

	student, err := sc.studentService.GetStudentByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StudentResponse{
		Message: "student retrieved",
		Student: student,
	})
}

// GetStudentByAuthID godoc
// @Summary Get a student by auth id
// @Description Looks up one record by the external auth identifier supplied in the auth_id header
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param auth_id header string true "External auth identifier"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/getstudent/getbyAuthId [get]
func (sc *StudentController) GetStudentByAuthID(c *gin.Context) {
	authID := c.GetHeader("auth_id")

	student, err := sc.studentService.GetStudentByAuthID(c.Request.Context(), authID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StudentResponse{
		Message: "student retrieved",
		Student: student,
	})
}

// UpdateStudent godoc
// @Summary Update a student
// @Description Applies a partial update keyed by the student's primary key; omitted fields keep their prior value
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/{id} [put]
func (sc *StudentController) UpdateStudent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("invalid student id"))
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid update payload", "validation failed"))
		return
	}

	student, err := sc.studentService.UpdateStudent(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StudentResponse{
		Message: "student updated",
		Student: student,
	})
}

// DeleteStudent godoc
// @Summary Delete a student
// @Description Removes the record unconditionally. Batch rosters referencing the student are not cleaned up.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/{id} [delete]
func (sc *StudentController) DeleteStudent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("invalid student id"))
		return
	}

	if err := sc.studentService.DeleteStudent(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "student deleted"})
}

// GetStudentsByClass godoc
// @Summary List students in a class
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param classId path int true "Class ID"
// @Success 200 {object} dto.StudentListResponse
// @Router /students/class/{classId} [get]
func (sc *StudentController) GetStudentsByClass(c *gin.Context) {
	classID, err := strconv.ParseInt(c.Param("classId"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("invalid class id"))
		return
	}

	students, err := sc.studentService.GetStudentsByClass(c.Request.Context(), classID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StudentListResponse{
		Message:  "students retrieved",
		Students: students,
	})
}

// GetStudentsBySubjectAndClass godoc
// @Summary List students in a class carrying a subject
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param subjectId path int true "Subject ID"
// @Param classId path int true "Class ID"
// @Success 200 {object} dto.StudentListResponse
// @Router /students/subject/{subjectId}/class/{classId} [get]
func (sc *StudentController) GetStudentsBySubjectAndClass(c *gin.Context) {
	subjectID, err := strconv.ParseInt(c.Param("subjectId"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("invalid subject id"))
		return
	}
	classID, err := strconv.ParseInt(c.Param("classId"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("invalid class id"))
		return
	}

	students, err := sc.studentService.GetStudentsBySubjectAndClass(c.Request.Context(), subjectID, classID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StudentListResponse{
		Message:  "students retrieved",
		Students: students,
	})
}

// GetEligibleStudents godoc
// @Summary List students eligible for a new batch
// @Description Paid students subscribed to a package bundling the subject, with no prior batch placement for it
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param subjectId path int true "Subject ID"
// @Success 200 {object} dto.EligibleStudentsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/batch/subject/{subjectId} [get]
func (sc *StudentController) GetEligibleStudents(c *gin.Context) {
	subjectID, err := strconv.ParseInt(c.Param("subjectId"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("invalid subject id"))
		return
	}

	students, err := sc.eligibilityService.StudentsEligibleForBatch(c.Request.Context(), subjectID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EligibleStudentsResponse{
		Message:  "eligible students retrieved",
		Students: students,
	})
}

// GetSubscriptionStats godoc
// @Summary Paid vs unpaid tally
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SubscriptionStatsResponse
// @Router /students/stats/subscription [get]
func (sc *StudentController) GetSubscriptionStats(c *gin.Context) {
	stats, err := sc.statsService.SubscriptionStats(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubscriptionStatsResponse{
		Message: "subscription stats retrieved",
		Stats:   stats,
	})
}
