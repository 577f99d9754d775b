package dto

import (
	"time"

	"github.com/edusphere/eduadmin/internal/app/models"
)

// CreateStudentRequest represents the directory creation payload
type CreateStudentRequest struct {
	AuthID    string `json:"authId" binding:"required" example:"auth0|5f1a"`
	UserID    int64  `json:"userId" binding:"required" example:"5"`
	StudentID string `json:"studentId" binding:"required" example:"STU-2024-0042"`
	Role      string `json:"role" binding:"required" example:"student"`
}

// UpdateStudentRequest represents a partial update. Pointer fields
// distinguish "absent" from an explicit zero value: IsPaid set to false is
// applied, IsPaid omitted keeps the prior value.
type UpdateStudentRequest struct {
	ClassID             *int64     `json:"classId,omitempty"`
	BoardID             *int64     `json:"boardId,omitempty"`
	SubjectIDs          *[]int64   `json:"subjectIds,omitempty"`
	SubscribedPackageID *int64     `json:"subscribedPackageId,omitempty"`
	IsPaid              *bool      `json:"isPaid,omitempty"`
	PaymentID           *string    `json:"paymentId,omitempty"`
	SubscriptionID      *string    `json:"subscriptionId,omitempty"`
	PhoneNumber         *string    `json:"phoneNumber,omitempty"`
	LastOnline          *time.Time `json:"lastOnline,omitempty"`
}

// StudentResponse wraps a single student record
type StudentResponse struct {
	Message string          `json:"message" example:"student retrieved"`
	Student *models.Student `json:"student"`
}

// StudentListResponse wraps a set of student records
type StudentListResponse struct {
	Message  string           `json:"message" example:"students retrieved"`
	Students []models.Student `json:"students"`
}

// EligibleStudentsResponse wraps the eligibility query result: paid,
// subscribed students not yet placed into a batch for the subject.
type EligibleStudentsResponse struct {
	Message  string           `json:"message" example:"eligible students retrieved"`
	Students []models.Student `json:"students"`
}
