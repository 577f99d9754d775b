package models

import (
	"time"
)

// Student defines the student directory record based on the 'students' table.
//
// ClassID/ClassName/ClassLevel are a denormalized snapshot of the Class
// record, copied in at creation or update time. The snapshot can drift from
// the authoritative 'classes' row after it is copied.
type Student struct {
	ID                  int64      `json:"id" db:"id" example:"1"`
	AuthID              string     `json:"authId" db:"auth_id" example:"auth0|5f1a"`
	StudentID           string     `json:"studentId" db:"student_id" example:"STU-2024-0042"`
	Role                string     `json:"role" db:"role" example:"student"`
	UserID              int64      `json:"userId" db:"user_id" example:"5"`
	ClassID             *int64     `json:"classId,omitempty" db:"class_id"`
	ClassName           string     `json:"className,omitempty" db:"class_name"`
	ClassLevel          string     `json:"classLevel,omitempty" db:"class_level"`
	BoardID             *int64     `json:"boardId,omitempty" db:"board_id"`
	SubscribedPackageID *int64     `json:"subscribedPackageId,omitempty" db:"subscribed_package_id"`
	IsPaid              bool       `json:"isPaid" db:"is_paid"`
	PaymentID           *string    `json:"paymentId,omitempty" db:"payment_id"`
	SubscriptionID      *string    `json:"subscriptionId,omitempty" db:"subscription_id"`
	PhoneNumber         string     `json:"phoneNumber,omitempty" db:"phone_number"`
	LastOnline          *time.Time `json:"lastOnline,omitempty" db:"last_online"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`

	// Relations (populated when resolved)
	User     *User         `json:"user,omitempty"`
	Board    *Board        `json:"board,omitempty"`
	Package  *Package      `json:"package,omitempty"`
	Subjects []Subject     `json:"subjects,omitempty"`
	Markers  []BatchMarker `json:"batchCreation,omitempty"`
}

// BatchMarker is a per-student, per-subject flag recording whether the
// student has been placed into a batch for that subject. The storage layer
// enforces set-add semantics on the full (student, subject, status) triple,
// so a stale {subject, false} entry can coexist with a later
// {subject, true} one. Eligibility only honours status=true entries.
type BatchMarker struct {
	StudentID int64 `json:"-" db:"student_id"`
	SubjectID int64 `json:"subjectId" db:"subject_id"`
	Status    bool  `json:"status" db:"status"`
}

// HasPlacedMarker reports whether the student carries a true-status marker
// for the given subject.
func (s *Student) HasPlacedMarker(subjectID int64) bool {
	for _, m := range s.Markers {
		if m.SubjectID == subjectID && m.Status {
			return true
		}
	}
	return false
}
