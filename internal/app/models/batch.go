package models

import (
	"time"
)

// Batch defines a scheduled grouping of one teacher, one subject, one class
// and a fixed roster of students, based on the 'batches' table. The roster
// lives in 'batch_students' and is fixed at creation.
type Batch struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	BatchName   string     `json:"batchName" db:"batch_name" example:"Physics Evening A"`
	BatchImage  string     `json:"batchImage,omitempty" db:"batch_image"` // opaque reference, not interpreted
	SubjectID   int64      `json:"subjectId" db:"subject_id"`
	ClassID     int64      `json:"classId" db:"class_id"`
	TeacherID   int64      `json:"teacherId" db:"teacher_id"`
	Date        time.Time  `json:"date" db:"date"`
	StartDate   *time.Time `json:"startDate,omitempty" db:"start_date"`
	TypeOfBatch string     `json:"typeOfBatch" db:"type_of_batch" example:"regular"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`

	// Relations (populated when resolved)
	Teacher  *User     `json:"teacher,omitempty"`
	Subject  *Subject  `json:"subject,omitempty"`
	Class    *Class    `json:"class,omitempty"`
	Students []Student `json:"students,omitempty"`

	// StudentCount is derived at read time from the roster size; it is
	// never stored.
	StudentCount int `json:"studentcount" db:"-"`
}

// BatchSortKey enumerates the supported listing sort orders.
type BatchSortKey string

const (
	SortNewest        BatchSortKey = "newest"
	SortOldest        BatchSortKey = "oldest"
	SortStartDateAsc  BatchSortKey = "start_date_asc"
	SortStartDateDesc BatchSortKey = "start_date_desc"
)

// BatchFilter carries the optional filters of the batch listing.
type BatchFilter struct {
	StartDateFrom *time.Time
	StartDateTo   *time.Time
	TeacherID     *int64
	StudentID     *int64
	Sort          BatchSortKey
}
