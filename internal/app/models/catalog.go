package models

// Class defines the class model based on the 'classes' table.
// Students carry a denormalized snapshot of these fields, copied at
// assignment time (see Student.ClassName / Student.ClassLevel).
type Class struct {
	ID    int64  `json:"id" db:"id" example:"1"`
	Name  string `json:"name" db:"name" example:"Class 10"`
	Level string `json:"level" db:"level" example:"secondary"`
}

// Subject defines the subject model based on the 'subjects' table
type Subject struct {
	ID   int64  `json:"id" db:"id" example:"3"`
	Name string `json:"name" db:"name" example:"Physics"`
	Code string `json:"code" db:"code" example:"PHY"`
}

// Board defines the examination board model based on the 'boards' table
type Board struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"CBSE"`
}

// Package defines a subscription package based on the 'packages' table.
// A package bundles a set of subjects; membership lives in 'package_subjects'.
type Package struct {
	ID    int64  `json:"id" db:"id" example:"2"`
	Name  string `json:"name" db:"name" example:"Class 10 Science Pack"`
	Price int64  `json:"price" db:"price" example:"499900"` // paise

	Subjects []Subject `json:"subjects,omitempty"`
}
