package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStudentID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"STU-2024-0042", true},
		{"abcd", true},
		{"a_b-c_1", true},
		{"abc", false},          // too short
		{"", false},
		{"has space", false},
		{"with.dot", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidStudentID(tt.id), "id %q", tt.id)
	}
}

func TestIsValidAuthID(t *testing.T) {
	assert.True(t, IsValidAuthID("auth0:5f1a-b2c3"))
	assert.True(t, IsValidAuthID("firebase.uid_42"))
	assert.False(t, IsValidAuthID("ab"))
	assert.False(t, IsValidAuthID("has space"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("+919900112233"))
	assert.True(t, IsValidPhone("9900112"))
	assert.True(t, IsValidPhone(""), "empty phone is allowed")
	assert.False(t, IsValidPhone("12345"))
	assert.False(t, IsValidPhone("not-a-phone"))
}

func TestIsRecognizedRole(t *testing.T) {
	assert.True(t, IsRecognizedRole("student"))
	assert.True(t, IsRecognizedRole("Teacher"))
	assert.True(t, IsRecognizedRole(" STUDENT "))
	assert.False(t, IsRecognizedRole("admin"))
	assert.False(t, IsRecognizedRole(""))
}
