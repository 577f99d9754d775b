package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Student identifier pattern - alphanumeric external id, 4 to 32 chars
	StudentIDPattern = `^[A-Za-z0-9_-]{4,32}$`

	// Auth identifier pattern - opaque external auth id
	AuthIDPattern = `^[A-Za-z0-9_\-:.]{4,64}$`

	// Phone number pattern - optional leading +, 7 to 15 digits
	PhonePattern = `^\+?\d{7,15}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	StudentID *regexp.Regexp
	AuthID    *regexp.Regexp
	Phone     *regexp.Regexp
}{
	StudentID: regexp.MustCompile(StudentIDPattern),
	AuthID:    regexp.MustCompile(AuthIDPattern),
	Phone:     regexp.MustCompile(PhonePattern),
}

// IsValidStudentID reports whether the external student identifier is well formed.
func IsValidStudentID(id string) bool {
	return CompiledPatterns.StudentID.MatchString(strings.TrimSpace(id))
}

// IsValidAuthID reports whether the external auth identifier is well formed.
func IsValidAuthID(id string) bool {
	return CompiledPatterns.AuthID.MatchString(strings.TrimSpace(id))
}

// IsValidPhone reports whether the phone number is well formed.
func IsValidPhone(phone string) bool {
	if phone == "" {
		return true
	}
	return CompiledPatterns.Phone.MatchString(strings.TrimSpace(phone))
}

// RecognizedRoles are the roles accepted on student directory creation.
var RecognizedRoles = []string{"student", "teacher"}

// IsRecognizedRole reports whether role is one of the two recognized
// directory roles.
func IsRecognizedRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, r := range RecognizedRoles {
		if role == r {
			return true
		}
	}
	return false
}
