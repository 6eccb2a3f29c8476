package manager

import (
	"regexp"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Result is the outcome of a user-facing validation: a success flag and
// a message suitable for display. Validation failures are values, not
// errors; errors stay reserved for store and I/O failures.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK returns a success result.
func OK() *Result {
	return &Result{Success: true}
}

// Failure returns a failed result with a display message.
func Failure(message string) *Result {
	return &Result{Success: false, Message: message}
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// phoneRegex accepts digits with optional leading +, spaces, dashes,
// and parentheses; 7 to 20 significant characters.
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,18}[0-9]$`)

// MinPasswordLength is the password policy floor.
const MinPasswordLength = 8

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) *Result {
	if email == "" {
		return Failure("email is required")
	}
	if !emailRegex.MatchString(email) {
		return Failure("email address is not valid")
	}
	return OK()
}

// ValidatePhone checks basic phone number shape.
func ValidatePhone(phone string) *Result {
	if !phoneRegex.MatchString(phone) {
		return Failure("phone number is not valid")
	}
	return OK()
}

// ValidatePassword enforces the password policy: minimum length, at
// least one letter and one digit.
func ValidatePassword(password string) *Result {
	if len(password) < MinPasswordLength {
		return Failure("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return Failure("password must contain at least one letter and one digit")
	}
	return OK()
}

func hashPassword(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(hash)
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
