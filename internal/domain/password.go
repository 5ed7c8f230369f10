package domain

import "unicode"

// minPasswordChecks is how many of the strength checks a new password must
// pass before it is accepted for registration or reset.
const minPasswordChecks = 3

// PasswordStrength counts how many strength checks the password passes:
// at least eight characters, a lowercase letter, an uppercase letter and a
// digit.
func PasswordStrength(password string) int {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	strength := 0
	if len(password) >= 8 {
		strength++
	}
	if hasLower {
		strength++
	}
	if hasUpper {
		strength++
	}
	if hasDigit {
		strength++
	}
	return strength
}

// ValidateNewPassword enforces the confirmation and strength rules applied
// before any network call is made.
func ValidateNewPassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if PasswordStrength(password) < minPasswordChecks {
		return ErrWeakPassword
	}
	return nil
}
