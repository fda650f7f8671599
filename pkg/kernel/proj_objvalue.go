package kernel

import "unicode"

type FirstName string

type LastName string

type Expertise string

type Country string

type CompanyDescription string

type PasswordHash string

// Password is a plaintext password as received from signup or login
type Password string

// IsStrong checks the signup rule: at least 8 ASCII letters or digits,
// with at least one upper-case letter, one lower-case letter and one digit.
func (p Password) IsStrong() bool {
	if len(p) < 8 {
		return false
	}

	var upper, lower, digit bool
	for _, r := range string(p) {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			return false
		}
	}
	return upper && lower && digit
}

// YearsOfExperience is a non-negative count of years
type YearsOfExperience int

func (y YearsOfExperience) IsValid() bool {
	return y >= 0
}
