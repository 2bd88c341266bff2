package services

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes long")
	ErrPasswordNoUpper    = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLower    = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoNumber   = errors.New("password must contain at least one number")
	ErrPasswordNoSpecial  = errors.New("password must contain at least one special character")
	ErrPasswordCommon     = errors.New("password is too common")
	ErrPasswordSequential = errors.New("password contains sequential characters")
	ErrPasswordRepeating  = errors.New("password contains repeating characters")
)

// PasswordValidator validates passwords against security requirements.
type PasswordValidator struct {
	minLength       int
	maxRun          int
	commonPasswords map[string]bool
}

func NewPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		minLength: 8,
		maxRun:    3,
		commonPasswords: map[string]bool{
			"password1!":  true,
			"welcome1!":   true,
			"letmein1!":   true,
			"corexgear1!": true,
		},
	}
}

// Validate returns the first rule the password breaks. Runs of maxRun
// identical or consecutive characters ("aaa", "123", "cba") are rejected.
func (pv *PasswordValidator) Validate(password string) error {
	if len(password) < pv.minLength {
		return ErrPasswordTooShort
	}
	// bcrypt ignores everything past 72 bytes.
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	var prev rune
	repeat, ascending, descending := 1, 1, 1

	for i, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsNumber(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}

		if i > 0 {
			repeat = bump(repeat, r == prev)
			ascending = bump(ascending, r == prev+1)
			descending = bump(descending, r == prev-1)
			if repeat >= pv.maxRun {
				return ErrPasswordRepeating
			}
			if ascending >= pv.maxRun || descending >= pv.maxRun {
				return ErrPasswordSequential
			}
		}
		prev = r
	}

	switch {
	case !hasUpper:
		return ErrPasswordNoUpper
	case !hasLower:
		return ErrPasswordNoLower
	case !hasNumber:
		return ErrPasswordNoNumber
	case !hasSpecial:
		return ErrPasswordNoSpecial
	}

	if pv.commonPasswords[strings.ToLower(password)] {
		return ErrPasswordCommon
	}
	return nil
}

func bump(run int, cont bool) int {
	if cont {
		return run + 1
	}
	return 1
}
