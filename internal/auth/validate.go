package auth

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const MinPasswordLength = 6

var (
	ErrLoginFieldsRequired  = errors.New("Please enter your email and password.")
	ErrEmailRequired        = errors.New("Please enter your email")
	ErrSignUpFieldsRequired = errors.New("Please fill in all fields")
	ErrPasswordMismatch     = errors.New("Passwords do not match")
	ErrPasswordTooShort     = errors.New("Password must be at least 6 characters")
)

// ValidateLogin — локальная проверка формы входа до обращения к бэкенду.
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrLoginFieldsRequired
	}
	return nil
}

// ValidateSignUpEmail — первый шаг регистрации.
func ValidateSignUpEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	return nil
}

// ValidateSignUp проверяет все поля регистрации в том же порядке, что и форма.
func ValidateSignUp(email, password, confirm string) error {
	if strings.TrimSpace(email) == "" || password == "" || confirm == "" {
		return ErrSignUpFieldsRequired
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// PasswordScore: по баллу за длину >= 6, длину >= 10, заглавную букву,
// цифру и спецсимвол. Максимум 5.
func PasswordScore(password string) int {
	score := 0
	n := utf8.RuneCountInString(password)
	if n >= 6 {
		score++
	}
	if n >= 10 {
		score++
	}
	var upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
		default:
			symbol = true
		}
	}
	for _, ok := range []bool{upper, digit, symbol} {
		if ok {
			score++
		}
	}
	return score
}

func StrengthLabel(password string) string {
	if password == "" {
		return "Enter a password"
	}
	switch score := PasswordScore(password); {
	case score <= 1:
		return "Weak"
	case score == 2:
		return "Fair"
	case score == 3:
		return "Good"
	case score == 4:
		return "Strong"
	default:
		return "Very strong"
	}
}
