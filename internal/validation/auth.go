package validation

import (
	"regexp"
	"strings"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidateRegister(req request.RegisterRequest) error {
	errors := make(map[string]string)

	if !emailPattern.MatchString(req.Email) {
		errors["email"] = "valid email is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if len(req.Password) < 8 {
		errors["password"] = "password must be at least 8 characters"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)

	if !emailPattern.MatchString(req.Email) {
		errors["email"] = "valid email is required"
	}
	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
