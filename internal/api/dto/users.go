package dto

import "github.com/brokerdesk/lead-portal/internal/api/validation"

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

func (r CreateUserRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Invalid email format"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}
	if r.Role == "" {
		errors["role"] = "Role is required"
	} else if !validation.IsValidRole(r.Role) {
		errors["role"] = `Role must be either "admin" or "broker"`
	}

	return errors
}

// UpdateUserRequest carries partial updates; nil means "leave unchanged".
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Active   *bool   `json:"active"`
}

func (r UpdateUserRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email != nil && !validation.IsValidEmail(*r.Email) {
		errors["email"] = "Invalid email format"
	}
	if r.Role != nil && !validation.IsValidRole(*r.Role) {
		errors["role"] = `Role must be either "admin" or "broker"`
	}
	if r.Password != nil && *r.Password == "" {
		errors["password"] = "Password cannot be empty"
	}

	return errors
}
