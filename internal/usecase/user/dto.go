package user

import (
	"time"

	domain "user-service/internal/domain/user"
)

// CreateUserRequest carries the raw create payload.
// Fields hold decoded JSON or form values and are validated by the usecase.
type CreateUserRequest struct {
	Name  any
	Email any
	Age   any
}

// UpdateUserRequest carries the raw update payload. A nil field was not supplied.
type UpdateUserRequest struct {
	ID    string
	Name  any
	Email any
	Age   any
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID string
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
	Count int
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID        string
	Name      string
	Email     string
	Age       int
	CreatedAt time.Time
}

func fromDomain(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
}
