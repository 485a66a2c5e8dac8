package user

import "time"

// User represents a user entity in the system.
type User struct {
	ID        string    // ID is assigned by the persistence layer and never changes
	Name      string    // Name is the trimmed full name of the user
	Email     string    // Email is the trimmed, lowercased email address
	Age       int       // Age in years
	CreatedAt time.Time // CreatedAt is set by the persistence layer on insert
}

// Changes holds the fields supplied to a partial update.
// A nil field is left untouched.
type Changes struct {
	Name  *string
	Email *string
	Age   *int
}

// IsEmpty reports whether no field is set.
func (c Changes) IsEmpty() bool {
	return c.Name == nil && c.Email == nil && c.Age == nil
}
