package users

import (
	"time"

	"github.com/dualserve/dualserve/internal/outcome"
)

// User represents a stored user record. ID and CreatedAt are assigned by the
// store and immutable afterwards. Email is unique case-insensitively.
type User struct {
	ID        int64     `json:"id" xml:"Id"`
	FirstName string    `json:"firstName" xml:"FirstName"`
	LastName  string    `json:"lastName" xml:"LastName"`
	Email     string    `json:"email" xml:"Email"`
	CreatedAt time.Time `json:"createdAt" xml:"CreatedAt"`
	IsActive  bool      `json:"isActive" xml:"IsActive"`
}

// CreateUserRequest represents the request to create a user. All fields are
// required after trimming.
type CreateUserRequest struct {
	FirstName string `json:"firstName" xml:"FirstName"`
	LastName  string `json:"lastName" xml:"LastName"`
	Email     string `json:"email" xml:"Email"`
}

// UserResponse is the outcome of a single-user operation. User is present
// iff the operation succeeded and returns a user.
type UserResponse struct {
	Success bool   `json:"success" xml:"Success"`
	Message string `json:"message" xml:"Message"`
	User    *User  `json:"user,omitempty" xml:"User,omitempty"`

	// Kind tags the failure for adapters; never serialized.
	Kind outcome.Kind `json:"-" xml:"-"`
}

// UsersListResponse is the outcome of a list operation. Users preserves
// store insertion order.
type UsersListResponse struct {
	Success bool    `json:"success" xml:"Success"`
	Message string  `json:"message" xml:"Message"`
	Users   []*User `json:"users" xml:"Users>User"`

	Kind outcome.Kind `json:"-" xml:"-"`
}
