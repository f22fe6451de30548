package users

import (
	"context"
)

// UserStore defines the interface for user storage operations. Errors
// returned by a store are *outcome.Error values; each check-then-act
// sequence (email uniqueness plus write) is atomic within one call.
type UserStore interface {
	Create(ctx context.Context, req *CreateUserRequest) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
}

// UserService defines the outcome-producing user operations consumed by both
// protocol adapters.
type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) *UserResponse
	GetUserByID(ctx context.Context, id int64) *UserResponse
	GetUserByEmail(ctx context.Context, email string) *UserResponse
	GetAllUsers(ctx context.Context) *UsersListResponse
	UpdateUser(ctx context.Context, user *User) *UserResponse
	DeleteUser(ctx context.Context, id int64) *UserResponse
}
