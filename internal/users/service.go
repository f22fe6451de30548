package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/dualserve/dualserve/internal/outcome"
)

const requiredFieldsMessage = "First name, last name, and email are required."

// ServiceImpl implements the UserService interface on top of a UserStore.
type ServiceImpl struct {
	store UserStore
}

// NewService creates a new user service instance
func NewService(store UserStore) *ServiceImpl {
	return &ServiceImpl{store: store}
}

// CreateUser validates the request and creates a new user.
func (s *ServiceImpl) CreateUser(ctx context.Context, req *CreateUserRequest) *UserResponse {
	if req == nil ||
		strings.TrimSpace(req.FirstName) == "" ||
		strings.TrimSpace(req.LastName) == "" ||
		strings.TrimSpace(req.Email) == "" {
		return &UserResponse{Message: requiredFieldsMessage, Kind: outcome.KindValidation}
	}

	user, err := s.store.Create(ctx, req)
	if err != nil {
		return failureResponse(err)
	}

	return &UserResponse{Success: true, Message: "User created successfully.", User: user}
}

// GetUserByID looks up a user by id.
func (s *ServiceImpl) GetUserByID(ctx context.Context, id int64) *UserResponse {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return failureResponse(err)
	}
	return &UserResponse{Success: true, Message: "User retrieved successfully.", User: user}
}

// GetUserByEmail looks up a user by email, matched case-insensitively.
func (s *ServiceImpl) GetUserByEmail(ctx context.Context, email string) *UserResponse {
	if strings.TrimSpace(email) == "" {
		return &UserResponse{Message: emailRequiredMessage, Kind: outcome.KindValidation}
	}

	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return failureResponse(err)
	}
	return &UserResponse{Success: true, Message: "User retrieved successfully.", User: user}
}

// GetAllUsers returns every user in store order.
func (s *ServiceImpl) GetAllUsers(ctx context.Context) *UsersListResponse {
	list, err := s.store.List(ctx)
	if err != nil {
		return &UsersListResponse{
			Message: outcome.MessageOf(err),
			Kind:    outcome.KindOf(err),
			Users:   []*User{},
		}
	}
	return &UsersListResponse{
		Success: true,
		Message: fmt.Sprintf("Retrieved %d users successfully.", len(list)),
		Users:   list,
	}
}

// UpdateUser overwrites the mutable fields of an existing user.
func (s *ServiceImpl) UpdateUser(ctx context.Context, user *User) *UserResponse {
	if user == nil {
		return &UserResponse{Message: requiredFieldsMessage, Kind: outcome.KindValidation}
	}

	updated, err := s.store.Update(ctx, user)
	if err != nil {
		return failureResponse(err)
	}
	return &UserResponse{Success: true, Message: "User updated successfully.", User: updated}
}

// DeleteUser removes a user and returns the removed record.
func (s *ServiceImpl) DeleteUser(ctx context.Context, id int64) *UserResponse {
	user, err := s.store.Delete(ctx, id)
	if err != nil {
		return failureResponse(err)
	}
	return &UserResponse{Success: true, Message: "User deleted successfully.", User: user}
}

func failureResponse(err error) *UserResponse {
	return &UserResponse{
		Message: outcome.MessageOf(err),
		Kind:    outcome.KindOf(err),
	}
}
