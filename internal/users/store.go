package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dualserve/dualserve/internal/outcome"
)

const (
	userNotFoundMessage  = "User not found."
	emailExistsMessage   = "A user with this email already exists."
	emailRequiredMessage = "Email is required."
)

// MemoryStore is the default in-memory user store. A single mutex guards the
// collection and the id counter so every check-then-act sequence is atomic.
type MemoryStore struct {
	mu     sync.Mutex
	users  []*User
	nextID int64
}

// NewMemoryStore creates a store pre-seeded with the fixed demo users. The
// id counter starts above the seed's highest id and is monotonic for the
// store's lifetime.
func NewMemoryStore() *MemoryStore {
	now := time.Now()
	return &MemoryStore{
		users: []*User{
			{ID: 1, FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", CreatedAt: now.AddDate(0, 0, -30), IsActive: true},
			{ID: 2, FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", CreatedAt: now.AddDate(0, 0, -15), IsActive: true},
			{ID: 3, FirstName: "Bob", LastName: "Johnson", Email: "bob.johnson@example.com", CreatedAt: now.AddDate(0, 0, -7), IsActive: false},
		},
		nextID: 4,
	}
}

// NewEmptyMemoryStore creates a store with no seed data, starting ids at 1.
func NewEmptyMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Create assigns the next id, stamps the creation time and appends the user.
// Fails with a conflict error when the email is already taken.
func (s *MemoryStore) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByEmailLocked(req.Email) != nil {
		return nil, outcome.NewConflictError(emailExistsMessage)
	}

	user := &User{
		ID:        s.nextID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		CreatedAt: time.Now(),
		IsActive:  true,
	}
	s.nextID++
	s.users = append(s.users, user)

	return copyUser(user), nil
}

// GetByID returns the user with the given id.
func (s *MemoryStore) GetByID(ctx context.Context, id int64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findByIDLocked(id)
	if user == nil {
		return nil, outcome.NewNotFoundError(userNotFoundMessage)
	}
	return copyUser(user), nil
}

// GetByEmail returns the user matching the email case-insensitively.
func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findByEmailLocked(email)
	if user == nil {
		return nil, outcome.NewNotFoundError(userNotFoundMessage)
	}
	return copyUser(user), nil
}

// List returns all users in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]*User, 0, len(s.users))
	for _, user := range s.users {
		list = append(list, copyUser(user))
	}
	return list, nil
}

// Update overwrites the mutable fields of the record sharing the given id.
// ID and CreatedAt are preserved. Fails with a conflict error when the new
// email collides with a different user's email.
func (s *MemoryStore) Update(ctx context.Context, user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.findByIDLocked(user.ID)
	if existing == nil {
		return nil, outcome.NewNotFoundError(userNotFoundMessage)
	}

	if !strings.EqualFold(existing.Email, user.Email) {
		if other := s.findByEmailLocked(user.Email); other != nil && other.ID != user.ID {
			return nil, outcome.NewConflictError(emailExistsMessage)
		}
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Email = user.Email
	existing.IsActive = user.IsActive

	return copyUser(existing), nil
}

// Delete removes the user with the given id and returns it.
func (s *MemoryStore) Delete(ctx context.Context, id int64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, user := range s.users {
		if user.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return copyUser(user), nil
		}
	}
	return nil, outcome.NewNotFoundError(userNotFoundMessage)
}

func (s *MemoryStore) findByIDLocked(id int64) *User {
	for _, user := range s.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}

func (s *MemoryStore) findByEmailLocked(email string) *User {
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return user
		}
	}
	return nil
}

// copyUser returns a detached copy so callers never share the store's
// internal records.
func copyUser(user *User) *User {
	clone := *user
	return &clone
}
