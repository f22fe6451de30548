package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/dualserve/dualserve/internal/outcome"
)

// UserSchema represents the users table schema in PostgreSQL
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64     `bun:"id,pk,autoincrement"`
	FirstName string    `bun:"first_name,notnull"`
	LastName  string    `bun:"last_name,notnull"`
	Email     string    `bun:"email,notnull,unique"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	IsActive  bool      `bun:"is_active,notnull"`
}

// PostgresStore is the persistent UserStore implementation. Email uniqueness
// is enforced by the table's unique constraint, so concurrent creates with
// the same email cannot both succeed.
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL-backed user store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the users table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*UserSchema)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func (s *PostgresStore) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	schema := &UserSchema{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		CreatedAt: time.Now(),
		IsActive:  true,
	}

	exists, err := s.db.NewSelect().
		Model((*UserSchema)(nil)).
		Where("lower(email) = lower(?)", req.Email).
		Exists(ctx)
	if err != nil {
		return nil, outcome.NewInternalError("failed to check email uniqueness", err)
	}
	if exists {
		return nil, outcome.NewConflictError(emailExistsMessage)
	}

	_, err = s.db.NewInsert().
		Model(schema).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, outcome.NewConflictError(emailExistsMessage)
		}
		return nil, outcome.NewInternalError("failed to create user", err)
	}

	return schemaToUser(schema), nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*User, error) {
	schema := new(UserSchema)
	err := s.db.NewSelect().
		Model(schema).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outcome.NewNotFoundError(userNotFoundMessage)
		}
		return nil, outcome.NewInternalError("failed to get user", err)
	}
	return schemaToUser(schema), nil
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	schema := new(UserSchema)
	err := s.db.NewSelect().
		Model(schema).
		Where("lower(u.email) = lower(?)", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outcome.NewNotFoundError(userNotFoundMessage)
		}
		return nil, outcome.NewInternalError("failed to get user by email", err)
	}
	return schemaToUser(schema), nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*User, error) {
	var schemas []UserSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Order("u.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, outcome.NewInternalError("failed to list users", err)
	}

	list := make([]*User, 0, len(schemas))
	for i := range schemas {
		list = append(list, schemaToUser(&schemas[i]))
	}
	return list, nil
}

func (s *PostgresStore) Update(ctx context.Context, user *User) (*User, error) {
	var updated *User

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		existing := new(UserSchema)
		err := tx.NewSelect().
			Model(existing).
			Where("u.id = ?", user.ID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return outcome.NewNotFoundError(userNotFoundMessage)
			}
			return outcome.NewInternalError("failed to load user for update", err)
		}

		if !strings.EqualFold(existing.Email, user.Email) {
			taken, err := tx.NewSelect().
				Model((*UserSchema)(nil)).
				Where("lower(email) = lower(?)", user.Email).
				Where("id != ?", user.ID).
				Exists(ctx)
			if err != nil {
				return outcome.NewInternalError("failed to check email uniqueness", err)
			}
			if taken {
				return outcome.NewConflictError(emailExistsMessage)
			}
		}

		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.Email = user.Email
		existing.IsActive = user.IsActive

		_, err = tx.NewUpdate().
			Model(existing).
			Column("first_name", "last_name", "email", "is_active").
			WherePK().
			Exec(ctx)
		if err != nil {
			return outcome.NewInternalError("failed to update user", err)
		}

		updated = schemaToUser(existing)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) (*User, error) {
	schema := new(UserSchema)
	err := s.db.NewSelect().
		Model(schema).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outcome.NewNotFoundError(userNotFoundMessage)
		}
		return nil, outcome.NewInternalError("failed to get user", err)
	}

	_, err = s.db.NewDelete().
		Model((*UserSchema)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, outcome.NewInternalError("failed to delete user", err)
	}

	return schemaToUser(schema), nil
}

func schemaToUser(schema *UserSchema) *User {
	return &User{
		ID:        schema.ID,
		FirstName: schema.FirstName,
		LastName:  schema.LastName,
		Email:     schema.Email,
		CreatedAt: schema.CreatedAt,
		IsActive:  schema.IsActive,
	}
}
