package user

import (
	"context"

	"go.uber.org/zap"

	domain "user-service/internal/domain/user"
	apperrors "user-service/pkg/errors"
	"user-service/pkg/validation"
)

// Repository defines the interface for user data access operations.
// Lookups by id report a missing user as a nil *domain.User with a nil error.
type Repository interface {
	List(ctx context.Context) ([]domain.User, error)                                     // List all users
	GetByID(ctx context.Context, id string) (*domain.User, error)                        // Retrieve user by ID
	Create(ctx context.Context, u *domain.User) (*domain.User, error)                    // Insert a new user
	Update(ctx context.Context, id string, changes domain.Changes) (*domain.User, error) // Replace supplied fields
	Delete(ctx context.Context, id string) (*domain.User, error)                         // Delete user, returning the removed row
}

// Messages reported for each operation.
const (
	MsgUserNotFound     = "User not found"
	MsgNoFieldsToUpdate = "Provide at least one field to update"
	MsgListFailed       = "Error retrieving users"
	MsgGetFailed        = "Error retrieving user"
	MsgCreateFailed     = "Error creating user"
	MsgUpdateFailed     = "Error updating user"
	MsgDeleteFailed     = "Error deleting user"
)

const resourceUser = "user"

// usecase implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type usecase struct {
	repo Repository  // Repository for data access
	log  *zap.Logger // Logger for structured logging
}

// New creates a new Usecase backed by the provided repository.
func New(r Repository, log *zap.Logger) Usecase {
	return &usecase{repo: r, log: log}
}

// ListUsers returns every stored user.
func (uc *usecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, apperrors.NewInternalError(MsgListFailed, err)
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = *fromDomain(&domainUsers[i])
	}

	return &ListUsersResponse{Users: users, Count: len(users)}, nil
}

// GetUser retrieves a single user by ID.
func (uc *usecase) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to get user", zap.String("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError(MsgGetFailed, err)
	}
	if u == nil {
		uc.log.Debug("user not found", zap.String("id", in.ID))
		return nil, apperrors.NewNotFoundError(resourceUser, MsgUserNotFound)
	}

	return fromDomain(u), nil
}

// CreateUser validates all three fields, normalizes them and stores a new user.
func (uc *usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	checks := []struct {
		field string
		res   validation.Result
	}{
		{"name", validation.ValidateName(in.Name)},
		{"email", validation.ValidateEmail(in.Email)},
		{"age", validation.ValidateAge(in.Age)},
	}
	for _, c := range checks {
		if !c.res.Valid {
			uc.log.Warn("create user validation failed", zap.String("field", c.field), zap.String("reason", c.res.Message))
			return nil, apperrors.NewValidationError(c.field, c.res.Message)
		}
	}

	age, _ := validation.ParseAge(in.Age)
	candidate := &domain.User{
		Name:  validation.NormalizeName(in.Name.(string)),
		Email: validation.NormalizeEmail(in.Email.(string)),
		Age:   age,
	}

	uc.log.Info("creating user", zap.String("name", candidate.Name), zap.String("email", candidate.Email))

	created, err := uc.repo.Create(ctx, candidate)
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, apperrors.NewInternalError(MsgCreateFailed, err)
	}

	return fromDomain(created), nil
}

// UpdateUser validates only the supplied fields and replaces them, keeping the rest.
func (uc *usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	if in.Name == nil && in.Email == nil && in.Age == nil {
		uc.log.Warn("update user without fields", zap.String("id", in.ID))
		return nil, apperrors.NewValidationError("", MsgNoFieldsToUpdate)
	}

	var changes domain.Changes

	if in.Name != nil {
		if res := validation.ValidateName(in.Name); !res.Valid {
			uc.log.Warn("update user validation failed", zap.String("field", "name"), zap.String("reason", res.Message))
			return nil, apperrors.NewValidationError("name", res.Message)
		}
		name := validation.NormalizeName(in.Name.(string))
		changes.Name = &name
	}

	if in.Email != nil {
		if res := validation.ValidateEmail(in.Email); !res.Valid {
			uc.log.Warn("update user validation failed", zap.String("field", "email"), zap.String("reason", res.Message))
			return nil, apperrors.NewValidationError("email", res.Message)
		}
		email := validation.NormalizeEmail(in.Email.(string))
		changes.Email = &email
	}

	if in.Age != nil {
		if res := validation.ValidateAge(in.Age); !res.Valid {
			uc.log.Warn("update user validation failed", zap.String("field", "age"), zap.String("reason", res.Message))
			return nil, apperrors.NewValidationError("age", res.Message)
		}
		age, _ := validation.ParseAge(in.Age)
		changes.Age = &age
	}

	uc.log.Info("updating user", zap.String("id", in.ID))

	updated, err := uc.repo.Update(ctx, in.ID, changes)
	if err != nil {
		uc.log.Error("failed to update user", zap.String("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError(MsgUpdateFailed, err)
	}
	if updated == nil {
		uc.log.Debug("user not found for update", zap.String("id", in.ID))
		return nil, apperrors.NewNotFoundError(resourceUser, MsgUserNotFound)
	}

	return fromDomain(updated), nil
}

// DeleteUser removes a user and returns the record as it was before deletion.
func (uc *usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*User, error) {
	uc.log.Info("deleting user", zap.String("id", in.ID))

	deleted, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to delete user", zap.String("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError(MsgDeleteFailed, err)
	}
	if deleted == nil {
		uc.log.Debug("user not found for delete", zap.String("id", in.ID))
		return nil, apperrors.NewNotFoundError(resourceUser, MsgUserNotFound)
	}

	return fromDomain(deleted), nil
}
