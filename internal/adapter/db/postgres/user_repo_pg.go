package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-service/internal/domain/user"
)

// UserRepoPG implements the Repository interface on the managed Postgres database through GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID        string    `gorm:"primaryKey;type:uuid"` // Assigned on insert
	Name      string    `gorm:"not null"`             // Trimmed full name
	Email     string    `gorm:"not null"`             // Lowercased email
	Age       int       `gorm:"not null"`             // Age in years
	CreatedAt time.Time `gorm:"autoCreateTime"`       // Insert timestamp
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() *user.User {
	return &user.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Age:       m.Age,
		CreatedAt: m.CreatedAt,
	}
}

// List retrieves every user ordered by creation time.
func (r *UserRepoPG) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = *model.toDomain()
	}

	return users, nil
}

// GetByID retrieves a user by ID. A missing row yields a nil user and a nil error.
func (r *UserRepoPG) GetByID(ctx context.Context, id string) (*user.User, error) {
	id, valid := canonicalID(id)
	if !valid {
		return nil, nil
	}

	var model UserSchema
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.String("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.toDomain(), nil
}

// Create inserts a new user and returns it with its assigned ID.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := UserSchema{
		ID:    uuid.NewString(),
		Name:  u.Name,
		Email: u.Email,
		Age:   u.Age,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.String("id", model.ID))
	return model.toDomain(), nil
}

// Update writes only the supplied fields. The write is conditional on the row
// existing; when it does not, a nil user and a nil error are returned.
func (r *UserRepoPG) Update(ctx context.Context, id string, changes user.Changes) (*user.User, error) {
	canonical, valid := canonicalID(id)
	if changes.IsEmpty() || !valid {
		return r.GetByID(ctx, id)
	}
	id = canonical

	updates := make(map[string]any, 3)
	if changes.Name != nil {
		updates["name"] = *changes.Name
	}
	if changes.Email != nil {
		updates["email"] = *changes.Email
	}
	if changes.Age != nil {
		updates["age"] = *changes.Age
	}

	res := r.db.WithContext(ctx).Model(&UserSchema{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		r.log.Error("failed to update user in db", zap.Error(res.Error), zap.String("id", id))
		return nil, fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		r.log.Debug("user not found for update", zap.String("id", id))
		return nil, nil
	}

	r.log.Info("user updated in db", zap.String("id", id))
	return r.GetByID(ctx, id)
}

// Delete removes a user and returns the row as it was before deletion.
// A missing row, or one removed concurrently, yields a nil user and a nil error.
func (r *UserRepoPG) Delete(ctx context.Context, id string) (*user.User, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	id = existing.ID

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserSchema{})
	if res.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(res.Error), zap.String("id", id))
		return nil, fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		r.log.Debug("user already deleted", zap.String("id", id))
		return nil, nil
	}

	r.log.Info("user deleted in db", zap.String("id", id))
	return existing, nil
}

// canonicalID returns id in the lowercase hyphenated form stored in the uuid
// column. Only the 36 character form is accepted; the urn:uuid:, braced and
// bare hex spellings that uuid.Parse also takes are treated as unknown ids.
func canonicalID(id string) (string, bool) {
	if len(id) != 36 {
		return "", false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// Ping checks the database connection.
func (r *UserRepoPG) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
