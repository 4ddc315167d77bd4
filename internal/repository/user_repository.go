package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"homeneeds/internal/model"
)

// UserRepository defines user persistence operations. Verification state is
// only ever mutated through SetVerificationCode and MarkVerified so the
// code/expiry pair stays consistent.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByName(ctx context.Context, name string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetVerificationCode(ctx context.Context, id uint, code string, expiry time.Time) error
	MarkVerified(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetVerificationCode stores a fresh code and expiry, replacing any previous
// code so the old one stops validating immediately.
func (r *userRepository) SetVerificationCode(ctx context.Context, id uint, code string, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"verification_code": code,
			"code_expiry":       expiry,
		}).Error
}

// MarkVerified flips the account to verified and clears the code pair in the
// same update.
func (r *userRepository) MarkVerified(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_verified":       true,
			"verification_code": nil,
			"code_expiry":       nil,
		}).Error
}
