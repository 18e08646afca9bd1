// Package adapters provides GORM repositories for users and sessions.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"auction_backend/internal/feature/auth/domain"
	"auction_backend/internal/feature/auth/domain/entity"
	"auction_backend/internal/feature/auth/usecase"
	profile "auction_backend/internal/feature/profile/domain/entity"
	"auction_backend/internal/platform/db"
)

// userGorm implements usecase.UserRepository.
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository creates a user repository backed by gdb.
func NewUserRepository(gdb *gorm.DB) *userGorm {
	return &userGorm{db: gdb}
}

// CreateWithProfile inserts the user and an empty contact row in one transaction.
func (r *userGorm) CreateWithProfile(ctx context.Context, u *entity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			if db.IsDuplicateKey(err) {
				return domain.ErrUsernameTaken
			}
			return err
		}
		return tx.Create(&profile.ContactProfile{UserID: u.ID}).Error
	})
}

func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userGorm) findOne(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userGorm) UpdateEmail(ctx context.Context, id uint, email string) error {
	return r.update(ctx, id, "email", email)
}

func (r *userGorm) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.update(ctx, id, "password", hash)
}

func (r *userGorm) update(ctx context.Context, id uint, column string, value string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
