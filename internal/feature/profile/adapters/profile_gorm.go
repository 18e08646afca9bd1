// Package adapters provides the GORM repository for profiles.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	auth "auction_backend/internal/feature/auth/domain/entity"
	"auction_backend/internal/feature/profile/domain"
	"auction_backend/internal/feature/profile/domain/entity"
	"auction_backend/internal/feature/profile/usecase"
)

// profileGorm implements usecase.ProfileRepository over the users and
// contact_profiles tables.
type profileGorm struct {
	db *gorm.DB
}

var _ usecase.ProfileRepository = (*profileGorm)(nil)

// NewProfileRepository creates a profile repository backed by db.
func NewProfileRepository(db *gorm.DB) *profileGorm {
	return &profileGorm{db: db}
}

// Get loads the user and its contact row. A missing contact row reads as empty.
func (r *profileGorm) Get(ctx context.Context, userID uint) (*entity.Profile, error) {
	var u auth.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}

	var contact entity.ContactProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&contact).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	contact.UserID = userID

	return &entity.Profile{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Contact:   contact,
	}, nil
}

// Apply updates the user's names and contact columns in one transaction.
func (r *profileGorm) Apply(ctx context.Context, userID uint, upd entity.Update) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&auth.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrProfileNotFound
		}

		names := map[string]interface{}{}
		if upd.FirstName != nil {
			names["first_name"] = *upd.FirstName
		}
		if upd.LastName != nil {
			names["last_name"] = *upd.LastName
		}
		if len(names) > 0 {
			if err := tx.Model(&auth.User{}).Where("id = ?", userID).Updates(names).Error; err != nil {
				return err
			}
		}

		contact := contactColumns(upd)
		if len(contact) == 0 {
			return nil
		}
		row := entity.ContactProfile{UserID: userID}
		if err := tx.Where("user_id = ?", userID).FirstOrCreate(&row).Error; err != nil {
			return err
		}
		return tx.Model(&row).Updates(contact).Error
	})
}

func contactColumns(upd entity.Update) map[string]interface{} {
	cols := map[string]interface{}{}
	for column, f := range map[string]entity.Field{
		"house":    upd.House,
		"street":   upd.Street,
		"postcode": upd.Postcode,
		"city":     upd.City,
		"country":  upd.Country,
	} {
		if !f.Set {
			continue
		}
		if f.Value == nil {
			cols[column] = nil
		} else {
			cols[column] = *f.Value
		}
	}
	return cols
}
