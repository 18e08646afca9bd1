// Package usecase implements reading and editing the user's profile.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"auction_backend/internal/feature/profile/domain"
	"auction_backend/internal/feature/profile/domain/entity"
)

const (
	maxNameLength     = 150
	maxPostcodeLength = 5
	maxContactLength  = 64
)

// ProfileRepository reads and writes the user row and its contact row.
type ProfileRepository interface {
	// Get returns domain.ErrProfileNotFound when the user does not exist.
	Get(ctx context.Context, userID uint) (*entity.Profile, error)
	// Apply writes the update to both rows in one transaction.
	Apply(ctx context.Context, userID uint, upd entity.Update) error
}

// Patch is the caller's view of an update. A nil pointer leaves the field
// unchanged; an empty string clears a contact field.
type Patch struct {
	FirstName *string
	LastName  *string
	House     *string
	Street    *string
	Postcode  *string
	City      *string
	Country   *string
}

// ProfileUsecase serves the profile page.
type ProfileUsecase struct {
	repo ProfileRepository
}

// NewProfileUsecase creates a ProfileUsecase.
func NewProfileUsecase(repo ProfileRepository) *ProfileUsecase {
	return &ProfileUsecase{repo: repo}
}

// GetProfile returns the user's names, email and contact details.
func (u *ProfileUsecase) GetProfile(ctx context.Context, userID uint) (*entity.Profile, error) {
	return u.repo.Get(ctx, userID)
}

// UpdateProfile applies patch and returns the resulting profile.
func (u *ProfileUsecase) UpdateProfile(ctx context.Context, userID uint, patch Patch) (*entity.Profile, error) {
	upd, err := toUpdate(patch)
	if err != nil {
		return nil, err
	}
	if err := u.repo.Apply(ctx, userID, upd); err != nil {
		return nil, err
	}
	return u.repo.Get(ctx, userID)
}

func toUpdate(p Patch) (entity.Update, error) {
	var upd entity.Update
	var err error

	if upd.FirstName, err = name("first_name", p.FirstName); err != nil {
		return upd, err
	}
	if upd.LastName, err = name("last_name", p.LastName); err != nil {
		return upd, err
	}

	fields := []struct {
		label string
		in    *string
		out   *entity.Field
		limit int
	}{
		{"house", p.House, &upd.House, maxContactLength},
		{"street", p.Street, &upd.Street, maxContactLength},
		{"postcode", p.Postcode, &upd.Postcode, maxPostcodeLength},
		{"city", p.City, &upd.City, maxContactLength},
		{"country", p.Country, &upd.Country, maxContactLength},
	}
	for _, f := range fields {
		if *f.out, err = contactField(f.label, f.in, f.limit); err != nil {
			return upd, err
		}
	}
	return upd, nil
}

func name(label string, in *string) (*string, error) {
	if in == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*in)
	if utf8.RuneCountInString(v) > maxNameLength {
		return nil, fmt.Errorf("%w: %s must be at most %d characters", domain.ErrInvalidProfile, label, maxNameLength)
	}
	return &v, nil
}

func contactField(label string, in *string, limit int) (entity.Field, error) {
	if in == nil {
		return entity.Field{}, nil
	}
	v := strings.TrimSpace(*in)
	if v == "" {
		return entity.Field{Set: true}, nil
	}
	if utf8.RuneCountInString(v) > limit {
		return entity.Field{}, fmt.Errorf("%w: %s must be at most %d characters", domain.ErrInvalidProfile, label, limit)
	}
	return entity.Field{Set: true, Value: &v}, nil
}
