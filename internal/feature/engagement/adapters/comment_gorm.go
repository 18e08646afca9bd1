// Package adapters persists comments and watchlists with GORM.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"auction_backend/internal/feature/engagement/domain"
	"auction_backend/internal/feature/engagement/domain/entity"
	"auction_backend/internal/feature/engagement/usecase"
)

type commentGorm struct {
	db *gorm.DB
}

var _ usecase.CommentRepository = (*commentGorm)(nil)

// NewCommentRepository creates a comment repository backed by db.
func NewCommentRepository(db *gorm.DB) *commentGorm {
	return &commentGorm{db: db}
}

func (r *commentGorm) Create(ctx context.Context, c *entity.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commentGorm) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	var c entity.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *commentGorm) ListByListing(ctx context.Context, listingID uint) ([]entity.Comment, error) {
	var comments []entity.Comment
	if err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentGorm) SetReply(ctx context.Context, commentID uint, reply string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.Comment{}).
		Where("id = ?", commentID).
		Updates(map[string]interface{}{"reply": reply, "replied_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
