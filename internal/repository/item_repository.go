package repository

import (
	"context"

	"github.com/shinyyama/marketplace-backend/internal/model"
	"gorm.io/gorm"
)

// ItemListing is one row of the public listing: item columns joined with the
// owner's username and email.
type ItemListing struct {
	ItemID      uint64  `gorm:"column:item_id"`
	ItemName    string  `gorm:"column:item_name"`
	Description string  `gorm:"column:description"`
	Price       float64 `gorm:"column:price"`
	LoginID     uint64  `gorm:"column:login_id"`
	ImagePath   *string `gorm:"column:image_path"`
	Username    string  `gorm:"column:username"`
	Email       string  `gorm:"column:email"`
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	SetImagePath(ctx context.Context, id uint64, path string) error
	ListWithOwners(ctx context.Context) ([]ItemListing, error)
	SetDB(db *gorm.DB)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) SetImagePath(ctx context.Context, id uint64, path string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("item_id = ?", id).
		Update("image_path", path).Error
}

// ListWithOwners joins items against login, so items whose login_id does not
// match an existing user are not returned. No ORDER BY: row order is whatever
// the storage engine yields.
func (r *itemRepository) ListWithOwners(ctx context.Context) ([]ItemListing, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []ItemListing
	if err := r.db.WithContext(ctx).
		Table("items").
		Select("items.item_id, items.item_name, items.description, items.price, items.login_id, items.image_path, login.username, login.email").
		Joins("JOIN login ON login.id = items.login_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *itemRepository) SetDB(db *gorm.DB) {
	r.db = db
}
