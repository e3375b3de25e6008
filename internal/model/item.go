package model

import "time"

type Item struct {
	ID          uint64    `gorm:"column:item_id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:item_name;size:120;not null"`
	Description string    `gorm:"type:text;not null"`
	Price       float64   `gorm:"type:decimal(10,2);not null"`
	LoginID     uint64    `gorm:"column:login_id;not null;index:idx_items_login_id"`
	ImagePath   *string   `gorm:"size:512"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Item) TableName() string {
	return "items"
}
