package model

// Category は商品のグループ。SortOrderで表示順を固定する。
type Category struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	SortOrder int    `gorm:"not null;uniqueIndex" json:"sort_order"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
}
