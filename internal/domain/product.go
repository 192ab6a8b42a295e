package domain

import "time"

// Product carries the aggregate fields written only by the rating module:
// NumReviews and Ratings (mean rating rounded to one decimal).
type Product struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(200);not null" json:"name"`
	CategoryID int64     `gorm:"index" json:"category_id"`
	NumReviews int       `gorm:"not null;default:0" json:"num_reviews"`
	Ratings    float64   `gorm:"not null;default:0" json:"ratings"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// ProductRating is the result of one rating recomputation.
type ProductRating struct {
	ProductID  int64   `json:"product_id"`
	NumReviews int     `json:"num_reviews"`
	Ratings    float64 `json:"ratings"`
}

type Category struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string { return "categories" }
