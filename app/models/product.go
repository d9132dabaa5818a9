package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const ProductTable = "books"

// Media columns were added to the books table after launch and may be
// missing on older deployments.
var ProductMediaColumns = []string{"thumbnail_image", "images", "videos", "preview_video"}

type Product struct {
	ID             int64           `gorm:"primaryKey" json:"id"`
	Title          string          `gorm:"size:255;not null" json:"title"`
	Description    string          `gorm:"type:text" json:"description"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category       string          `gorm:"size:100;index" json:"category"`
	SubcategoryID  *int64          `gorm:"index" json:"subcategory_id"`
	StockQuantity  int             `gorm:"not null" json:"stock_quantity"`
	IsActive       bool            `gorm:"not null" json:"is_active"`
	CoverImageURL  *string         `gorm:"type:text" json:"cover_image_url,omitempty"`
	ThumbnailImage *string         `gorm:"type:text" json:"thumbnail_image"`
	Images         StringList      `json:"images"`
	Videos         StringList      `json:"videos"`
	PreviewVideo   *string         `gorm:"type:text" json:"preview_video"`
	IdealFor       *string         `gorm:"size:255" json:"ideal_for"`
	AgeRange       *string         `gorm:"size:50" json:"age_range"`
	Characters     StringList      `json:"characters"`
	Genre          *string         `gorm:"size:100" json:"genre"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (Product) TableName() string {
	return ProductTable
}

// BackfillMedia gives a row read without the media columns the shape of a
// full row.
func (p *Product) BackfillMedia() {
	p.Images = StringList{}
	p.Videos = StringList{}
	p.PreviewVideo = nil
	p.ThumbnailImage = p.CoverImageURL
}

func (p Product) HasMedia() bool {
	return p.ThumbnailImage != nil || p.PreviewVideo != nil || len(p.Images) > 0 || len(p.Videos) > 0
}
