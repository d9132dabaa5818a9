package dashboard

import (
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/Rakhulsr/go-admin-dashboard/app/utils/format"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

func statusOf(active bool) string {
	if active {
		return StatusActive
	}
	return StatusInactive
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func NewCategory(c models.Category) Category {
	return Category{Category: c}
}

func NewSubcategory(s models.Subcategory) Subcategory {
	return Subcategory{Subcategory: s}
}

func NewProduct(p models.Product) Product {
	return Product{
		ID:             p.ID,
		Name:           p.Title,
		Description:    p.Description,
		Price:          p.Price,
		PriceLabel:     format.Money(p.Price),
		Category:       p.Category,
		SubcategoryID:  p.SubcategoryID,
		Status:         statusOf(p.IsActive),
		Stock:          p.StockQuantity,
		ThumbnailImage: deref(p.ThumbnailImage),
		Images:         []string(p.Images.OrEmpty()),
		Videos:         []string(p.Videos.OrEmpty()),
		PreviewVideo:   deref(p.PreviewVideo),
		IdealFor:       deref(p.IdealFor),
		AgeRange:       deref(p.AgeRange),
		Characters:     []string(p.Characters.OrEmpty()),
		Genre:          deref(p.Genre),
	}
}

func NewUser(u models.AppUser) User {
	name := u.FullName
	if name == "" {
		name = "N/A"
	}
	role := u.Role
	if role == "" {
		role = models.RoleUser
	}
	var joined string
	if !u.CreatedAt.IsZero() {
		joined = format.Date(u.CreatedAt)
	}
	return User{
		ID:       u.ID,
		Name:     name,
		Email:    u.Email,
		Role:     role,
		Status:   statusOf(u.IsActive),
		JoinDate: joined,
	}
}

func NewBanner(b models.Banner) Banner {
	view := Banner{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Status:      statusOf(b.IsActive),
		Priority:    b.Priority,
	}
	if b.StartDate != nil {
		view.StartDate = format.Date(*b.StartDate)
	}
	if b.EndDate != nil {
		view.EndDate = format.Date(*b.EndDate)
	}
	return view
}

func mapRows[M any, V any](rows []M, fn func(M) V) []V {
	out := make([]V, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}
