package dashboard

import (
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindCategory    Kind = "category"
	KindSubcategory Kind = "subcategory"
	KindProduct     Kind = "product"
	KindUser        Kind = "user"
	KindBanner      Kind = "banner"
)

var ErrUnknownKind = errors.New("unknown entity kind")

// Visitor has one method per editable entity. Every operation that depends
// on the kind is written as a Visitor, so a new kind must be handled
// everywhere before the package builds again.
type Visitor interface {
	VisitCategory(*Category)
	VisitSubcategory(*Subcategory)
	VisitProduct(*Product)
	VisitUser(*User)
	VisitBanner(*Banner)
}

type Entity interface {
	Kind() Kind
	EntityID() int64
	Accept(Visitor)
}

// NewEntity returns an empty entity of kind, used to dispatch on a kind
// that arrives as text.
func NewEntity(kind Kind) (Entity, error) {
	switch kind {
	case KindCategory:
		return &Category{}, nil
	case KindSubcategory:
		return &Subcategory{}, nil
	case KindProduct:
		return &Product{}, nil
	case KindUser:
		return &User{}, nil
	case KindBanner:
		return &Banner{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

type Category struct {
	models.Category
}

func (c *Category) Kind() Kind       { return KindCategory }
func (c *Category) EntityID() int64  { return c.ID }
func (c *Category) Accept(v Visitor) { v.VisitCategory(c) }

type Subcategory struct {
	models.Subcategory
}

func (s *Subcategory) Kind() Kind       { return KindSubcategory }
func (s *Subcategory) EntityID() int64  { return s.ID }
func (s *Subcategory) Accept(v Visitor) { v.VisitSubcategory(s) }

// Product is a book as the catalog table shows it.
type Product struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	PriceLabel     string          `json:"price_label"`
	Category       string          `json:"category"`
	SubcategoryID  *int64          `json:"subcategory_id"`
	Status         string          `json:"status"`
	Stock          int             `json:"stock"`
	ThumbnailImage string          `json:"thumbnail_image"`
	Images         []string        `json:"images"`
	Videos         []string        `json:"videos"`
	PreviewVideo   string          `json:"preview_video"`
	IdealFor       string          `json:"ideal_for"`
	AgeRange       string          `json:"age_range"`
	Characters     []string        `json:"characters"`
	Genre          string          `json:"genre"`
}

func (p *Product) Kind() Kind       { return KindProduct }
func (p *Product) EntityID() int64  { return p.ID }
func (p *Product) Accept(v Visitor) { v.VisitProduct(p) }

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	JoinDate string `json:"joinDate"`
}

func (u *User) Kind() Kind       { return KindUser }
func (u *User) EntityID() int64  { return u.ID }
func (u *User) Accept(v Visitor) { v.VisitUser(u) }

type Banner struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Priority    int    `json:"priority"`
}

func (b *Banner) Kind() Kind       { return KindBanner }
func (b *Banner) EntityID() int64  { return b.ID }
func (b *Banner) Accept(v Visitor) { v.VisitBanner(b) }
