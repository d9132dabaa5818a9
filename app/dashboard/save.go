package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/shopspring/decimal"
)

// saver validates the open form for the visited kind and writes it. The
// visited entity is the one being edited, or an empty one when adding.
type saver struct {
	ctx          context.Context
	d            *Dashboard
	state        State
	form         Form
	mode         ModalMode
	err          error
	mediaDropped bool
}

func (s *saver) adding() bool {
	return s.mode == ModalAdd
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func parseDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &t
}

func (s *saver) VisitCategory(c *Category) {
	form := CategoryForm{Name: s.form.String("name"), Description: s.form.String("description")}
	if s.err = s.d.validator.Check(KindCategory, form); s.err != nil {
		return
	}

	if s.adding() {
		s.err = s.d.repos.Categories.Create(s.ctx, &models.Category{
			Name:        form.Name,
			Description: form.Description,
			IsActive:    true,
			SortOrder:   len(s.state.Categories) + 1,
		})
		return
	}
	_, s.err = s.d.repos.Categories.Update(s.ctx, c.ID, map[string]interface{}{
		"name":        form.Name,
		"description": form.Description,
	})
}

func (s *saver) VisitSubcategory(sub *Subcategory) {
	form := SubcategoryForm{
		Name:        s.form.String("name"),
		Description: s.form.String("description"),
		CategoryID:  s.form.String("category_id"),
	}

	if !s.adding() {
		if s.err = s.d.validator.Check(KindSubcategory, form, "CategoryID"); s.err != nil {
			return
		}
		_, s.err = s.d.repos.Subcategories.Update(s.ctx, sub.ID, map[string]interface{}{
			"name":        form.Name,
			"description": form.Description,
		})
		return
	}

	if s.err = s.d.validator.Check(KindSubcategory, form); s.err != nil {
		return
	}
	categoryID, _ := strconv.ParseInt(form.CategoryID, 10, 64)
	siblings := 0
	for _, existing := range s.state.Subcategories {
		if existing.CategoryID == categoryID {
			siblings++
		}
	}
	s.err = s.d.repos.Subcategories.Create(s.ctx, &models.Subcategory{
		Name:        form.Name,
		Description: form.Description,
		CategoryID:  categoryID,
		IsActive:    true,
		SortOrder:   siblings + 1,
	})
}

func (s *saver) VisitProduct(p *Product) {
	form := ProductForm{
		Name:           s.form.String("name"),
		Description:    s.form.String("description"),
		Price:          s.form.String("price"),
		Category:       s.form.String("category"),
		SubcategoryID:  s.form.String("subcategory_id"),
		Stock:          s.form.String("stock"),
		Status:         s.form.String("status"),
		ThumbnailImage: s.form.String("thumbnail_image"),
		Images:         s.form.Strings("images"),
		Videos:         s.form.Strings("videos"),
		PreviewVideo:   s.form.String("preview_video"),
		IdealFor:       s.form.String("ideal_for"),
		AgeRange:       s.form.String("age_range"),
		Characters:     s.form.List("characters"),
		Genre:          s.form.String("genre"),
	}
	if s.err = s.d.validator.Check(KindProduct, form); s.err != nil {
		return
	}

	record, err := productRecord(form)
	if err != nil {
		s.err = err
		return
	}
	var id int64
	if !s.adding() {
		id = p.ID
	}
	out, err := s.d.repos.Products.SaveProduct(s.ctx, record, id)
	s.err = err
	s.mediaDropped = out.MediaDropped
}

func productRecord(form ProductForm) (*models.Product, error) {
	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", form.Price, err)
	}
	var stock int
	if form.Stock != "" {
		if stock, err = strconv.Atoi(form.Stock); err != nil {
			return nil, fmt.Errorf("parse stock %q: %w", form.Stock, err)
		}
	}

	record := &models.Product{
		Title:          form.Name,
		Description:    form.Description,
		Price:          price,
		Category:       form.Category,
		StockQuantity:  stock,
		IsActive:       form.Status != StatusInactive,
		ThumbnailImage: optional(form.ThumbnailImage),
		Images:         models.StringList(form.Images).OrEmpty(),
		Videos:         models.StringList(form.Videos).OrEmpty(),
		PreviewVideo:   optional(form.PreviewVideo),
		IdealFor:       optional(form.IdealFor),
		AgeRange:       optional(form.AgeRange),
		Characters:     models.StringList(form.Characters).OrEmpty(),
		Genre:          optional(form.Genre),
	}
	if id, err := strconv.ParseInt(form.SubcategoryID, 10, 64); err == nil && id > 0 {
		record.SubcategoryID = &id
	}
	return record, nil
}

func (s *saver) VisitUser(u *User) {
	form := UserForm{
		Name:   s.form.String("name"),
		Email:  s.form.String("email"),
		Role:   s.form.String("role"),
		Status: s.form.String("status"),
	}
	if s.err = s.d.validator.Check(KindUser, form); s.err != nil {
		return
	}
	role := form.Role
	if role == "" {
		role = models.RoleUser
	}
	active := form.Status != StatusInactive

	if s.adding() {
		s.err = s.d.repos.Users.Create(s.ctx, &models.AppUser{
			FullName: form.Name,
			Email:    form.Email,
			Role:     role,
			IsActive: active,
		})
		return
	}
	_, s.err = s.d.repos.Users.Update(s.ctx, u.ID, map[string]interface{}{
		"full_name": form.Name,
		"email":     form.Email,
		"role":      role,
		"is_active": active,
	})
}

func (s *saver) VisitBanner(b *Banner) {
	form := BannerForm{
		Title:       s.form.String("title"),
		Description: s.form.String("description"),
		StartDate:   s.form.String("startDate"),
		EndDate:     s.form.String("endDate"),
		Status:      s.form.String("status"),
	}
	if s.err = s.d.validator.Check(KindBanner, form); s.err != nil {
		return
	}
	active := form.Status != StatusInactive

	if s.adding() {
		s.err = s.d.repos.Banners.Create(s.ctx, &models.Banner{
			Title:       form.Title,
			Description: form.Description,
			StartDate:   parseDate(form.StartDate),
			EndDate:     parseDate(form.EndDate),
			IsActive:    active,
			Priority:    len(s.state.Banners) + 1,
		})
		return
	}
	_, s.err = s.d.repos.Banners.Update(s.ctx, b.ID, map[string]interface{}{
		"title":       form.Title,
		"description": form.Description,
		"start_date":  parseDate(form.StartDate),
		"end_date":    parseDate(form.EndDate),
		"is_active":   active,
	})
}

// deleter removes the row with id from the table of the visited kind.
type deleter struct {
	ctx   context.Context
	repos Repositories
	id    int64
	err   error
}

func (x *deleter) VisitCategory(*Category)       { x.err = x.repos.Categories.Delete(x.ctx, x.id) }
func (x *deleter) VisitSubcategory(*Subcategory) { x.err = x.repos.Subcategories.Delete(x.ctx, x.id) }
func (x *deleter) VisitProduct(*Product)         { x.err = x.repos.Products.Delete(x.ctx, x.id) }
func (x *deleter) VisitUser(*User)               { x.err = x.repos.Users.Delete(x.ctx, x.id) }
func (x *deleter) VisitBanner(*Banner)           { x.err = x.repos.Banners.Delete(x.ctx, x.id) }
