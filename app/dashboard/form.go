package dashboard

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-admin-dashboard/app/services"
)

// Form holds the values of the open add or edit form, keyed by field name.
type Form map[string]interface{}

func (f Form) Clone() Form {
	out := make(Form, len(f))
	for k, v := range f {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		out[k] = v
	}
	return out
}

func (f Form) String(key string) string {
	switch v := f[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func (f Form) Strings(key string) []string {
	return services.ToStrings(f[key])
}

// List reads a list field that may also have been typed as comma separated text.
func (f Form) List(key string) []string {
	if s, ok := f[key].(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return f.Strings(key)
}

// formFiller builds the edit form of an entity. Each kind exposes only the
// fields its form edits.
type formFiller struct {
	form Form
}

func editForm(e Entity) Form {
	ff := &formFiller{}
	e.Accept(ff)
	return ff.form
}

func (ff *formFiller) VisitCategory(c *Category) {
	ff.form = Form{
		"name":        c.Name,
		"description": c.Description,
	}
}

func (ff *formFiller) VisitSubcategory(s *Subcategory) {
	ff.form = Form{
		"name":          s.Name,
		"description":   s.Description,
		"category_id":   s.CategoryID,
		"category_name": s.CategoryName,
	}
}

func (ff *formFiller) VisitProduct(p *Product) {
	var subcategory interface{} = ""
	if p.SubcategoryID != nil {
		subcategory = *p.SubcategoryID
	}
	ff.form = Form{
		"name":            p.Name,
		"description":     p.Description,
		"price":           p.Price.String(),
		"category":        p.Category,
		"subcategory_id":  subcategory,
		"stock":           p.Stock,
		"status":          p.Status,
		"thumbnail_image": p.ThumbnailImage,
		"images":          append([]string{}, p.Images...),
		"videos":          append([]string{}, p.Videos...),
		"preview_video":   p.PreviewVideo,
		"ideal_for":       p.IdealFor,
		"age_range":       p.AgeRange,
		"characters":      append([]string{}, p.Characters...),
		"genre":           p.Genre,
	}
}

func (ff *formFiller) VisitUser(u *User) {
	ff.form = Form{
		"name":   u.Name,
		"email":  u.Email,
		"role":   u.Role,
		"status": u.Status,
	}
}

func (ff *formFiller) VisitBanner(b *Banner) {
	ff.form = Form{
		"title":       b.Title,
		"description": b.Description,
		"startDate":   b.StartDate,
		"endDate":     b.EndDate,
		"status":      b.Status,
	}
}
