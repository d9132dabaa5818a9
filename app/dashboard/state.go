package dashboard

import (
	"fmt"

	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/Rakhulsr/go-admin-dashboard/app/services"
)

type Section string

const (
	SectionDashboard     Section = "dashboard"
	SectionOrders        Section = "orders"
	SectionCustomers     Section = "customers"
	SectionCategories    Section = "categories"
	SectionSubcategories Section = "subcategories"
	SectionProducts      Section = "products"
	SectionUsers         Section = "users"
	SectionBanners       Section = "banners"
)

var Sections = []Section{
	SectionDashboard, SectionOrders, SectionCustomers, SectionCategories,
	SectionSubcategories, SectionProducts, SectionUsers, SectionBanners,
}

func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

type ModalMode string

const (
	ModalNone   ModalMode = ""
	ModalAdd    ModalMode = "add"
	ModalEdit   ModalMode = "edit"
	ModalView   ModalMode = "view"
	ModalDelete ModalMode = "delete"
)

func (m ModalMode) Valid() bool {
	switch m {
	case ModalAdd, ModalEdit, ModalView, ModalDelete:
		return true
	}
	return false
}

// Modal is at most one open dialog. Selected is nil for add.
type Modal struct {
	Mode     ModalMode `json:"mode"`
	Kind     Kind      `json:"kind"`
	Selected Entity    `json:"selected"`
}

func (m Modal) Editing() bool {
	return m.Mode == ModalAdd || m.Mode == ModalEdit
}

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeWarning NoticeLevel = "warning"
)

type Notice struct {
	ID      string      `json:"id"`
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

type State struct {
	Section       Section               `json:"section"`
	Loading       bool                  `json:"loading"`
	Stats         models.DashboardStats `json:"stats"`
	Categories    []Category            `json:"categories"`
	Subcategories []Subcategory         `json:"subcategories"`
	Products      []Product             `json:"products"`
	Users         []User                `json:"users"`
	Banners       []Banner              `json:"banners"`
	Modal         Modal                 `json:"modal"`
	Form          Form                  `json:"form"`
	Uploading     bool                  `json:"uploading"`
	SchemaWarning bool                  `json:"schema_warning"`
	Error         string                `json:"error,omitempty"`
	Notices       []Notice              `json:"notices"`

	// ModalSeq changes every time a modal opens.
	ModalSeq         uint64 `json:"-"`
	WarningDismissed bool   `json:"-"`
}

func NewState() State {
	return State{
		Section:       SectionDashboard,
		Categories:    []Category{},
		Subcategories: []Subcategory{},
		Products:      []Product{},
		Users:         []User{},
		Banners:       []Banner{},
		Form:          Form{},
		Notices:       []Notice{},
	}
}

// Action is a state transition. apply must not modify the state it is
// given beyond its own copy.
type Action interface {
	apply(State) State
}

func Reduce(s State, a Action) State {
	return a.apply(s)
}

type LoadStarted struct{}

func (LoadStarted) apply(s State) State {
	s.Loading = true
	s.Error = ""
	return s
}

type LoadFinished struct{}

func (LoadFinished) apply(s State) State {
	s.Loading = false
	return s
}

type StatsLoaded struct{ Stats models.DashboardStats }

func (a StatsLoaded) apply(s State) State {
	s.Stats = a.Stats
	return s
}

type CategoriesLoaded struct{ Rows []Category }

func (a CategoriesLoaded) apply(s State) State {
	s.Categories = a.Rows
	return s
}

type SubcategoriesLoaded struct{ Rows []Subcategory }

func (a SubcategoriesLoaded) apply(s State) State {
	s.Subcategories = a.Rows
	return s
}

type ProductsLoaded struct {
	Rows           []Product
	MediaSupported bool
}

func (a ProductsLoaded) apply(s State) State {
	s.Products = a.Rows
	if !a.MediaSupported && !s.WarningDismissed {
		s.SchemaWarning = true
	}
	return s
}

type UsersLoaded struct{ Rows []User }

func (a UsersLoaded) apply(s State) State {
	s.Users = a.Rows
	return s
}

type BannersLoaded struct{ Rows []Banner }

func (a BannersLoaded) apply(s State) State {
	s.Banners = a.Rows
	return s
}

type LoadFailed struct {
	Collection  string
	SchemaDrift bool
	Notice      Notice
}

func (a LoadFailed) apply(s State) State {
	if a.SchemaDrift {
		s.SchemaWarning = true
		s.Error = SchemaUpdateMessage
	}
	if a.Notice.Message != "" {
		s.Notices = appendNotice(s.Notices, a.Notice)
	}
	return s
}

type SectionChanged struct{ Section Section }

func (a SectionChanged) apply(s State) State {
	s.Section = a.Section
	return s
}

// ModalOpened replaces whatever modal was open. The edit form is filled
// from Entity, every other mode starts from an empty form.
type ModalOpened struct {
	Mode   ModalMode
	Kind   Kind
	Entity Entity
}

func (a ModalOpened) apply(s State) State {
	s.ModalSeq++
	s.Modal = Modal{Mode: a.Mode, Kind: a.Kind, Selected: a.Entity}
	if a.Mode == ModalAdd {
		s.Modal.Selected = nil
	}
	if a.Mode == ModalEdit && a.Entity != nil {
		s.Form = editForm(a.Entity)
	} else {
		s.Form = Form{}
	}
	return s
}

type ModalClosed struct{}

func (ModalClosed) apply(s State) State {
	s.ModalSeq++
	s.Modal = Modal{}
	s.Form = Form{}
	s.Uploading = false
	return s
}

type FieldChanged struct {
	Field string
	Value interface{}
}

func (a FieldChanged) apply(s State) State {
	if !s.Modal.Editing() {
		return s
	}
	s.Form = s.Form.Clone()
	s.Form[a.Field] = a.Value
	return s
}

type UploadStarted struct{}

func (UploadStarted) apply(s State) State {
	s.Uploading = true
	return s
}

type UploadFinished struct{}

func (UploadFinished) apply(s State) State {
	s.Uploading = false
	return s
}

// MediaUploaded is dropped when the modal it was started from is gone.
type MediaUploaded struct {
	ModalSeq uint64
	Field    services.MediaField
	URLs     []string
}

func (a MediaUploaded) apply(s State) State {
	if !s.Modal.Editing() || a.ModalSeq != s.ModalSeq {
		return s
	}
	s.Form = s.Form.Clone()
	s.Form[string(a.Field)] = services.Accumulate(a.Field, s.Form[string(a.Field)], a.URLs)
	return s
}

type MediaRemoved struct {
	Field services.MediaField
	Index int
}

func (a MediaRemoved) apply(s State) State {
	if !s.Modal.Editing() {
		return s
	}
	s.Form = s.Form.Clone()
	key := string(a.Field)
	if !a.Field.Multi() {
		s.Form[key] = ""
		return s
	}
	list := s.Form.Strings(key)
	if a.Index < 0 || a.Index >= len(list) {
		return s
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:a.Index]...)
	s.Form[key] = append(out, list[a.Index+1:]...)
	return s
}

type EntityRemoved struct {
	Target Entity
	ID     int64
}

func (a EntityRemoved) apply(s State) State {
	a.Target.Accept(&remover{s: &s, id: a.ID})
	return s
}

type SaveSucceeded struct{}

func (SaveSucceeded) apply(s State) State {
	return ModalClosed{}.apply(s)
}

type NoticePosted struct{ Notice Notice }

func (a NoticePosted) apply(s State) State {
	s.Notices = appendNotice(s.Notices, a.Notice)
	return s
}

// NoticesDrained removes the notices with the given ids.
type NoticesDrained struct{ IDs []string }

func (a NoticesDrained) apply(s State) State {
	drop := make(map[string]bool, len(a.IDs))
	for _, id := range a.IDs {
		drop[id] = true
	}
	kept := make([]Notice, 0, len(s.Notices))
	for _, n := range s.Notices {
		if !drop[n.ID] {
			kept = append(kept, n)
		}
	}
	s.Notices = kept
	return s
}

type SchemaWarningDismissed struct{}

func (SchemaWarningDismissed) apply(s State) State {
	s.SchemaWarning = false
	s.WarningDismissed = true
	return s
}

func appendNotice(list []Notice, n Notice) []Notice {
	out := make([]Notice, 0, len(list)+1)
	out = append(out, list...)
	return append(out, n)
}

func withoutID[T any](rows []T, id int64, idOf func(T) int64) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if idOf(r) != id {
			out = append(out, r)
		}
	}
	return out
}

// remover drops one row from the collection of the visited kind.
type remover struct {
	s  *State
	id int64
}

func (r *remover) VisitCategory(*Category) {
	r.s.Categories = withoutID(r.s.Categories, r.id, func(c Category) int64 { return c.ID })
}

func (r *remover) VisitSubcategory(*Subcategory) {
	r.s.Subcategories = withoutID(r.s.Subcategories, r.id, func(c Subcategory) int64 { return c.ID })
}

func (r *remover) VisitProduct(*Product) {
	r.s.Products = withoutID(r.s.Products, r.id, func(p Product) int64 { return p.ID })
}

func (r *remover) VisitUser(*User) {
	r.s.Users = withoutID(r.s.Users, r.id, func(u User) int64 { return u.ID })
}

func (r *remover) VisitBanner(*Banner) {
	r.s.Banners = withoutID(r.s.Banners, r.id, func(b Banner) int64 { return b.ID })
}

// finder looks an entity up by id in the collection of the visited kind.
type finder struct {
	s     State
	id    int64
	found Entity
}

func findIn[T any, P interface {
	*T
	Entity
}](rows []T, id int64) Entity {
	for i := range rows {
		p := P(&rows[i])
		if p.EntityID() == id {
			e := rows[i]
			return P(&e)
		}
	}
	return nil
}

func (f *finder) VisitCategory(*Category) { f.found = findIn[Category](f.s.Categories, f.id) }
func (f *finder) VisitSubcategory(*Subcategory) {
	f.found = findIn[Subcategory](f.s.Subcategories, f.id)
}
func (f *finder) VisitProduct(*Product) { f.found = findIn[Product](f.s.Products, f.id) }
func (f *finder) VisitUser(*User)       { f.found = findIn[User](f.s.Users, f.id) }
func (f *finder) VisitBanner(*Banner)   { f.found = findIn[Banner](f.s.Banners, f.id) }

// Find returns the loaded entity of kind with id.
func (s State) Find(kind Kind, id int64) (Entity, error) {
	target, err := NewEntity(kind)
	if err != nil {
		return nil, err
	}
	f := &finder{s: s, id: id}
	target.Accept(f)
	if f.found == nil {
		return nil, fmt.Errorf("%w: %s %d", ErrEntityNotFound, kind, id)
	}
	return f.found, nil
}
