package dashboard

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/Rakhulsr/go-admin-dashboard/app/helpers"
	"github.com/Rakhulsr/go-admin-dashboard/app/i18n"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type CategoryForm struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type SubcategoryForm struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id" validate:"required,numeric"`
}

type ProductForm struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	Price          string   `json:"price" validate:"required,amount"`
	Category       string   `json:"category" validate:"required"`
	SubcategoryID  string   `json:"subcategory_id" validate:"omitempty,numeric"`
	Stock          string   `json:"stock" validate:"omitempty,number"`
	Status         string   `json:"status" validate:"omitempty,oneof=active inactive"`
	ThumbnailImage string   `json:"thumbnail_image"`
	Images         []string `json:"images"`
	Videos         []string `json:"videos"`
	PreviewVideo   string   `json:"preview_video"`
	IdealFor       string   `json:"ideal_for"`
	AgeRange       string   `json:"age_range"`
	Characters     []string `json:"characters"`
	Genre          string   `json:"genre"`
}

type UserForm struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"omitempty,max=20"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type BannerForm struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ValidationError is a form that was rejected before anything was sent.
type ValidationError struct {
	Kind    Kind              `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

var requiredMessages = map[Kind]string{
	KindCategory:    "Please enter a category name",
	KindSubcategory: "Please fill in all required fields (name and category)",
	KindProduct:     "Please fill in all required fields (name, price, category)",
	KindUser:        "Please fill in all required fields (name, email)",
	KindBanner:      "Please enter a banner title",
}

// isAmount accepts a non-negative decimal such as "12" or "12.50".
func isAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !d.IsNegative()
}

type Validator struct {
	v     *validator.Validate
	trans ut.Translator
}

func NewValidator(tr *i18n.Translator) (*Validator, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("amount", isAmount); err != nil {
		return nil, err
	}

	var trans ut.Translator
	if tr != nil {
		var err error
		if trans, err = tr.RegisterValidation(v); err != nil {
			return nil, err
		}
		err = v.RegisterTranslation("amount", trans,
			func(ut ut.Translator) error {
				return ut.Add("amount", "{0} must be a non-negative amount", true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, _ := ut.T("amount", fe.Field())
				return msg
			},
		)
		if err != nil {
			return nil, err
		}
	}
	return &Validator{v: v, trans: trans}, nil
}

// Check validates form, skipping the named struct fields.
func (val *Validator) Check(kind Kind, form interface{}, skip ...string) error {
	var err error
	if len(skip) > 0 {
		err = val.v.StructExcept(form, skip...)
	} else {
		err = val.v.Struct(form)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return &ValidationError{
		Kind:    kind,
		Message: validationMessage(kind, verrs),
		Fields:  helpers.FormatValidationErrors(verrs, val.trans),
	}
}

// validationMessage names the missing fields when any are missing and the
// malformed ones otherwise.
func validationMessage(kind Kind, verrs validator.ValidationErrors) string {
	var invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return requiredMessages[kind]
		}
		invalid = append(invalid, fe.Field())
	}
	sort.Strings(invalid)
	return "Please correct the invalid fields (" + strings.Join(invalid, ", ") + ")"
}
