package i18n

import (
	"fmt"

	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

var messages = map[string]map[string]string{
	LangEnglish: {
		"nav.dashboard":          "Dashboard",
		"nav.orders":             "Orders",
		"nav.customers":          "Customers",
		"nav.categories":         "Categories",
		"nav.subcategories":      "Subcategories",
		"nav.products":           "Products",
		"nav.users":              "Users",
		"nav.banners":            "Banners",
		"nav.theme":              "Theme",
		"dashboard.totalBooks":   "Total Books",
		"dashboard.totalOrders":  "Total Orders",
		"dashboard.totalRevenue": "Total Revenue",
		"dashboard.totalUsers":   "Total Users",
		"common.logout":          "Logout",
		"common.welcome":         "Welcome",
	},
	LangArabic: {
		"nav.dashboard":          "لوحة التحكم",
		"nav.orders":             "الطلبات",
		"nav.customers":          "العملاء",
		"nav.categories":         "الفئات",
		"nav.subcategories":      "الفئات الفرعية",
		"nav.products":           "المنتجات",
		"nav.users":              "المستخدمون",
		"nav.banners":            "اللافتات",
		"nav.theme":              "المظهر",
		"dashboard.totalBooks":   "إجمالي الكتب",
		"dashboard.totalOrders":  "إجمالي الطلبات",
		"dashboard.totalRevenue": "إجمالي الإيرادات",
		"dashboard.totalUsers":   "إجمالي المستخدمين",
		"common.logout":          "تسجيل الخروج",
		"common.welcome":         "مرحبا",
	},
}

type Translator struct {
	uni *ut.UniversalTranslator
}

func New() (*Translator, error) {
	english := en.New()
	uni := ut.New(english, english, ar.New())

	for lang, entries := range messages {
		trans, found := uni.GetTranslator(lang)
		if !found {
			return nil, fmt.Errorf("no locale for %q", lang)
		}
		for key, text := range entries {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("add %s/%s: %w", lang, key, err)
			}
		}
	}
	return &Translator{uni: uni}, nil
}

func Supported(lang string) bool {
	_, ok := messages[lang]
	return ok
}

// T looks key up in lang, then in English, then gives the key back.
func (t *Translator) T(lang, key string) string {
	for _, l := range []string{lang, LangEnglish} {
		trans, found := t.uni.GetTranslator(l)
		if !found {
			continue
		}
		if s, err := trans.T(key); err == nil && s != "" {
			return s
		}
	}
	return key
}

// Messages returns every key of lang, filled in from English where missing.
func (t *Translator) Messages(lang string) map[string]string {
	out := make(map[string]string, len(messages[LangEnglish]))
	for key := range messages[LangEnglish] {
		out[key] = t.T(lang, key)
	}
	return out
}

// RegisterValidation installs the English validator messages and returns
// the translator to format validation errors with.
func (t *Translator) RegisterValidation(v *validator.Validate) (ut.Translator, error) {
	trans, _ := t.uni.GetTranslator(LangEnglish)
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}
	return trans, nil
}
