package fakers

import (
	"math"
	"math/rand"
	"strings"

	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
)

var (
	ageRanges = []string{"0-3", "4-7", "8-12", "13+", "Adult"}
	idealFor  = []string{"Bedtime reading", "Classrooms", "Gifts", "Book clubs"}
)

func title() string {
	return strings.TrimSuffix(faker.Sentence(), ".")
}

func pick(rnd *rand.Rand, from []string) *string {
	v := from[rnd.Intn(len(from))]
	return &v
}

// ProductFaker builds an unsaved book in category. Media is left empty so
// the row fits a schema without the media columns.
func ProductFaker(rnd *rand.Rand, category string, subcategoryID *int64) *models.Product {
	genre := category
	return &models.Product{
		Title:         title(),
		Description:   faker.Paragraph(),
		Price:         decimal.NewFromFloat(fakePrice(rnd)),
		Category:      category,
		SubcategoryID: subcategoryID,
		StockQuantity: rnd.Intn(40) + 1,
		IsActive:      rnd.Intn(10) > 0,
		IdealFor:      pick(rnd, idealFor),
		AgeRange:      pick(rnd, ageRanges),
		Characters:    models.StringList{faker.FirstName(), faker.FirstName()},
		Genre:         &genre,
	}
}

func fakePrice(rnd *rand.Rand) float64 {
	return precision(5+rnd.Float64()*math.Pow10(rnd.Intn(2)+1), 2)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}
