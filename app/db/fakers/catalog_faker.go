package fakers

import (
	"math/rand"

	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/go-faker/faker/v4"
)

var CategoryNames = []string{"Fantasy", "Science", "History", "Poetry", "Picture Books"}

func CategoryFaker(name string, sortOrder int) *models.Category {
	return &models.Category{
		Name:        name,
		Description: faker.Sentence(),
		IsActive:    true,
		SortOrder:   sortOrder,
	}
}

func SubcategoryFaker(categoryID int64, sortOrder int) *models.Subcategory {
	return &models.Subcategory{
		Name:        title(),
		Description: faker.Sentence(),
		CategoryID:  categoryID,
		IsActive:    true,
		SortOrder:   sortOrder,
	}
}

func BannerFaker(rnd *rand.Rand, priority int) *models.Banner {
	return &models.Banner{
		Title:       title(),
		Description: faker.Sentence(),
		IsActive:    rnd.Intn(3) > 0,
		Priority:    priority,
	}
}
