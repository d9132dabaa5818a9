package fakers

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

// uniqueEmail keeps generated addresses apart across a seed run.
func uniqueEmail() string {
	local := strings.SplitN(faker.Email(), "@", 2)[0]
	return fmt.Sprintf("%s.%s@example.com", local, uuid.NewString()[:8])
}

func UserFaker(rnd *rand.Rand) *models.AppUser {
	role := models.RoleUser
	if rnd.Intn(10) == 0 {
		role = models.RoleAdmin
	}
	return &models.AppUser{
		FullName: faker.Name(),
		Email:    uniqueEmail(),
		Role:     role,
		IsActive: rnd.Intn(5) > 0,
	}
}

var customerStatuses = []string{
	models.CustomerStatusActive,
	models.CustomerStatusActive,
	models.CustomerStatusActive,
	models.CustomerStatusInactive,
	models.CustomerStatusBlocked,
}

func CustomerFaker(rnd *rand.Rand) *models.Customer {
	return &models.Customer{
		FirstName: faker.FirstName(),
		LastName:  faker.LastName(),
		Email:     uniqueEmail(),
		Phone:     faker.Phonenumber(),
		Status:    customerStatuses[rnd.Intn(len(customerStatuses))],
	}
}
