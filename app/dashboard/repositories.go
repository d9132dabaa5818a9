package dashboard

import (
	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/repositories"
	"github.com/sirupsen/logrus"
)

// NewRepositories builds every repository the dashboard reads and writes
// over one gateway.
func NewRepositories(gw *gateway.DB, caps *gateway.Capabilities, log *logrus.Logger) Repositories {
	return Repositories{
		Stats:         repositories.NewStatsRepository(gw, log),
		Categories:    repositories.NewCategoryRepository(gw, log),
		Subcategories: repositories.NewSubcategoryRepository(gw, log),
		Products:      repositories.NewProductRepository(gw, caps, log),
		Users:         repositories.NewAppUserRepository(gw),
		Banners:       repositories.NewBannerRepository(gw),
		Orders:        repositories.NewOrderRepository(gw),
		Customers:     repositories.NewCustomerRepository(gw),
	}
}
