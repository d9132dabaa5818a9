package repositories

import (
	"context"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/sirupsen/logrus"
)

type StatsRepositoryImpl interface {
	GetDashboardStats(ctx context.Context) (models.DashboardStats, error)
}

type StatsRepository struct {
	gw  *gateway.DB
	log *logrus.Entry
}

func NewStatsRepository(gw *gateway.DB, log *logrus.Logger) *StatsRepository {
	return &StatsRepository{gw: gw, log: log.WithField("component", "stats_repository")}
}

// GetDashboardStats reads the dashboard_stats view and computes the same
// aggregates directly when the view is not installed.
func (r *StatsRepository) GetDashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := r.gw.FetchOne(ctx, gateway.Query{Table: "dashboard_stats"}, &stats)
	if err == nil {
		return stats, nil
	}
	r.log.WithError(err).Debug("dashboard_stats view unavailable, computing aggregates")
	return r.compute(ctx)
}

func (r *StatsRepository) compute(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	counts := []struct {
		dest *int64
		q    gateway.Query
	}{
		{&stats.TotalUsers, gateway.Query{Table: "app_users"}},
		{&stats.TotalBooks, gateway.Query{Table: models.ProductTable}},
		{&stats.TotalOrders, gateway.Query{Table: "orders"}},
		{&stats.TotalCategories, gateway.Query{Table: "categories"}},
		{&stats.ActiveBanners, gateway.Query{Table: "banners", Filters: []gateway.Filter{gateway.EqualTo("is_active", true)}}},
	}
	for _, c := range counts {
		n, err := r.gw.Count(ctx, c.q)
		if err != nil {
			return models.DashboardStats{}, err
		}
		*c.dest = n
	}

	revenue, err := r.gw.Sum(ctx, gateway.Query{Table: "orders"}, "total_amount")
	if err != nil {
		return models.DashboardStats{}, err
	}
	stats.TotalRevenue = revenue
	return stats, nil
}
