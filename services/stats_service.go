package services

import (
	"context"

	"chef-marketplace-api/models"

	"gorm.io/gorm"
)

// AdminStats summarises the platform for the admin dashboard.
type AdminStats struct {
	Users   int64   `json:"users"`
	Meals   int64   `json:"meals"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Collect counts users, meals and orders; revenue is the sum of recorded payments.
func (s *StatsService) Collect(ctx context.Context) (*AdminStats, error) {
	db := s.db.WithContext(ctx)
	stats := &AdminStats{}
	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.User{}, &stats.Users},
		{&models.Meal{}, &stats.Meals},
		{&models.Order{}, &stats.Orders},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	if err := db.Model(&models.Payment{}).Select("COALESCE(SUM(price), 0)").Scan(&stats.Revenue).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
