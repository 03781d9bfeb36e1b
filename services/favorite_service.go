package services

import (
	"context"
	"time"

	"chef-marketplace-api/models"

	"gorm.io/gorm"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Add saves fav unless the user already has that meal; added reports which happened.
func (s *FavoriteService) Add(ctx context.Context, fav *models.Favorite) (result *models.InsertResult, added bool, err error) {
	if fav.AddedTime.IsZero() {
		fav.AddedTime = time.Now()
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Favorite{}).
			Where("user_email = ? AND meal_id = ?", fav.UserEmail, fav.MealID).
			Count(&count).Error
		if err != nil || count > 0 {
			return err
		}
		added = true
		return tx.Create(fav).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !added {
		return nil, false, nil
	}
	return models.Inserted(fav.ID), true, nil
}

func (s *FavoriteService) ByUser(ctx context.Context, email string) ([]models.Favorite, error) {
	favorites := []models.Favorite{}
	err := s.db.WithContext(ctx).Where("user_email = ?", email).Order("added_time desc").Find(&favorites).Error
	return favorites, err
}

func (s *FavoriteService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	return deleteByID(s.db.WithContext(ctx), &models.Favorite{}, id)
}
