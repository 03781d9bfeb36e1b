package services

import (
	"context"
	"time"

	"chef-marketplace-api/models"

	"gorm.io/gorm"
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// List returns every review, newest first.
func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.db.WithContext(ctx).Order("date desc").Find(&reviews).Error
	return reviews, err
}

func (s *ReviewService) ByMeal(ctx context.Context, mealID string) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.db.WithContext(ctx).Where("food_id = ?", mealID).Order("date desc").Find(&reviews).Error
	return reviews, err
}

func (s *ReviewService) Create(ctx context.Context, review *models.Review) (*models.InsertResult, error) {
	review.Date = time.Now()
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return models.Inserted(review.ID), nil
}

func (s *ReviewService) Update(ctx context.Context, id string, patch *models.ReviewPatch) (*models.UpdateResult, error) {
	columns := map[string]any{}
	if patch.Rating != nil {
		columns["rating"] = *patch.Rating
	}
	if patch.Comment != nil {
		columns["comment"] = *patch.Comment
	}
	return updateByID(s.db.WithContext(ctx), &models.Review{}, id, columns)
}

func (s *ReviewService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	return deleteByID(s.db.WithContext(ctx), &models.Review{}, id)
}
