package services

import (
	"context"
	"errors"
	"math"
	"time"

	"chef-marketplace-api/apperrors"
	"chef-marketplace-api/models"

	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	featuredMeals    = 6
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// MealPage is one page of the price-sorted meal listing.
type MealPage struct {
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
	Meals      []models.Meal `json:"meals"`
}

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// List returns page (1-based) of meals ordered by price. Meals with the same price
// are ordered by id so pages never overlap.
func (s *MealService) List(ctx context.Context, page, limit int, sort SortDirection) (*MealPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	// (page-1)*limit must fit in an int.
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	direction := "asc"
	if sort == SortDesc {
		direction = "desc"
	}

	db := s.db.WithContext(ctx)
	var total int64
	if err := db.Model(&models.Meal{}).Count(&total).Error; err != nil {
		return nil, err
	}

	meals := []models.Meal{}
	err := db.Order("price " + direction).Order("id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&meals).Error
	if err != nil {
		return nil, err
	}

	return &MealPage{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		Meals:      meals,
	}, nil
}

func (s *MealService) Create(ctx context.Context, meal *models.Meal) (*models.InsertResult, error) {
	if meal.Rating < 0 {
		meal.Rating = 0
	}
	meal.CreatedAt = time.Now()
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, err
	}
	return models.Inserted(meal.ID), nil
}

// Featured returns the six oldest meals.
func (s *MealService) Featured(ctx context.Context) ([]models.Meal, error) {
	meals := []models.Meal{}
	err := s.db.WithContext(ctx).Order("created_at").Order("id").Limit(featuredMeals).Find(&meals).Error
	return meals, err
}

func (s *MealService) ByChefEmail(ctx context.Context, email string) ([]models.Meal, error) {
	meals := []models.Meal{}
	err := s.db.WithContext(ctx).Where("user_email = ?", email).Order("created_at desc").Find(&meals).Error
	return meals, err
}

func (s *MealService) Get(ctx context.Context, id string) (*models.Meal, error) {
	var meal models.Meal
	if err := findByID(s.db.WithContext(ctx), &meal, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Meal not found")
		}
		return nil, err
	}
	return &meal, nil
}

func (s *MealService) Update(ctx context.Context, id string, patch *models.MealPatch) (*models.UpdateResult, error) {
	return updateByID(s.db.WithContext(ctx), &models.Meal{}, id, patch.Columns())
}

func (s *MealService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	return deleteByID(s.db.WithContext(ctx), &models.Meal{}, id)
}
