package services

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"chef-marketplace-api/models"

	"gorm.io/gorm"
)

const defaultChefIDAttempts = 8

var ErrChefIDExhausted = errors.New("could not allocate a unique chef id")

// ChefIDGenerator allocates identifiers of the form CHEF-NNNNNN that are unused in the users table.
type ChefIDGenerator struct {
	intN        func(n int) int
	maxAttempts int
}

func NewChefIDGenerator() *ChefIDGenerator {
	return &ChefIDGenerator{intN: rand.IntN, maxAttempts: defaultChefIDAttempts}
}

// NewChefIDGeneratorWithSource uses intN as the random source, for deterministic tests.
func NewChefIDGeneratorWithSource(intN func(n int) int, maxAttempts int) *ChefIDGenerator {
	return &ChefIDGenerator{intN: intN, maxAttempts: maxAttempts}
}

// Candidate returns a random id without checking the store.
func (g *ChefIDGenerator) Candidate() string {
	return fmt.Sprintf("CHEF-%06d", 100000+g.intN(900000))
}

// Next returns a candidate not yet assigned to any user, retrying on collision.
func (g *ChefIDGenerator) Next(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		candidate := g.Candidate()
		var count int64
		if err := tx.Model(&models.User{}).Where("chef_id = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", ErrChefIDExhausted
}
