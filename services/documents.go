package services

import (
	"errors"

	"chef-marketplace-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// idCandidates lists the keys an identifier may be stored under: its canonical
// uuid form first, then the literal string for client-supplied ids.
func idCandidates(id string) []string {
	if u, err := uuid.Parse(id); err == nil && u.String() != id {
		return []string{u.String(), id}
	}
	return []string{id}
}

// findByID loads the document with the given id into dst. The first matching candidate wins.
func findByID(db *gorm.DB, dst any, id string) error {
	for _, candidate := range idCandidates(id) {
		err := db.Where("id = ?", candidate).First(dst).Error
		if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return gorm.ErrRecordNotFound
}

// resolveID returns the stored key for id, or "" when no document matches.
func resolveID(db *gorm.DB, model any, id string) (string, error) {
	for _, candidate := range idCandidates(id) {
		var found []string
		if err := db.Model(model).Where("id = ?", candidate).Limit(1).Pluck("id", &found).Error; err != nil {
			return "", err
		}
		if len(found) > 0 {
			return found[0], nil
		}
	}
	return "", nil
}

// updateByID applies columns to the document with id. A missing document yields a zero match count.
func updateByID(db *gorm.DB, model any, id string, columns map[string]any) (*models.UpdateResult, error) {
	storedID, err := resolveID(db, model, id)
	if err != nil {
		return nil, err
	}
	if storedID == "" {
		return &models.UpdateResult{Acknowledged: true}, nil
	}
	if len(columns) == 0 {
		return &models.UpdateResult{Acknowledged: true, MatchedCount: 1}, nil
	}
	res := db.Model(model).Where("id = ?", storedID).Updates(columns)
	if res.Error != nil {
		return nil, res.Error
	}
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: res.RowsAffected}, nil
}

func deleteByID(db *gorm.DB, model any, id string) (*models.DeleteResult, error) {
	storedID, err := resolveID(db, model, id)
	if err != nil {
		return nil, err
	}
	if storedID == "" {
		return &models.DeleteResult{Acknowledged: true}, nil
	}
	res := db.Where("id = ?", storedID).Delete(model)
	if res.Error != nil {
		return nil, res.Error
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}
