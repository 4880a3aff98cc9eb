package permission

import (
	"errors"

	"gorm.io/gorm"

	"integrarural/entities"
	"integrarural/pkg/apperr"
)

// Lookup is the permission-lookup collaborator.
type Lookup interface {
	Get(userID, farmID uint) (*entities.FarmPermission, error)
}

type repo struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Lookup { return &repo{db} }

// Get returns the grant for (user, farm), or nil when none exists.
// Callers treat nil as zero capabilities.
func (r *repo) Get(userID, farmID uint) (*entities.FarmPermission, error) {
	var p entities.FarmPermission
	err := r.db.Where("user_id = ? AND farm_id = ?", userID, farmID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &apperr.StorageError{Op: "get permission", Err: err}
	}
	return &p, nil
}
