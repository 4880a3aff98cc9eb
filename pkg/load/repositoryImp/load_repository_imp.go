package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"integrarural/entities"
	"integrarural/pkg/apperr"
	"integrarural/pkg/load/repository"
)

// Whitelisted columns for the distinct-values endpoint; anything else is
// rejected before touching SQL.
var distinctColumns = map[string]bool{
	"truck":       true,
	"driver":      true,
	"farm_name":   true,
	"field":       true,
	"product":     true,
	"variety":     true,
	"unit":        true,
	"destination": true,
}

type loadRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LoadRepository { return &loadRepo{db} }

// Warehouse rows are managed by their own repository; the association is
// never written through the load.
func (r *loadRepo) Create(l *entities.Load) error {
	if err := r.db.Omit("Warehouse").Create(l).Error; err != nil {
		return &apperr.StorageError{Op: "create load", Err: err}
	}
	return nil
}

func (r *loadRepo) Get(id uint) (*entities.Load, error) {
	var l entities.Load
	err := r.db.Preload("Warehouse").First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Entity: "load", ID: id}
	}
	if err != nil {
		return nil, &apperr.StorageError{Op: "get load", Err: err}
	}
	return &l, nil
}

func (r *loadRepo) List() ([]entities.Load, error) {
	var out []entities.Load
	if err := r.db.Preload("Warehouse").Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, &apperr.StorageError{Op: "list loads", Err: err}
	}
	return out, nil
}

func (r *loadRepo) Save(l *entities.Load) error {
	if err := r.db.Omit("Warehouse").Save(l).Error; err != nil {
		return &apperr.StorageError{Op: "save load", Err: err}
	}
	return nil
}

func (r *loadRepo) DistinctValues(column string) ([]string, error) {
	if !distinctColumns[column] {
		return nil, &apperr.ValidationError{Field: "field", Reason: "unknown column " + column}
	}
	var out []string
	err := r.db.Model(&entities.Load{}).
		Distinct(column).
		Where(column + " <> ''").
		Order(column).
		Pluck(column, &out).Error
	if err != nil {
		return nil, &apperr.StorageError{Op: "distinct " + column, Err: err}
	}
	return out, nil
}

type farmRepo struct{ db *gorm.DB }

func NewFarmRepository(db *gorm.DB) repository.FarmRepository { return &farmRepo{db} }

func (r *farmRepo) Get(id uint) (*entities.Farm, error) {
	var f entities.Farm
	err := r.db.First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Entity: "farm", ID: id}
	}
	if err != nil {
		return nil, &apperr.StorageError{Op: "get farm", Err: err}
	}
	return &f, nil
}
