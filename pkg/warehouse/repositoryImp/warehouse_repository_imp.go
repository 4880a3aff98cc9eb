package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"integrarural/entities"
	"integrarural/pkg/apperr"
	"integrarural/pkg/warehouse/repository"
)

type warehouseRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.WarehouseRepository { return &warehouseRepo{db} }

func (r *warehouseRepo) Create(w *entities.Warehouse) error {
	if err := r.db.Create(w).Error; err != nil {
		return &apperr.StorageError{Op: "create warehouse", Err: err}
	}
	return nil
}

func (r *warehouseRepo) Get(id uint) (*entities.Warehouse, error) {
	var w entities.Warehouse
	err := r.db.First(&w, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Entity: "warehouse", ID: id}
	}
	if err != nil {
		return nil, &apperr.StorageError{Op: "get warehouse", Err: err}
	}
	return &w, nil
}

func (r *warehouseRepo) List() ([]entities.Warehouse, error) {
	var out []entities.Warehouse
	if err := r.db.Order("name").Find(&out).Error; err != nil {
		return nil, &apperr.StorageError{Op: "list warehouses", Err: err}
	}
	return out, nil
}

// FindByCNPJ matches on the digits-only form. Returns nil when no
// warehouse carries that CNPJ.
func (r *warehouseRepo) FindByCNPJ(cnpj string) (*entities.Warehouse, error) {
	var w entities.Warehouse
	err := r.db.Where("cnpj = ?", cnpj).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &apperr.StorageError{Op: "find warehouse by cnpj", Err: err}
	}
	return &w, nil
}

func (r *warehouseRepo) Save(w *entities.Warehouse) error {
	if err := r.db.Save(w).Error; err != nil {
		return &apperr.StorageError{Op: "save warehouse", Err: err}
	}
	return nil
}
