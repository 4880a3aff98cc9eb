package repository

import "integrarural/entities"

type WarehouseRepository interface {
	Create(w *entities.Warehouse) error
	Get(id uint) (*entities.Warehouse, error)
	List() ([]entities.Warehouse, error)
	FindByCNPJ(cnpj string) (*entities.Warehouse, error)
	Save(w *entities.Warehouse) error
}
