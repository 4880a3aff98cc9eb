package repository

import "integrarural/entities"

// LoadRepository is the persistence collaborator for truck loads. Bound
// to a transaction, Create flushes immediately (producing an ID) but the
// row only survives if the transaction commits.
type LoadRepository interface {
	Create(l *entities.Load) error
	Get(id uint) (*entities.Load, error)
	List() ([]entities.Load, error)
	Save(l *entities.Load) error
	DistinctValues(column string) ([]string, error)
}

// FarmRepository resolves the issuing farm record.
type FarmRepository interface {
	Get(id uint) (*entities.Farm, error)
}
