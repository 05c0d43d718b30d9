package herdstub

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	Create(ctx context.Context, a *Animal) error
	Update(ctx context.Context, a Animal) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Animal, error)
	ListByFarm(ctx context.Context, farmID int64) ([]Animal, error)

	AddWeight(ctx context.Context, w Weight) error
	AddMovement(ctx context.Context, m *Movement) error
}
