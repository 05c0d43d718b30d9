package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"farm-animals/internal/herdstub"
)

type AnimalRepo struct {
	mu        sync.RWMutex
	byID      map[int64]herdstub.Animal
	weights   map[int64][]herdstub.Weight
	movements map[int64][]herdstub.Movement
	lastID    int64
	lastMove  int64
}

func NewAnimalRepo() *AnimalRepo {
	return &AnimalRepo{
		byID:      make(map[int64]herdstub.Animal),
		weights:   make(map[int64][]herdstub.Weight),
		movements: make(map[int64][]herdstub.Movement),
	}
}

func (r *AnimalRepo) Create(ctx context.Context, a *herdstub.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == 0 {
		r.lastID++
		a.ID = r.lastID
	} else if a.ID > r.lastID {
		r.lastID = a.ID
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	r.byID[a.ID] = *a
	return nil
}

func (r *AnimalRepo) Update(ctx context.Context, a herdstub.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return herdstub.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AnimalRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return herdstub.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.weights, id)
	delete(r.movements, id)
	return nil
}

func (r *AnimalRepo) GetByID(ctx context.Context, id int64) (herdstub.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return herdstub.Animal{}, herdstub.ErrNotFound
	}
	return a, nil
}

func (r *AnimalRepo) ListByFarm(ctx context.Context, farmID int64) ([]herdstub.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]herdstub.Animal, 0)
	for _, a := range r.byID {
		if a.FarmID == farmID {
			out = append(out, a)
		}
	}

	// Orden estable por id (el backend devuelve en orden de alta).
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *AnimalRepo) AddWeight(ctx context.Context, w herdstub.Weight) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[w.AnimalID]; !exists {
		return herdstub.ErrNotFound
	}
	r.weights[w.AnimalID] = append(r.weights[w.AnimalID], w)
	return nil
}

func (r *AnimalRepo) AddMovement(ctx context.Context, m *herdstub.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[m.AnimalID]; !exists {
		return herdstub.ErrNotFound
	}
	r.lastMove++
	m.ID = r.lastMove
	r.movements[m.AnimalID] = append(r.movements[m.AnimalID], *m)
	return nil
}

// Weights y Movements exponen el historial para tests y depuración.
func (r *AnimalRepo) Weights(id int64) []herdstub.Weight {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]herdstub.Weight(nil), r.weights[id]...)
}

func (r *AnimalRepo) Movements(id int64) []herdstub.Movement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]herdstub.Movement(nil), r.movements[id]...)
}
