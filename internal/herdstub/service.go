package herdstub

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

const dateLayout = "2006-01-02"

type Service struct {
	// mu serializa las escrituras: peso y movimiento llegan en paralelo y
	// ambos hacen leer-modificar-escribir sobre el mismo animal.
	mu   sync.Mutex
	repo Repository
	refs References
	now  func() time.Time
}

func NewService(repo Repository, refs References) *Service {
	return &Service{
		repo: repo,
		refs: refs,
		now:  time.Now,
	}
}

func (s *Service) References() References { return s.refs }

// AnimalInput es el cuerpo de alta/edición. nil = campo ausente.
type AnimalInput struct {
	FarmID        *int64
	Name          string
	VisualCode    string
	CategoryID    *int64
	BreedID       *int64
	PaddockID     *int64
	BatchID       *int64
	Sex           string
	BirthDate     string // YYYY-MM-DD
	Height        *float64
	CurrentStatus string
	MotherID      *int64
	FatherID      *int64
	Observations  string
}

type WeightInput struct {
	Weight float64
	Date   string
	UserID *int64
}

type MovementInput struct {
	MovementTypeID int64
	ToPaddockID    int64
	Date           string
	Observations   string
	UserID         *int64
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (s *Service) Create(ctx context.Context, in AnimalInput) (Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.FarmID == nil || *in.FarmID <= 0 {
		return Animal{}, invalid("farmId required")
	}
	a := Animal{FarmID: *in.FarmID, CurrentStatus: DefaultStatus}
	if err := s.apply(&a, in); err != nil {
		return Animal{}, err
	}
	if err := s.checkVisualCode(ctx, a); err != nil {
		return Animal{}, err
	}

	now := s.now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := s.repo.Create(ctx, &a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// Update reemplaza los campos editables. El potrero y el peso viajan por sus
// sub-recursos; si el cuerpo trae paddockId se respeta igual.
func (s *Service) Update(ctx context.Context, id int64, in AnimalInput) (Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	a := current
	if err := s.apply(&a, in); err != nil {
		return Animal{}, err
	}
	if in.PaddockID == nil {
		a.PaddockID = current.PaddockID
	}
	if err := s.checkVisualCode(ctx, a); err != nil {
		return Animal{}, err
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByFarm(ctx context.Context, farmID int64) ([]Animal, error) {
	return s.repo.ListByFarm(ctx, farmID)
}

func (s *Service) RecordWeight(ctx context.Context, id int64, in WeightInput) (Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Weight <= 0 {
		return Animal{}, invalid("weight must be positive")
	}
	date, err := s.parseDateOrToday(in.Date)
	if err != nil {
		return Animal{}, err
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	now := s.now()
	if err := s.repo.AddWeight(ctx, Weight{AnimalID: id, Weight: in.Weight, Date: date, UserID: in.UserID, RecordedAt: now}); err != nil {
		return Animal{}, err
	}
	w := in.Weight
	a.CurrentWeight = &w
	a.UpdatedAt = now
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) RegisterMovement(ctx context.Context, id int64, in MovementInput) (Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !hasRef(s.refs.MovementTypes, in.MovementTypeID) {
		return Movement{}, invalid("unknown movementTypeId %d", in.MovementTypeID)
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Movement{}, err
	}
	if !hasRef(ForFarm(s.refs.Paddocks, a.FarmID), in.ToPaddockID) {
		return Movement{}, invalid("unknown toPaddockId %d", in.ToPaddockID)
	}
	date, err := s.parseDateOrToday(in.Date)
	if err != nil {
		return Movement{}, err
	}

	now := s.now()
	m := Movement{
		AnimalID:       id,
		MovementTypeID: in.MovementTypeID,
		ToPaddockID:    in.ToPaddockID,
		Date:           date,
		Observations:   strings.TrimSpace(in.Observations),
		UserID:         in.UserID,
		RecordedAt:     now,
	}
	if err := s.repo.AddMovement(ctx, &m); err != nil {
		return Movement{}, err
	}

	to := in.ToPaddockID
	a.PaddockID = &to
	a.UpdatedAt = now
	if err := s.repo.Update(ctx, a); err != nil {
		return Movement{}, err
	}
	return m, nil
}

func (s *Service) apply(a *Animal, in AnimalInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid("name required")
	}
	sex := strings.ToUpper(strings.TrimSpace(in.Sex))
	if sex != "" && sex != SexMale && sex != SexFemale {
		return invalid("sex must be M or F")
	}
	if err := s.checkRef("categoryId", s.refs.Categories, in.CategoryID); err != nil {
		return err
	}
	if err := s.checkRef("breedId", s.refs.Breeds, in.BreedID); err != nil {
		return err
	}
	if err := s.checkRef("paddockId", ForFarm(s.refs.Paddocks, a.FarmID), in.PaddockID); err != nil {
		return err
	}
	if err := s.checkRef("batchId", ForFarm(s.refs.Batches, a.FarmID), in.BatchID); err != nil {
		return err
	}
	if in.Height != nil && *in.Height <= 0 {
		return invalid("height must be positive")
	}

	var bd *time.Time
	if v := strings.TrimSpace(in.BirthDate); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return invalid("birthDate must be YYYY-MM-DD")
		}
		bd = &t
	}

	a.Name = name
	a.VisualCode = strings.TrimSpace(in.VisualCode)
	a.CategoryID = in.CategoryID
	a.BreedID = in.BreedID
	a.PaddockID = in.PaddockID
	a.BatchID = in.BatchID
	a.Sex = sex
	a.BirthDate = bd
	a.Height = in.Height
	if st := strings.TrimSpace(in.CurrentStatus); st != "" {
		a.CurrentStatus = st
	}
	a.MotherID = in.MotherID
	a.FatherID = in.FatherID
	a.Observations = strings.TrimSpace(in.Observations)
	return nil
}

func (s *Service) checkRef(field string, refs []Ref, id *int64) error {
	if id == nil || hasRef(refs, *id) {
		return nil
	}
	return invalid("unknown %s %d", field, *id)
}

// El código visual es único por granja.
func (s *Service) checkVisualCode(ctx context.Context, a Animal) error {
	if a.VisualCode == "" {
		return nil
	}
	others, err := s.repo.ListByFarm(ctx, a.FarmID)
	if err != nil {
		return err
	}
	for _, o := range others {
		if o.ID != a.ID && strings.EqualFold(o.VisualCode, a.VisualCode) {
			return fmt.Errorf("%w: visualCode %q already used", ErrConflict, a.VisualCode)
		}
	}
	return nil
}

func (s *Service) parseDateOrToday(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		y, m, d := s.now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, invalid("date must be YYYY-MM-DD")
	}
	return t, nil
}
