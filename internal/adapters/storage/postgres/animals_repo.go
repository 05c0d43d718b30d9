package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"farm-animals/internal/herdstub"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, farm_id,
	name, visual_code,
	category_id, breed_id, paddock_id, batch_id,
	sex, birth_date,
	current_weight, height,
	current_status, mother_id, father_id,
	observations, image,
	created_at, updated_at`

func (r *AnimalsRepo) Create(ctx context.Context, a *herdstub.Animal) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO animals (
			farm_id,
			name, visual_code,
			category_id, breed_id, paddock_id, batch_id,
			sex, birth_date,
			current_weight, height,
			current_status, mother_id, father_id,
			observations, image,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING id
	`,
		a.FarmID,
		a.Name,
		a.VisualCode,
		nullInt(a.CategoryID),
		nullInt(a.BreedID),
		nullInt(a.PaddockID),
		nullInt(a.BatchID),
		a.Sex,
		nullDate(a.BirthDate),
		nullFloat(a.CurrentWeight),
		nullFloat(a.Height),
		a.CurrentStatus,
		nullInt(a.MotherID),
		nullInt(a.FatherID),
		a.Observations,
		a.Image,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return row.Scan(&a.ID)
}

func (r *AnimalsRepo) Update(ctx context.Context, a herdstub.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			visual_code = $3,
			category_id = $4,
			breed_id = $5,
			paddock_id = $6,
			batch_id = $7,
			sex = $8,
			birth_date = $9,
			current_weight = $10,
			height = $11,
			current_status = $12,
			mother_id = $13,
			father_id = $14,
			observations = $15,
			image = $16,
			updated_at = $17
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.VisualCode,
		nullInt(a.CategoryID),
		nullInt(a.BreedID),
		nullInt(a.PaddockID),
		nullInt(a.BatchID),
		a.Sex,
		nullDate(a.BirthDate),
		nullFloat(a.CurrentWeight),
		nullFloat(a.Height),
		a.CurrentStatus,
		nullInt(a.MotherID),
		nullInt(a.FatherID),
		a.Observations,
		a.Image,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return herdstub.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return herdstub.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int64) (herdstub.Animal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+animalColumns+`
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return herdstub.Animal{}, herdstub.ErrNotFound
	}
	return a, err
}

func (r *AnimalsRepo) ListByFarm(ctx context.Context, farmID int64) ([]herdstub.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+animalColumns+`
		FROM animals
		WHERE farm_id = $1
		ORDER BY id ASC
	`, farmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]herdstub.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *AnimalsRepo) AddWeight(ctx context.Context, w herdstub.Weight) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animal_weights (animal_id, weight, date, user_id, recorded_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		w.AnimalID,
		w.Weight,
		w.Date,
		nullInt(w.UserID),
		w.RecordedAt,
	)
	return err
}

func (r *AnimalsRepo) AddMovement(ctx context.Context, m *herdstub.Movement) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO animal_movements (
			animal_id, movement_type_id, to_paddock_id,
			date, observations, user_id, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`,
		m.AnimalID,
		m.MovementTypeID,
		m.ToPaddockID,
		m.Date,
		m.Observations,
		nullInt(m.UserID),
		m.RecordedAt,
	)
	return row.Scan(&m.ID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s scanner) (herdstub.Animal, error) {
	var a herdstub.Animal
	var (
		category, breed, paddock, batch, mother, father sql.NullInt64
		weight, height                                  sql.NullFloat64
		bd                                              sql.NullTime
	)
	if err := s.Scan(
		&a.ID,
		&a.FarmID,
		&a.Name,
		&a.VisualCode,
		&category,
		&breed,
		&paddock,
		&batch,
		&a.Sex,
		&bd,
		&weight,
		&height,
		&a.CurrentStatus,
		&mother,
		&father,
		&a.Observations,
		&a.Image,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return herdstub.Animal{}, err
	}

	a.CategoryID = intPtr(category)
	a.BreedID = intPtr(breed)
	a.PaddockID = intPtr(paddock)
	a.BatchID = intPtr(batch)
	a.MotherID = intPtr(mother)
	a.FatherID = intPtr(father)
	a.CurrentWeight = floatPtr(weight)
	a.Height = floatPtr(height)
	if bd.Valid {
		// birth_date es DATE; pgx lo entrega como medianoche UTC.
		t := bd.Time
		a.BirthDate = &t
	}
	return a, nil
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
