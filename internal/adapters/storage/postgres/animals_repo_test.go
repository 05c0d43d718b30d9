package postgres

import (
	"context"
	"testing"
	"time"

	"farm-animals/internal/herdstub"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{
	"id", "farm_id", "name", "visual_code",
	"category_id", "breed_id", "paddock_id", "batch_id",
	"sex", "birth_date", "current_weight", "height",
	"current_status", "mother_id", "father_id",
	"observations", "image", "created_at", "updated_at",
}

func newMock(t *testing.T) (*AnimalsRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewAnimalsRepo(db), mock
}

func TestAnimalsRepo_CreateReturnsID(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	paddock := int64(5)

	mock.ExpectQuery("INSERT INTO animals").
		WithArgs(int64(3), "Lucero", "BOV-001", nil, nil, int64(5), nil, "F", nil, nil, nil, "Activo", nil, nil, "", "", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	a := herdstub.Animal{
		FarmID: 3, Name: "Lucero", VisualCode: "BOV-001", PaddockID: &paddock,
		Sex: "F", CurrentStatus: "Activo", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), &a))
	assert.Equal(t, int64(7), a.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalsRepo_GetByIDScansNullables(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	bd := time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .* FROM animals").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			int64(42), int64(3), "Lucero", "BOV-001",
			int64(10), nil, int64(5), nil,
			"F", bd, 420.5, nil,
			"Activo", nil, nil,
			"", "", now, now,
		))

	a, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Lucero", a.Name)
	require.NotNil(t, a.CategoryID)
	assert.Equal(t, int64(10), *a.CategoryID)
	assert.Nil(t, a.BreedID)
	require.NotNil(t, a.CurrentWeight)
	assert.InDelta(t, 420.5, *a.CurrentWeight, 1e-9)
	assert.Nil(t, a.Height)
	require.NotNil(t, a.BirthDate)
	assert.Equal(t, bd, *a.BirthDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalsRepo_GetByIDNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT .* FROM animals").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(cols))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, herdstub.ErrNotFound)
}

func TestAnimalsRepo_ListByFarm(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .* FROM animals\\s+WHERE farm_id = \\$1").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), int64(3), "Lucero", "", nil, nil, nil, nil, "F", nil, nil, nil, "Activo", nil, nil, "", "", now, now).
			AddRow(int64(2), int64(3), "Nube", "", nil, nil, nil, nil, "F", nil, nil, nil, "Activo", nil, nil, "", "", now, now))

	items, err := repo.ListByFarm(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Nube", items[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalsRepo_UpdateAndDeleteMissing(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE animals").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM animals").WithArgs(int64(8)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), herdstub.Animal{ID: 8, Name: "x"})
	assert.ErrorIs(t, err, herdstub.ErrNotFound)

	err = repo.Delete(context.Background(), 8)
	assert.ErrorIs(t, err, herdstub.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalsRepo_AddMovementReturnsID(t *testing.T) {
	repo, mock := newMock(t)
	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO animal_movements").
		WithArgs(int64(42), int64(2), int64(7), date, "", nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	m := herdstub.Movement{AnimalID: 42, MovementTypeID: 2, ToPaddockID: 7, Date: date, RecordedAt: time.Now()}
	require.NoError(t, repo.AddMovement(context.Background(), &m))
	assert.Equal(t, int64(11), m.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
