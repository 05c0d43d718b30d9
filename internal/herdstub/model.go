package herdstub

import "time"

// Sexo tal como lo persiste el backend.
const (
	SexMale   = "M"
	SexFemale = "F"
)

const DefaultStatus = "Activo"

// Animal es el registro que persiste el stub del backend de rodeo.
type Animal struct {
	ID     int64
	FarmID int64

	Name       string
	VisualCode string

	CategoryID *int64
	BreedID    *int64
	PaddockID  *int64
	BatchID    *int64

	Sex       string
	BirthDate *time.Time

	CurrentWeight *float64
	Height        *float64

	CurrentStatus string
	MotherID      *int64
	FatherID      *int64
	Observations  string
	Image         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Weight es un pesaje. El último actualiza CurrentWeight del animal.
type Weight struct {
	AnimalID   int64
	Weight     float64
	Date       time.Time
	UserID     *int64
	RecordedAt time.Time
}

// Movement es un cambio de potrero.
type Movement struct {
	ID             int64
	AnimalID       int64
	MovementTypeID int64
	ToPaddockID    int64
	Date           time.Time
	Observations   string
	UserID         *int64
	RecordedAt     time.Time
}

// Ref es una entrada de datos de referencia. FarmID = 0 significa global.
type Ref struct {
	ID     int64
	FarmID int64
	Name   string
}
