package animals

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Categorías (tipos) de animal que maneja el shell.
const (
	CategoryBovino  = "Bovino"
	CategoryPorcino = "Porcino"
	CategoryOvino   = "Ovino"
	CategoryCaprino = "Caprino"
	CategoryAviar   = "Aviar"
)

// Estados de ciclo de vida.
const (
	StatusActive   = "Activo"
	StatusInactive = "Inactivo"
	StatusSold     = "Vendido"
	StatusDeceased = "Fallecido"
)

// Estados sanitarios que usa el formulario.
const (
	HealthHealthy     = "Saludable"
	HealthTreatment   = "En Tratamiento"
	HealthObservation = "Observación"
)

const (
	GenderMale   = "Macho"
	GenderFemale = "Hembra"

	SexMale   = "M"
	SexFemale = "F"
)

// ID acepta ids numéricos o string (los mocks viejos usan "1", el backend usa 1).
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emite número cuando el id es numérico, así el backend recibe ids numéricos.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int64(); ok {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

func (id ID) Int64() (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(string(id)), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Number acepta 450 o "450".
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("number: %w", err)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Record es el animal tal como llega del servidor. Los nombres de campo varían
// según la fuente (mock legacy vs DTO del backend); ver normalize.go.
type Record struct {
	ID     ID `json:"id,omitempty"`
	FarmID ID `json:"farmId,omitempty"`

	Name       string `json:"name,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	VisualCode string `json:"visualCode,omitempty"`

	Type         string `json:"type,omitempty"`
	CategoryID   ID     `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`

	Breed     string `json:"breed,omitempty"`
	BreedID   ID     `json:"breedId,omitempty"`
	BreedName string `json:"breedName,omitempty"`

	Gender    string `json:"gender,omitempty"`
	Sex       string `json:"sex,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`

	Weight        *Number `json:"weight,omitempty"`
	CurrentWeight *Number `json:"currentWeight,omitempty"`
	Height        *Number `json:"height,omitempty"`

	Location    string `json:"location,omitempty"`
	PaddockID   ID     `json:"paddockId,omitempty"`
	PaddockName string `json:"paddockName,omitempty"`
	BatchID     ID     `json:"batchId,omitempty"`
	BatchName   string `json:"batchName,omitempty"`

	Status        string `json:"status,omitempty"`
	CurrentStatus string `json:"currentStatus,omitempty"`

	MotherID     ID     `json:"motherId,omitempty"`
	FatherID     ID     `json:"fatherId,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Observations string `json:"observations,omitempty"`
	Image        string `json:"image,omitempty"`
}

// WeightObservation es un pesaje. Solo se sigue el más reciente.
type WeightObservation struct {
	AnimalID ID      `json:"animalId"`
	Weight   float64 `json:"weight"`
	Date     string  `json:"date"`
	UserID   ID      `json:"userId,omitempty"`
}

// MovementEvent registra un cambio de potrero.
type MovementEvent struct {
	AnimalID       ID     `json:"animalId"`
	MovementTypeID ID     `json:"movementTypeId"`
	ToPaddockID    ID     `json:"toPaddockId"`
	MovementDate   string `json:"movementDate"`
	Observations   string `json:"observations,omitempty"`
	UserID         ID     `json:"userId,omitempty"`
}

// Reference es una entrada de datos de referencia (raza, categoría, potrero, lote, tipo de movimiento).
type Reference struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type Catalog struct {
	Breeds        []Reference `json:"breeds"`
	Categories    []Reference `json:"categories"`
	Paddocks      []Reference `json:"paddocks"`
	Batches       []Reference `json:"batches"`
	MovementTypes []Reference `json:"movementTypes"`
}
