package animals

import (
	"math"
	"strconv"
	"strings"
)

// AnimalDTO es el contrato de escritura del backend. nil = campo omitido.
type AnimalDTO struct {
	ID           *int64   `json:"id,omitempty"`
	FarmID       *int64   `json:"farmId,omitempty"`
	Name         string   `json:"name"`
	VisualCode   string   `json:"visualCode,omitempty"`
	CategoryID   *int64   `json:"categoryId,omitempty"`
	BreedID      *int64   `json:"breedId,omitempty"`
	PaddockID    *int64   `json:"paddockId,omitempty"`
	BatchID      *int64   `json:"batchId,omitempty"`
	Sex          string   `json:"sex,omitempty"`
	BirthDate    string   `json:"birthDate,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	Status       string   `json:"currentStatus,omitempty"`
	MotherID     *int64   `json:"motherId,omitempty"`
	FatherID     *int64   `json:"fatherId,omitempty"`
	Observations string   `json:"observations,omitempty"`
}

// Draft es el resultado de traducir el formulario: el DTO más los datos
// que viajan por sub-recursos (peso, potrero destino).
type Draft struct {
	DTO       AnimalDTO
	Weight    *float64
	PaddockID *int64
}

// BuildDraft traduce el formulario plano al DTO. Los ids de referencia se toman
// del campo id o, si falta, por nombre exacto contra el catálogo; si no hay match
// el campo queda omitido.
func BuildDraft(f Form, cat Catalog) (Draft, error) {
	const op = "build_dto"

	name := strings.TrimSpace(f.Name)
	if name == "" {
		return Draft{}, validationError(op, "", "El nombre es requerido.")
	}

	sex, err := SexCode(f.Gender)
	if err != nil {
		return Draft{}, validationError(op, "", "El sexo debe ser Macho o Hembra.")
	}

	dto := AnimalDTO{
		Name:         name,
		VisualCode:   strings.TrimSpace(f.Identifier),
		CategoryID:   resolveRef(f.CategoryID, f.Type, cat.Categories),
		BreedID:      resolveRef(f.BreedID, f.Breed, cat.Breeds),
		BatchID:      resolveRef(f.BatchID, "", cat.Batches),
		Sex:          sex,
		Status:       strings.TrimSpace(f.Status),
		MotherID:     parseID(f.MotherID),
		FatherID:     parseID(f.FatherID),
		Observations: strings.TrimSpace(f.Notes),
	}

	if bd := strings.TrimSpace(f.BirthDate); bd != "" {
		dto.BirthDate = DateOnly(bd)
		if dto.BirthDate == "" {
			return Draft{}, validationError(op, "", "La fecha de nacimiento no es válida.")
		}
	}

	height, err := parsePositive(f.Height)
	if err != nil {
		return Draft{}, validationError(op, "", "La altura debe ser un número positivo.")
	}
	dto.Height = height

	weight, err := parsePositive(f.Weight)
	if err != nil {
		return Draft{}, validationError(op, "", "El peso debe ser un número positivo.")
	}

	return Draft{
		DTO:       dto,
		Weight:    weight,
		PaddockID: resolveRef(f.PaddockID, f.Location, cat.Paddocks),
	}, nil
}

func resolveRef(idText, name string, refs []Reference) *int64 {
	if id := parseID(idText); id != nil {
		return id
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for _, ref := range refs {
		if strings.TrimSpace(ref.Name) != name {
			continue
		}
		if n, ok := ref.ID.Int64(); ok {
			return &n
		}
	}
	return nil
}

func parseID(s string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// parsePositive: "" => nil; no numérico, NaN, infinito o <= 0 => error.
func parsePositive(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil, err
	}
	if !validPositive(v) {
		return nil, strconv.ErrRange
	}
	return &v, nil
}

func validPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func idFromInt(p *int64) ID {
	if p == nil {
		return ""
	}
	return ID(strconv.FormatInt(*p, 10))
}
