package animals

import (
	"strings"
	"time"
)

// Tabla de precedencia de nombres (legacy primero, luego backend, luego default):
//
//	identifier  identifier  -> visualCode
//	breed       breed       -> breedName
//	type        type        -> categoryName
//	gender      gender      -> sex (M/F)
//	status      status      -> currentStatus
//	location    location    -> paddockName
//	weight      weight      -> currentWeight
//	notes       notes       -> observations
//
// Los ids (breedId, categoryId, paddockId, batchId) solo existen en el DTO del backend.

const (
	displayNoName     = "Sin Nombre"
	displayNA         = "N/A"
	displayUnknown    = "Desconocido"
	displayUnknownF   = "Desconocida"
	displayUnassigned = "Sin asignar"
)

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func identifierOf(r Record) string { return firstNonEmpty(r.Identifier, r.VisualCode) }
func breedOf(r Record) string      { return firstNonEmpty(r.Breed, r.BreedName) }
func typeOf(r Record) string       { return firstNonEmpty(r.Type, r.CategoryName) }
func statusOf(r Record) string     { return firstNonEmpty(r.Status, r.CurrentStatus) }
func locationOf(r Record) string   { return firstNonEmpty(r.Location, r.PaddockName) }
func notesOf(r Record) string      { return firstNonEmpty(r.Notes, r.Observations) }
func genderOf(r Record) string     { return firstNonEmpty(r.Gender, genderFromSex(r.Sex)) }

func weightOf(r Record) *float64 {
	for _, n := range []*Number{r.Weight, r.CurrentWeight} {
		if n != nil && *n != 0 {
			f := float64(*n)
			return &f
		}
	}
	return nil
}

// genderFromSex traduce el código del backend. Un valor desconocido se muestra tal cual.
func genderFromSex(sex string) string {
	switch strings.ToUpper(strings.TrimSpace(sex)) {
	case SexMale:
		return GenderMale
	case SexFemale:
		return GenderFemale
	default:
		return strings.TrimSpace(sex)
	}
}

// View es el registro ya normalizado para mostrar (detalle, listado, export).
type View struct {
	ID         string  `json:"id"`
	FarmID     string  `json:"farmId,omitempty"`
	Name       string  `json:"name"`
	Identifier string  `json:"identifier"`
	Type       string  `json:"type"`
	Breed      string  `json:"breed"`
	Gender     string  `json:"gender"`
	BirthDate  string  `json:"birthDate"`
	Weight     float64 `json:"weight"`
	Height     float64 `json:"height"`
	Status     string  `json:"status"`
	Location   string  `json:"location"`
	PaddockID  string  `json:"paddockId,omitempty"`
	BatchID    string  `json:"batchId,omitempty"`
	MotherID   string  `json:"motherId"`
	FatherID   string  `json:"fatherId"`
	Notes      string  `json:"notes,omitempty"`
	Image      string  `json:"image,omitempty"`
}

func Normalize(r Record) View {
	v := View{
		ID:         r.ID.String(),
		FarmID:     r.FarmID.String(),
		Name:       orDefault(strings.TrimSpace(r.Name), displayNoName),
		Identifier: orDefault(identifierOf(r), displayNA),
		Type:       orDefault(typeOf(r), displayUnknown),
		Breed:      orDefault(breedOf(r), displayUnknownF),
		Gender:     orDefault(genderOf(r), displayNA),
		BirthDate:  orDefault(DateOnly(r.BirthDate), displayNA),
		Status:     orDefault(statusOf(r), displayUnknown),
		Location:   orDefault(locationOf(r), displayUnassigned),
		PaddockID:  r.PaddockID.String(),
		BatchID:    r.BatchID.String(),
		MotherID:   orDefault(r.MotherID.String(), displayNA),
		FatherID:   orDefault(r.FatherID.String(), displayNA),
		Notes:      notesOf(r),
		Image:      strings.TrimSpace(r.Image),
	}
	if w := weightOf(r); w != nil {
		v.Weight = *w
	}
	if r.Height != nil {
		v.Height = float64(*r.Height)
	}
	return v
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// DateOnly trunca un datetime ISO a YYYY-MM-DD (UTC). Devuelve "" si no se puede interpretar.
func DateOnly(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(dateLayout)
		}
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.Format(dateLayout)
	}
	return ""
}

const dateLayout = "2006-01-02"
