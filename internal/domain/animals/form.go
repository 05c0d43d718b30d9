package animals

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Field es el nombre canónico (y json) de un campo del formulario.
type Field string

const (
	FieldName       Field = "name"
	FieldIdentifier Field = "identifier"
	FieldType       Field = "type"
	FieldCategoryID Field = "categoryId"
	FieldBreed      Field = "breed"
	FieldBreedID    Field = "breedId"
	FieldGender     Field = "gender"
	FieldBirthDate  Field = "birthDate"
	FieldWeight     Field = "weight"
	FieldHeight     Field = "height"
	FieldLocation   Field = "location"
	FieldPaddockID  Field = "paddockId"
	FieldBatchID    Field = "batchId"
	FieldMotherID   Field = "motherId"
	FieldFatherID   Field = "fatherId"
	FieldStatus     Field = "status"
	FieldNotes      Field = "notes"
)

var formFields = []Field{
	FieldName, FieldIdentifier, FieldType, FieldCategoryID, FieldBreed, FieldBreedID,
	FieldGender, FieldBirthDate, FieldWeight, FieldHeight, FieldLocation, FieldPaddockID,
	FieldBatchID, FieldMotherID, FieldFatherID, FieldStatus, FieldNotes,
}

// Fields lista los campos editables en orden de formulario.
func Fields() []Field { return append([]Field(nil), formFields...) }

// Defaults para que ningún control quede sin valor.
const (
	DefaultType   = CategoryBovino
	DefaultStatus = HealthHealthy
	DefaultGender = GenderMale
)

// Form es la forma plana y editable. Todo es texto, como en los inputs del shell.
type Form struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
	CategoryID string `json:"categoryId"`
	Breed      string `json:"breed"`
	BreedID    string `json:"breedId"`
	Gender     string `json:"gender"`
	BirthDate  string `json:"birthDate"`
	Weight     string `json:"weight"`
	Height     string `json:"height"`
	Location   string `json:"location"`
	PaddockID  string `json:"paddockId"`
	BatchID    string `json:"batchId"`
	MotherID   string `json:"motherId"`
	FatherID   string `json:"fatherId"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

// NewForm devuelve un formulario vacío con los defaults.
func NewForm() Form {
	return Form{Type: DefaultType, Gender: DefaultGender, Status: DefaultStatus}
}

func (f *Form) ptr(field Field) *string {
	switch field {
	case FieldName:
		return &f.Name
	case FieldIdentifier:
		return &f.Identifier
	case FieldType:
		return &f.Type
	case FieldCategoryID:
		return &f.CategoryID
	case FieldBreed:
		return &f.Breed
	case FieldBreedID:
		return &f.BreedID
	case FieldGender:
		return &f.Gender
	case FieldBirthDate:
		return &f.BirthDate
	case FieldWeight:
		return &f.Weight
	case FieldHeight:
		return &f.Height
	case FieldLocation:
		return &f.Location
	case FieldPaddockID:
		return &f.PaddockID
	case FieldBatchID:
		return &f.BatchID
	case FieldMotherID:
		return &f.MotherID
	case FieldFatherID:
		return &f.FatherID
	case FieldStatus:
		return &f.Status
	case FieldNotes:
		return &f.Notes
	default:
		return nil
	}
}

// Get devuelve el valor de un campo ("" si el campo no existe).
func (f Form) Get(field Field) string {
	if p := f.ptr(field); p != nil {
		return *p
	}
	return ""
}

// UnmarshalJSON acepta números, strings y null en cualquier campo (el shell manda weight: 450).
// Campos desconocidos se ignoran.
func (f *Form) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		p := f.ptr(Field(k))
		if p == nil {
			continue
		}
		s, err := scalarText(v)
		if err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
		*p = s
	}
	return nil
}

func scalarText(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return "", nil
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("expected scalar, got %s", string(v[:1]))
	default:
		return string(v), nil
	}
}

// FromRecord mapea el registro del servidor al formulario aplicando la tabla de precedencia.
func FromRecord(r Record) Form {
	f := Form{
		Name:       strings.TrimSpace(r.Name),
		Identifier: identifierOf(r),
		Type:       orDefault(typeOf(r), DefaultType),
		CategoryID: r.CategoryID.String(),
		Breed:      breedOf(r),
		BreedID:    r.BreedID.String(),
		Gender:     orDefault(genderOf(r), DefaultGender),
		BirthDate:  DateOnly(r.BirthDate),
		Location:   locationOf(r),
		PaddockID:  r.PaddockID.String(),
		BatchID:    r.BatchID.String(),
		MotherID:   r.MotherID.String(),
		FatherID:   r.FatherID.String(),
		Status:     orDefault(statusOf(r), DefaultStatus),
		Notes:      notesOf(r),
	}
	if w := weightOf(r); w != nil {
		f.Weight = formatNumber(*w)
	}
	if r.Height != nil && *r.Height != 0 {
		f.Height = formatNumber(float64(*r.Height))
	}
	return f
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SexCode traduce el género del formulario al código del backend.
// Cualquier valor que no sea Macho/Hembra (o M/F) es un error de validación.
func SexCode(gender string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "macho", "m":
		return SexMale, nil
	case "hembra", "f":
		return SexFemale, nil
	default:
		return "", fmt.Errorf("%w: unsupported gender %q", ErrValidation, gender)
	}
}

// FormState mantiene el formulario editable y qué campos tocó el usuario,
// para re-hidratar sin pisar ediciones cuando el registro llega tarde.
type FormState struct {
	form     Form
	recordID ID
	hydrated bool
	touched  map[Field]bool
}

func NewFormState() *FormState {
	return &FormState{form: NewForm(), touched: map[Field]bool{}}
}

// Hydrate aplica un registro entrante. Mismo id => merge (lo tocado se conserva);
// id distinto (o primer registro) => reemplazo total.
func (s *FormState) Hydrate(r *Record) {
	if r == nil {
		return
	}
	incoming := FromRecord(*r)

	if !s.hydrated || r.ID != s.recordID {
		s.form = incoming
		s.recordID = r.ID
		s.hydrated = true
		s.touched = map[Field]bool{}
		return
	}

	for _, field := range formFields {
		if s.touched[field] {
			continue
		}
		*s.form.ptr(field) = incoming.Get(field)
	}
}

// Set registra una edición del usuario.
func (s *FormState) Set(field Field, value string) error {
	p := s.form.ptr(field)
	if p == nil {
		return fmt.Errorf("%w: unknown field %q", ErrValidation, field)
	}
	*p = value
	s.touched[field] = true
	return nil
}

func (s *FormState) Form() Form          { return s.form }
func (s *FormState) RecordID() ID        { return s.recordID }
func (s *FormState) Touched(f Field) bool { return s.touched[f] }
