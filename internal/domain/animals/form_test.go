package animals

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormRoundTripKeepsSexCode(t *testing.T) {
	for _, sex := range []string{SexMale, SexFemale} {
		rec := Record{ID: "1", Name: "Lucero", Sex: sex}

		draft, err := BuildDraft(FromRecord(rec), Catalog{})
		require.NoError(t, err)
		assert.Equal(t, sex, draft.DTO.Sex)
	}
}

func TestFromRecord_Precedence(t *testing.T) {
	w := Number(300)
	cw := Number(310)

	cases := []struct {
		name string
		rec  Record
		want Form
	}{
		{
			name: "legacy gana",
			rec: Record{
				Name: "Lucero", Identifier: "L-1", VisualCode: "V-1",
				Type: CategoryPorcino, CategoryName: CategoryBovino,
				Breed: "Criolla", BreedName: "Angus",
				Gender: GenderFemale, Sex: SexMale,
				Status: HealthTreatment, CurrentStatus: HealthHealthy,
				Location: "Corral", PaddockName: "Potrero",
				Weight: &w, CurrentWeight: &cw,
				Notes: "nota", Observations: "obs",
			},
			want: Form{
				Name: "Lucero", Identifier: "L-1", Type: CategoryPorcino, Breed: "Criolla",
				Gender: GenderFemale, Status: HealthTreatment, Location: "Corral", Weight: "300",
				Notes: "nota",
			},
		},
		{
			name: "backend como respaldo",
			rec: Record{
				Name: "Tornado", VisualCode: "V-2", CategoryName: CategoryBovino, CategoryID: "10",
				BreedName: "Angus", BreedID: "2", Sex: SexMale, CurrentStatus: HealthObservation,
				PaddockName: "Potrero Sur", PaddockID: "7", CurrentWeight: &cw, Observations: "obs",
				BirthDate: "2020-08-02T23:30:00-03:00",
			},
			want: Form{
				Name: "Tornado", Identifier: "V-2", Type: CategoryBovino, CategoryID: "10",
				Breed: "Angus", BreedID: "2", Gender: GenderMale, Status: HealthObservation,
				Location: "Potrero Sur", PaddockID: "7", Weight: "310", Notes: "obs",
				BirthDate: "2020-08-03",
			},
		},
		{
			name: "defaults",
			rec:  Record{Name: "Sin datos"},
			want: Form{Name: "Sin datos", Type: DefaultType, Gender: DefaultGender, Status: DefaultStatus},
		},
		{
			name: "sexo desconocido se muestra tal cual",
			rec:  Record{Sex: "X"},
			want: Form{Type: DefaultType, Gender: "X", Status: DefaultStatus},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, FromRecord(tc.rec)); diff != "" {
				t.Fatalf("FromRecord mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSexCode(t *testing.T) {
	for in, want := range map[string]string{"Macho": "M", "hembra": "F", " m ": "M", "F": "F"} {
		got, err := SexCode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "Otro", "X"} {
		_, err := SexCode(in)
		assert.ErrorIs(t, err, ErrValidation, in)
	}
}

func TestDateOnly(t *testing.T) {
	cases := map[string]string{
		"2021-03-14T00:00:00Z":      "2021-03-14",
		"2021-03-14T00:00:00.123Z":  "2021-03-14",
		"2021-03-14T22:00:00-05:00": "2021-03-15",
		"2021-03-14T08:15":          "2021-03-14",
		"2021-03-14":                "2021-03-14",
		"14/03/2021":                "",
		"":                          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, DateOnly(in), in)
	}
}

func TestFormState_FirstHydrateReplaces(t *testing.T) {
	s := NewFormState()
	assert.Equal(t, NewForm(), s.Form())

	s.Hydrate(&Record{ID: "1", Name: "Lucero", Sex: SexFemale})

	assert.Equal(t, "Lucero", s.Form().Name)
	assert.Equal(t, GenderFemale, s.Form().Gender)
	assert.Equal(t, ID("1"), s.RecordID())
}

func TestFormState_SameRecordMergesUntouched(t *testing.T) {
	s := NewFormState()
	s.Hydrate(&Record{ID: "1", Name: "Lucero", VisualCode: "BOV-1", BirthDate: "2021-03-14"})

	require.NoError(t, s.Set(FieldName, "Lucerito"))
	assert.True(t, s.Touched(FieldName))

	// Llega la versión completa del mismo registro.
	s.Hydrate(&Record{ID: "1", Name: "Lucero", VisualCode: "BOV-001", BreedName: "Brahman"})

	f := s.Form()
	assert.Equal(t, "Lucerito", f.Name)
	assert.Equal(t, "BOV-001", f.Identifier)
	assert.Equal(t, "Brahman", f.Breed)
	// Los campos sin tocar siguen al servidor, también cuando vienen vacíos.
	assert.Empty(t, f.BirthDate)
}

func TestFormState_NewRecordReplacesEverything(t *testing.T) {
	s := NewFormState()
	s.Hydrate(&Record{ID: "1", Name: "Lucero"})
	require.NoError(t, s.Set(FieldNotes, "borrador"))

	s.Hydrate(&Record{ID: "2", Name: "Tornado"})

	assert.Equal(t, "Tornado", s.Form().Name)
	assert.Empty(t, s.Form().Notes)
	assert.False(t, s.Touched(FieldNotes))
}

func TestFormState_NilAndUnknownField(t *testing.T) {
	s := NewFormState()
	s.Hydrate(nil)
	assert.Equal(t, NewForm(), s.Form())

	assert.ErrorIs(t, s.Set(Field("color"), "rojo"), ErrValidation)
}

func TestForm_UnmarshalAcceptsNumbers(t *testing.T) {
	f := NewForm()
	err := json.Unmarshal([]byte(`{"name":"Nube","weight":58.5,"paddockId":7,"breedId":null,"extra":true}`), &f)
	require.NoError(t, err)

	assert.Equal(t, "Nube", f.Name)
	assert.Equal(t, "58.5", f.Weight)
	assert.Equal(t, "7", f.PaddockID)
	assert.Empty(t, f.BreedID)
	assert.Equal(t, DefaultType, f.Type)

	assert.Error(t, json.Unmarshal([]byte(`{"name":{"a":1}}`), &f))
}
