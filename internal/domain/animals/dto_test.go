package animals

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDraft_ResolvesByIDThenName(t *testing.T) {
	f := NewForm()
	f.Name = "  Lucero "
	f.Breed = "Angus"
	f.BreedID = "1"
	f.Type = CategoryOvino
	f.Location = "Potrero Norte"
	f.BatchID = "9"
	f.MotherID = "12"
	f.FatherID = "abc"
	f.Height = "1,35"
	f.Weight = "450"

	d, err := BuildDraft(f, testCatalog)
	require.NoError(t, err)

	assert.Equal(t, "Lucero", d.DTO.Name)
	require.NotNil(t, d.DTO.BreedID)
	assert.Equal(t, int64(1), *d.DTO.BreedID, "el id explícito gana sobre el nombre")
	require.NotNil(t, d.DTO.CategoryID)
	assert.Equal(t, int64(11), *d.DTO.CategoryID)
	require.NotNil(t, d.PaddockID)
	assert.Equal(t, int64(5), *d.PaddockID)
	require.NotNil(t, d.DTO.BatchID)
	assert.Equal(t, int64(9), *d.DTO.BatchID)
	require.NotNil(t, d.DTO.MotherID)
	assert.Nil(t, d.DTO.FatherID)
	require.NotNil(t, d.DTO.Height)
	assert.InDelta(t, 1.35, *d.DTO.Height, 1e-9)
	require.NotNil(t, d.Weight)
	assert.InDelta(t, 450.0, *d.Weight, 1e-9)
}

func TestBuildDraft_UnresolvedReferencesAreOmitted(t *testing.T) {
	f := NewForm()
	f.Name = "Nube"
	f.Type = "Camélido"
	f.Breed = "Angus "

	d, err := BuildDraft(f, Catalog{Breeds: []Reference{{ID: "x", Name: "Angus"}}})
	require.NoError(t, err)

	assert.Nil(t, d.DTO.CategoryID)
	assert.Nil(t, d.DTO.BreedID, "un id no numérico no se inventa")
	assert.Nil(t, d.PaddockID)

	raw, err := json.Marshal(d.DTO)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "categoryId")
	assert.NotContains(t, string(raw), "breedId")
	assert.NotContains(t, string(raw), "paddockId")
}

func TestBuildDraft_Validation(t *testing.T) {
	cases := map[string]func(*Form){
		"sin nombre":     func(f *Form) { f.Name = " " },
		"peso inválido":  func(f *Form) { f.Weight = "mucho" },
		"peso negativo":  func(f *Form) { f.Weight = "-3" },
		"altura cero":    func(f *Form) { f.Height = "0" },
		"altura NaN":     func(f *Form) { f.Height = "NaN" },
		"peso infinito":  func(f *Form) { f.Weight = "Inf" },
		"peso +Inf":      func(f *Form) { f.Weight = "+Inf" },
		"fecha inválida": func(f *Form) { f.BirthDate = "31/02/2020" },
		"género":         func(f *Form) { f.Gender = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := NewForm()
			f.Name = "Nube"
			mutate(&f)

			_, err := BuildDraft(f, testCatalog)
			assert.ErrorIs(t, err, ErrValidation)
			assert.NotEmpty(t, UserMessage(err))
		})
	}
}

func TestAnimalDTO_JSONShape(t *testing.T) {
	id := int64(42)
	raw, err := json.Marshal(AnimalDTO{ID: &id, Name: "Lucero", Sex: SexFemale, Status: HealthHealthy})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":42,"name":"Lucero","sex":"F","currentStatus":"Saludable"}`, string(raw))
}

func TestResolveMovementType(t *testing.T) {
	types := []Reference{{ID: "1", Name: "Venta"}, {ID: "2", Name: "Traslado de Potrero"}, {ID: "3", Name: "Compra"}}

	got, ok := ResolveMovementType(types, relocationKeywords)
	require.True(t, ok)
	assert.Equal(t, ID("2"), got.ID)

	got, ok = ResolveMovementType([]Reference{{ID: "8", Name: "Venta"}, {ID: "9", Name: "CAMBIO DE LOTE"}}, relocationKeywords)
	require.True(t, ok)
	assert.Equal(t, ID("9"), got.ID)

	got, ok = ResolveMovementType([]Reference{{ID: "4", Name: "Venta"}}, relocationKeywords)
	require.True(t, ok)
	assert.Equal(t, ID("4"), got.ID, "sin match cae en el primero")

	_, ok = ResolveMovementType(nil, relocationKeywords)
	assert.False(t, ok)

	// Alta: ingreso > inicio > traslado, sin importar el orden de la lista.
	entry := []Reference{{ID: "1", Name: "Traslado"}, {ID: "2", Name: "Inicio de ciclo"}, {ID: "3", Name: "Entrada"}}
	got, _ = ResolveMovementType(entry, entryKeywords)
	assert.Equal(t, ID("3"), got.ID)
	got, _ = ResolveMovementType(entry[:2], entryKeywords)
	assert.Equal(t, ID("2"), got.ID)
}
