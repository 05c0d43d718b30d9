package export

import (
	"bytes"
	"testing"

	"farm-animals/internal/domain/animals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSX_WritesHeaderAndRows(t *testing.T) {
	views := []animals.View{
		animals.Normalize(animals.Record{ID: "1", Name: "Lucero", VisualCode: "BOV-001", CategoryName: animals.CategoryBovino, Sex: animals.SexFemale}),
		animals.Normalize(animals.Record{ID: "2", Name: "Nube"}),
	}

	var buf bytes.Buffer
	require.NoError(t, XLSX{}.WriteXLSX(&buf, views))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "Lucero", rows[1][1])
	assert.Equal(t, "BOV-001", rows[1][2])
	assert.Equal(t, animals.GenderFemale, rows[1][5])
	assert.Equal(t, "Nube", rows[2][1])
}

func TestXLSX_EmptyListKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX{}.WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
