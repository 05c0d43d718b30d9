package export

import (
	"fmt"
	"io"

	"farm-animals/internal/domain/animals"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Animales"

// Header es el orden de columnas de la planilla exportada.
var Header = []string{
	"ID",
	"Nombre",
	"Identificador",
	"Tipo",
	"Raza",
	"Género",
	"Fecha de nacimiento",
	"Peso (kg)",
	"Altura (m)",
	"Estado",
	"Ubicación",
	"Madre",
	"Padre",
	"Notas",
}

var columnWidths = []float64{8, 20, 16, 12, 16, 10, 18, 10, 10, 14, 20, 10, 10, 30}

// XLSX escribe el listado normalizado como planilla Excel.
type XLSX struct{}

func (XLSX) WriteXLSX(w io.Writer, views []animals.View) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E8F5E9"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for col, h := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header coordinates: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(SheetName, name, name, columnWidths[col]); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	for i, v := range views {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row coordinates: %w", err)
		}
		row := []any{
			v.ID, v.Name, v.Identifier, v.Type, v.Breed, v.Gender, v.BirthDate,
			v.Weight, v.Height, v.Status, v.Location, v.MotherID, v.FatherID, v.Notes,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
