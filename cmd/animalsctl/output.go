package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"farm-animals/internal/domain/animals"

	"gopkg.in/yaml.v3"
)

// render escribe v según --output. table recibe un tabwriter ya configurado.
func (a *app) render(v any, table func(w io.Writer)) error {
	switch a.output {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		// Se pasa por JSON para respetar los nombres de campo del contrato.
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

func viewsTable(views []animals.View) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintln(w, "ID\tNOMBRE\tIDENTIFICADOR\tTIPO\tRAZA\tGÉNERO\tPESO\tESTADO\tUBICACIÓN")
		for _, v := range views {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%g\t%s\t%s\n",
				v.ID, v.Name, v.Identifier, v.Type, v.Breed, v.Gender, v.Weight, v.Status, v.Location)
		}
	}
}

func viewTable(v animals.View) func(io.Writer) {
	return func(w io.Writer) {
		rows := [][2]string{
			{"ID", v.ID},
			{"Nombre", v.Name},
			{"Identificador", v.Identifier},
			{"Tipo", v.Type},
			{"Raza", v.Breed},
			{"Género", v.Gender},
			{"Nacimiento", v.BirthDate},
			{"Peso", fmt.Sprintf("%g", v.Weight)},
			{"Altura", fmt.Sprintf("%g", v.Height)},
			{"Estado", v.Status},
			{"Ubicación", v.Location},
			{"Madre", v.MotherID},
			{"Padre", v.FatherID},
			{"Notas", v.Notes},
		}
		for _, r := range rows {
			fmt.Fprintf(w, "%s:\t%s\n", r[0], r[1])
		}
	}
}

func formTable(f animals.Form) func(io.Writer) {
	return func(w io.Writer) {
		raw, _ := json.Marshal(f)
		var m map[string]string
		_ = json.Unmarshal(raw, &m)
		for _, field := range animals.Fields() {
			fmt.Fprintf(w, "%s\t%s\n", field, m[string(field)])
		}
	}
}

func catalogTable(c animals.Catalog) func(io.Writer) {
	return func(w io.Writer) {
		groups := []struct {
			name string
			refs []animals.Reference
		}{
			{"raza", c.Breeds},
			{"categoría", c.Categories},
			{"potrero", c.Paddocks},
			{"lote", c.Batches},
			{"movimiento", c.MovementTypes},
		}
		fmt.Fprintln(w, "TIPO\tID\tNOMBRE")
		for _, g := range groups {
			for _, r := range g.refs {
				fmt.Fprintf(w, "%s\t%s\t%s\n", g.name, r.ID, r.Name)
			}
		}
	}
}

type saveOutput struct {
	ID          string                     `json:"id,omitempty"`
	Redirect    string                     `json:"redirect,omitempty"`
	PostActions []animals.PostActionResult `json:"postActions,omitempty"`
	Notices     []animals.Notice           `json:"notices"`
}

func saveTable(o saveOutput) func(io.Writer) {
	return func(w io.Writer) {
		if o.ID != "" {
			fmt.Fprintf(w, "id:\t%s\n", o.ID)
		}
		for _, pa := range o.PostActions {
			line := string(pa.Status)
			if pa.Reason != "" {
				line += " (" + pa.Reason + ")"
			}
			if pa.Err != nil {
				line += ": " + pa.Err.Error()
			}
			fmt.Fprintf(w, "%s:\t%s\n", pa.Action, line)
		}
	}
}
