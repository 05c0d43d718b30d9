package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"farm-animals/internal/adapters/export"
	"farm-animals/internal/domain/animals"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newListCmd(a *app) *cobra.Command {
	var f animals.Filter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the animals of the selected farm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := a.listViews(f)
			if err != nil {
				return err
			}
			return a.render(views, viewsTable(views))
		},
	}
	cmd.Flags().StringVar(&f.Search, "search", "", "filter by name or identifier")
	cmd.Flags().StringVar(&f.Type, "type", animals.FilterAll, "filter by category")
	return cmd
}

// listViews carga, filtra y normaliza. Un listado vacío (404) no es error.
func (a *app) listViews(f animals.Filter) ([]animals.View, error) {
	r := animals.NewListReader(a.deps)
	defer r.Close()

	st := r.Load(a.ctx)
	if st.Err != nil && !errors.Is(st.Err, animals.ErrNotFound) {
		return nil, st.Err
	}
	recs := animals.FilterRecords(st.Records, f)
	views := make([]animals.View, 0, len(recs))
	for _, rec := range recs {
		views = append(views, animals.Normalize(rec))
	}
	return views, nil
}

func (a *app) loadRecord(id string) (*animals.Record, error) {
	r := animals.NewDetailReader(a.deps)
	defer r.Close()

	st := r.Load(a.ctx, id)
	if st.Err != nil {
		return nil, st.Err
	}
	return st.Record, nil
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one animal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.loadRecord(args[0])
			if err != nil {
				return err
			}
			v := animals.Normalize(*rec)
			return a.render(v, viewTable(v))
		},
	}
}

func newFormCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "form <id>",
		Short: "Show the edit form hydrated from an animal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.loadRecord(args[0])
			if err != nil {
				return err
			}
			f := animals.FromRecord(*rec)
			return a.render(f, formTable(f))
		},
	}
}

func newSaveCmd(a *app) *cobra.Command {
	var (
		sets []string
		file string
	)
	cmd := &cobra.Command{
		Use:   "save [id]",
		Short: "Create an animal, or update it when an id is given",
		Long: `save builds the form from the current record (when updating), then the
optional --file (json or yaml), then each --set field=value, and saves it.
Weight and paddock changes are synced after the primary write.`,
		Example: `  animalsctl save --farm 3 --set name=Lucero --set gender=Hembra --set location="Potrero Norte"
  animalsctl save 42 --set weight=480`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := animals.NewFormState()
			req := animals.SaveRequest{}
			if len(args) == 1 {
				rec, err := a.loadRecord(args[0])
				if err != nil {
					return err
				}
				state.Hydrate(rec)
				req.ID, req.Known = args[0], rec
			}

			if file != "" {
				fields, err := readForm(file)
				if err != nil {
					return err
				}
				for k, v := range fields {
					if err := state.Set(animals.Field(k), v); err != nil {
						return err
					}
				}
			}
			for _, kv := range sets {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--set expects field=value, got %q", kv)
				}
				if err := state.Set(animals.Field(strings.TrimSpace(k)), v); err != nil {
					return err
				}
			}

			req.Form = state.Form()
			res, err := animals.NewOrchestrator(a.deps).Save(a.ctx, req)
			if err != nil {
				return err
			}
			out := saveOutput{ID: res.ID, Redirect: res.Redirect, PostActions: res.PostActions, Notices: res.Notices}
			return a.render(out, saveTable(out))
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "form file (.json, .yaml)")
	return cmd
}

// readForm lee un archivo json o yaml (json es yaml válido) como campo => texto.
func readForm(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		switch v := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = v
		case int, int64, float64, bool:
			out[k] = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("%s: field %q must be a scalar", path, k)
		}
	}
	return out, nil
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an animal (asks for confirmation unless --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := animals.NewOrchestrator(a.deps).Delete(a.ctx, args[0])
			if errors.Is(err, animals.ErrDeclined) {
				return nil
			}
			return err
		},
	}
}

func newWeightCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weight <id> <kg>",
		Short: "Record a weighing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kg, err := strconv.ParseFloat(strings.ReplaceAll(args[1], ",", "."), 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q", args[1])
			}
			_, err = animals.NewOrchestrator(a.deps).UpdateWeight(a.ctx, args[0], kg)
			return err
		},
	}
}

func newMoveCmd(a *app) *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "move <id> <paddock-id>",
		Short: "Move an animal to another paddock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := animals.NewOrchestrator(a.deps).Move(a.ctx, args[0], args[1], note)
			return err
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "observations")
	return cmd
}

func newStatusCmd(a *app, use, short string, mark func(*animals.Orchestrator, context.Context, string) (animals.Outcome, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := mark(animals.NewOrchestrator(a.deps), a.ctx, args[0])
			return err
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		f    animals.Filter
		file string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the (filtered) list to an xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := a.listViews(f)
			if err != nil {
				return err
			}
			out, err := os.Create(file)
			if err != nil {
				return err
			}
			if err := (export.XLSX{}).WriteXLSX(out, views); err != nil {
				_ = out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			fmt.Fprintf(a.errOut, "%d animales exportados a %s\n", len(views), file)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Search, "search", "", "filter by name or identifier")
	cmd.Flags().StringVar(&f.Type, "type", animals.FilterAll, "filter by category")
	cmd.Flags().StringVar(&file, "file", "animales.xlsx", "destination file")
	return cmd
}

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show reference data (breeds, categories, paddocks, batches, movement types)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.deps.Catalog.Catalog(a.ctx, a.farm)
			if err != nil {
				return err
			}
			return a.render(c, catalogTable(c))
		},
	}
}
