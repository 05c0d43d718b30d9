package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"farm-animals/internal/adapters/catalog"
	"farm-animals/internal/adapters/herdapi"
	"farm-animals/internal/adapters/notify"
	"farm-animals/internal/domain/animals"
	"farm-animals/internal/platform/config"
	"farm-animals/internal/platform/httpclient"
	"farm-animals/internal/platform/logger"
	"farm-animals/internal/ports/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app es el estado compartido por los subcomandos; se arma en PersistentPreRunE.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	farm   string
	user   string
	token  string
	output string
	yes    bool

	log   *zap.Logger
	deps  animals.Deps
	ctx   context.Context
	close func()
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut, close: func() {}}

	root := &cobra.Command{
		Use:   "animalsctl",
		Short: "Manage farm animals against the herd API",
		Long: `animalsctl drives the same list/detail/save flows as the web shell.

The session (farm, user, token) comes from flags or ANIMALS_* env vars;
reference data (breeds, categories, paddocks) is resolved by name.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	config.Flags(pf)
	pf.StringVar(&a.farm, "farm", "", "farm id (session)")
	pf.StringVar(&a.user, "user", "", "user id (session)")
	pf.StringVar(&a.token, "token", "", "bearer token for the herd API")
	pf.StringVarP(&a.output, "output", "o", "table", "output format: table|json|yaml")
	pf.BoolVarP(&a.yes, "yes", "y", false, "answer yes to confirmations")

	root.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newFormCmd(a),
		newSaveCmd(a),
		newDeleteCmd(a),
		newWeightCmd(a),
		newMoveCmd(a),
		newStatusCmd(a, "sold", "Mark an animal as sold", (*animals.Orchestrator).MarkAsSold),
		newStatusCmd(a, "dead", "Mark an animal as deceased", (*animals.Orchestrator).MarkAsDead),
		newExportCmd(a),
		newCatalogCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	switch a.output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown output %q (table|json|yaml)", a.output)
	}

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	// Los avisos ya salen por stderr; el log queda en warn salvo pedido explícito.
	level := "warn"
	if cmd.Flags().Changed("log.level") {
		level = cfg.Log.Level
	}
	a.log, err = logger.New(logger.Options{
		Level:  logger.ParseLevel(level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "animalsctl",
		Output: "stderr",
	})
	if err != nil {
		return err
	}

	client, err := herdapi.NewClient(httpclient.Config{
		BaseURL:    cfg.Herd.BaseURL,
		Timeout:    cfg.Herd.Timeout,
		RetryCount: cfg.Herd.RetryCount,
	}, a.log)
	if err != nil {
		return err
	}

	sess := session.Session{
		FarmID: strings.TrimSpace(a.farm),
		UserID: strings.TrimSpace(a.user),
		Token:  strings.TrimSpace(a.token),
	}
	a.ctx = session.NewContext(cmd.Context(), sess)

	var confirmer animals.Confirmer = notify.NewPrompt(a.in, a.errOut)
	if a.yes {
		confirmer = notify.Static(true)
	}
	printer := notify.NewWriter(a.errOut)

	store, err := catalog.NewMemoryStore()
	if err != nil {
		return err
	}

	a.deps = animals.Deps{
		Backend:   client,
		Catalog:   catalog.NewLoader(client, store, cfg.Cache.TTL, a.log),
		Session:   session.Static(sess),
		Notifier:  notify.Multi{printer, notify.NewLog(a.log)},
		Navigator: printer,
		Confirmer: confirmer,
		Logger:    a.log,
		// En el CLI no hay pantalla que esperar: se navega en el acto.
		Schedule:      func(_ time.Duration, f func()) { f() },
		NavigateDelay: cfg.UI.NavigateDelay,
	}
	a.close = func() {
		store.Close()
		_ = a.log.Sync()
	}
	return nil
}
