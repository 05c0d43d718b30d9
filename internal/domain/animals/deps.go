package animals

import (
	"time"

	"farm-animals/internal/ports/session"

	"go.uber.org/zap"
)

// Deps agrupa los colaboradores de readers y orquestador. Solo Backend es obligatorio;
// el resto cae en implementaciones no-op.
type Deps struct {
	Backend   Backend
	Catalog   CatalogSource
	Session   session.Provider
	Notifier  Notifier
	Navigator Navigator
	Confirmer Confirmer
	Metrics   Metrics
	Logger    *zap.Logger

	// Schedule difiere la navegación tras un guardado exitoso.
	Schedule      Scheduler
	NavigateDelay time.Duration

	Now func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Session == nil {
		d.Session = session.Static{}
	}
	if d.Notifier == nil {
		d.Notifier = nopNotifier{}
	}
	if d.Navigator == nil {
		d.Navigator = nopNavigator{}
	}
	if d.Metrics == nil {
		d.Metrics = nopMetrics{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Schedule == nil {
		d.Schedule = afterFunc
	}
	if d.NavigateDelay <= 0 {
		d.NavigateDelay = DefaultNavigateDelay
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}
