package animals

import (
	"context"
	"time"
)

// Backend es el API remoto de registros. GetAnimal devuelve (nil, nil) si no existe.
type Backend interface {
	ListAnimals(ctx context.Context, farmID string) ([]Record, error)
	GetAnimal(ctx context.Context, id string) (*Record, error)
	CreateAnimal(ctx context.Context, dto AnimalDTO) (Record, error)
	UpdateAnimal(ctx context.Context, id string, dto AnimalDTO) (Record, error)
	DeleteAnimal(ctx context.Context, id string) error
	UpdateWeight(ctx context.Context, id string, w WeightObservation) error
	RegisterMovement(ctx context.Context, id string, m MovementEvent) error
}

// CatalogSource entrega los datos de referencia (normalmente cacheados).
type CatalogSource interface {
	Catalog(ctx context.Context, farmID string) (Catalog, error)
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Notice struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title,omitempty"`
}

// Notifier presenta alertas/toasts. Fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Navigator cambia de ruta en el shell.
type Navigator interface {
	Navigate(route string)
}

// Confirmer es la compuerta sí/no antes de operaciones destructivas.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// Metrics recibe los resultados del orquestador y de los readers.
type Metrics interface {
	SaveCompleted(path, outcome string)
	PostAction(action, status string)
	ListFallback()
}

// Scheduler difiere f por d. En producción es time.AfterFunc; en tests se controla a mano.
type Scheduler func(d time.Duration, f func())

func afterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

type nopMetrics struct{}

func (nopMetrics) SaveCompleted(string, string) {}
func (nopMetrics) PostAction(string, string)    {}
func (nopMetrics) ListFallback()                {}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notice) {}

type nopNavigator struct{}

func (nopNavigator) Navigate(string) {}

// RouteList es la ruta del listado, destino tras guardar/eliminar.
const RouteList = "/animals"

// DefaultNavigateDelay es la espera entre la notificación de éxito y la navegación.
const DefaultNavigateDelay = 1500 * time.Millisecond
