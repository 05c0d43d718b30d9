package animals

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"farm-animals/internal/ports/session"

	"go.uber.org/zap"
)

// ListState es lo que expone el List Reader. Degraded indica que Records son datos de ejemplo.
type ListState struct {
	FarmID   string
	Records  []Record
	Loading  bool
	Err      error
	Degraded bool
	Notices  []Notice
}

// ListReader carga los animales de la granja seleccionada en la sesión.
type ListReader struct {
	backend  Backend
	session  session.Provider
	notifier Notifier
	metrics  Metrics
	log      *zap.Logger

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	state    ListState
	loaded   bool
	lastFarm string
}

func NewListReader(d Deps) *ListReader {
	d = d.withDefaults()
	return &ListReader{
		backend:  d.Backend,
		session:  d.Session,
		notifier: d.Notifier,
		metrics:  d.Metrics,
		log:      d.Logger.Named("list_reader"),
	}
}

// Load pide la lista para la granja actual. Sin granja no hay llamada de red.
func (r *ListReader) Load(ctx context.Context) ListState {
	const op = "list_animals"
	farm := strings.TrimSpace(r.session.Current().FarmID)

	r.mu.Lock()
	r.gen++
	gen := r.gen
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.loaded = true
	r.lastFarm = farm
	if farm == "" {
		r.state = ListState{Err: validationError(op, "", MsgSelectFarm)}
		st := r.state
		r.mu.Unlock()
		r.log.Warn("list requested without farm", zap.String("op", op))
		return st
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.state = ListState{FarmID: farm, Loading: true}
	r.mu.Unlock()

	defer cancel()

	recs, err := r.backend.ListAnimals(fetchCtx, farm)

	next := ListState{FarmID: farm}
	var notice *Notice
	if err == nil {
		if recs == nil {
			recs = []Record{}
		}
		next.Records = recs
	} else {
		status, _, hasStatus := httpStatusOf(err)
		switch {
		case hasStatus && status >= http.StatusInternalServerError:
			// Endpoint aún no listo: datos de ejemplo, éxito degradado.
			next.Records = SampleRecords(farm)
			next.Degraded = true
			notice = &Notice{Message: MsgListDemo, Severity: SeverityWarning, Title: "Modo demostración"}
			next.Notices = []Notice{*notice}
		case hasStatus && status == http.StatusNotFound:
			next.Records = []Record{}
			next.Err = &OpError{Op: op, ID: farm, Kind: ErrNotFound, Status: status, Msg: MsgListEmpty, Err: err}
		default:
			// La lista anterior se descarta para no mostrar datos viejos como vigentes.
			next.Err = &OpError{Op: op, ID: farm, Kind: ErrFetch, Status: status, Msg: MsgFetchList, Err: err}
		}
	}

	r.mu.Lock()
	if gen != r.gen {
		st := r.state
		r.mu.Unlock()
		r.log.Debug("discarding stale list response", zap.String("farm_id", farm))
		return st
	}
	r.cancel = nil
	r.state = next
	r.mu.Unlock()

	switch {
	case next.Degraded:
		r.metrics.ListFallback()
		r.log.Warn("list endpoint not ready, serving sample records",
			zap.String("op", op), zap.String("farm_id", farm), zap.Error(err))
	case next.Err != nil:
		r.log.Error("list animals failed", zap.String("op", op), zap.String("farm_id", farm), zap.Error(err))
	}
	if notice != nil {
		r.notifier.Notify(ctx, *notice)
	}
	return next.copy()
}

// Sync vuelve a cargar solo si la granja de la sesión cambió desde la última carga.
func (r *ListReader) Sync(ctx context.Context) ListState {
	farm := strings.TrimSpace(r.session.Current().FarmID)

	r.mu.Lock()
	stale := !r.loaded || farm != r.lastFarm
	st := r.state
	r.mu.Unlock()

	if stale {
		return r.Load(ctx)
	}
	return st.copy()
}

func (r *ListReader) State() ListState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.copy()
}

func (r *ListReader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.state.Loading = false
}

func (s ListState) copy() ListState {
	if s.Records != nil {
		s.Records = append([]Record(nil), s.Records...)
	}
	if s.Notices != nil {
		s.Notices = append([]Notice(nil), s.Notices...)
	}
	return s
}
