package animals

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DetailState es lo que expone el Detail Reader: {record, loading, error}.
type DetailState struct {
	ID      string
	Record  *Record
	Loading bool
	Err     error
}

// DetailReader carga un animal por id. Cada Load invalida el anterior: la respuesta
// de un id viejo nunca pisa el estado (contador de generación + cancelación).
type DetailReader struct {
	backend Backend
	log     *zap.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  DetailState
}

func NewDetailReader(d Deps) *DetailReader {
	d = d.withDefaults()
	return &DetailReader{
		backend: d.Backend,
		log:     d.Logger.Named("detail_reader"),
	}
}

// Load resuelve el id y devuelve el estado final de esta carga, o el estado
// vigente si otra carga la reemplazó mientras tanto.
func (r *DetailReader) Load(ctx context.Context, id string) DetailState {
	id = strings.TrimSpace(id)

	r.mu.Lock()
	r.gen++
	gen := r.gen
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if id == "" {
		r.state = DetailState{}
		r.mu.Unlock()
		return DetailState{}
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.state = DetailState{ID: id, Loading: true}
	r.mu.Unlock()

	defer cancel()

	rec, err := r.backend.GetAnimal(ctx, id)

	next := DetailState{ID: id}
	switch {
	case errors.Is(err, ErrNotFound) || (err == nil && rec == nil):
		next.Err = &OpError{Op: "get_animal", ID: id, Kind: ErrNotFound, Msg: MsgNotFound, Err: err}
	case err != nil:
		next.Err = &OpError{Op: "get_animal", ID: id, Kind: ErrFetch, Msg: MsgFetchDetail, Err: err}
	default:
		next.Record = rec
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.gen {
		r.log.Debug("discarding stale detail response", zap.String("animal_id", id))
		return r.state
	}
	r.cancel = nil
	r.state = next

	switch {
	case errors.Is(next.Err, ErrFetch):
		r.log.Error("load animal detail failed", zap.String("op", "get_animal"), zap.String("animal_id", id), zap.Error(err))
	case next.Err != nil:
		r.log.Info("animal not found", zap.String("op", "get_animal"), zap.String("animal_id", id))
	}
	return next
}

// State devuelve una copia del estado vigente.
func (r *DetailReader) State() DetailState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Close cancela la carga en curso, si la hay.
func (r *DetailReader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.state.Loading = false
}
