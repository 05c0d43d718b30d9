package animals

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailReader_EmptyIDSettlesWithoutCall(t *testing.T) {
	fb := newFakeBackend()
	r := NewDetailReader(Deps{Backend: fb})

	st := r.Load(context.Background(), "  ")

	assert.Equal(t, DetailState{}, st)
	assert.Empty(t, fb.getCalls)
}

func TestDetailReader_MissingIDIsNotFound(t *testing.T) {
	fb := newFakeBackend()
	fb.records["1"] = Record{ID: "1", Name: "Lucero"}
	r := NewDetailReader(Deps{Backend: fb})

	for _, id := range []string{"2", "999", "abc"} {
		st := r.Load(context.Background(), id)
		require.Error(t, st.Err, id)
		assert.ErrorIs(t, st.Err, ErrNotFound)
		assert.Nil(t, st.Record)
		assert.False(t, st.Loading)
		assert.Equal(t, MsgNotFound, UserMessage(st.Err))
	}
}

func TestDetailReader_FetchErrorIsGeneric(t *testing.T) {
	fb := newFakeBackend()
	fb.getErr = errors.New("connection reset")
	r := NewDetailReader(Deps{Backend: fb})

	st := r.Load(context.Background(), "1")

	assert.ErrorIs(t, st.Err, ErrFetch)
	assert.NotErrorIs(t, st.Err, ErrNotFound)
	assert.Equal(t, MsgFetchDetail, UserMessage(st.Err))
	assert.Nil(t, st.Record)
}

func TestDetailReader_Success(t *testing.T) {
	fb := newFakeBackend()
	fb.records["7"] = Record{ID: "7", Name: "Tornado", Sex: SexMale}
	r := NewDetailReader(Deps{Backend: fb})

	st := r.Load(context.Background(), "7")

	require.NoError(t, st.Err)
	require.NotNil(t, st.Record)
	assert.Equal(t, "Tornado", st.Record.Name)
	assert.Equal(t, st, r.State())
}

func TestDetailReader_StaleResponseIsDiscarded(t *testing.T) {
	fb := newFakeBackend()
	fb.records["1"] = Record{ID: "1", Name: "Viejo"}
	fb.records["2"] = Record{ID: "2", Name: "Nuevo"}

	entered := make(chan struct{})
	release := make(chan struct{})
	var slowCtxErr error
	fb.getHook = func(ctx context.Context, id string) {
		if id != "1" {
			return
		}
		close(entered)
		<-release
		slowCtxErr = ctx.Err()
	}

	r := NewDetailReader(Deps{Backend: fb})

	var (
		wg   sync.WaitGroup
		slow DetailState
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		slow = r.Load(context.Background(), "1")
	}()

	<-entered
	fast := r.Load(context.Background(), "2")
	close(release)
	wg.Wait()

	require.NotNil(t, fast.Record)
	assert.Equal(t, ID("2"), fast.Record.ID)

	// La respuesta lenta devuelve el estado vigente, no el suyo.
	require.NotNil(t, slow.Record)
	assert.Equal(t, ID("2"), slow.Record.ID)

	final := r.State()
	require.NotNil(t, final.Record)
	assert.Equal(t, "Nuevo", final.Record.Name)
	assert.ErrorIs(t, slowCtxErr, context.Canceled)
}

func TestDetailReader_CloseCancelsInFlight(t *testing.T) {
	fb := newFakeBackend()
	fb.records["1"] = Record{ID: "1"}

	entered := make(chan struct{})
	fb.getHook = func(ctx context.Context, _ string) {
		close(entered)
		<-ctx.Done()
	}
	r := NewDetailReader(Deps{Backend: fb})

	done := make(chan DetailState)
	go func() { done <- r.Load(context.Background(), "1") }()

	<-entered
	r.Close()
	st := <-done

	assert.False(t, st.Loading)
	assert.Nil(t, st.Record)
}
