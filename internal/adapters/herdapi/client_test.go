package herdapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"farm-animals/internal/domain/animals"
	"farm-animals/internal/platform/httpclient"
	"farm-animals/internal/ports/session"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	mu      sync.Mutex
	headers []http.Header
	bodies  map[string]string
}

func (c *captured) record(r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers = append(c.headers, r.Header.Clone())
	b, _ := io.ReadAll(r.Body)
	c.bodies[r.Method+" "+r.URL.Path] = string(b)
}

func newTestServer(t *testing.T) (*Client, *captured) {
	t.Helper()
	seen := &captured{bodies: map[string]string{}}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			seen.record(req)
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/api/v1/animals", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("farmId") == "404" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Lucero","farmId":3},{"id":"2","name":"Nube"}]}`))
	})
	r.Get("/api/v1/animals/{id}", func(w http.ResponseWriter, req *http.Request) {
		switch chi.URLParam(req, "id") {
		case "1":
			_, _ = w.Write([]byte(`{"id":1,"name":"Lucero","sex":"F","currentWeight":"452"}`))
		case "500":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"db down"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	r.Post("/api/v1/animals", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":77,"name":"Nube"}}`))
	})
	r.Put("/api/v1/animals/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"title":"Conflict","detail":"visualCode duplicado"}`))
	})
	r.Put("/api/v1/animals/{id}/weight", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/api/v1/animals/{id}/movements", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	r.Delete("/api/v1/animals/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/api/v1/movement-types", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":2,"name":"Traslado de Potrero"}]`))
	})
	r.Get("/api/v1/paddocks", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":5,"name":"Potrero ` + req.URL.Query().Get("farmId") + `"}]}`))
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	c, err := NewClient(httpclient.Config{BaseURL: ts.URL + "/api"}, nil)
	require.NoError(t, err)
	return c, seen
}

func sessionCtx() context.Context {
	return session.NewContext(context.Background(), session.Session{
		FarmID: "3", UserID: "21", Email: "ana@granja.test", Token: "tok",
	})
}

func TestClient_ListAnimalsEnvelopeAndHeaders(t *testing.T) {
	c, seen := newTestServer(t)

	recs, err := c.ListAnimals(sessionCtx(), "3")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, animals.ID("1"), recs[0].ID)
	assert.Equal(t, animals.ID("2"), recs[1].ID)

	h := seen.headers[0]
	assert.Equal(t, "Bearer tok", h.Get("Authorization"))
	assert.Equal(t, "3", h.Get(HeaderFarmID))
	assert.Equal(t, "21", h.Get(HeaderUserID))
	assert.Equal(t, "ana@granja.test", h.Get(HeaderUserEmail))
	_, err = uuid.Parse(h.Get(HeaderRequestID))
	assert.NoError(t, err)
}

func TestClient_ListAnimalsNotFoundKeepsStatus(t *testing.T) {
	c, _ := newTestServer(t)

	_, err := c.ListAnimals(context.Background(), "404")

	var he *httpclient.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.HTTPStatus())
}

func TestClient_GetAnimal(t *testing.T) {
	c, _ := newTestServer(t)

	rec, err := c.GetAnimal(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Lucero", rec.Name)
	require.NotNil(t, rec.CurrentWeight)
	assert.InDelta(t, 452.0, float64(*rec.CurrentWeight), 1e-9)

	rec, err = c.GetAnimal(context.Background(), "9")
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = c.GetAnimal(context.Background(), "500")
	var he *httpclient.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "db down", he.Detail())
}

func TestClient_CreateAnimalFromEnvelope(t *testing.T) {
	c, seen := newTestServer(t)
	farm := int64(3)

	rec, err := c.CreateAnimal(sessionCtx(), animals.AnimalDTO{Name: "Nube", FarmID: &farm, Sex: animals.SexFemale})
	require.NoError(t, err)
	assert.Equal(t, animals.ID("77"), rec.ID)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(seen.bodies["POST /api/v1/animals"]), &sent))
	assert.Equal(t, "Nube", sent["name"])
	assert.Equal(t, float64(3), sent["farmId"])
	assert.NotContains(t, sent, "breedId")
}

func TestClient_UpdateConflictIsClassifiable(t *testing.T) {
	c, _ := newTestServer(t)

	_, err := c.UpdateAnimal(context.Background(), "1", animals.AnimalDTO{Name: "Lucero"})

	var he *httpclient.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusConflict, he.HTTPStatus())
	assert.Equal(t, "visualCode duplicado", he.Detail())
}

func TestClient_SubResources(t *testing.T) {
	c, seen := newTestServer(t)
	ctx := sessionCtx()

	require.NoError(t, c.UpdateWeight(ctx, "1", animals.WeightObservation{AnimalID: "1", Weight: 455, Date: "2024-05-10", UserID: "21"}))
	require.NoError(t, c.RegisterMovement(ctx, "1", animals.MovementEvent{AnimalID: "1", MovementTypeID: "2", ToPaddockID: "7"}))
	require.NoError(t, c.DeleteAnimal(ctx, "1"))

	assert.JSONEq(t, `{"animalId":1,"weight":455,"date":"2024-05-10","userId":21}`, seen.bodies["PUT /api/v1/animals/1/weight"])
	assert.Contains(t, seen.bodies["POST /api/v1/animals/1/movements"], `"toPaddockId":7`)
}

func TestClient_References(t *testing.T) {
	c, _ := newTestServer(t)

	mts, err := c.MovementTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []animals.Reference{{ID: "2", Name: "Traslado de Potrero"}}, mts)

	pads, err := c.Paddocks(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, []animals.Reference{{ID: "5", Name: "Potrero 3"}}, pads)

	_, err = c.Breeds(context.Background())
	var he *httpclient.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.HTTPStatus())
}

func TestClient_TransportErrorHasNoStatus(t *testing.T) {
	c, err := NewClient(httpclient.Config{BaseURL: "http://127.0.0.1:1"}, nil)
	require.NoError(t, err)

	_, err = c.ListAnimals(context.Background(), "3")
	require.Error(t, err)
	var he *httpclient.HTTPError
	assert.False(t, errors.As(err, &he))
}
