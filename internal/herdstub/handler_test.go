package herdstub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T, envelope bool) *httptest.Server {
	t.Helper()
	svc, _ := newTestService()
	r := chi.NewRouter()
	RegisterRoutes(r, svc, Options{Envelope: envelope})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHandler_CreateGetList(t *testing.T) {
	srv := newTestServer(t, false)

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/animals", map[string]any{
		"farmId": 3, "name": "Lucero", "visualCode": "BOV-001", "sex": "F",
		"categoryId": 10, "breedId": 1, "paddockId": 5,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created animalResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID != 1 || created.CategoryName != "Bovino" || created.BreedName != "Brahman" || created.PaddockName != "Potrero Norte" {
		t.Fatalf("unexpected created: %+v", created)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/v1/animals/1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/v1/animals?farmId=3", nil)
	var list []animalResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 animal, got %d", len(list))
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/v1/animals", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without farmId, got %d", resp.StatusCode)
	}
}

func TestHandler_EnvelopeAndErrors(t *testing.T) {
	srv := newTestServer(t, true)

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/movement-types", nil)
	var env struct {
		Data []refResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 3 || env.Data[1].Name != "Traslado de Potrero" {
		t.Fatalf("unexpected movement types: %+v", env.Data)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/v1/animals/abc", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPut, srv.URL+"/v1/animals/1", map[string]any{"name": "x"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on missing update, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/animals", map[string]any{"farmId": 3})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["message"] == "" {
		t.Fatalf("expected message in error body")
	}
}

func TestHandler_WeightMovementDelete(t *testing.T) {
	srv := newTestServer(t, false)

	doJSON(t, http.MethodPost, srv.URL+"/v1/animals", map[string]any{"farmId": 3, "name": "Lucero", "paddockId": 5})

	resp := doJSON(t, http.MethodPut, srv.URL+"/v1/animals/1/weight", map[string]any{"animalId": 1, "weight": 430, "date": "2024-05-10"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("weight: expected 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/animals/1/movements", map[string]any{
		"animalId": 1, "movementTypeId": 2, "toPaddockId": 7, "movementDate": "2024-05-10",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("movement: expected 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/v1/animals/1", nil)
	var got animalResponse
	_ = json.NewDecoder(resp.Body).Decode(&got)
	if got.CurrentWeight == nil || *got.CurrentWeight != 430 || got.PaddockName != "Potrero Sur" {
		t.Fatalf("unexpected animal after post-actions: %+v", got)
	}

	resp = doJSON(t, http.MethodDelete, srv.URL+"/v1/animals/1", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodDelete, srv.URL+"/v1/animals/1", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.StatusCode)
	}
}
