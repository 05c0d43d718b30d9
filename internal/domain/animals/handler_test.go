package animals

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"farm-animals/internal/ports/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExporter struct{ views []View }

func (e *stubExporter) WriteXLSX(w io.Writer, views []View) error {
	e.views = views
	_, err := w.Write([]byte("xlsx"))
	return err
}

func newTestAPI(t *testing.T, fb *fakeBackend, exp Exporter) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			s := session.Session{FarmID: req.Header.Get("X-Farm-Id"), UserID: req.Header.Get("X-User-Id")}
			next.ServeHTTP(w, req.WithContext(session.NewContext(req.Context(), s)))
		})
	})
	RegisterRoutes(r, Deps{Backend: fb, Catalog: fakeCatalog{cat: testCatalog}, Now: fixedNow}, exp)
	return r
}

func doReq(t *testing.T, h http.Handler, method, path, farm string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if farm != "" {
		req.Header.Set("X-Farm-Id", farm)
	}
	req.Header.Set("X-User-Id", "21")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandler_ListRequiresFarm(t *testing.T) {
	fb := newFakeBackend()
	h := newTestAPI(t, fb, nil)

	rr := doReq(t, h, http.MethodGet, "/animals", "", nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), MsgSelectFarm)
	assert.Empty(t, fb.listCalls)
}

func TestHandler_ListFiltersAndNormalizes(t *testing.T) {
	fb := newFakeBackend()
	fb.list = []Record{
		{ID: "1", Name: "Lucero", VisualCode: "BOV-001", CategoryName: CategoryBovino, Sex: SexFemale},
		{ID: "2", Name: "Nube", VisualCode: "OVI-001", CategoryName: CategoryOvino},
	}
	h := newTestAPI(t, fb, nil)

	rr := doReq(t, h, http.MethodGet, "/animals?type=Bovino", "3", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got listResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, 1, got.Total)
	assert.Equal(t, "Lucero", got.Items[0].Name)
	assert.Equal(t, GenderFemale, got.Items[0].Gender)
	assert.Equal(t, "Sin asignar", got.Items[0].Location)
	assert.False(t, got.Degraded)
}

func TestHandler_ListDegradedCarriesNotice(t *testing.T) {
	fb := newFakeBackend()
	fb.listErr = &httpErr{status: http.StatusNotImplemented}
	h := newTestAPI(t, fb, nil)

	rr := doReq(t, h, http.MethodGet, "/animals", "3", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got listResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.Degraded)
	require.Len(t, got.Notices, 1)
	assert.Equal(t, SeverityWarning, got.Notices[0].Severity)
}

func TestHandler_DetailAndForm(t *testing.T) {
	fb := newFakeBackend()
	fb.records["42"] = *knownAnimal()
	h := newTestAPI(t, fb, nil)

	rr := doReq(t, h, http.MethodGet, "/animals/42", "3", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"identifier":"BOV-001"`)

	rr = doReq(t, h, http.MethodGet, "/animals/42/form", "3", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var got formResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, GenderFemale, got.Form.Gender)
	assert.Equal(t, "2021-03-14", got.Form.BirthDate)

	rr = doReq(t, h, http.MethodGet, "/animals/999", "3", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_CreateReturnsOutcome(t *testing.T) {
	fb := newFakeBackend()
	h := newTestAPI(t, fb, nil)

	rr := doReq(t, h, http.MethodPost, "/animals", "3", map[string]any{
		"name": "Nube", "gender": "Hembra", "weight": 58.5, "paddockId": 7,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var got outcomeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "101", got.ID)
	assert.Equal(t, RouteList, got.Redirect)
	assert.Equal(t, DefaultNavigateDelay.Milliseconds(), got.RedirectAfterMs)
	require.NotEmpty(t, got.Notices)
	assert.Equal(t, SeveritySuccess, got.Notices[len(got.Notices)-1].Severity)
	assert.Len(t, fb.weights, 1)
	assert.Len(t, fb.movements, 1)
}

func TestHandler_UpdateConflict(t *testing.T) {
	fb := newFakeBackend()
	fb.records["42"] = *knownAnimal()
	fb.updateErr = &httpErr{status: http.StatusConflict}
	h := newTestAPI(t, fb, nil)

	rr := doReq(t, h, http.MethodPut, "/animals/42", "3", map[string]any{"name": "Lucero", "gender": "Hembra"})

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), MsgConflict)
}

func TestHandler_DeleteNeedsConfirmation(t *testing.T) {
	fb := newFakeBackend()
	h := newTestAPI(t, fb, nil)

	rr := doReq(t, h, http.MethodDelete, "/animals/42", "3", nil)
	assert.Equal(t, http.StatusPreconditionRequired, rr.Code)
	assert.Empty(t, fb.deletes)

	rr = doReq(t, h, http.MethodDelete, "/animals/42?confirm=true", "3", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"42"}, fb.deletes)
	assert.Contains(t, rr.Body.String(), `"redirect":"/animals"`)
}

func TestHandler_ExportUsesFilteredViews(t *testing.T) {
	fb := newFakeBackend()
	fb.list = []Record{{ID: "1", Name: "Lucero"}, {ID: "2", Name: "Nube"}}
	exp := &stubExporter{}
	h := newTestAPI(t, fb, exp)

	rr := doReq(t, h, http.MethodGet, "/animals/export.xlsx?search=nub", "3", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "xlsx", rr.Body.String())
	require.Len(t, exp.views, 1)
	assert.Equal(t, "Nube", exp.views[0].Name)
}

func TestHandler_QuickActions(t *testing.T) {
	fb := newFakeBackend()
	fb.records["42"] = *knownAnimal()
	h := newTestAPI(t, fb, nil)

	rr := doReq(t, h, http.MethodPost, "/animals/42/weight", "3", map[string]any{"weight": "480"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, fb.weights, 1)
	assert.InDelta(t, 480.0, fb.weights[0].Weight, 1e-9)

	rr = doReq(t, h, http.MethodPost, "/animals/42/movements", "3", map[string]any{"toPaddockId": 7})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, fb.movements, 1)

	rr = doReq(t, h, http.MethodPost, "/animals/42/dead", "3", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, StatusDeceased, fb.updates["42"][0].Status)

	rr = doReq(t, h, http.MethodGet, "/catalog", "3", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Traslado de Potrero")
}
