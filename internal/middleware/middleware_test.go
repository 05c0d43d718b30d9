package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"farm-animals/internal/ports/session"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSessionContext(t *testing.T) {
	var got session.Session
	h := SessionContext(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/animals", nil)
	req.Header.Set(HeaderFarmID, " 3 ")
	req.Header.Set(HeaderUserID, "21")
	req.Header.Set(HeaderUserEmail, "ana@granja.test")
	req.Header.Set("Authorization", "Bearer abc.def")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, session.Session{FarmID: "3", UserID: "21", Email: "ana@granja.test", Token: "abc.def"}, got)
}

func TestSessionContext_DebugUser(t *testing.T) {
	var got session.Session
	h := SessionContext(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUser, "dev-1")
	req.Header.Set("Authorization", "Basic xyz")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "dev-1", got.UserID)
	assert.Empty(t, got.Token)
	assert.False(t, got.HasFarm())
}

func TestEchoRequestID(t *testing.T) {
	h := chimw.RequestID(EchoRequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "req-123", rr.Header().Get(chimw.RequestIDHeader))
}

func TestRecoverLogsAndReturns500(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := Recover(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/animals/1", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "panic serving request", logs.All()[0].Message)
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := AccessLog(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, int64(http.StatusTeapot), entry.ContextMap()["status"])
	assert.Equal(t, "/health", entry.ContextMap()["path"])
}
