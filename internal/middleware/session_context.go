package middleware

import (
	"net/http"
	"strings"

	"farm-animals/internal/ports/session"
)

// Headers con los que el shell comparte la sesión.
const (
	HeaderFarmID    = "X-Farm-Id"
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderDebugUser = "X-Debug-User-ID"
)

// SessionContext:
// - Lee granja, usuario, email y Bearer token de los headers y los deja en el contexto.
// - Modo dev: si no viene X-User-Id se acepta X-Debug-User-ID.
// - Nunca corta el request; cada handler decide qué exige (p.ej. la lista exige granja).
func SessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := session.Session{
			FarmID: strings.TrimSpace(r.Header.Get(HeaderFarmID)),
			UserID: strings.TrimSpace(r.Header.Get(HeaderUserID)),
			Email:  strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
			Token:  bearerToken(r.Header.Get("Authorization")),
		}
		if s.UserID == "" {
			s.UserID = strings.TrimSpace(r.Header.Get(HeaderDebugUser))
		}
		next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
	})
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
