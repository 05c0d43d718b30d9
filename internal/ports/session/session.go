package session

import (
	"context"
	"strings"
)

// Session es el estado de sesión que el shell comparte con el módulo:
// granja seleccionada y usuario actual. Solo lectura desde el core.
type Session struct {
	FarmID string
	UserID string
	Email  string
	Token  string
}

func (s Session) HasFarm() bool { return strings.TrimSpace(s.FarmID) != "" }

// Provider expone la sesión vigente. Se inyecta en readers/orquestador.
type Provider interface {
	Current() Session
}

// Static es un Provider fijo (un request HTTP, una invocación del CLI).
type Static Session

func (s Static) Current() Session { return Session(s) }

// ProviderFunc adapta una función a Provider.
type ProviderFunc func() Session

func (f ProviderFunc) Current() Session { return f() }

type ctxKey struct{}

// NewContext guarda la sesión en el contexto (headers salientes hacia el backend).
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
