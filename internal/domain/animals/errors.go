package animals

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound    = errors.New("animal not found")
	ErrFetch       = errors.New("fetch failed")
	ErrValidation  = errors.New("validation failed")
	ErrInvalidData = errors.New("invalid data")
	ErrConflict    = errors.New("conflict")
	ErrServer      = errors.New("server error")
	ErrNetwork     = errors.New("network error")
	ErrUpstream    = errors.New("upstream error")
	ErrPartial     = errors.New("partial failure")
	ErrDeclined    = errors.New("operation declined")
)

// Mensajes que ve el usuario.
const (
	MsgNotFound       = "Animal no encontrado"
	MsgFetchDetail    = "Error al cargar el detalle del animal."
	MsgFetchList      = "Error al cargar la lista de animales."
	MsgSelectFarm     = "Selecciona una granja primero."
	MsgListEmpty      = "No se encontraron animales para esta granja."
	MsgListDemo       = "El servicio de animales aún no está disponible. Mostrando datos de ejemplo."
	MsgCreateNoFarm   = "Selecciona una granja antes de registrar un animal."
	MsgInvalidData    = "Datos inválidos. Revisa los campos del formulario."
	MsgConflict       = "Conflicto: ya existe un animal con ese identificador."
	MsgServer         = "Error del servidor. Intenta nuevamente más tarde."
	MsgNetwork        = "No se pudo conectar con el servidor."
	MsgWeightFailed   = "El animal se guardó, pero no se pudo actualizar el peso."
	MsgMovementFailed = "El animal se guardó, pero no se pudo registrar el movimiento."
	MsgCatalogFailed  = "No se pudieron cargar los datos de referencia."
	MsgConfirmDelete  = "¿Eliminar este animal? Esta acción no se puede deshacer."
	MsgDeclined       = "Operación cancelada."

	msgCreated     = "Animal \"%s\" registrado correctamente."
	msgUpdated     = "Animal \"%s\" actualizado correctamente."
	msgDeleted     = "Animal eliminado correctamente."
	msgWeightSaved = "Peso actualizado correctamente."
	msgMoved       = "Movimiento registrado correctamente."
	msgBatchSaved  = "Lote actualizado correctamente."
	msgMarkedSold  = "Animal marcado como vendido."
	msgMarkedDead  = "Animal marcado como fallecido."
)

// OpError envuelve un error del módulo con contexto de diagnóstico.
// Kind es uno de los sentinels de arriba; errors.Is funciona con Kind y con Err.
type OpError struct {
	Op     string
	ID     string
	Kind   error
	Status int
	Detail string
	Msg    string
	Err    error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.ID != "" {
		b.WriteString(" id=")
		b.WriteString(e.ID)
	}
	b.WriteString(": ")
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status=%d)", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *OpError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// UserMessage devuelve el texto para el usuario (vacío si no hay).
func (e *OpError) UserMessage() string { return e.Msg }

// UserMessage extrae el mensaje de usuario de cualquier error del módulo.
func UserMessage(err error) string {
	var oe *OpError
	if errors.As(err, &oe) && oe.Msg != "" {
		return oe.Msg
	}
	if err == nil {
		return ""
	}
	return MsgServer
}

func validationError(op, id, msg string) *OpError {
	return &OpError{Op: op, ID: id, Kind: ErrValidation, Msg: msg}
}

// statusError lo implementa *httpclient.HTTPError; el core no depende del transporte.
type statusError interface {
	error
	HTTPStatus() int
	Detail() string
}

func httpStatusOf(err error) (int, string, bool) {
	var se statusError
	if errors.As(err, &se) {
		return se.HTTPStatus(), se.Detail(), true
	}
	return 0, "", false
}

// classifyWrite clasifica un fallo de la operación primaria (create/update/delete).
func classifyWrite(op, id string, err error) *OpError {
	oe := &OpError{Op: op, ID: id, Err: err}

	status, detail, ok := httpStatusOf(err)
	if !ok {
		oe.Kind = ErrNetwork
		oe.Msg = MsgNetwork
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			oe.Detail = err.Error()
		}
		return oe
	}

	oe.Status = status
	oe.Detail = detail
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		oe.Kind = ErrInvalidData
		oe.Msg = MsgInvalidData
	case status == http.StatusConflict:
		oe.Kind = ErrConflict
		oe.Msg = MsgConflict
	case status >= 500:
		oe.Kind = ErrServer
		oe.Msg = MsgServer
	default:
		oe.Kind = ErrUpstream
		if detail != "" {
			oe.Msg = fmt.Sprintf("No se pudo completar la operación: %s", detail)
		} else {
			oe.Msg = fmt.Sprintf("No se pudo completar la operación (código %d).", status)
		}
	}
	return oe
}
