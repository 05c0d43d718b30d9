package animals

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"farm-animals/internal/ports/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Exporter escribe el listado normalizado en una planilla.
type Exporter interface {
	WriteXLSX(w io.Writer, views []View) error
}

// RegisterRoutes monta la API del BFF. base lleva los colaboradores compartidos;
// la sesión, el confirmador y la navegación se resuelven por request.
func RegisterRoutes(r chi.Router, base Deps, exp Exporter) {
	base = base.withDefaults()
	h := &handler{base: base, exp: exp, log: base.Logger.Named("animals_http")}

	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", h.list)
		ar.Post("/", h.create)
		ar.Get("/export.xlsx", h.export)

		ar.Route("/{animalID}", func(ir chi.Router) {
			ir.Get("/", h.get)
			ir.Get("/form", h.form)
			ir.Put("/", h.update)
			ir.Delete("/", h.delete)

			// Acciones rápidas del listado
			ir.Post("/weight", h.weight)
			ir.Post("/movements", h.move)
			ir.Post("/batch", h.batch)
			ir.Post("/sold", h.sold)
			ir.Post("/dead", h.dead)
		})
	})

	r.Get("/catalog", h.catalog)
}

type handler struct {
	base Deps
	exp  Exporter
	log  *zap.Logger
}

type listResponse struct {
	FarmID   string   `json:"farmId"`
	Degraded bool     `json:"degraded"`
	Total    int      `json:"total"`
	Items    []View   `json:"items"`
	Message  string   `json:"message,omitempty"`
	Notices  []Notice `json:"notices"`
}

type detailResponse struct {
	Animal View   `json:"animal"`
	Record Record `json:"record"`
}

type formResponse struct {
	ID   string `json:"id"`
	Form Form   `json:"form"`
}

type outcomeResponse struct {
	ID              string             `json:"id,omitempty"`
	Record          *Record            `json:"record,omitempty"`
	PostActions     []PostActionResult `json:"postActions,omitempty"`
	Notices         []Notice           `json:"notices"`
	Redirect        string             `json:"redirect,omitempty"`
	RedirectAfterMs int64              `json:"redirectAfterMs,omitempty"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Notices []Notice `json:"notices,omitempty"`
}

type weightRequest struct {
	Weight Number `json:"weight"`
}

type moveRequest struct {
	ToPaddockID  ID     `json:"toPaddockId"`
	Observations string `json:"observations"`
}

type batchRequest struct {
	BatchID ID `json:"batchId"`
}

// deps arma los colaboradores de un request: sesión de los headers, confirmación
// por query y navegación delegada al cliente (redirect en la respuesta).
func (h *handler) deps(r *http.Request) Deps {
	d := h.base
	s, _ := session.FromContext(r.Context())
	d.Session = session.Static(s)
	d.Navigator = nil
	d.Schedule = func(time.Duration, func()) {}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	d.Confirmer = staticConfirmer(confirmed)
	return d
}

type staticConfirmer bool

func (c staticConfirmer) Confirm(context.Context, string) (bool, error) { return bool(c), nil }

// list godoc
// @Summary  Lista los animales de la granja seleccionada
// @Tags     animals
// @Produce  json
// @Param    X-Farm-Id header string true  "Granja"
// @Param    search    query  string false "Nombre o identificador"
// @Param    type      query  string false "Categoría (all = todas)"
// @Success  200 {object} listResponse
// @Failure  400 {object} errorResponse
// @Failure  502 {object} errorResponse
// @Router   /animals [get]
func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	st, ok := h.loadList(w, r)
	if !ok {
		return
	}
	items := FilterRecords(st.Records, filterFrom(r))
	resp := listResponse{
		FarmID:   st.FarmID,
		Degraded: st.Degraded,
		Total:    len(items),
		Items:    make([]View, 0, len(items)),
		Notices:  nonNil(st.Notices),
	}
	for _, rec := range items {
		resp.Items = append(resp.Items, Normalize(rec))
	}
	if st.Err != nil {
		resp.Message = UserMessage(st.Err)
	}
	writeJSON(w, http.StatusOK, resp)
}

// export godoc
// @Summary  Exporta el listado filtrado a Excel
// @Tags     animals
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param    X-Farm-Id header string true "Granja"
// @Success  200 {file} file
// @Router   /animals/export.xlsx [get]
func (h *handler) export(w http.ResponseWriter, r *http.Request) {
	if h.exp == nil {
		writeError(w, http.StatusNotImplemented, "export not configured", nil)
		return
	}
	st, ok := h.loadList(w, r)
	if !ok {
		return
	}
	items := FilterRecords(st.Records, filterFrom(r))
	views := make([]View, 0, len(items))
	for _, rec := range items {
		views = append(views, Normalize(rec))
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="animales.xlsx"`)
	if err := h.exp.WriteXLSX(w, views); err != nil {
		// Las cabeceras ya salieron; solo queda registrarlo.
		h.log.Error("export failed", zap.String("farm_id", st.FarmID), zap.Error(err))
	}
}

// loadList escribe la respuesta de error y devuelve ok=false si la lista no es usable.
func (h *handler) loadList(w http.ResponseWriter, r *http.Request) (ListState, bool) {
	st := NewListReader(h.deps(r)).Load(r.Context())
	switch {
	case errors.Is(st.Err, ErrValidation):
		writeError(w, http.StatusBadRequest, UserMessage(st.Err), nil)
		return st, false
	case errors.Is(st.Err, ErrFetch):
		writeError(w, http.StatusBadGateway, UserMessage(st.Err), nil)
		return st, false
	}
	return st, true
}

// get godoc
// @Summary  Detalle normalizado de un animal
// @Tags     animals
// @Produce  json
// @Param    animalID path string true "ID"
// @Success  200 {object} detailResponse
// @Failure  404 {object} errorResponse
// @Router   /animals/{animalID} [get]
func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	st := NewDetailReader(h.deps(r)).Load(r.Context(), chi.URLParam(r, "animalID"))
	if st.Err != nil {
		writeError(w, statusFor(st.Err), UserMessage(st.Err), nil)
		return
	}
	if st.Record == nil {
		writeError(w, http.StatusNotFound, MsgNotFound, nil)
		return
	}
	writeJSON(w, http.StatusOK, detailResponse{Animal: Normalize(*st.Record), Record: *st.Record})
}

// form godoc
// @Summary  Formulario de edición hidratado desde el registro
// @Tags     animals
// @Produce  json
// @Param    animalID path string true "ID"
// @Success  200 {object} formResponse
// @Failure  404 {object} errorResponse
// @Router   /animals/{animalID}/form [get]
func (h *handler) form(w http.ResponseWriter, r *http.Request) {
	st := NewDetailReader(h.deps(r)).Load(r.Context(), chi.URLParam(r, "animalID"))
	if st.Err != nil {
		writeError(w, statusFor(st.Err), UserMessage(st.Err), nil)
		return
	}
	if st.Record == nil {
		writeError(w, http.StatusNotFound, MsgNotFound, nil)
		return
	}
	fs := NewFormState()
	fs.Hydrate(st.Record)
	writeJSON(w, http.StatusOK, formResponse{ID: st.ID, Form: fs.Form()})
}

// create godoc
// @Summary  Registra un animal
// @Tags     animals
// @Accept   json
// @Produce  json
// @Param    X-Farm-Id header string true "Granja"
// @Param    body body Form true "Formulario"
// @Success  201 {object} outcomeResponse
// @Failure  400 {object} errorResponse
// @Failure  409 {object} errorResponse
// @Router   /animals [post]
func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// update godoc
// @Summary  Actualiza un animal
// @Tags     animals
// @Accept   json
// @Produce  json
// @Param    animalID path string true "ID"
// @Param    body body Form true "Formulario"
// @Success  200 {object} outcomeResponse
// @Failure  400 {object} errorResponse
// @Failure  409 {object} errorResponse
// @Router   /animals/{animalID} [put]
func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "animalID"))
}

func (h *handler) save(w http.ResponseWriter, r *http.Request, id string) {
	form := NewForm()
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	res, err := NewOrchestrator(h.deps(r)).Save(r.Context(), SaveRequest{ID: id, Form: form})
	if err != nil {
		writeError(w, statusFor(err), UserMessage(err), res.Notices)
		return
	}

	status := http.StatusOK
	if res.Path == PathCreate {
		status = http.StatusCreated
	}
	rec := res.Record
	writeJSON(w, status, outcomeResponse{
		ID:              res.ID,
		Record:          &rec,
		PostActions:     res.PostActions,
		Notices:         nonNil(res.Notices),
		Redirect:        res.Redirect,
		RedirectAfterMs: res.RedirectAfter.Milliseconds(),
	})
}

// delete godoc
// @Summary  Elimina un animal (requiere confirm=true)
// @Tags     animals
// @Produce  json
// @Param    animalID path  string true "ID"
// @Param    confirm  query bool   true "Confirmación explícita"
// @Success  200 {object} outcomeResponse
// @Failure  428 {object} errorResponse
// @Router   /animals/{animalID} [delete]
func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "animalID")
	out, err := NewOrchestrator(h.deps(r)).Delete(r.Context(), id)
	h.writeOutcome(w, id, out, err)
}

// weight godoc
// @Summary  Registra una pesada
// @Tags     animals
// @Accept   json
// @Produce  json
// @Param    animalID path string true "ID"
// @Param    body body weightRequest true "Peso"
// @Success  200 {object} outcomeResponse
// @Router   /animals/{animalID}/weight [post]
func (h *handler) weight(w http.ResponseWriter, r *http.Request) {
	var req weightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	id := chi.URLParam(r, "animalID")
	out, err := NewOrchestrator(h.deps(r)).UpdateWeight(r.Context(), id, float64(req.Weight))
	h.writeOutcome(w, id, out, err)
}

// move godoc
// @Summary  Registra un traslado de potrero
// @Tags     animals
// @Accept   json
// @Produce  json
// @Param    animalID path string true "ID"
// @Param    body body moveRequest true "Destino"
// @Success  200 {object} outcomeResponse
// @Router   /animals/{animalID}/movements [post]
func (h *handler) move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	id := chi.URLParam(r, "animalID")
	out, err := NewOrchestrator(h.deps(r)).Move(r.Context(), id, req.ToPaddockID.String(), req.Observations)
	h.writeOutcome(w, id, out, err)
}

// batch godoc
// @Summary  Cambia el lote de un animal
// @Tags     animals
// @Accept   json
// @Produce  json
// @Param    animalID path string true "ID"
// @Param    body body batchRequest true "Lote"
// @Success  200 {object} outcomeResponse
// @Router   /animals/{animalID}/batch [post]
func (h *handler) batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	id := chi.URLParam(r, "animalID")
	out, err := NewOrchestrator(h.deps(r)).MoveToBatch(r.Context(), id, req.BatchID.String())
	h.writeOutcome(w, id, out, err)
}

// sold godoc
// @Summary  Marca un animal como vendido
// @Tags     animals
// @Produce  json
// @Param    animalID path string true "ID"
// @Success  200 {object} outcomeResponse
// @Router   /animals/{animalID}/sold [post]
func (h *handler) sold(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "animalID")
	out, err := NewOrchestrator(h.deps(r)).MarkAsSold(r.Context(), id)
	h.writeOutcome(w, id, out, err)
}

// dead godoc
// @Summary  Marca un animal como fallecido
// @Tags     animals
// @Produce  json
// @Param    animalID path string true "ID"
// @Success  200 {object} outcomeResponse
// @Router   /animals/{animalID}/dead [post]
func (h *handler) dead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "animalID")
	out, err := NewOrchestrator(h.deps(r)).MarkAsDead(r.Context(), id)
	h.writeOutcome(w, id, out, err)
}

// catalog godoc
// @Summary  Datos de referencia (razas, categorías, potreros, lotes, tipos de movimiento)
// @Tags     catalog
// @Produce  json
// @Param    X-Farm-Id header string false "Granja"
// @Success  200 {object} Catalog
// @Failure  502 {object} errorResponse
// @Router   /catalog [get]
func (h *handler) catalog(w http.ResponseWriter, r *http.Request) {
	if h.base.Catalog == nil {
		writeJSON(w, http.StatusOK, Catalog{})
		return
	}
	s, _ := session.FromContext(r.Context())
	cat, err := h.base.Catalog.Catalog(r.Context(), strings.TrimSpace(s.FarmID))
	if err != nil {
		writeError(w, http.StatusBadGateway, MsgCatalogFailed, nil)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *handler) writeOutcome(w http.ResponseWriter, id string, out Outcome, err error) {
	if err != nil {
		writeError(w, statusFor(err), UserMessage(err), out.Notices)
		return
	}
	writeJSON(w, http.StatusOK, outcomeResponse{
		ID:              strings.TrimSpace(id),
		Notices:         nonNil(out.Notices),
		Redirect:        out.Redirect,
		RedirectAfterMs: out.RedirectAfter.Milliseconds(),
	})
}

func filterFrom(r *http.Request) Filter {
	q := r.URL.Query()
	return Filter{Search: q.Get("search"), Type: q.Get("type")}
}

// statusFor traduce la taxonomía de errores a HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrDeclined):
		return http.StatusPreconditionRequired
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNetwork):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func nonNil(n []Notice) []Notice {
	if n == nil {
		return []Notice{}
	}
	return n
}

func writeError(w http.ResponseWriter, status int, msg string, notices []Notice) {
	writeJSON(w, status, errorResponse{Error: msg, Notices: notices})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
