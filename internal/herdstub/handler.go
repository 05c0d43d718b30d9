package herdstub

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Options struct {
	// Envelope envuelve las respuestas en {"data": ...} como el backend real.
	Envelope bool
	Logger   *zap.Logger
}

type handler struct {
	svc      *Service
	envelope bool
	log      *zap.Logger
}

// RegisterRoutes monta el contrato /v1 que consume el BFF.
func RegisterRoutes(r chi.Router, svc *Service, opts Options) {
	h := &handler{svc: svc, envelope: opts.Envelope, log: opts.Logger}
	if h.log == nil {
		h.log = zap.NewNop()
	}

	r.Route("/v1", func(v chi.Router) {
		v.Route("/animals", func(ar chi.Router) {
			ar.Get("/", h.list)
			ar.Post("/", h.create)

			ar.Route("/{animalID}", func(one chi.Router) {
				one.Get("/", h.get)
				one.Put("/", h.update)
				one.Delete("/", h.delete)
				one.Put("/weight", h.weight)
				one.Post("/movements", h.movement)
			})
		})

		v.Get("/breeds", h.refs(func(_ *http.Request) []Ref { return svc.References().Breeds }))
		v.Get("/categories", h.refs(func(_ *http.Request) []Ref { return svc.References().Categories }))
		v.Get("/movement-types", h.refs(func(_ *http.Request) []Ref { return svc.References().MovementTypes }))
		v.Get("/paddocks", h.refs(func(r *http.Request) []Ref {
			return ForFarm(svc.References().Paddocks, farmParam(r))
		}))
		v.Get("/batches", h.refs(func(r *http.Request) []Ref {
			return ForFarm(svc.References().Batches, farmParam(r))
		}))
	})
}

type animalRequest struct {
	ID            *int64   `json:"id"`
	FarmID        *int64   `json:"farmId"`
	Name          string   `json:"name"`
	VisualCode    string   `json:"visualCode"`
	CategoryID    *int64   `json:"categoryId"`
	BreedID       *int64   `json:"breedId"`
	PaddockID     *int64   `json:"paddockId"`
	BatchID       *int64   `json:"batchId"`
	Sex           string   `json:"sex"`
	BirthDate     string   `json:"birthDate"`
	Height        *float64 `json:"height"`
	CurrentStatus string   `json:"currentStatus"`
	MotherID      *int64   `json:"motherId"`
	FatherID      *int64   `json:"fatherId"`
	Observations  string   `json:"observations"`
}

type animalResponse struct {
	ID            int64    `json:"id"`
	FarmID        int64    `json:"farmId"`
	Name          string   `json:"name"`
	VisualCode    string   `json:"visualCode,omitempty"`
	CategoryID    *int64   `json:"categoryId,omitempty"`
	CategoryName  string   `json:"categoryName,omitempty"`
	BreedID       *int64   `json:"breedId,omitempty"`
	BreedName     string   `json:"breedName,omitempty"`
	Sex           string   `json:"sex,omitempty"`
	BirthDate     string   `json:"birthDate,omitempty"`
	CurrentWeight *float64 `json:"currentWeight,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	PaddockID     *int64   `json:"paddockId,omitempty"`
	PaddockName   string   `json:"paddockName,omitempty"`
	BatchID       *int64   `json:"batchId,omitempty"`
	BatchName     string   `json:"batchName,omitempty"`
	CurrentStatus string   `json:"currentStatus,omitempty"`
	MotherID      *int64   `json:"motherId,omitempty"`
	FatherID      *int64   `json:"fatherId,omitempty"`
	Observations  string   `json:"observations,omitempty"`
	Image         string   `json:"image,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

type weightRequest struct {
	AnimalID *int64  `json:"animalId"`
	Weight   float64 `json:"weight"`
	Date     string  `json:"date"`
	UserID   *int64  `json:"userId"`
}

type movementRequest struct {
	AnimalID       *int64 `json:"animalId"`
	MovementTypeID int64  `json:"movementTypeId"`
	ToPaddockID    int64  `json:"toPaddockId"`
	MovementDate   string `json:"movementDate"`
	Observations   string `json:"observations"`
	UserID         *int64 `json:"userId"`
}

type movementResponse struct {
	ID             int64  `json:"id"`
	AnimalID       int64  `json:"animalId"`
	MovementTypeID int64  `json:"movementTypeId"`
	ToPaddockID    int64  `json:"toPaddockId"`
	MovementDate   string `json:"movementDate"`
	Observations   string `json:"observations,omitempty"`
}

type refResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	farmID := farmParam(r)
	if farmID <= 0 {
		h.fail(w, http.StatusBadRequest, "farmId query param required")
		return
	}
	items, err := h.svc.ListByFarm(r.Context(), farmID)
	if err != nil {
		h.failErr(w, err)
		return
	}
	out := make([]animalResponse, 0, len(items))
	for _, a := range items {
		out = append(out, h.toResponse(a))
	}
	h.write(w, http.StatusOK, out)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.animalID(w, r)
	if !ok {
		return
	}
	a, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.write(w, http.StatusOK, h.toResponse(a))
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	var req animalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.FarmID == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get("X-Farm-Id")), 10, 64); err == nil {
			req.FarmID = &v
		}
	}
	a, err := h.svc.Create(r.Context(), toInput(req))
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.write(w, http.StatusCreated, h.toResponse(a))
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.animalID(w, r)
	if !ok {
		return
	}
	var req animalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ID != nil && *req.ID != id {
		h.fail(w, http.StatusBadRequest, "body id does not match path")
		return
	}
	a, err := h.svc.Update(r.Context(), id, toInput(req))
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.write(w, http.StatusOK, h.toResponse(a))
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.animalID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.failErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) weight(w http.ResponseWriter, r *http.Request) {
	id, ok := h.animalID(w, r)
	if !ok {
		return
	}
	var req weightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	a, err := h.svc.RecordWeight(r.Context(), id, WeightInput{Weight: req.Weight, Date: req.Date, UserID: req.UserID})
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.write(w, http.StatusOK, h.toResponse(a))
}

func (h *handler) movement(w http.ResponseWriter, r *http.Request) {
	id, ok := h.animalID(w, r)
	if !ok {
		return
	}
	var req movementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	m, err := h.svc.RegisterMovement(r.Context(), id, MovementInput{
		MovementTypeID: req.MovementTypeID,
		ToPaddockID:    req.ToPaddockID,
		Date:           req.MovementDate,
		Observations:   req.Observations,
		UserID:         req.UserID,
	})
	if err != nil {
		h.failErr(w, err)
		return
	}
	h.write(w, http.StatusCreated, movementResponse{
		ID:             m.ID,
		AnimalID:       m.AnimalID,
		MovementTypeID: m.MovementTypeID,
		ToPaddockID:    m.ToPaddockID,
		MovementDate:   m.Date.Format(dateLayout),
		Observations:   m.Observations,
	})
}

func (h *handler) refs(get func(*http.Request) []Ref) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := get(r)
		out := make([]refResponse, 0, len(items))
		for _, ref := range items {
			out = append(out, refResponse{ID: ref.ID, Name: ref.Name})
		}
		h.write(w, http.StatusOK, out)
	}
}

func toInput(req animalRequest) AnimalInput {
	return AnimalInput{
		FarmID:        req.FarmID,
		Name:          req.Name,
		VisualCode:    req.VisualCode,
		CategoryID:    req.CategoryID,
		BreedID:       req.BreedID,
		PaddockID:     req.PaddockID,
		BatchID:       req.BatchID,
		Sex:           req.Sex,
		BirthDate:     req.BirthDate,
		Height:        req.Height,
		CurrentStatus: req.CurrentStatus,
		MotherID:      req.MotherID,
		FatherID:      req.FatherID,
		Observations:  req.Observations,
	}
}

func (h *handler) toResponse(a Animal) animalResponse {
	refs := h.svc.References()
	out := animalResponse{
		ID:            a.ID,
		FarmID:        a.FarmID,
		Name:          a.Name,
		VisualCode:    a.VisualCode,
		CategoryID:    a.CategoryID,
		CategoryName:  nameOf(refs.Categories, a.CategoryID),
		BreedID:       a.BreedID,
		BreedName:     nameOf(refs.Breeds, a.BreedID),
		Sex:           a.Sex,
		CurrentWeight: a.CurrentWeight,
		Height:        a.Height,
		PaddockID:     a.PaddockID,
		PaddockName:   nameOf(refs.Paddocks, a.PaddockID),
		BatchID:       a.BatchID,
		BatchName:     nameOf(refs.Batches, a.BatchID),
		CurrentStatus: a.CurrentStatus,
		MotherID:      a.MotherID,
		FatherID:      a.FatherID,
		Observations:  a.Observations,
		Image:         a.Image,
		CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if a.BirthDate != nil {
		out.BirthDate = a.BirthDate.Format(dateLayout)
	}
	return out
}

func (h *handler) animalID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "animalID"), 10, 64)
	if err != nil || id <= 0 {
		// Un id no numérico nunca existe.
		h.fail(w, http.StatusNotFound, "animal not found")
		return 0, false
	}
	return id, true
}

func farmParam(r *http.Request) int64 {
	v, _ := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get("farmId")), 10, 64)
	return v
}

func (h *handler) failErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		h.fail(w, http.StatusNotFound, "animal not found")
	case errors.Is(err, ErrInvalidInput):
		h.fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		h.fail(w, http.StatusConflict, err.Error())
	default:
		h.log.Error("herd stub failure", zap.Error(err))
		h.fail(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *handler) fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func (h *handler) write(w http.ResponseWriter, status int, v any) {
	if h.envelope {
		v = map[string]any{"data": v, "success": true}
	}
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
