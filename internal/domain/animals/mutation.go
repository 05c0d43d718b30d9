package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"farm-animals/internal/ports/session"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	PathCreate = "create"
	PathUpdate = "update"

	ActionWeight   = "weight"
	ActionMovement = "movement"
)

type PostActionStatus string

const (
	PostActionOK      PostActionStatus = "ok"
	PostActionSkipped PostActionStatus = "skipped"
	PostActionWarning PostActionStatus = "warning"
)

// PostActionResult es el resultado uniforme de una acción secundaria (peso, movimiento).
type PostActionResult struct {
	Action string           `json:"action"`
	Status PostActionStatus `json:"status"`
	Reason string           `json:"reason,omitempty"`
	Err    error            `json:"-"`
}

// SaveRequest: ID vacío => alta. Known es el registro tal como se conocía antes
// de editar; de ahí sale el potrero previo.
type SaveRequest struct {
	ID    string
	Form  Form
	Known *Record
}

// Outcome es lo que la capa de presentación tiene que reproducir: avisos en orden
// y, si corresponde, la ruta a la que navegar.
type Outcome struct {
	Notices       []Notice      `json:"notices"`
	Redirect      string        `json:"redirect,omitempty"`
	RedirectAfter time.Duration `json:"-"`
}

type SaveResult struct {
	Outcome
	Path        string             `json:"path"`
	ID          string             `json:"id"`
	Record      Record             `json:"record"`
	PostActions []PostActionResult `json:"postActions"`
}

// Partial devuelve un error ErrPartial si alguna acción secundaria falló; nil si no.
func (r SaveResult) Partial() error {
	var errs []error
	for _, pa := range r.PostActions {
		if pa.Status == PostActionWarning {
			errs = append(errs, fmt.Errorf("%s: %w", pa.Action, pa.Err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &OpError{Op: "save_" + r.Path, ID: r.ID, Kind: ErrPartial, Err: errors.Join(errs...)}
}

// Orchestrator secuencia la escritura primaria y sus sub-recursos.
type Orchestrator struct {
	backend   Backend
	catalog   CatalogSource
	session   session.Provider
	notifier  Notifier
	navigator Navigator
	confirmer Confirmer
	metrics   Metrics
	log       *zap.Logger
	schedule  Scheduler
	delay     time.Duration
	now       func() time.Time
}

func NewOrchestrator(d Deps) *Orchestrator {
	d = d.withDefaults()
	return &Orchestrator{
		backend:   d.Backend,
		catalog:   d.Catalog,
		session:   d.Session,
		notifier:  d.Notifier,
		navigator: d.Navigator,
		confirmer: d.Confirmer,
		metrics:   d.Metrics,
		log:       d.Logger.Named("orchestrator"),
		schedule:  d.Schedule,
		delay:     d.NavigateDelay,
		now:       d.Now,
	}
}

// Save crea o actualiza el animal y luego sincroniza peso y movimiento (best-effort).
// Un error devuelto siempre es de la operación primaria; los fallos secundarios
// quedan en SaveResult.PostActions.
func (o *Orchestrator) Save(ctx context.Context, req SaveRequest) (SaveResult, error) {
	id := strings.TrimSpace(req.ID)
	sess := o.session.Current()
	farm := strings.TrimSpace(sess.FarmID)

	path := PathUpdate
	op := "update_animal"
	if id == "" {
		path = PathCreate
		op = "create_animal"
	}

	if path == PathCreate && farm == "" {
		err := validationError(op, "", MsgCreateNoFarm)
		o.log.Warn("create without farm", zap.String("op", op))
		o.notify(ctx, nil, Notice{Message: MsgCreateNoFarm, Severity: SeverityWarning, Title: "Atención"})
		o.metrics.SaveCompleted(path, "invalid")
		return SaveResult{}, err
	}

	var out Outcome
	cat := o.loadCatalog(ctx, farm, &out)

	draft, err := BuildDraft(req.Form, cat)
	if err != nil {
		var oe *OpError
		if errors.As(err, &oe) {
			oe.Op, oe.ID = op, id
		}
		o.log.Warn("invalid form", zap.String("op", op), zap.String("animal_id", id), zap.Error(err))
		o.notify(ctx, &out, Notice{Message: UserMessage(err), Severity: SeverityWarning, Title: "Atención"})
		o.metrics.SaveCompleted(path, "invalid")
		return SaveResult{Outcome: out, Path: path, ID: id}, err
	}
	if n, ok := ID(farm).Int64(); ok {
		draft.DTO.FarmID = &n
	}

	var (
		known *Record
		saved Record
	)
	switch path {
	case PathUpdate:
		known = o.knownRecord(ctx, id, req.Known)
		if n, ok := ID(id).Int64(); ok {
			draft.DTO.ID = &n
		}
		// La ubicación solo cambia vía movimiento: el PUT lleva el potrero previo.
		draft.DTO.PaddockID = nil
		if known != nil {
			if n, ok := known.PaddockID.Int64(); ok {
				draft.DTO.PaddockID = &n
			}
		}
		saved, err = o.backend.UpdateAnimal(ctx, id, draft.DTO)
	case PathCreate:
		draft.DTO.PaddockID = draft.PaddockID
		saved, err = o.backend.CreateAnimal(ctx, draft.DTO)
		if err == nil {
			id = saved.ID.String()
		}
	}
	if err != nil {
		oe := classifyWrite(op, id, err)
		o.log.Error("save animal failed", zap.String("op", op), zap.String("animal_id", id),
			zap.Int("status", oe.Status), zap.Error(err))
		o.notify(ctx, &out, Notice{Message: oe.Msg, Severity: SeverityError, Title: "Error"})
		o.metrics.SaveCompleted(path, "error")
		return SaveResult{Outcome: out, Path: path, ID: id}, oe
	}

	results := o.runPostActions(ctx, o.postActions(path, id, sess, draft, known, cat))
	for _, pa := range results {
		o.metrics.PostAction(pa.Action, string(pa.Status))
		if pa.Status != PostActionWarning {
			continue
		}
		o.log.Warn("post-action failed", zap.String("op", op), zap.String("animal_id", id),
			zap.String("action", pa.Action), zap.Error(pa.Err))
		msg := MsgWeightFailed
		if pa.Action == ActionMovement {
			msg = MsgMovementFailed
		}
		o.notify(ctx, &out, Notice{Message: msg, Severity: SeverityWarning, Title: "Atención"})
	}

	saved = withMovedPaddock(saved, results, draft, cat)

	name := orDefault(firstNonEmpty(saved.Name, draft.DTO.Name), "Sin Nombre")
	tmpl := msgUpdated
	if path == PathCreate {
		tmpl = msgCreated
	}
	res := SaveResult{Outcome: out, Path: path, ID: id, Record: saved, PostActions: results}

	outcome := "ok"
	if res.Partial() != nil {
		outcome = "partial"
	}
	o.metrics.SaveCompleted(path, outcome)
	o.log.Info("animal saved", zap.String("op", op), zap.String("animal_id", id), zap.String("outcome", outcome))

	o.notify(ctx, &res.Outcome, Notice{Message: fmt.Sprintf(tmpl, name), Severity: SeveritySuccess, Title: "Éxito"})
	o.navigateLater(&res.Outcome)
	return res, nil
}

// Delete pide confirmación y elimina. Rechazo => ErrDeclined sin llamada de red.
func (o *Orchestrator) Delete(ctx context.Context, id string) (Outcome, error) {
	const op = "delete_animal"
	id = strings.TrimSpace(id)
	var out Outcome

	if id == "" {
		return out, validationError(op, "", MsgNotFound)
	}

	ok, err := o.confirm(ctx, MsgConfirmDelete)
	if err != nil || !ok {
		o.log.Info("delete declined", zap.String("op", op), zap.String("animal_id", id), zap.Error(err))
		return out, &OpError{Op: op, ID: id, Kind: ErrDeclined, Msg: MsgDeclined, Err: err}
	}

	if err := o.backend.DeleteAnimal(ctx, id); err != nil {
		oe := classifyWrite(op, id, err)
		o.log.Error("delete animal failed", zap.String("op", op), zap.String("animal_id", id),
			zap.Int("status", oe.Status), zap.Error(err))
		o.notify(ctx, &out, Notice{Message: oe.Msg, Severity: SeverityError, Title: "Error"})
		o.metrics.SaveCompleted("delete", "error")
		return out, oe
	}

	o.metrics.SaveCompleted("delete", "ok")
	o.log.Info("animal deleted", zap.String("op", op), zap.String("animal_id", id))
	o.notify(ctx, &out, Notice{Message: msgDeleted, Severity: SeveritySuccess, Title: "Éxito"})
	out.Redirect = RouteList
	o.navigator.Navigate(RouteList)
	return out, nil
}

type postAction struct {
	name string
	run  func(ctx context.Context) PostActionResult
}

func (o *Orchestrator) postActions(path, id string, sess session.Session, d Draft, known *Record, cat Catalog) []postAction {
	today := o.now().Format(dateLayout)
	user := ID(strings.TrimSpace(sess.UserID))
	animal := ID(id)

	weight := postAction{name: ActionWeight, run: func(ctx context.Context) PostActionResult {
		res := PostActionResult{Action: ActionWeight}
		if d.Weight == nil {
			res.Status, res.Reason = PostActionSkipped, "sin peso"
			return res
		}
		if id == "" {
			res.Status, res.Reason = PostActionSkipped, "sin id"
			return res
		}
		obs := WeightObservation{AnimalID: animal, Weight: *d.Weight, Date: today, UserID: user}
		if err := o.backend.UpdateWeight(ctx, id, obs); err != nil {
			res.Status, res.Err = PostActionWarning, err
			return res
		}
		res.Status = PostActionOK
		return res
	}}

	movement := postAction{name: ActionMovement, run: func(ctx context.Context) PostActionResult {
		res := PostActionResult{Action: ActionMovement}
		if d.PaddockID == nil {
			res.Status, res.Reason = PostActionSkipped, "sin potrero"
			return res
		}
		if id == "" {
			res.Status, res.Reason = PostActionSkipped, "sin id"
			return res
		}
		keywords, note := entryKeywords, "Ingreso inicial"
		if path == PathUpdate {
			// Sin el registro previo no se puede saber si el potrero cambió.
			if known == nil {
				res.Status, res.Reason = PostActionSkipped, "potrero previo desconocido"
				return res
			}
			if prev, ok := known.PaddockID.Int64(); ok && prev == *d.PaddockID {
				res.Status, res.Reason = PostActionSkipped, "potrero sin cambios"
				return res
			}
			keywords, note = relocationKeywords, "Cambio de potrero"
		}
		mt, ok := ResolveMovementType(cat.MovementTypes, keywords)
		if !ok {
			res.Status, res.Reason = PostActionSkipped, "sin tipos de movimiento"
			return res
		}
		ev := MovementEvent{
			AnimalID:       animal,
			MovementTypeID: mt.ID,
			ToPaddockID:    idFromInt(d.PaddockID),
			MovementDate:   today,
			Observations:   note,
			UserID:         user,
		}
		if err := o.backend.RegisterMovement(ctx, id, ev); err != nil {
			res.Status, res.Err = PostActionWarning, err
			return res
		}
		res.Status = PostActionOK
		return res
	}}

	return []postAction{weight, movement}
}

// withMovedPaddock refleja el potrero destino en el registro guardado solo si
// el movimiento quedó registrado.
func withMovedPaddock(rec Record, results []PostActionResult, d Draft, cat Catalog) Record {
	if d.PaddockID == nil {
		return rec
	}
	for _, pa := range results {
		if pa.Action != ActionMovement || pa.Status != PostActionOK {
			continue
		}
		rec.PaddockID = idFromInt(d.PaddockID)
		rec.PaddockName = refName(cat.Paddocks, rec.PaddockID)
		if rec.Location != "" {
			rec.Location = rec.PaddockName
		}
	}
	return rec
}

func refName(refs []Reference, id ID) string {
	for _, r := range refs {
		if r.ID == id {
			return r.Name
		}
	}
	return ""
}

// runPostActions ejecuta las acciones en paralelo. Ninguna devuelve error al grupo,
// así un fallo no cancela a la otra; el orden del resultado es el de entrada.
func (o *Orchestrator) runPostActions(ctx context.Context, actions []postAction) []PostActionResult {
	results := make([]PostActionResult, len(actions))
	var g errgroup.Group
	for i, a := range actions {
		g.Go(func() error {
			results[i] = a.run(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (o *Orchestrator) loadCatalog(ctx context.Context, farm string, out *Outcome) Catalog {
	if o.catalog == nil {
		return Catalog{}
	}
	cat, err := o.catalog.Catalog(ctx, farm)
	if err != nil {
		o.log.Warn("catalog unavailable, continuing without references", zap.String("farm_id", farm), zap.Error(err))
		o.notify(ctx, out, Notice{Message: MsgCatalogFailed, Severity: SeverityWarning})
	}
	return cat
}

// knownRecord usa el registro provisto o, si falta, lo pide al backend.
func (o *Orchestrator) knownRecord(ctx context.Context, id string, known *Record) *Record {
	if known != nil {
		return known
	}
	rec, err := o.backend.GetAnimal(ctx, id)
	if err != nil {
		o.log.Warn("previous record unavailable", zap.String("animal_id", id), zap.Error(err))
		return nil
	}
	return rec
}

func (o *Orchestrator) confirm(ctx context.Context, msg string) (bool, error) {
	if o.confirmer == nil {
		return false, nil
	}
	return o.confirmer.Confirm(ctx, msg)
}

func (o *Orchestrator) notify(ctx context.Context, out *Outcome, n Notice) {
	if out != nil {
		out.Notices = append(out.Notices, n)
	}
	o.notifier.Notify(ctx, n)
}

// navigateLater agenda la navegación al listado; siempre después del aviso de éxito.
func (o *Orchestrator) navigateLater(out *Outcome) {
	out.Redirect = RouteList
	out.RedirectAfter = o.delay
	o.schedule(o.delay, func() { o.navigator.Navigate(RouteList) })
}
