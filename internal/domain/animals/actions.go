package animals

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Acciones rápidas del listado. A diferencia de Save, aquí la llamada es la
// operación primaria: su fallo se devuelve y se notifica como error.

// UpdateWeight registra una nueva pesada con fecha de hoy.
func (o *Orchestrator) UpdateWeight(ctx context.Context, id string, weight float64) (Outcome, error) {
	const op = "update_weight"
	id = strings.TrimSpace(id)
	if !validPositive(weight) {
		return Outcome{}, validationError(op, id, "El peso debe ser un número positivo.")
	}
	obs := WeightObservation{
		AnimalID: ID(id),
		Weight:   weight,
		Date:     o.now().Format(dateLayout),
		UserID:   ID(strings.TrimSpace(o.session.Current().UserID)),
	}
	return o.runAction(ctx, op, ActionWeight, id, msgWeightSaved, func(ctx context.Context) error {
		return o.backend.UpdateWeight(ctx, id, obs)
	})
}

// Move registra un traslado al potrero indicado.
func (o *Orchestrator) Move(ctx context.Context, id, toPaddockID, observations string) (Outcome, error) {
	const op = "register_movement"
	id = strings.TrimSpace(id)
	to := parseID(toPaddockID)
	if to == nil {
		return Outcome{}, validationError(op, id, "Selecciona un potrero de destino.")
	}

	var out Outcome
	cat := o.loadCatalog(ctx, strings.TrimSpace(o.session.Current().FarmID), &out)
	mt, ok := ResolveMovementType(cat.MovementTypes, relocationKeywords)
	if !ok {
		return out, validationError(op, id, "No hay tipos de movimiento disponibles.")
	}
	ev := MovementEvent{
		AnimalID:       ID(id),
		MovementTypeID: mt.ID,
		ToPaddockID:    idFromInt(to),
		MovementDate:   o.now().Format(dateLayout),
		Observations:   strings.TrimSpace(observations),
		UserID:         ID(strings.TrimSpace(o.session.Current().UserID)),
	}
	res, err := o.runAction(ctx, op, ActionMovement, id, msgMoved, func(ctx context.Context) error {
		return o.backend.RegisterMovement(ctx, id, ev)
	})
	res.Notices = append(out.Notices, res.Notices...)
	return res, err
}

// MoveToBatch reasigna el lote con un PUT del registro completo.
func (o *Orchestrator) MoveToBatch(ctx context.Context, id, batchID string) (Outcome, error) {
	const op = "move_to_batch"
	batch := parseID(batchID)
	if batch == nil {
		return Outcome{}, validationError(op, id, "Selecciona un lote.")
	}
	return o.patch(ctx, op, "batch", id, msgBatchSaved, func(dto *AnimalDTO) { dto.BatchID = batch })
}

func (o *Orchestrator) MarkAsSold(ctx context.Context, id string) (Outcome, error) {
	return o.patch(ctx, "mark_as_sold", "sold", id, msgMarkedSold, func(dto *AnimalDTO) { dto.Status = StatusSold })
}

func (o *Orchestrator) MarkAsDead(ctx context.Context, id string) (Outcome, error) {
	return o.patch(ctx, "mark_as_dead", "dead", id, msgMarkedDead, func(dto *AnimalDTO) { dto.Status = StatusDeceased })
}

// patch lee el registro vigente, aplica el cambio y lo reenvía con PUT.
func (o *Orchestrator) patch(ctx context.Context, op, action, id, okMsg string, mutate func(*AnimalDTO)) (Outcome, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Outcome{}, validationError(op, "", MsgNotFound)
	}
	rec, err := o.backend.GetAnimal(ctx, id)
	switch {
	case err != nil:
		oe := &OpError{Op: op, ID: id, Kind: ErrFetch, Msg: MsgFetchDetail, Err: err}
		o.log.Error("load animal for update failed", zap.String("op", op), zap.String("animal_id", id), zap.Error(err))
		var out Outcome
		o.notify(ctx, &out, Notice{Message: oe.Msg, Severity: SeverityError, Title: "Error"})
		return out, oe
	case rec == nil:
		return Outcome{}, &OpError{Op: op, ID: id, Kind: ErrNotFound, Msg: MsgNotFound}
	}

	dto := DTOFromRecord(*rec)
	mutate(&dto)
	return o.runAction(ctx, op, action, id, okMsg, func(ctx context.Context) error {
		_, err := o.backend.UpdateAnimal(ctx, id, dto)
		return err
	})
}

func (o *Orchestrator) runAction(ctx context.Context, op, action, id, okMsg string, call func(context.Context) error) (Outcome, error) {
	var out Outcome
	if err := call(ctx); err != nil {
		oe := classifyWrite(op, id, err)
		o.log.Error("animal action failed", zap.String("op", op), zap.String("animal_id", id),
			zap.Int("status", oe.Status), zap.Error(err))
		o.notify(ctx, &out, Notice{Message: oe.Msg, Severity: SeverityError, Title: "Error"})
		o.metrics.SaveCompleted(action, "error")
		return out, oe
	}
	o.metrics.SaveCompleted(action, "ok")
	o.log.Info("animal action completed", zap.String("op", op), zap.String("animal_id", id))
	o.notify(ctx, &out, Notice{Message: okMsg, Severity: SeveritySuccess, Title: "Éxito"})
	return out, nil
}

// DTOFromRecord arma el DTO de escritura a partir del registro del servidor,
// sin pasar por el formulario (no valida género).
func DTOFromRecord(r Record) AnimalDTO {
	dto := AnimalDTO{
		Name:         strings.TrimSpace(r.Name),
		VisualCode:   identifierOf(r),
		CategoryID:   idPtr(r.CategoryID),
		BreedID:      idPtr(r.BreedID),
		PaddockID:    idPtr(r.PaddockID),
		BatchID:      idPtr(r.BatchID),
		BirthDate:    DateOnly(r.BirthDate),
		Status:       statusOf(r),
		MotherID:     idPtr(r.MotherID),
		FatherID:     idPtr(r.FatherID),
		Observations: notesOf(r),
		ID:           idPtr(r.ID),
		FarmID:       idPtr(r.FarmID),
	}
	if sex, err := SexCode(firstNonEmpty(r.Sex, r.Gender)); err == nil {
		dto.Sex = sex
	}
	if r.Height != nil && *r.Height > 0 {
		h := float64(*r.Height)
		dto.Height = &h
	}
	return dto
}

func idPtr(id ID) *int64 {
	if n, ok := id.Int64(); ok {
		return &n
	}
	return nil
}
