package herdstub

// References son los datos de referencia que sirve el stub. Son fijos: el
// stub solo refleja el contrato que consume el BFF.
type References struct {
	Breeds        []Ref
	Categories    []Ref
	Paddocks      []Ref
	Batches       []Ref
	MovementTypes []Ref
}

func DefaultReferences() References {
	return References{
		Breeds: []Ref{
			{ID: 1, Name: "Brahman"},
			{ID: 2, Name: "Angus"},
			{ID: 3, Name: "Holstein"},
			{ID: 4, Name: "Merino"},
			{ID: 5, Name: "Criolla"},
		},
		Categories: []Ref{
			{ID: 10, Name: "Bovino"},
			{ID: 11, Name: "Ovino"},
			{ID: 12, Name: "Porcino"},
			{ID: 13, Name: "Caprino"},
			{ID: 14, Name: "Aviar"},
		},
		Paddocks: []Ref{
			{ID: 5, FarmID: 0, Name: "Potrero Norte"},
			{ID: 7, FarmID: 0, Name: "Potrero Sur"},
			{ID: 8, FarmID: 0, Name: "Corral"},
		},
		Batches: []Ref{
			{ID: 9, FarmID: 0, Name: "Lote Engorde"},
			{ID: 20, FarmID: 0, Name: "Lote Cría"},
		},
		MovementTypes: []Ref{
			{ID: 1, Name: "Ingreso"},
			{ID: 2, Name: "Traslado de Potrero"},
			{ID: 3, Name: "Venta"},
		},
	}
}

// ForFarm devuelve las entradas globales más las de la granja.
func ForFarm(refs []Ref, farmID int64) []Ref {
	out := make([]Ref, 0, len(refs))
	for _, r := range refs {
		if r.FarmID == 0 || r.FarmID == farmID {
			out = append(out, r)
		}
	}
	return out
}

func nameOf(refs []Ref, id *int64) string {
	if id == nil {
		return ""
	}
	for _, r := range refs {
		if r.ID == *id {
			return r.Name
		}
	}
	return ""
}

func hasRef(refs []Ref, id int64) bool {
	for _, r := range refs {
		if r.ID == id {
			return true
		}
	}
	return false
}
