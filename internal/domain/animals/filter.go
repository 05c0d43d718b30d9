package animals

import "strings"

// FilterAll desactiva el filtro por tipo.
const FilterAll = "all"

type Filter struct {
	Search string
	Type   string
}

// FilterRecords aplica la búsqueda (nombre o identificador, sin distinguir
// mayúsculas) y el filtro exacto por tipo. Mantiene el orden del servidor.
func FilterRecords(recs []Record, f Filter) []Record {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	typ := strings.TrimSpace(f.Type)
	if typ == FilterAll {
		typ = ""
	}

	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(identifierOf(r)), q) {
			continue
		}
		if typ != "" && typeOf(r) != typ {
			continue
		}
		out = append(out, r)
	}
	return out
}
