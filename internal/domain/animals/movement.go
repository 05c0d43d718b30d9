package animals

import "strings"

// Grupos de palabras clave para elegir el tipo de movimiento, en orden de prioridad.
var (
	relocationKeywords = [][]string{
		{"traslado", "cambio", "relocation", "change"},
	}
	entryKeywords = [][]string{
		{"ingreso", "entrada", "entry"},
		{"inicio", "start"},
		{"traslado", "relocation"},
	}
)

// ResolveMovementType busca el primer tipo cuyo nombre contenga (sin distinguir
// mayúsculas) alguna palabra del grupo, grupo por grupo. Sin match usa el primer
// tipo disponible; ok=false solo si la lista está vacía.
func ResolveMovementType(types []Reference, groups [][]string) (Reference, bool) {
	if len(types) == 0 {
		return Reference{}, false
	}
	for _, group := range groups {
		for _, t := range types {
			name := strings.ToLower(t.Name)
			for _, kw := range group {
				if strings.Contains(name, kw) {
					return t, true
				}
			}
		}
	}
	return types[0], true
}
