package pets

import "strings"

// FilterAll es el valor que desactiva un filtro de especie o estado.
const FilterAll = "all"

// Criteria son los parámetros de búsqueda que manda la UI en cada consulta.
// Species/Status vacíos o "all" (sin importar mayúsculas) no filtran.
// Cualquier otro valor debe venir en minúsculas; ParseCriteria ya lo normaliza.
type Criteria struct {
	Search  string
	Species Species
	Status  Status
}

// ParseCriteria valida los valores crudos (query string, flags) y arma Criteria.
func ParseCriteria(search, species, status string) (Criteria, error) {
	c := Criteria{Search: search}

	species = strings.ToLower(strings.TrimSpace(species))
	if species != "" && species != FilterAll {
		sp := Species(species)
		if !sp.Valid() {
			return Criteria{}, ErrInvalidInput
		}
		c.Species = sp
	}

	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && status != FilterAll {
		st := Status(status)
		if !st.Valid() {
			return Criteria{}, ErrInvalidInput
		}
		c.Status = st
	}

	return c, nil
}

// Matches aplica los tres predicados (texto, especie, estado) sobre una mascota.
func (c Criteria) Matches(p Pet) bool {
	if c.Search != "" {
		q := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Breed), q) {
			return false
		}
	}
	if !c.allSpecies() && p.Species != c.Species {
		return false
	}
	if !c.allStatuses() && p.Status != c.Status {
		return false
	}
	return true
}

func (c Criteria) allSpecies() bool {
	return c.Species == "" || strings.EqualFold(string(c.Species), FilterAll)
}

func (c Criteria) allStatuses() bool {
	return c.Status == "" || strings.EqualFold(string(c.Status), FilterAll)
}

// Filter devuelve las mascotas que cumplen c, en el mismo orden de entrada.
// Nunca modifica items y siempre devuelve un slice no-nil.
func Filter(items []Pet, c Criteria) []Pet {
	out := make([]Pet, 0, len(items))
	for _, p := range items {
		if c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
