package reports

import (
	"sort"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
)

// Summarize es una función pura: no modifica sus entradas y para las mismas
// colecciones devuelve siempre el mismo reporte.
func Summarize(ps []pets.Pet, rs []adoptions.Request) Report {
	rep := Report{
		TotalPets:        len(ps),
		PetsBySpecies:    make(map[pets.Species]int, len(pets.AllSpecies)),
		PetsByStatus:     make(map[pets.Status]int, len(pets.AllStatuses)),
		TotalRequests:    len(rs),
		RequestsByStatus: make(map[adoptions.Status]int, len(adoptions.AllStatuses)),
	}

	for _, s := range pets.AllSpecies {
		rep.PetsBySpecies[s] = 0
	}
	for _, s := range pets.AllStatuses {
		rep.PetsByStatus[s] = 0
	}
	for _, s := range adoptions.AllStatuses {
		rep.RequestsByStatus[s] = 0
	}

	// Valores fuera del enum también se cuentan para que las sumas cierren con el total.
	for _, p := range ps {
		rep.PetsBySpecies[p.Species]++
		rep.PetsByStatus[p.Status]++
	}
	for _, r := range rs {
		rep.RequestsByStatus[r.Status]++
	}

	if rep.TotalPets > 0 {
		rep.AdoptionRate = float64(rep.PetsByStatus[pets.StatusAdopted]) / float64(rep.TotalPets)
	}

	rep.RecentRequests = recent(rs, RecentLimit)
	return rep
}

func recent(rs []adoptions.Request, limit int) []adoptions.Request {
	idx := make([]int, len(rs))
	for i := range idx {
		idx[i] = i
	}
	// Más nuevas primero; en empate gana la insertada después.
	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := rs[idx[a]], rs[idx[b]]
		if !ra.SubmittedAt.Equal(rb.SubmittedAt) {
			return ra.SubmittedAt.After(rb.SubmittedAt)
		}
		return idx[a] > idx[b]
	})

	if len(idx) > limit {
		idx = idx[:limit]
	}
	out := make([]adoptions.Request, 0, len(idx))
	for _, i := range idx {
		out = append(out, rs[i])
	}
	return out
}
