package reports

import (
	"time"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
)

// RecentLimit es la cantidad de solicitudes recientes que acompañan al reporte.
const RecentLimit = 5

// Report resume el estado del catálogo y de las solicitudes.
// Todos los valores de los enums aparecen como claves, aunque cuenten cero.
type Report struct {
	TotalPets     int
	PetsBySpecies map[pets.Species]int
	PetsByStatus  map[pets.Status]int

	TotalRequests    int
	RequestsByStatus map[adoptions.Status]int

	// AdoptionRate = adoptadas / total (0 si no hay mascotas).
	AdoptionRate float64

	// Más recientes primero.
	RecentRequests []adoptions.Request
}

// Document es la forma JSON del reporte (API, export y CLI).
type Document struct {
	GeneratedAt      time.Time                `json:"generated_at"`
	TotalPets        int                      `json:"total_pets"`
	PetsBySpecies    map[pets.Species]int     `json:"pets_by_species"`
	PetsByStatus     map[pets.Status]int      `json:"pets_by_status"`
	TotalRequests    int                      `json:"total_requests"`
	RequestsByStatus map[adoptions.Status]int `json:"requests_by_status"`
	AdoptionRate     float64                  `json:"adoption_rate"`
	RecentRequests   []RecentRequest          `json:"recent_requests"`
}

type RecentRequest struct {
	ID            string           `json:"id"`
	PetID         string           `json:"pet_id"`
	PetName       string           `json:"pet_name"`
	ApplicantName string           `json:"applicant_name"`
	Status        adoptions.Status `json:"status"`
	SubmittedAt   time.Time        `json:"submitted_at"`
}

func (r Report) Document(generatedAt time.Time) Document {
	recent := make([]RecentRequest, 0, len(r.RecentRequests))
	for _, it := range r.RecentRequests {
		recent = append(recent, RecentRequest{
			ID:            it.ID,
			PetID:         it.PetID,
			PetName:       it.PetName,
			ApplicantName: it.Applicant.Name,
			Status:        it.Status,
			SubmittedAt:   it.SubmittedAt,
		})
	}

	return Document{
		GeneratedAt:      generatedAt,
		TotalPets:        r.TotalPets,
		PetsBySpecies:    r.PetsBySpecies,
		PetsByStatus:     r.PetsByStatus,
		TotalRequests:    r.TotalRequests,
		RequestsByStatus: r.RequestsByStatus,
		AdoptionRate:     r.AdoptionRate,
		RecentRequests:   recent,
	}
}
