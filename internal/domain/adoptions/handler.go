package adoptions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

// PetLookup resuelve la mascota que el usuario eligió en la UI.
type PetLookup interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

func RegisterRoutes(r chi.Router, svc *Service, petsLookup PetLookup) {
	r.Route("/pets/{petID}/adoptions", func(ar chi.Router) {
		ar.Post("/", submitRequestHandler(svc, petsLookup))
		ar.Get("/", listRequestsByPetHandler(svc))
	})

	r.Route("/adoptions", func(ar chi.Router) {
		ar.Get("/", listRequestsHandler(svc))
		ar.Get("/{requestID}", getRequestHandler(svc))
	})
}

type submitRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Experience string `json:"experience"`
	Reason     string `json:"reason"`
}

type applicantResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	Experience string `json:"experience,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type requestResponse struct {
	ID          string            `json:"id"`
	PetID       string            `json:"pet_id"`
	PetName     string            `json:"pet_name"`
	Applicant   applicantResponse `json:"applicant"`
	Status      Status            `json:"status"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

// submitRequestHandler godoc
// @Summary  Envía una solicitud de adopción para una mascota
// @Tags     adoptions
// @Accept   json
// @Produce  json
// @Param    petID path string true "id de la mascota"
// @Success  201
// @Failure  400
// @Failure  404
// @Router   /pets/{petID}/adoptions [post]
func submitRequestHandler(svc *Service, petsLookup PetLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body submitRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		wf := svc.NewWorkflow()

		// Sin mascota resuelta no hay selección: Submit responde ErrNoSelection.
		p, err := petsLookup.GetByID(r.Context(), chi.URLParam(r, "petID"))
		switch {
		case err == nil:
			wf.Select(p)
		case !errors.Is(err, pets.ErrNotFound):
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		req, err := wf.Submit(r.Context(), Applicant{
			Name:       body.Name,
			Email:      body.Email,
			Phone:      body.Phone,
			Address:    body.Address,
			Experience: body.Experience,
			Reason:     body.Reason,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRequestResponse(req))
	}
}

func listRequestsByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponses(items))
	}
}

// listRequestsHandler godoc
// @Summary  Lista solicitudes de adopción
// @Tags     adoptions
// @Produce  json
// @Param    status query string false "CSV: pending,approved,rejected"
// @Success  200
// @Router   /adoptions [get]
func listRequestsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed, err := parseStatusFilter(r.URL.Query().Get("status"))
		if err != nil {
			writeError(w, err)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(allowed) > 0 {
			filtered := make([]Request, 0, len(items))
			for _, it := range items {
				if _, ok := allowed[it.Status]; ok {
					filtered = append(filtered, it)
				}
			}
			items = filtered
		}

		writeJSON(w, http.StatusOK, toRequestResponses(items))
	}
}

func getRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := svc.GetByID(r.Context(), chi.URLParam(r, "requestID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(req))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNoSelection):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func parseStatusFilter(raw string) (map[Status]struct{}, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	out := map[Status]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		s := Status(strings.ToLower(strings.TrimSpace(part)))
		if s == "" {
			continue
		}
		if !s.Valid() {
			return nil, ErrInvalidInput
		}
		out[s] = struct{}{}
	}
	return out, nil
}

func toRequestResponses(items []Request) []requestResponse {
	out := make([]requestResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toRequestResponse(it))
	}
	return out
}

func toRequestResponse(r Request) requestResponse {
	return requestResponse{
		ID:      r.ID,
		PetID:   r.PetID,
		PetName: r.PetName,
		Applicant: applicantResponse{
			Name:       r.Applicant.Name,
			Email:      r.Applicant.Email,
			Phone:      r.Applicant.Phone,
			Address:    r.Applicant.Address,
			Experience: r.Applicant.Experience,
			Reason:     r.Applicant.Reason,
		},
		Status:      r.Status,
		SubmittedAt: r.SubmittedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
