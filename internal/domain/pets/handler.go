package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	Status      string `json:"status"`
	Age         int    `json:"age"`
	Sex         string `json:"sex"`
	Size        string `json:"size"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string `json:"name"`
	Species     *string `json:"species"`
	Breed       *string `json:"breed"`
	Status      *string `json:"status"`
	Age         *int    `json:"age"`
	Sex         *string `json:"sex"`
	Size        *string `json:"size"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

type petResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Species     Species   `json:"species"`
	Breed       string    `json:"breed"`
	Status      Status    `json:"status"`
	Age         int       `json:"age"`
	Sex         Sex       `json:"sex,omitempty"`
	Size        Size      `json:"size,omitempty"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	DateAdded   time.Time `json:"date_added"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type listPetsResponse struct {
	Items []petResponse `json:"items"`
	Count int           `json:"count"` // mascotas que pasan el filtro
	Total int           `json:"total"` // mascotas registradas
}

// createPetHandler godoc
// @Summary  Publica una mascota
// @Tags     pets
// @Accept   json
// @Produce  json
// @Success  201
// @Failure  400
// @Router   /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Add(r.Context(), CreateInput{
			Name:        req.Name,
			Species:     Species(req.Species),
			Breed:       req.Breed,
			Status:      Status(req.Status),
			Age:         req.Age,
			Sex:         Sex(req.Sex),
			Size:        Size(req.Size),
			Description: req.Description,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary  Lista mascotas filtradas por texto, especie y estado
// @Tags     pets
// @Produce  json
// @Param    search   query string false "nombre o raza"
// @Param    species  query string false "all, dog, cat, other"
// @Param    status   query string false "all, available, pending, adopted"
// @Success  200
// @Router   /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		c, err := ParseCriteria(q.Get("search"), q.Get("species"), q.Get("status"))
		if err != nil {
			http.Error(w, "species/status must be one of the known values or all", http.StatusBadRequest)
			return
		}

		res, err := svc.Search(r.Context(), c)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := listPetsResponse{
			Items: make([]petResponse, 0, len(res.Items)),
			Count: len(res.Items),
			Total: res.Total,
		}
		for _, p := range res.Items {
			out.Items = append(out.Items, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary  Edita los campos enviados de una mascota
// @Tags     pets
// @Accept   json
// @Produce  json
// @Param    petID path string true "id de la mascota"
// @Success  200
// @Failure  400
// @Failure  404
// @Router   /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Age:         req.Age,
			Description: req.Description,
			ImageURL:    req.ImageURL,
		}
		if req.Species != nil {
			v := Species(*req.Species)
			in.Species = &v
		}
		if req.Status != nil {
			v := Status(*req.Status)
			in.Status = &v
		}
		if req.Sex != nil {
			v := Sex(*req.Sex)
			in.Sex = &v
		}
		if req.Size != nil {
			v := Size(*req.Size)
			in.Size = &v
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary  Elimina una mascota (las solicitudes existentes se conservan)
// @Tags     pets
// @Param    petID path string true "id de la mascota"
// @Success  204
// @Failure  404
// @Router   /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Status:      p.Status,
		Age:         p.Age,
		Sex:         p.Sex,
		Size:        p.Size,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		DateAdded:   p.DateAdded,
		UpdatedAt:   p.UpdatedAt,
	}
}

// writeJSON se repite en adoptions y reports; todavía no hay paquete común de helpers HTTP.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
